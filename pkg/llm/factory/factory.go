package factory

import (
	"ai-docgen-be/pkg/llm"
	"ai-docgen-be/pkg/llm/huggingface"
	"ai-docgen-be/pkg/llm/ollama"
	"fmt"
)

type Config struct {
	Provider           string
	Model              string
	BaseURL            string
	APIKey             string
	CostPerMilleTokens float64
}

func NewLLMProvider(cfg Config) (llm.LLMProvider, error) {
	switch cfg.Provider {
	case "ollama":
		baseURL := cfg.BaseURL
		if baseURL == "" {
			baseURL = "http://localhost:11434" // Default
		}
		return ollama.NewOllamaProvider(baseURL, cfg.Model), nil
	case "huggingface":
		return huggingface.NewHuggingFaceProvider(cfg.APIKey, cfg.BaseURL, cfg.Model, cfg.CostPerMilleTokens), nil
	default:
		return nil, fmt.Errorf("unsupported LLM provider: %s", cfg.Provider)
	}
}
