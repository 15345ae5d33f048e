package llm

import (
	"context"
)

// Message represents a chat message in a provider-agnostic format
type Message struct {
	Role    string // "user", "assistant", "system"
	Content string
}

// Completion is a model response together with its token accounting.
// Providers report exact counts when their API exposes them and fall
// back to a length/4 estimate otherwise. CostEstimate is in USD.
type Completion struct {
	Text         string
	TokensIn     int
	TokensOut    int
	CostEstimate float64
}

// Option allows for optional parameters like Temperature, MaxTokens, etc.
type Option func(*Options)

type Options struct {
	Temperature float64
	MaxTokens   int
	Model       string // Override default model
	System      string // Prepended as a system message when set
}

func WithTemperature(temp float64) Option {
	return func(o *Options) {
		o.Temperature = temp
	}
}

func WithMaxTokens(maxTokens int) Option {
	return func(o *Options) {
		o.MaxTokens = maxTokens
	}
}

func WithModel(model string) Option {
	return func(o *Options) {
		o.Model = model
	}
}

func WithSystem(system string) Option {
	return func(o *Options) {
		o.System = system
	}
}

// LLMProvider defines the contract for any LLM backend
type LLMProvider interface {
	// Chat sends a chat history to the model and returns the response
	Chat(ctx context.Context, history []Message, options ...Option) (*Completion, error)

	// Complete sends a single prompt to the model (convenience method)
	Complete(ctx context.Context, prompt string, options ...Option) (*Completion, error)
}

// EstimateTokens is the fallback counter for providers that do not
// report usage: one token per four characters, rounded up.
func EstimateTokens(text string) int {
	if text == "" {
		return 0
	}
	return (len(text) + 3) / 4
}
