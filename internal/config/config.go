package config

import (
	"log"
	"os"
	"strconv"

	"github.com/joho/godotenv"
)

type Config struct {
	App      AppConfig
	Database DatabaseConfig
	SMTP     SMTPConfig
	Ai       AIConfig
	Vcs      VcsConfig
	Pipeline PipelineConfig
}

type AppConfig struct {
	Port               string
	BaseURL            string
	ClientURL          string
	Environment        string
	LogFilePath        string
	CorsAllowedOrigins string
	NatsURL            string
	RedisURL           string
}

type DatabaseConfig struct {
	Connection string
}

type SMTPConfig struct {
	Host       string
	Port       int
	Email      string
	Password   string
	SenderName string
}

type AIConfig struct {
	Provider           string // "ollama" or "huggingface"
	Model              string // e.g. "llama3", "qwen2.5"
	BaseURL            string
	APIKey             string
	CostPerMilleTokens float64
}

type VcsConfig struct {
	GithubToken string
}

type PipelineConfig struct {
	JobTopicName string
	NotifyEmail  string // run reports go here when set
}

func Load() *Config {
	if err := godotenv.Load(); err != nil {
		log.Println("Note: .env file not found, usage system environment")
	}

	return &Config{
		App: AppConfig{
			Port:               getEnv("APP_PORT", "3000"),
			BaseURL:            getEnv("APP_BASE_URL", "http://localhost:3000"),
			ClientURL:          getEnv("CLIENT_URL", "http://localhost:5173"),
			Environment:        getEnv("GO_ENV", "development"),
			LogFilePath:        getEnv("LOG_FILE_PATH", "app.log.csv"),
			CorsAllowedOrigins: getEnv("CORS_ALLOWED_ORIGINS", "http://localhost:5173"),
			NatsURL:            getEnv("NATS_URL", "nats://localhost:4222"),
			RedisURL:           getEnv("REDIS_URL", "redis://localhost:6379"),
		},
		Database: DatabaseConfig{
			Connection: getEnv("DB_CONNECTION_STRING", ""),
		},
		SMTP: SMTPConfig{
			Host:       getEnv("SMTP_HOST", ""),
			Port:       getEnvAsInt("SMTP_PORT", 587),
			Email:      getEnv("SMTP_EMAIL", ""),
			Password:   getEnv("SMTP_PASSWORD", ""),
			SenderName: getEnv("SMTP_SENDER_NAME", "DocGen"),
		},
		Ai: AIConfig{
			Provider:           getEnv("LLM_PROVIDER", "ollama"),
			Model:              getEnv("LLM_MODEL", "llama3"),
			BaseURL:            getEnv("LLM_BASE_URL", ""),
			APIKey:             getEnv("LLM_API_KEY", ""),
			CostPerMilleTokens: getEnvAsFloat("LLM_COST_PER_1K_TOKENS", 0),
		},
		Vcs: VcsConfig{
			GithubToken: getEnv("GITHUB_TOKEN", ""),
		},
		Pipeline: PipelineConfig{
			JobTopicName: getEnv("GENERATION_JOB_TOPIC_NAME", "docgen.generation.jobs"),
			NotifyEmail:  getEnv("GENERATION_NOTIFY_EMAIL", ""),
		},
	}
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

func getEnvAsInt(key string, fallback int) int {
	strValue := getEnv(key, "")
	if value, err := strconv.Atoi(strValue); err == nil {
		return value
	}
	return fallback
}

func getEnvAsFloat(key string, fallback float64) float64 {
	strValue := getEnv(key, "")
	if value, err := strconv.ParseFloat(strValue, 64); err == nil {
		return value
	}
	return fallback
}
