package config

import (
	"os"
	"strconv"
	"strings"
)

// Config is built once in main and passed into constructors. Business logic
// never reads the environment directly.
type Config struct {
	Port    string
	LogMode string

	Postgres PostgresConfig
	LLM      LLMConfig
	Chroma   ChromaConfig

	// RedisAddr enables the embedding cache when non-empty.
	RedisAddr string

	ChunkSize    int
	ChunkOverlap int
}

type PostgresConfig struct {
	Host     string
	Port     string
	User     string
	Password string
	Name     string
}

type LLMConfig struct {
	BaseURL        string
	APIKey         string
	Model          string
	EmbedModel     string
	TimeoutSeconds int
	MaxRetries     int
}

type ChromaConfig struct {
	URL            string
	TimeoutSeconds int
}

func Load() Config {
	return Config{
		Port:    getEnv("PORT", "8080"),
		LogMode: getEnv("LOG_MODE", "development"),
		Postgres: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnv("POSTGRES_PORT", "5432"),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			Name:     getEnv("POSTGRES_NAME", "vendor_onboarding"),
		},
		LLM: LLMConfig{
			BaseURL:        getEnv("LLM_BASE_URL", "https://api.openai.com"),
			APIKey:         getEnv("LLM_API_KEY", ""),
			Model:          getEnv("LLM_MODEL", "gpt-4o"),
			EmbedModel:     getEnv("LLM_EMBED_MODEL", "text-embedding-3-small"),
			TimeoutSeconds: getEnvInt("LLM_TIMEOUT_SECONDS", 120),
			MaxRetries:     getEnvInt("LLM_MAX_RETRIES", 0),
		},
		Chroma: ChromaConfig{
			URL:            getEnv("CHROMA_URL", "http://localhost:8000"),
			TimeoutSeconds: getEnvInt("CHROMA_TIMEOUT_SECONDS", 30),
		},
		RedisAddr:    getEnv("REDIS_ADDR", ""),
		ChunkSize:    getEnvInt("CHUNK_SIZE", 512),
		ChunkOverlap: getEnvInt("CHUNK_OVERLAP", 64),
	}
}

func getEnv(name, def string) string {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	return v
}

func getEnvInt(name string, def int) int {
	v := strings.TrimSpace(os.Getenv(name))
	if v == "" {
		return def
	}
	i, err := strconv.Atoi(v)
	if err != nil {
		return def
	}
	return i
}
