package config

import (
	"os"
	"strconv"
	"time"

	"github.com/joho/godotenv"
	"github.com/rs/zerolog/log"
)

type Config struct {
	Port      string
	Env       string
	PublicURL string

	// Persistence
	DatabaseDriver   string // sqlite, postgres
	DatabaseURL      string
	SessionBackend   string // gorm, redis, memory
	RedisURL         string
	SessionTTL       time.Duration
	SessionCacheSize int

	// Auth
	JWTSecret string

	// Insights endpoint
	InsightsEndpoint string
	InsightsTimeout  time.Duration

	// Chat assistant
	LLMProvider    string
	LLMModel       string
	OpenAIKey      string
	GroqKey        string
	DeepSeekKey    string
	LLMTemperature float32
	LLMMaxTokens   int
}

func LoadConfig() *Config {
	if err := godotenv.Load(); err != nil {
		log.Warn().Msg("⚠️ .env file not found, using system environment variables")
	}

	cfg := &Config{
		Port:             os.Getenv("PORT"),
		Env:              os.Getenv("ENV"),
		PublicURL:        os.Getenv("PUBLIC_URL"),
		DatabaseDriver:   os.Getenv("DATABASE_DRIVER"),
		DatabaseURL:      os.Getenv("DATABASE_URL"),
		SessionBackend:   os.Getenv("SESSION_BACKEND"),
		RedisURL:         os.Getenv("REDIS_URL"),
		SessionTTL:       getDuration("SESSION_TTL", 24*time.Hour),
		SessionCacheSize: getInt("SESSION_CACHE_SIZE", 1024),
		JWTSecret:        os.Getenv("JWT_SECRET"),
		InsightsEndpoint: os.Getenv("INSIGHTS_ENDPOINT"),
		InsightsTimeout:  getDuration("INSIGHTS_TIMEOUT", 30*time.Second),
		LLMProvider:      os.Getenv("LLM_PROVIDER"),
		LLMModel:         os.Getenv("LLM_MODEL"),
		OpenAIKey:        os.Getenv("OPENAI_API_KEY"),
		GroqKey:          os.Getenv("GROQ_API_KEY"),
		DeepSeekKey:      os.Getenv("DEEPSEEK_API_KEY"),
		LLMTemperature:   0.7,
		LLMMaxTokens:     getInt("LLM_MAX_TOKENS", 512),
	}

	// Default values
	if cfg.Port == "" {
		cfg.Port = "8080"
	}
	if cfg.Env == "" {
		cfg.Env = "development"
	}
	if cfg.PublicURL == "" {
		cfg.PublicURL = "http://localhost:" + cfg.Port
	}
	if cfg.DatabaseDriver == "" {
		cfg.DatabaseDriver = "sqlite"
	}
	if cfg.DatabaseURL == "" && cfg.DatabaseDriver == "sqlite" {
		cfg.DatabaseURL = "file:clarity.db?_pragma=busy_timeout(5000)"
	}
	if cfg.SessionBackend == "" {
		cfg.SessionBackend = "gorm"
	}
	if cfg.RedisURL == "" {
		cfg.RedisURL = "redis://localhost:6379/0"
	}
	if cfg.JWTSecret == "" {
		// Development only; production deployments must set JWT_SECRET.
		cfg.JWTSecret = "clarity-dev-secret"
	}
	if cfg.InsightsEndpoint == "" {
		cfg.InsightsEndpoint = "http://127.0.0.1:5000/roi-insights/latest"
	}

	return cfg
}

// IsProduction reports whether the service runs with ENV=production.
func (c *Config) IsProduction() bool {
	return c.Env == "production"
}

func getDuration(key string, fallback time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	d, err := time.ParseDuration(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("⚠️ invalid duration, using default")
		return fallback
	}
	return d
}

func getInt(key string, fallback int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return fallback
	}
	n, err := strconv.Atoi(raw)
	if err != nil {
		log.Warn().Str("key", key).Str("value", raw).Msg("⚠️ invalid integer, using default")
		return fallback
	}
	return n
}
