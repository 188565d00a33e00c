package config

import (
	"os"
	"strconv"
)

// Config holds application configuration loaded from environment variables.
type Config struct {
	Port         string
	DatabaseURL  string
	RedisURL     string
	SessionStore string // "memory" or "redis"
	JWTSecret    string
	DevMode      bool

	OpenAIAPIKey string
	OpenAIModel  string

	GoogleClientID     string
	GoogleClientSecret string
	GoogleRedirectURL  string

	BaselineScore float64
	BATNATrump    float64
	BATNAPutin    float64

	CORSAllowOrigin string
}

// Load reads configuration from environment variables with sensible defaults.
// DATABASE_URL has no default: the agreement archive is opt-in and the server
// runs without Postgres when it is unset.
func Load() *Config {
	return &Config{
		Port:         envOrDefault("PORT", "8010"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		RedisURL:     envOrDefault("REDIS_URL", "redis://localhost:6379/0"),
		SessionStore: envOrDefault("SESSION_STORE", "memory"),
		JWTSecret:    envOrDefault("JWT_SECRET", "dev-secret-change-me"),
		DevMode:      os.Getenv("DEV_MODE") == "true",

		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
		OpenAIModel:  envOrDefault("OPENAI_MODEL", "gpt-4o-mini"),

		GoogleClientID:     os.Getenv("GOOGLE_CLIENT_ID"),
		GoogleClientSecret: os.Getenv("GOOGLE_CLIENT_SECRET"),
		GoogleRedirectURL:  envOrDefault("GOOGLE_REDIRECT_URL", "http://localhost:8010/auth/google/callback"),

		BaselineScore: envFloatOrDefault("BASELINE_SCORE", 50),
		BATNATrump:    envFloatOrDefault("BATNA_TRUMP", 60),
		BATNAPutin:    envFloatOrDefault("BATNA_PUTIN", 60),

		CORSAllowOrigin: envOrDefault("CORS_ALLOW_ORIGIN", "*"),
	}
}

func envOrDefault(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envFloatOrDefault(key string, fallback float64) float64 {
	if v := os.Getenv(key); v != "" {
		if f, err := strconv.ParseFloat(v, 64); err == nil {
			return f
		}
	}
	return fallback
}
