package config

import (
	"errors"
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Addr         string
	DatabaseURL  string
	JWTSecret    string
	ResendAPIKey string
	EmailFrom    string
	OpenAIAPIKey string
}

// Load reads configuration from the environment, layering a local .env
// file underneath when present.
func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		Addr:         getEnv("ADDR", ":8080"),
		DatabaseURL:  os.Getenv("DATABASE_URL"),
		JWTSecret:    getEnv("JWT_SECRET", "secret-key"),
		ResendAPIKey: os.Getenv("RESEND_API_KEY"),
		EmailFrom:    getEnv("EMAIL_FROM", "Mystery Message <onboarding@resend.dev>"),
		OpenAIAPIKey: os.Getenv("OPENAI_API_KEY"),
	}

	if cfg.DatabaseURL == "" {
		return nil, errors.New("DATABASE_URL is required")
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}
