package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config holds all configuration for the application
type Config struct {
	// Database
	DatabaseURL    string
	MigrationsPath string

	// Server
	Port        string
	CORSOrigins []string
	Env         string

	// Auto-post sweep schedule (robfig/cron spec)
	AutoPostCron string

	// Rate limiting
	RateLimitPerMinute int
	RateLimitBurst     int
}

// Load reads configuration from environment variables
func Load() (*Config, error) {
	// Load .env file if it exists (ignore error if not found)
	_ = godotenv.Load()

	cfg := &Config{
		DatabaseURL:        getEnv("DATABASE_URL", ""),
		MigrationsPath:     getEnv("MIGRATIONS_PATH", "migrations"),
		Port:               getEnv("PORT", "8080"),
		CORSOrigins:        strings.Split(getEnv("CORS_ORIGINS", "http://localhost:5173"), ","),
		Env:                getEnv("ENV", "development"),
		AutoPostCron:       getEnv("AUTOPOST_CRON", "@hourly"),
		RateLimitPerMinute: getEnvInt("RATE_LIMIT_PER_MINUTE", 300),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 30),
	}

	if err := cfg.validate(); err != nil {
		return nil, err
	}

	return cfg, nil
}

func (c *Config) validate() error {
	if c.DatabaseURL == "" {
		return fmt.Errorf("DATABASE_URL is required")
	}
	if c.RateLimitPerMinute <= 0 {
		return fmt.Errorf("RATE_LIMIT_PER_MINUTE must be positive")
	}
	return nil
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	value := os.Getenv(key)
	if value == "" {
		return defaultValue
	}
	n, err := strconv.Atoi(value)
	if err != nil {
		return defaultValue
	}
	return n
}
