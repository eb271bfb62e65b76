package config

import (
	"fmt"
	"os"
	"strconv"
)

type Config struct {
	AppName          string
	Port             string
	LogLevel         string
	DatabaseURL      string
	RabbitMQEnabled  bool
	DefaultPageLimit int
	MaxPageLimit     int
}

func Load() *Config {
	defaultLimit, _ := strconv.Atoi(getEnvOrDefault("DEFAULT_PAGE_LIMIT", "20"))
	maxLimit, _ := strconv.Atoi(getEnvOrDefault("MAX_PAGE_LIMIT", "100"))

	return &Config{
		AppName:          getEnvOrDefault("APP_NAME", "Inventory & Order Management API"),
		Port:             getEnvOrDefault("PORT", "8000"),
		LogLevel:         getEnvOrDefault("LOG_LEVEL", "info"),
		DatabaseURL:      databaseURLFromEnv(),
		RabbitMQEnabled:  getEnvOrDefault("RABBITMQ_ENABLED", "false") == "true",
		DefaultPageLimit: defaultLimit,
		MaxPageLimit:     maxLimit,
	}
}

// databaseURLFromEnv returns an empty string when no database is configured,
// in which case the in-memory store is used.
func databaseURLFromEnv() string {
	if url := os.Getenv("DATABASE_URL"); url != "" {
		return url
	}
	if os.Getenv("DB_HOST") == "" {
		return ""
	}

	return fmt.Sprintf(
		"host=%s port=%s user=%s password=%s dbname=%s sslmode=disable",
		getEnvOrDefault("DB_HOST", "localhost"),
		getEnvOrDefault("DB_PORT", "5432"),
		getEnvOrDefault("DB_USER", "postgres"),
		getEnvOrDefault("DB_PASSWORD", "postgres"),
		getEnvOrDefault("DB_NAME", "inventory_db"),
	)
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
