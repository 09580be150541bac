package config

import (
	"os"

	"github.com/joho/godotenv"
)

type Config struct {
	Port               string
	DatabaseURL        string
	AssignmentsBaseURL string
	AssignmentsToken   string
	SyncSchedule       string
}

func Load() *Config {
	// Load .env file if it exists
	_ = godotenv.Load()

	return &Config{
		Port:               getEnv("PORT", "8080"),
		DatabaseURL:        getEnv("DATABASE_URL", "planner.db"),
		AssignmentsBaseURL: getEnv("ASSIGNMENTS_BASE_URL", ""),
		AssignmentsToken:   getEnv("ASSIGNMENTS_TOKEN", ""),
		// Cron spec for background reconciliation; empty disables it.
		SyncSchedule: getEnv("SYNC_SCHEDULE", ""),
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}
