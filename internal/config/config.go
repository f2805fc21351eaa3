package config

import (
	"fmt"
	"os"
)

// Config holds application configuration
type Config struct {
	Port            string
	LedgerBaseURL   string
	LedgerAPIToken  string
	APIToken        string
	DBConn          string
	RefreshSchedule string
	LogLevel        string
}

// NewConfig loads configuration from environment variables
func NewConfig() (*Config, error) {
	cfg := &Config{
		Port:            getEnv("PORT", "8080"),
		LedgerBaseURL:   getEnv("LEDGER_BASE_URL", ""),
		LedgerAPIToken:  getEnv("LEDGER_API_TOKEN", ""),
		APIToken:        getEnv("API_TOKEN", "dev-token"),
		DBConn:          getEnv("DB_CONN", "host=localhost port=5432 user=postgres password=postgres dbname=flashtrack sslmode=disable"),
		RefreshSchedule: getEnv("REFRESH_SCHEDULE", "@every 5m"),
		LogLevel:        getEnv("LOG_LEVEL", "INFO"),
	}

	if cfg.LedgerBaseURL == "" {
		return nil, fmt.Errorf("LEDGER_BASE_URL is required")
	}
	if cfg.LedgerAPIToken == "" {
		return nil, fmt.Errorf("LEDGER_API_TOKEN is required")
	}

	return cfg, nil
}

func getEnv(key, defaultVal string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return defaultVal
}
