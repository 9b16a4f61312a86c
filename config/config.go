package config

import (
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

// defaultLedgerURL points at the deployed Apps Script endpoint that records
// borrow/return rows in the spreadsheet.
const defaultLedgerURL = "https://script.google.com/macros/s/AKfycbwMAVU911bfBxh--PDg1l15W0qM3EflxVv-KVLMlV34LpuZnJBZeRtkjq8lqky6g8sRTQ/exec"

type Config struct {
	// Remote ledger
	LedgerURL   string        `env:"LEDGER_URL"`
	HTTPTimeout time.Duration `env:"HTTP_TIMEOUT" default:"30s"`

	// Local catalog storage
	DBPath string `env:"DB_PATH" default:"boardgames.db"`

	// Development
	LogLevel string `env:"LOG_LEVEL" default:"info"`
}

// Load reads configuration from environment variables, optionally seeded
// from a .env file in the working directory.
func Load() (*Config, error) {
	// A missing .env file is fine; system env vars still apply.
	_ = godotenv.Load(".env")

	cfg := &Config{}

	if err := loadEnvString(&cfg.LedgerURL, "LEDGER_URL", defaultLedgerURL); err != nil {
		return nil, err
	}
	if err := loadEnvDuration(&cfg.HTTPTimeout, "HTTP_TIMEOUT", 30*time.Second); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.DBPath, "DB_PATH", "boardgames.db"); err != nil {
		return nil, err
	}
	if err := loadEnvString(&cfg.LogLevel, "LOG_LEVEL", "info"); err != nil {
		return nil, err
	}

	return cfg, nil
}

// Validate performs validation on the loaded configuration.
func (c *Config) Validate() error {
	var errors []string

	if !strings.HasPrefix(c.LedgerURL, "http://") && !strings.HasPrefix(c.LedgerURL, "https://") {
		errors = append(errors, "LEDGER_URL must be an http(s) URL")
	}
	if c.HTTPTimeout <= 0 {
		errors = append(errors, "HTTP_TIMEOUT must be positive")
	}

	validLogLevels := []string{"debug", "info", "warn", "error"}
	if !contains(validLogLevels, c.LogLevel) {
		errors = append(errors, fmt.Sprintf("LOG_LEVEL must be one of: %s", strings.Join(validLogLevels, ", ")))
	}

	if len(errors) > 0 {
		return fmt.Errorf("configuration validation failed: %s", strings.Join(errors, "; "))
	}
	return nil
}

// Helper functions for type conversion and validation
func loadEnvString(target *string, key, defaultValue string) error {
	if value := os.Getenv(key); value != "" {
		*target = value
	} else {
		*target = defaultValue
	}
	return nil
}

func loadEnvDuration(target *time.Duration, key string, defaultValue time.Duration) error {
	if value := os.Getenv(key); value != "" {
		parsed, err := time.ParseDuration(value)
		if err != nil {
			return fmt.Errorf("invalid duration value for %s: %v", key, err)
		}
		*target = parsed
	} else {
		*target = defaultValue
	}
	return nil
}

func contains(slice []string, item string) bool {
	for _, s := range slice {
		if s == item {
			return true
		}
	}
	return false
}
