// Package config manages application configuration
package config

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	// Server settings
	Port        string
	Environment string // "development" or "production"

	// Database
	DatabaseURL string

	// Security
	SecretKey string // For JWT signing

	// Session settings
	SessionDuration time.Duration

	// Settlement schedule: weekly sweep day/hour in a fixed civil timezone
	SettlementWeekday  time.Weekday
	SettlementHour     int
	SettlementTimezone string

	// Simulated bank transfer latency
	TransferDelay time.Duration
}

// Load reads configuration from environment variables with sensible defaults
func Load() *Config {
	return &Config{
		Port:               getEnv("MICROVEST_PORT", "3000"),
		Environment:        getEnv("MICROVEST_ENV", "development"),
		DatabaseURL:        getEnv("MICROVEST_DATABASE_URL", "microvest.db"),
		SecretKey:          getEnv("MICROVEST_SECRET_KEY", "dev-secret-key-change-in-production"),
		SessionDuration:    getDurationEnv("MICROVEST_SESSION_DURATION", 24*time.Hour),
		SettlementWeekday:  time.Weekday(getIntEnv("MICROVEST_SETTLEMENT_WEEKDAY", int(time.Wednesday))),
		SettlementHour:     getIntEnv("MICROVEST_SETTLEMENT_HOUR", 12),
		SettlementTimezone: getEnv("MICROVEST_SETTLEMENT_TZ", "America/New_York"),
		TransferDelay:      getDurationEnv("MICROVEST_TRANSFER_DELAY", 2*time.Second),
	}
}

// IsDevelopment returns true if running in development mode
func (c *Config) IsDevelopment() bool {
	return c.Environment == "development"
}

// IsProduction returns true if running in production mode
func (c *Config) IsProduction() bool {
	return c.Environment == "production"
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getIntEnv(key string, fallback int) int {
	if value := os.Getenv(key); value != "" {
		if n, err := strconv.Atoi(value); err == nil {
			return n
		}
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if d, err := time.ParseDuration(value); err == nil {
			return d
		}
	}
	return fallback
}
