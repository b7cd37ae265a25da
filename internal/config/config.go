// Package config loads and validates application configuration from
// environment variables. A .env file in the working directory is read first
// when present; real environment variables always win.
package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Discount modes for trip settlement. See TripService for semantics.
const (
	// DiscountModePresence applies the flat 10% whenever a promo code
	// string was supplied, without consulting the promo ledger.
	DiscountModePresence = "presence"
	// DiscountModeLedger consumes a use from the promo ledger and applies
	// its percent-based discount; rejected codes yield no discount.
	DiscountModeLedger = "ledger"
)

// Config holds all configuration values for the API server.
// Values are populated by Load from environment variables.
type Config struct {
	// Port is the TCP port the HTTP server listens on. Defaults to "8080".
	Port string

	// DatabaseURL is the Postgres connection string. Required.
	DatabaseURL string

	// LogLevel controls the minimum log level. Defaults to "info".
	// Valid values: debug, info, warn, error.
	LogLevel string

	// CORSOrigins is the list of allowed cross-origin request origins.
	// Set CORS_ORIGINS to a comma-separated list to override.
	CORSOrigins []string

	// MaxBodyBytes caps incoming request body sizes. Defaults to 1 MiB.
	MaxBodyBytes int64

	// PromoDiscountMode selects how trip finish computes the discount.
	// Either "presence" (default, the historical behavior) or "ledger".
	PromoDiscountMode string
}

// Load reads configuration from environment variables and returns a Config.
// Returns an error listing any required variables that are not set, or
// naming the first variable with an unparseable value.
func Load() (Config, error) {
	// Best effort: absence of a .env file is the normal production case.
	_ = godotenv.Load()

	cfg := Config{
		Port:              getEnv("PORT", "8080"),
		LogLevel:          getEnv("LOG_LEVEL", "info"),
		CORSOrigins:       splitCSV(getEnv("CORS_ORIGINS", "http://localhost:5173")),
		PromoDiscountMode: getEnv("PROMO_DISCOUNT_MODE", DiscountModePresence),
	}

	switch cfg.PromoDiscountMode {
	case DiscountModePresence, DiscountModeLedger:
	default:
		return Config{}, fmt.Errorf("PROMO_DISCOUNT_MODE must be %q or %q, got %q",
			DiscountModePresence, DiscountModeLedger, cfg.PromoDiscountMode)
	}

	maxBody := getEnv("MAX_BODY_BYTES", "1048576")
	n, err := strconv.ParseInt(maxBody, 10, 64)
	if err != nil || n <= 0 {
		return Config{}, fmt.Errorf("MAX_BODY_BYTES must be a positive integer, got %q", maxBody)
	}
	cfg.MaxBodyBytes = n

	var missing []string

	cfg.DatabaseURL = os.Getenv("DATABASE_URL")
	if cfg.DatabaseURL == "" {
		missing = append(missing, "DATABASE_URL")
	}

	if len(missing) > 0 {
		return Config{}, fmt.Errorf("required environment variables not set: %s", strings.Join(missing, ", "))
	}

	return cfg, nil
}

// getEnv returns the value of the environment variable named by key,
// or fallback if the variable is not set or is empty.
func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

// splitCSV splits a comma-separated string into a trimmed slice, ignoring
// empty entries.
func splitCSV(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if t := strings.TrimSpace(part); t != "" {
			out = append(out, t)
		}
	}
	return out
}
