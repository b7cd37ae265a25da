package config_test

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/pkordes/carshare/backend/internal/config"
)

func TestLoad_Defaults(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/carshare")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, int64(1048576), cfg.MaxBodyBytes)
	assert.Equal(t, config.DiscountModePresence, cfg.PromoDiscountMode)
}

func TestLoad_MissingDatabaseURL(t *testing.T) {
	t.Setenv("DATABASE_URL", "")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "DATABASE_URL")
}

func TestLoad_CORSOriginsCSV(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/carshare")
	t.Setenv("CORS_ORIGINS", "https://app.example.com, https://admin.example.com,")

	cfg, err := config.Load()

	require.NoError(t, err)
	assert.Equal(t, []string{"https://app.example.com", "https://admin.example.com"}, cfg.CORSOrigins)
}

func TestLoad_InvalidDiscountMode(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/carshare")
	t.Setenv("PROMO_DISCOUNT_MODE", "both")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "PROMO_DISCOUNT_MODE")
}

func TestLoad_InvalidMaxBodyBytes(t *testing.T) {
	t.Setenv("DATABASE_URL", "postgres://localhost:5432/carshare")
	t.Setenv("MAX_BODY_BYTES", "lots")

	_, err := config.Load()

	require.Error(t, err)
	assert.Contains(t, err.Error(), "MAX_BODY_BYTES")
}
