package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setRequired(t *testing.T) {
	t.Setenv("TELEGRAM_TOKEN", "token")
	t.Setenv("REDIS_ADDR", "localhost:6379")
	t.Setenv("DB_HOST", "localhost")
	t.Setenv("DB_PORT", "5432")
	t.Setenv("DB_USER", "menu")
	t.Setenv("DB_PASSWORD", "secret")
	t.Setenv("DB_NAME", "menu")
}

func TestLoad_Defaults(t *testing.T) {
	setRequired(t)

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, 60, cfg.Telegram.UpdateTimeout)
	assert.Equal(t, 24*time.Hour, cfg.Redis.TTL)
	assert.Equal(t, CatalogSourcePostgres, cfg.Catalog.Source)
	assert.Equal(t, time.Hour, cfg.Catalog.CacheTTL)
	assert.Equal(t, AmountConfig{Default: 1, Min: 1, Max: 10}, cfg.Amount)
	assert.Equal(t, "20", cfg.Cart.DeliveryFee.String())
	assert.Equal(t, "host=localhost port=5432 user=menu password=secret dbname=menu sslmode=disable", cfg.Database.DSN())
}

func TestLoad_MissingRequired(t *testing.T) {
	setRequired(t)
	t.Setenv("TELEGRAM_TOKEN", "")

	_, err := Load()
	assert.Error(t, err)
}

func TestLoad_APISourceNeedsURL(t *testing.T) {
	setRequired(t)
	t.Setenv("CATALOG_SOURCE", "api")

	_, err := Load()
	require.Error(t, err)

	t.Setenv("CATALOG_API_BASE_URL", "http://menu.local")
	cfg, err := Load()
	require.NoError(t, err)
	assert.Equal(t, CatalogSourceAPI, cfg.Catalog.Source)
}

func TestLoad_BadAmount(t *testing.T) {
	setRequired(t)
	t.Setenv("AMOUNT_MIN", "3")
	t.Setenv("AMOUNT_DEFAULT", "1")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount default 1 is outside [3, 10]")
}

func TestLoad_AmountMaxBelowMin(t *testing.T) {
	setRequired(t)
	t.Setenv("AMOUNT_MIN", "5")
	t.Setenv("AMOUNT_MAX", "2")
	t.Setenv("AMOUNT_DEFAULT", "5")

	_, err := Load()
	require.Error(t, err)
	assert.Contains(t, err.Error(), "amount max 2 is below min 5")
}

func TestIsAdmin(t *testing.T) {
	setRequired(t)
	t.Setenv("ADMIN_IDS", "10,20")

	cfg, err := Load()
	require.NoError(t, err)
	assert.True(t, cfg.IsAdmin(20))
	assert.False(t, cfg.IsAdmin(30))
}
