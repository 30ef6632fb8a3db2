package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestLoadCatalog_Defaults(t *testing.T) {
	for _, k := range []string{"PORT", "STORE", "DB_PATH", "DATABASE_URL", "REDIS_ADDR", "CACHE_TTL",
		"CORS_ORIGIN", "RATE_LIMIT", "RATE_WINDOW", "METRICS_ENABLED", "METRICS_TOKEN", "LOG_FILE"} {
		t.Setenv(k, "")
	}

	cfg := LoadCatalog()

	assert.Equal(t, "3001", cfg.Port)
	assert.Equal(t, StoreMemory, cfg.Store)
	assert.Equal(t, "games.db", cfg.DBPath)
	assert.Equal(t, "*", cfg.CORSOrigin)
	assert.Equal(t, 5*time.Minute, cfg.CacheTTL)
	assert.Equal(t, time.Minute, cfg.RateWindow)
	assert.Zero(t, cfg.RateLimit)
}

func TestLoadCatalog_Overrides(t *testing.T) {
	t.Setenv("PORT", "9000")
	t.Setenv("STORE", "SQLite")
	t.Setenv("CACHE_TTL", "30s")
	t.Setenv("RATE_LIMIT", "20")
	t.Setenv("RATE_WINDOW", "10s")
	t.Setenv("METRICS_ENABLED", "false")
	t.Setenv("METRICS_TOKEN", "scrape")

	cfg := LoadCatalog()

	assert.Equal(t, "9000", cfg.Port)
	assert.Equal(t, StoreSQLite, cfg.Store)
	assert.Equal(t, 30*time.Second, cfg.CacheTTL)
	assert.Equal(t, 20, cfg.RateLimit)
	assert.Equal(t, 10*time.Second, cfg.RateWindow)
	assert.False(t, cfg.Metrics.Enabled)
	assert.Equal(t, "scrape", cfg.Metrics.Token)
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("RATE_LIMIT", "lots")
	t.Setenv("FETCH_TIMEOUT", "soon")
	t.Setenv("DEBOUNCE", "-5ms")
	t.Setenv("METRICS_ENABLED", "maybe")

	assert.Zero(t, LoadCatalog().RateLimit)

	web := LoadWeb()
	assert.Equal(t, 5*time.Second, web.FetchTimeout)
	assert.Equal(t, 250*time.Millisecond, web.Debounce)
	assert.True(t, web.Metrics.Enabled)
}
