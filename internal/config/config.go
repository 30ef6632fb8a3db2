// Package config loads service configuration from the environment.
package config

import (
	"os"
	"strings"
	"time"

	"github.com/spf13/cast"
)

// Store backends accepted by STORE.
const (
	StoreMemory   = "memory"
	StoreSQLite   = "sqlite"
	StorePostgres = "postgres"
)

// Catalog configures the listing service.
type Catalog struct {
	Port        string
	Store       string
	DBPath      string
	DatabaseURL string

	RedisAddr string
	CacheTTL  time.Duration

	CORSOrigin string
	RateLimit  int
	RateWindow time.Duration

	Metrics Metrics
	LogFile string
}

// Web configures the frontend server.
type Web struct {
	Port         string
	CatalogURL   string
	FetchTimeout time.Duration
	Debounce     time.Duration

	Metrics Metrics
	LogFile string
}

// Browse configures the terminal client.
type Browse struct {
	CatalogURL   string
	FetchTimeout time.Duration
	Debounce     time.Duration
	LogFile      string
}

type Metrics struct {
	Enabled bool
	Token   string
}

// LoadCatalog reads the listing service settings.
func LoadCatalog() Catalog {
	return Catalog{
		Port:        getenv("PORT", "3001"),
		Store:       strings.ToLower(getenv("STORE", StoreMemory)),
		DBPath:      getenv("DB_PATH", "games.db"),
		DatabaseURL: os.Getenv("DATABASE_URL"),

		RedisAddr: os.Getenv("REDIS_ADDR"),
		CacheTTL:  getDuration("CACHE_TTL", 5*time.Minute),

		CORSOrigin: getenv("CORS_ORIGIN", "*"),
		RateLimit:  getInt("RATE_LIMIT", 0),
		RateWindow: getDuration("RATE_WINDOW", time.Minute),

		Metrics: loadMetrics(),
		LogFile: os.Getenv("LOG_FILE"),
	}
}

// LoadWeb reads the frontend server settings.
func LoadWeb() Web {
	return Web{
		Port:         getenv("PORT", "5173"),
		CatalogURL:   getenv("CATALOG_URL", "http://localhost:3001"),
		FetchTimeout: getDuration("FETCH_TIMEOUT", 5*time.Second),
		Debounce:     getDuration("DEBOUNCE", 250*time.Millisecond),

		Metrics: loadMetrics(),
		LogFile: os.Getenv("LOG_FILE"),
	}
}

// LoadBrowse reads the terminal client settings.
func LoadBrowse() Browse {
	return Browse{
		CatalogURL:   getenv("CATALOG_URL", "http://localhost:3001"),
		FetchTimeout: getDuration("FETCH_TIMEOUT", 5*time.Second),
		Debounce:     getDuration("DEBOUNCE", 250*time.Millisecond),
		LogFile:      os.Getenv("LOG_FILE"),
	}
}

func loadMetrics() Metrics {
	return Metrics{
		Enabled: getBool("METRICS_ENABLED", true),
		Token:   os.Getenv("METRICS_TOKEN"),
	}
}

func getenv(k, def string) string {
	if v := strings.TrimSpace(os.Getenv(k)); v != "" {
		return v
	}
	return def
}

func lookup(k string) (string, bool) {
	v := strings.TrimSpace(os.Getenv(k))
	return v, v != ""
}

func getInt(k string, def int) int {
	v, ok := lookup(k)
	if !ok {
		return def
	}
	n, err := cast.ToIntE(v)
	if err != nil || n < 0 {
		return def
	}
	return n
}

func getBool(k string, def bool) bool {
	v, ok := lookup(k)
	if !ok {
		return def
	}
	b, err := cast.ToBoolE(v)
	if err != nil {
		return def
	}
	return b
}

// getDuration accepts Go duration strings ("250ms", "5m") or plain
// integers, which cast reads as nanoseconds.
func getDuration(k string, def time.Duration) time.Duration {
	v, ok := lookup(k)
	if !ok {
		return def
	}
	d, err := cast.ToDurationE(v)
	if err != nil || d <= 0 {
		return def
	}
	return d
}
