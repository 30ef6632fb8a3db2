package main

import (
	"context"
	"fmt"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/redis/go-redis/v9"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"

	"GameStore/internal/catalog"
	"GameStore/internal/config"
	"GameStore/pkg/kit"
)

const seedTimeout = 30 * time.Second

func main() {
	service := "catalog"
	cfg := config.LoadCatalog()

	// Prices leave the service as JSON numbers, not quoted strings.
	decimal.MarshalJSONWithoutQuotes = true

	log := kit.NewLogger(service, cfg.LogFile)
	defer func() { _ = log.Sync() }()

	reg := prometheus.NewRegistry()
	reg.MustRegister(collectors.NewGoCollector(), collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}))

	store, closers, err := openStore(cfg, log, reg)
	if err != nil {
		log.Fatal("open store failed", zap.String("store", cfg.Store), zap.Error(err))
	}

	// The catalog is rebuilt from the seed on every boot.
	ctx, cancel := context.WithTimeout(context.Background(), seedTimeout)
	err = store.Seed(ctx, catalog.DefaultSeed())
	cancel()
	if err != nil {
		log.Fatal("seed failed", zap.Error(err))
	}
	log.Info("catalog seeded", zap.String("store", cfg.Store), zap.Int("products", len(catalog.DefaultSeed())))

	h := catalog.NewHandler(&catalog.Server{Store: store, Log: log}, catalog.HTTPDeps{
		Log:            log,
		Service:        service,
		Registry:       reg,
		MetricsEnabled: cfg.Metrics.Enabled,
		MetricsToken:   cfg.Metrics.Token,
		CORSOrigin:     cfg.CORSOrigin,
		RateLimit:      cfg.RateLimit,
		RateWindow:     cfg.RateWindow,
	})

	if err := kit.RunHTTPServer(":"+cfg.Port, h, log, closers...); err != nil {
		log.Fatal("http server stopped", zap.Error(err))
	}
}

func openStore(cfg config.Catalog, log *zap.Logger, reg prometheus.Registerer) (catalog.Store, []kit.Closer, error) {
	var (
		store   catalog.Store
		closers []kit.Closer
	)

	switch cfg.Store {
	case config.StoreMemory:
		store = catalog.NewMemStore()
	case config.StoreSQLite:
		s, err := catalog.OpenSQLite(cfg.DBPath)
		if err != nil {
			return nil, nil, err
		}
		store, closers = s, append(closers, s.Close)
	case config.StorePostgres:
		if cfg.DatabaseURL == "" {
			return nil, nil, fmt.Errorf("DATABASE_URL is required for STORE=%s", cfg.Store)
		}
		ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
		defer cancel()

		s, err := catalog.NewPostgresStore(ctx, cfg.DatabaseURL)
		if err != nil {
			return nil, nil, err
		}
		store, closers = s, append(closers, s.Close)
	default:
		return nil, nil, fmt.Errorf("unknown STORE %q", cfg.Store)
	}

	if cfg.RedisAddr == "" {
		return store, closers, nil
	}

	cached := catalog.NewCachedStore(store, redis.NewClient(&redis.Options{Addr: cfg.RedisAddr}), catalog.CacheOptions{
		TTL:      cfg.CacheTTL,
		Log:      log,
		Registry: reg,
	})
	log.Info("search cache enabled", zap.String("redis", cfg.RedisAddr), zap.Duration("ttl", cfg.CacheTTL))

	// Closers run in order: the cache client goes before the store.
	return cached, append([]kit.Closer{cached.Close}, closers...), nil
}
