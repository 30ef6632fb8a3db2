package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
)

const (
	cacheResultHit     = "hit"
	cacheResultMiss    = "miss"
	cacheResultError   = "error"
	defaultCachePrefix = "games:search:"
	cacheScanBatch     = 100
)

type CacheOptions struct {
	Prefix   string
	TTL      time.Duration
	Log      *zap.Logger
	Registry prometheus.Registerer
}

// CachedStore answers searches from Redis and falls back to the wrapped
// store. Redis failures are logged and bypassed, never returned.
type CachedStore struct {
	inner  Store
	client *redis.Client
	prefix string
	ttl    time.Duration
	log    *zap.Logger
	group  singleflight.Group

	requests *prometheus.CounterVec
}

func NewCachedStore(inner Store, client *redis.Client, opts CacheOptions) *CachedStore {
	if opts.Prefix == "" {
		opts.Prefix = defaultCachePrefix
	}
	if opts.Log == nil {
		opts.Log = zap.NewNop()
	}

	s := &CachedStore{
		inner:  inner,
		client: client,
		prefix: opts.Prefix,
		ttl:    opts.TTL,
		log:    opts.Log,
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name: "catalog_cache_requests_total",
			Help: "Search cache lookups by result",
		}, []string{"result"}),
	}
	if opts.Registry != nil {
		opts.Registry.MustRegister(s.requests)
	}
	return s
}

// Ping reports the wrapped store only; the cache is optional.
func (s *CachedStore) Ping(ctx context.Context) error {
	return s.inner.Ping(ctx)
}

// Seed reseeds the wrapped store and drops every cached search.
func (s *CachedStore) Seed(ctx context.Context, products []Product) error {
	if err := s.inner.Seed(ctx, products); err != nil {
		return err
	}
	if err := s.flush(ctx); err != nil {
		s.log.Warn("cache flush failed", zap.Error(err))
	}
	return nil
}

func (s *CachedStore) Search(ctx context.Context, term string) ([]Product, error) {
	key := s.key(term)

	if products, ok := s.get(ctx, key); ok {
		return products, nil
	}

	// The shared lookup outlives any single caller: one client going away
	// must not fail the others waiting on the same key.
	ch := s.group.DoChan(key, func() (any, error) {
		qctx, cancel := context.WithTimeout(context.WithoutCancel(ctx), queryTimeout)
		defer cancel()

		products, err := s.inner.Search(qctx, term)
		if err != nil {
			return nil, err
		}
		s.set(qctx, key, products)
		return products, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]Product), nil
	}
}

func (s *CachedStore) Close(ctx context.Context) error {
	return s.client.Close()
}

// key folds case the same way Search matches, so "RED" and "red" share an entry.
func (s *CachedStore) key(term string) string {
	return s.prefix + strings.ToLower(term)
}

func (s *CachedStore) get(ctx context.Context, key string) ([]Product, bool) {
	data, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		s.requests.WithLabelValues(cacheResultMiss).Inc()
		return nil, false
	}
	if err != nil {
		s.requests.WithLabelValues(cacheResultError).Inc()
		s.log.Warn("cache get failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	var products []Product
	if err := json.Unmarshal(data, &products); err != nil {
		s.requests.WithLabelValues(cacheResultError).Inc()
		s.log.Warn("cache decode failed", zap.String("key", key), zap.Error(err))
		return nil, false
	}

	s.requests.WithLabelValues(cacheResultHit).Inc()
	return products, true
}

func (s *CachedStore) set(ctx context.Context, key string, products []Product) {
	data, err := json.Marshal(products)
	if err != nil {
		s.log.Warn("cache encode failed", zap.String("key", key), zap.Error(err))
		return
	}
	if err := s.client.Set(ctx, key, data, s.ttl).Err(); err != nil {
		s.log.Warn("cache set failed", zap.String("key", key), zap.Error(err))
	}
}

func (s *CachedStore) flush(ctx context.Context) error {
	var cursor uint64
	for {
		keys, next, err := s.client.Scan(ctx, cursor, s.prefix+"*", cacheScanBatch).Result()
		if err != nil {
			return fmt.Errorf("scan cache: %w", err)
		}
		if len(keys) > 0 {
			if err := s.client.Del(ctx, keys...).Err(); err != nil {
				return fmt.Errorf("delete cache keys: %w", err)
			}
		}
		cursor = next
		if cursor == 0 {
			return nil
		}
	}
}
