package catalog

import (
	"context"
	"sync"
)

type MemStore struct {
	mu       sync.RWMutex
	products []Product
}

func NewMemStore() *MemStore {
	return &MemStore{}
}

func (s *MemStore) Ping(ctx context.Context) error { return nil }

func (s *MemStore) Seed(ctx context.Context, products []Product) error {
	if len(products) == 0 {
		return ErrEmptySeed
	}

	out := make([]Product, len(products))
	for i, p := range products {
		p.ID = int64(i + 1)
		out[i] = p
	}

	s.mu.Lock()
	defer s.mu.Unlock()
	s.products = out
	return nil
}

func (s *MemStore) Search(ctx context.Context, term string) ([]Product, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]Product, 0, len(s.products))
	for _, p := range s.products {
		if titleMatches(p.Title, term) {
			out = append(out, p)
		}
	}
	return out, nil
}
