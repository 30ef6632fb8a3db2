package catalog

import (
	"context"
	"errors"
	"strings"
)

var ErrEmptySeed = errors.New("catalog: seed list is empty")

// Store holds the seeded catalog. Search is case-insensitive substring
// matching on Title, in insertion order; an empty term matches everything.
type Store interface {
	Ping(ctx context.Context) error
	Seed(ctx context.Context, products []Product) error
	Search(ctx context.Context, term string) ([]Product, error)
}

func titleMatches(title, term string) bool {
	if term == "" {
		return true
	}
	return strings.Contains(strings.ToLower(title), strings.ToLower(term))
}

// filterByTitle keeps the products matching term, in order, reusing the
// backing array. SQL stores call it on rows ordered by id because database
// case folding is ASCII-only under common collations.
func filterByTitle(products []Product, term string) []Product {
	out := products[:0]
	for _, p := range products {
		if titleMatches(p.Title, term) {
			out = append(out, p)
		}
	}
	return out
}
