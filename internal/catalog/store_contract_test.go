package catalog

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func titles(ps []Product) []string {
	out := make([]string, len(ps))
	for i, p := range ps {
		out[i] = p.Title
	}
	return out
}

// runStoreContract checks the behavior every Store implementation shares.
func runStoreContract(t *testing.T, newStore func(t *testing.T) Store) {
	t.Helper()
	ctx := context.Background()

	t.Run("empty term returns seed in insertion order", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, DefaultSeed()))

		got, err := s.Search(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, titles(DefaultSeed()), titles(got))

		for i, p := range got {
			assert.Equal(t, int64(i+1), p.ID)
		}
	})

	t.Run("fields survive storage", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, DefaultSeed()))

		got, err := s.Search(ctx, "Red Dead")
		require.NoError(t, err)
		require.Len(t, got, 1)

		want := DefaultSeed()[1]
		p := got[0]
		assert.Equal(t, want.Title, p.Title)
		assert.Equal(t, want.Platform, p.Platform)
		assert.Equal(t, want.Region, p.Region)
		assert.True(t, want.Price.Equal(p.Price), "price %s", p.Price)
		assert.True(t, want.OriginalPrice.Equal(p.OriginalPrice), "original_price %s", p.OriginalPrice)
		assert.True(t, want.Cashback.Equal(p.Cashback), "cashback %s", p.Cashback)
		assert.Equal(t, want.DiscountPercent, p.DiscountPercent)
		assert.Equal(t, want.Likes, p.Likes)
		assert.Equal(t, want.ImageURL, p.ImageURL)
	})

	t.Run("substring match ignores case", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, DefaultSeed()))

		for _, term := range []string{"red", "RED", "Red", "ring", "f", "i", " ", "2", "zzz", "Fiction"} {
			got, err := s.Search(ctx, term)
			require.NoError(t, err, term)

			var want []string
			for _, p := range DefaultSeed() {
				if strings.Contains(strings.ToLower(p.Title), strings.ToLower(term)) {
					want = append(want, p.Title)
				}
			}
			if want == nil {
				want = []string{}
			}
			assert.Equal(t, want, titles(got), "term %q", term)
		}
	})

	t.Run("wildcard characters are literal", func(t *testing.T) {
		s := newStore(t)
		seed := append(DefaultSeed(), Product{Title: "100% Orange_Juice"})
		require.NoError(t, s.Seed(ctx, seed))

		got, err := s.Search(ctx, "%")
		require.NoError(t, err)
		assert.Equal(t, []string{"100% Orange_Juice"}, titles(got))

		got, err = s.Search(ctx, "_")
		require.NoError(t, err)
		assert.Equal(t, []string{"100% Orange_Juice"}, titles(got))

		got, err = s.Search(ctx, `\`)
		require.NoError(t, err)
		assert.Empty(t, got)
	})

	t.Run("case folding covers non-ascii titles", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, []Product{{Title: "ÉLDEN RING"}, {Title: "Über Racer"}, {Title: "Hades"}}))

		for term, want := range map[string][]string{
			"élden": {"ÉLDEN RING"},
			"über":  {"Über Racer"},
			"ÜBER":  {"Über Racer"},
			"r":     {"ÉLDEN RING", "Über Racer"},
		} {
			got, err := s.Search(ctx, term)
			require.NoError(t, err, term)
			assert.Equal(t, want, titles(got), "term %q", term)
		}
	})

	t.Run("repeated searches are identical", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, DefaultSeed()))

		first, err := s.Search(ctx, "e")
		require.NoError(t, err)
		for i := 0; i < 3; i++ {
			again, err := s.Search(ctx, "e")
			require.NoError(t, err)
			assert.Equal(t, titles(first), titles(again))
		}
	})

	t.Run("reseed replaces catalog", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, DefaultSeed()))
		require.NoError(t, s.Seed(ctx, []Product{{Title: "Hades"}, {Title: "Celeste"}}))

		got, err := s.Search(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, []string{"Hades", "Celeste"}, titles(got))
		assert.Equal(t, int64(1), got[0].ID)

		require.NoError(t, s.Seed(ctx, DefaultSeed()))
		got, err = s.Search(ctx, "")
		require.NoError(t, err)
		assert.Equal(t, titles(DefaultSeed()), titles(got))
	})

	t.Run("empty seed is rejected", func(t *testing.T) {
		s := newStore(t)
		require.NoError(t, s.Seed(ctx, DefaultSeed()))

		assert.ErrorIs(t, s.Seed(ctx, nil), ErrEmptySeed)

		got, err := s.Search(ctx, "")
		require.NoError(t, err)
		assert.Len(t, got, len(DefaultSeed()))
	})

	t.Run("ping", func(t *testing.T) {
		assert.NoError(t, newStore(t).Ping(ctx))
	})
}
