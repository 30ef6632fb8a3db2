package listing_test

import (
	"context"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"

	"GameStore/internal/catalog"
	"GameStore/internal/listing"
)

func newCatalogTS(t *testing.T) *httptest.Server {
	t.Helper()

	store := catalog.NewMemStore()
	require.NoError(t, store.Seed(context.Background(), catalog.DefaultSeed()))

	h := catalog.NewHandler(&catalog.Server{Store: store}, catalog.HTTPDeps{
		Log:     zap.NewNop(),
		Service: "catalog",
	})
	ts := httptest.NewServer(h)
	t.Cleanup(ts.Close)
	return ts
}

func TestClient_List(t *testing.T) {
	ts := newCatalogTS(t)
	c := listing.NewClient(ts.URL+"/", time.Second)

	got, err := c.List(context.Background(), "red")
	require.NoError(t, err)
	assert.Equal(t, 1, got.Count)
	require.Len(t, got.Items, 1)
	assert.Equal(t, "Red Dead Redemption 2", got.Items[0].Title)
	assert.Equal(t, "29.99", got.Items[0].Price.StringFixed(2))

	all, err := c.List(context.Background(), "")
	require.NoError(t, err)
	assert.Equal(t, 4, all.Count)
}

func TestClient_URL(t *testing.T) {
	c := listing.NewClient("http://catalog:3001/", 0)

	assert.Equal(t, "http://catalog:3001/list", c.URL(""))
	assert.Equal(t, "http://catalog:3001/list?search=Elden+Ring", c.URL("Elden Ring"))
	assert.Equal(t, "http://catalog:3001/list?search=100%25+%26+more", c.URL("100% & more"))
}

func TestClient_BadStatus(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, `{"count":0,"items":[]}`, http.StatusInternalServerError)
	}))
	t.Cleanup(ts.Close)

	_, err := listing.NewClient(ts.URL, time.Second).List(context.Background(), "x")
	assert.ErrorIs(t, err, listing.ErrBadStatus)
}

func TestClient_TimeoutIsUnavailable(t *testing.T) {
	release := make(chan struct{})
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-release:
		case <-r.Context().Done():
		}
	}))
	t.Cleanup(ts.Close)
	t.Cleanup(func() { close(release) })

	start := time.Now()
	_, err := listing.NewClient(ts.URL, 50*time.Millisecond).List(context.Background(), "x")
	assert.ErrorIs(t, err, listing.ErrUnavailable)
	assert.Less(t, time.Since(start), 2*time.Second)
}

func TestClient_Canceled(t *testing.T) {
	ts := newCatalogTS(t)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := listing.NewClient(ts.URL, time.Second).List(ctx, "x")
	assert.True(t, errors.Is(err, context.Canceled), "err=%v", err)
}

func TestClient_NullItems(t *testing.T) {
	ts := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"count":3,"items":null}`))
	}))
	t.Cleanup(ts.Close)

	got, err := listing.NewClient(ts.URL, time.Second).List(context.Background(), "")
	require.NoError(t, err)
	assert.NotNil(t, got.Items)
	assert.Zero(t, got.Count)
}
