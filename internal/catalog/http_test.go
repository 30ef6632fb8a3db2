package catalog

import (
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newCatalogTS(t *testing.T, store Store, deps HTTPDeps) *httptest.Server {
	t.Helper()

	deps.Log = zap.NewNop()
	deps.Service = "catalog"
	ts := httptest.NewServer(NewHandler(&Server{Store: store}, deps))
	t.Cleanup(ts.Close)
	return ts
}

func seededStore(t *testing.T) Store {
	t.Helper()
	s := NewMemStore()
	require.NoError(t, s.Seed(context.Background(), DefaultSeed()))
	return s
}

func getList(t *testing.T, url string) (*http.Response, ListResponse, map[string]any) {
	t.Helper()

	resp, err := http.Get(url)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var lr ListResponse
	require.NoError(t, json.Unmarshal(raw, &lr), string(raw))
	var generic map[string]any
	require.NoError(t, json.Unmarshal(raw, &generic))
	return resp, lr, generic
}

func TestList_FiltersByTitle(t *testing.T) {
	ts := newCatalogTS(t, seededStore(t), HTTPDeps{})

	resp, lr, _ := getList(t, ts.URL+"/list?search=red")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Equal(t, "application/json", resp.Header.Get("Content-Type"))
	assert.Equal(t, 1, lr.Count)
	require.Len(t, lr.Items, 1)
	assert.Equal(t, "Red Dead Redemption 2", lr.Items[0].Title)
}

func TestList_EmptyOrMissingTermReturnsAll(t *testing.T) {
	ts := newCatalogTS(t, seededStore(t), HTTPDeps{})

	for _, path := range []string{"/list", "/list?search=", "/list?search", "/list?search=%zz", "/list?other=1"} {
		resp, lr, _ := getList(t, ts.URL+path)
		assert.Equal(t, http.StatusOK, resp.StatusCode, path)
		assert.Equal(t, 4, lr.Count, path)
		assert.Equal(t, titles(DefaultSeed()), titles(lr.Items), path)
	}
}

func TestList_CountMatchesItems(t *testing.T) {
	ts := newCatalogTS(t, seededStore(t), HTTPDeps{})

	for _, term := range []string{"", "e", "n", "Split", "nothing-here"} {
		_, lr, _ := getList(t, ts.URL+"/list?search="+term)
		assert.Equal(t, len(lr.Items), lr.Count, term)
	}
}

func TestList_NoMatchIsEmptyArray(t *testing.T) {
	ts := newCatalogTS(t, seededStore(t), HTTPDeps{})

	resp, lr, generic := getList(t, ts.URL+"/list?search=zelda")
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Zero(t, lr.Count)
	assert.Equal(t, []any{}, generic["items"])
}

func TestList_JSONShape(t *testing.T) {
	ts := newCatalogTS(t, seededStore(t), HTTPDeps{})

	_, _, generic := getList(t, ts.URL+"/list?search=FIFA")
	items := generic["items"].([]any)
	require.Len(t, items, 1)

	item := items[0].(map[string]any)
	for _, k := range []string{"id", "title", "platform", "region", "price", "original_price",
		"discount_percent", "cashback", "likes", "image_url"} {
		assert.Contains(t, item, k)
	}
	assert.Equal(t, 40.93, item["price"])
	assert.Equal(t, 4.5, item["cashback"])
	assert.Equal(t, float64(1), item["id"])
}

func TestList_StoreFailureKeepsEnvelope(t *testing.T) {
	ts := newCatalogTS(t, failingStore{err: errors.New("db down")}, HTTPDeps{})

	resp, lr, generic := getList(t, ts.URL+"/list?search=x")
	assert.Equal(t, http.StatusInternalServerError, resp.StatusCode)
	assert.Zero(t, lr.Count)
	assert.Equal(t, []any{}, generic["items"])
	assert.Equal(t, "server error", lr.Error)
	assert.NotEmpty(t, lr.RequestID)
}

func TestReadyz(t *testing.T) {
	ok := newCatalogTS(t, seededStore(t), HTTPDeps{})
	resp, err := http.Get(ok.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusOK, resp.StatusCode)

	down := newCatalogTS(t, failingStore{err: errors.New("db down")}, HTTPDeps{})
	resp, err = http.Get(down.URL + "/readyz")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusServiceUnavailable, resp.StatusCode)
}

func TestList_CORS(t *testing.T) {
	ts := newCatalogTS(t, seededStore(t), HTTPDeps{})

	resp, _, _ := getList(t, ts.URL+"/list")
	assert.Equal(t, "*", resp.Header.Get("Access-Control-Allow-Origin"))

	req, err := http.NewRequest(http.MethodOptions, ts.URL+"/list", nil)
	require.NoError(t, err)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", http.MethodGet)

	pre, err := http.DefaultClient.Do(req)
	require.NoError(t, err)
	pre.Body.Close()
	assert.Equal(t, http.StatusNoContent, pre.StatusCode)
	assert.Contains(t, pre.Header.Get("Access-Control-Allow-Methods"), http.MethodGet)
}

func TestList_RateLimited(t *testing.T) {
	ts := newCatalogTS(t, seededStore(t), HTTPDeps{
		Registry:   prometheus.NewRegistry(),
		RateLimit:  2,
		RateWindow: time.Minute,
	})

	codes := make([]int, 0, 3)
	for i := 0; i < 3; i++ {
		resp, err := http.Get(ts.URL + "/list")
		require.NoError(t, err)
		resp.Body.Close()
		codes = append(codes, resp.StatusCode)
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}

func TestMetricsEndpoint(t *testing.T) {
	ts := newCatalogTS(t, seededStore(t), HTTPDeps{
		Registry:       prometheus.NewRegistry(),
		MetricsEnabled: true,
		MetricsToken:   "scrape-token",
	})

	resp, err := http.Get(ts.URL + "/list?search=ring")
	require.NoError(t, err)
	resp.Body.Close()

	resp, err = http.Get(ts.URL + "/metrics")
	require.NoError(t, err)
	resp.Body.Close()
	assert.Equal(t, http.StatusForbidden, resp.StatusCode)

	req, err := http.NewRequest(http.MethodGet, ts.URL+"/metrics", nil)
	require.NoError(t, err)
	req.Header.Set("Authorization", "Bearer scrape-token")
	resp, err = http.DefaultClient.Do(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	require.NoError(t, err)
	assert.Equal(t, http.StatusOK, resp.StatusCode)
	assert.Contains(t, string(body), "catalog_search_results")
	assert.Contains(t, string(body), `path="/list"`)
}
