package web

import (
	"context"
	"fmt"
	"io"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"GameStore/internal/listing"
	"GameStore/internal/render"
	"GameStore/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string
}

type Deps struct {
	CatalogURL   string
	FetchTimeout time.Duration
	Debounce     time.Duration
}

const (
	readyTimeout      = 2 * time.Second
	readyProbeTimeout = 700 * time.Millisecond
)

var readyClient = &http.Client{
	Transport: &http.Transport{
		MaxIdleConns:        50,
		MaxIdleConnsPerHost: 10,
		IdleConnTimeout:     30 * time.Second,
	},
}

func NewHandler(deps Deps, httpDeps HTTPDeps) (http.Handler, error) {
	if httpDeps.Log == nil {
		httpDeps.Log = zap.NewNop()
	}

	listProxy, err := NewReverseProxy(deps.CatalogURL, httpDeps.Log)
	if err != nil {
		return nil, err
	}

	pages, err := render.NewPages()
	if err != nil {
		return nil, fmt.Errorf("parse templates: %w", err)
	}

	s := &Server{
		Listing:  listing.NewClient(deps.CatalogURL, deps.FetchTimeout),
		Pages:    pages,
		Debounce: deps.Debounce,
		Log:      httpDeps.Log,
	}

	r := chi.NewRouter()
	kit.Base(r, httpDeps.Log)
	kit.SetupMetrics(r, kit.MetricsDeps{
		Service:  httpDeps.Service,
		Registry: httpDeps.Registry,
		Enabled:  httpDeps.MetricsEnabled,
		Token:    httpDeps.MetricsToken,
	})

	r.Get("/healthz", healthz)
	r.Get("/readyz", readyz(deps.CatalogURL, httpDeps.Log))

	r.Handle("/list", listProxy)
	r.Handle("/static/*", staticHandler())

	r.Get("/", s.home)
	r.Get("/games", s.games)

	return r, nil
}

func healthz(w http.ResponseWriter, _ *http.Request) {
	w.WriteHeader(http.StatusOK)
}

func readyz(catalogURL string, log *zap.Logger) http.HandlerFunc {
	return func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := checkReady(ctx, catalogURL+"/readyz"); err != nil {
			log.Warn("readyz failed: catalog", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "catalog not ready", nil)
			return
		}

		w.WriteHeader(http.StatusOK)
	}
}

func checkReady(ctx context.Context, url string) error {
	cctx, cancel := context.WithTimeout(ctx, readyProbeTimeout)
	defer cancel()

	req, err := http.NewRequestWithContext(cctx, http.MethodGet, url, nil)
	if err != nil {
		return err
	}

	resp, err := readyClient.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	_, _ = io.Copy(io.Discard, resp.Body)

	if resp.StatusCode != http.StatusOK {
		return fmt.Errorf("status=%d", resp.StatusCode)
	}

	return nil
}
