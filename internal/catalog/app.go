package catalog

import (
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"GameStore/pkg/kit"
)

type HTTPDeps struct {
	Log      *zap.Logger
	Service  string
	Registry *prometheus.Registry

	MetricsEnabled bool
	MetricsToken   string

	CORSOrigin string
	RateLimit  int
	RateWindow time.Duration
}

func NewHandler(s *Server, deps HTTPDeps) http.Handler {
	if deps.Log == nil {
		deps.Log = zap.NewNop()
	}
	if s.Log == nil {
		s.Log = deps.Log
	}

	r := chi.NewRouter()

	kit.Base(r, deps.Log)
	r.Use(kit.CORS(deps.CORSOrigin))
	setupRateLimit(r, deps)
	kit.SetupMetrics(r, kit.MetricsDeps{
		Service:  deps.Service,
		Registry: deps.Registry,
		Enabled:  deps.MetricsEnabled,
		Token:    deps.MetricsToken,
	})

	if deps.Registry != nil && s.Results == nil {
		s.Results = NewSearchResultsHistogram(deps.Registry)
	}

	r.Mount("/", s.Routes())
	return r
}

func setupRateLimit(r *chi.Mux, deps HTTPDeps) {
	if deps.RateLimit <= 0 || deps.RateWindow <= 0 {
		return
	}

	l := kit.NewIPRateLimiter(deps.RateLimit, deps.RateWindow)
	if deps.Registry != nil {
		l.WithRejectedCounter(deps.Registry, deps.Service)
	}
	r.Use(l.Middleware)
}
