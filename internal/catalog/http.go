package catalog

import (
	"context"
	"net/http"
	"time"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus"
	"go.uber.org/zap"

	"GameStore/pkg/kit"
)

const readyTimeout = 1 * time.Second

type Server struct {
	Store Store
	Log   *zap.Logger

	// Results observes the result-set size of each search; optional.
	Results prometheus.Observer
}

// NewSearchResultsHistogram registers the per-search result-count histogram.
func NewSearchResultsHistogram(reg prometheus.Registerer) prometheus.Histogram {
	h := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "catalog_search_results",
		Help:    "Number of products returned per search",
		Buckets: []float64{0, 1, 2, 5, 10, 25, 50, 100},
	})
	reg.MustRegister(h)
	return h
}

func (s *Server) Routes() http.Handler {
	r := chi.NewRouter()

	r.Get("/healthz", func(w http.ResponseWriter, _ *http.Request) { w.WriteHeader(http.StatusOK) })

	r.Get("/readyz", func(w http.ResponseWriter, r *http.Request) {
		ctx, cancel := context.WithTimeout(r.Context(), readyTimeout)
		defer cancel()

		if err := s.Store.Ping(ctx); err != nil {
			s.logger().Warn("readyz failed", zap.Error(err))
			kit.WriteError(w, r, http.StatusServiceUnavailable, "not ready", nil)
			return
		}
		w.WriteHeader(http.StatusOK)
	})

	r.Get("/list", s.list)

	return r
}

// list serves GET /list?search=term. A missing or unparsable search
// parameter is an empty term; failures still answer with the envelope.
func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	term := r.URL.Query().Get("search")

	products, err := s.Store.Search(r.Context(), term)
	if err != nil {
		s.logger().Error("search failed", zap.Error(err), zap.String("search", term))
		kit.WriteJSON(w, http.StatusInternalServerError, ListResponse{
			Items:     []Product{},
			Error:     "server error",
			RequestID: kit.RequestID(r),
		})
		return
	}
	if products == nil {
		products = []Product{}
	}

	if s.Results != nil {
		s.Results.Observe(float64(len(products)))
	}
	kit.WriteJSON(w, http.StatusOK, ListResponse{Count: len(products), Items: products})
}

func (s *Server) logger() *zap.Logger {
	if s.Log == nil {
		return zap.NewNop()
	}
	return s.Log
}
