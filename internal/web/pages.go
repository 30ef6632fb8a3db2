package web

import (
	"bytes"
	"context"
	"net/http"
	"time"

	"go.uber.org/zap"

	"GameStore/internal/render"
	"GameStore/internal/searchsync"
)

type Server struct {
	Listing  searchsync.Fetcher
	Pages    *render.Pages
	Debounce time.Duration
	Log      *zap.Logger
}

func (s *Server) home(w http.ResponseWriter, r *http.Request) {
	s.render(w, r, searchsync.NewState(searchsync.Home(), s.Debounce).View())
}

// games renders /games?search= after fetching the listing. The page is a
// single pass of the controller: the location is adopted, its fetch runs
// here, and the completion produces the view.
func (s *Server) games(w http.ResponseWriter, r *http.Request) {
	loc := searchsync.ParseLocation(r.URL.RequestURI())
	st, effects := searchsync.Update(searchsync.NewState(loc, s.Debounce), searchsync.Navigated{To: loc})

	for _, eff := range effects {
		f, ok := eff.(searchsync.StartFetch)
		if !ok {
			continue
		}
		st, _ = searchsync.Update(st, s.fetch(r.Context(), f))
	}

	s.render(w, r, st.View())
}

func (s *Server) fetch(ctx context.Context, f searchsync.StartFetch) searchsync.FetchCompleted {
	resp, err := s.Listing.List(ctx, f.Term)
	if err != nil {
		s.Log.Warn("listing fetch failed", zap.String("search", f.Term), zap.Error(err))
	}
	return searchsync.FetchCompleted{Seq: f.Seq, Term: f.Term, Items: resp.Items, Err: err}
}

func (s *Server) render(w http.ResponseWriter, r *http.Request, v render.View) {
	var buf bytes.Buffer
	if err := s.Pages.Render(&buf, v); err != nil {
		s.Log.Error("render failed", zap.String("path", r.URL.Path), zap.Error(err))
		http.Error(w, http.StatusText(http.StatusInternalServerError), http.StatusInternalServerError)
		return
	}

	w.Header().Set("Content-Type", "text/html; charset=utf-8")
	w.Header().Set("Cache-Control", "no-store")
	_, _ = buf.WriteTo(w)
}
