package web

import (
	"fmt"
	"net/http"
	"net/http/httputil"
	"net/url"

	"go.uber.org/zap"

	"GameStore/internal/listing"
	"GameStore/pkg/kit"
)

// proxyError keeps the listing envelope when the listing service is down,
// so the browser script can treat it like any failed fetch.
type proxyError struct {
	Count     int            `json:"count"`
	Items     []listing.Item `json:"items"`
	Error     string         `json:"error"`
	RequestID string         `json:"request_id,omitempty"`
}

// NewReverseProxy forwards requests unchanged to target.
func NewReverseProxy(target string, log *zap.Logger) (*httputil.ReverseProxy, error) {
	u, err := url.Parse(target)
	if err != nil {
		return nil, err
	}
	if u.Scheme == "" || u.Host == "" {
		return nil, fmt.Errorf("invalid upstream url %q", target)
	}

	return &httputil.ReverseProxy{
		Rewrite: func(pr *httputil.ProxyRequest) {
			pr.SetURL(u)
			pr.SetXForwarded()
			if id := kit.RequestID(pr.In); id != "" {
				pr.Out.Header.Set("X-Request-Id", id)
			}
		},
		ErrorHandler: func(w http.ResponseWriter, r *http.Request, err error) {
			log.Warn("upstream failed", zap.String("upstream", u.Host), zap.String("path", r.URL.Path), zap.Error(err))
			kit.WriteJSON(w, http.StatusBadGateway, proxyError{
				Items:     []listing.Item{},
				Error:     "listing unavailable",
				RequestID: kit.RequestID(r),
			})
		},
	}, nil
}
