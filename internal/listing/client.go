// Package listing is the client side of GET /list.
package listing

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const DefaultTimeout = 5 * time.Second

type Item struct {
	ID              int64           `json:"id"`
	Title           string          `json:"title"`
	Platform        string          `json:"platform"`
	Region          string          `json:"region"`
	Price           decimal.Decimal `json:"price"`
	OriginalPrice   decimal.Decimal `json:"original_price"`
	DiscountPercent int             `json:"discount_percent"`
	Cashback        decimal.Decimal `json:"cashback"`
	Likes           int64           `json:"likes"`
	ImageURL        string          `json:"image_url"`
}

type Response struct {
	Count int    `json:"count"`
	Items []Item `json:"items"`
}

var (
	ErrUnavailable = errors.New("listing unavailable")
	ErrBadStatus   = errors.New("listing bad status")
)

type Client struct {
	BaseURL string
	Client  *http.Client
}

// NewClient returns a client whose every request is bounded by timeout
// (DefaultTimeout when zero).
func NewClient(baseURL string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = DefaultTimeout
	}
	if u, err := url.Parse(baseURL); err == nil && u.Scheme != "" && u.Host != "" {
		baseURL = strings.TrimRight(baseURL, "/")
	}
	return &Client{
		BaseURL: baseURL,
		Client:  &http.Client{Timeout: timeout},
	}
}

// URL is the listing address for term; the search parameter is omitted
// when term is empty.
func (c *Client) URL(term string) string {
	if term == "" {
		return c.BaseURL + "/list"
	}
	return c.BaseURL + "/list?" + url.Values{"search": {term}}.Encode()
}

// List fetches the products whose title contains term.
func (c *Client) List(ctx context.Context, term string) (Response, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.URL(term), nil)
	if err != nil {
		return Response{}, err
	}
	req.Header.Set("Accept", "application/json")
	req.Header.Set("X-Request-Id", uuid.NewString())

	resp, err := c.Client.Do(req)
	if err != nil {
		if errors.Is(err, context.Canceled) {
			return Response{}, err
		}
		return Response{}, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		_, _ = io.Copy(io.Discard, resp.Body)
		return Response{}, fmt.Errorf("%w: status=%d", ErrBadStatus, resp.StatusCode)
	}

	var out Response
	if err := json.NewDecoder(resp.Body).Decode(&out); err != nil {
		return Response{}, fmt.Errorf("decode listing: %w", err)
	}
	if out.Items == nil {
		out.Items = []Item{}
	}
	out.Count = len(out.Items)
	return out, nil
}
