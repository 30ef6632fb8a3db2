// Package render displays listing results. It holds no logic beyond
// choosing between the loading, failed, empty and grid states.
package render

import (
	"github.com/shopspring/decimal"

	"GameStore/internal/listing"
)

type Page int

const (
	PageHome Page = iota
	PageGames
)

// View is everything the renderer needs about the current screen.
type View struct {
	Page    Page
	Input   string
	Term    string
	Loading bool
	Failed  bool
	Items   []listing.Item

	// Debounce is handed to the browser script, in milliseconds.
	DebounceMS int64
}

type Status int

const (
	StatusLoading Status = iota
	StatusFailed
	StatusEmpty
	StatusResults
)

func (v View) Status() Status {
	switch {
	case v.Loading:
		return StatusLoading
	case v.Failed:
		return StatusFailed
	case len(v.Items) == 0:
		return StatusEmpty
	default:
		return StatusResults
	}
}

func (v View) Count() int { return len(v.Items) }

// Euro formats an amount as €12.34.
func Euro(d decimal.Decimal) string {
	return "€" + d.StringFixed(2)
}
