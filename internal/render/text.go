package render

import (
	"fmt"
	"io"
	"strings"
)

// Text writes v for a terminal.
func Text(w io.Writer, v View) error {
	var b strings.Builder

	fmt.Fprintf(&b, "search: %q\n", v.Input)

	if v.Page == PageHome {
		b.WriteString("Welcome. Type to search games, or :games to browse everything.\n")
		_, err := io.WriteString(w, b.String())
		return err
	}

	switch v.Status() {
	case StatusLoading:
		b.WriteString("Results found: ...\n")
	case StatusFailed:
		b.WriteString("Results found: 0\nCouldn't load games. Try again.\n")
	case StatusEmpty:
		b.WriteString("Results found: 0\nNo games match your search.\n")
	default:
		fmt.Fprintf(&b, "Results found: %d\n", v.Count())
		for _, it := range v.Items {
			fmt.Fprintf(&b, "  %-28s %-14s %-7s %8s (was %s) -%d%%  cashback %s  likes %d\n",
				it.Title, it.Platform, it.Region, Euro(it.Price), Euro(it.OriginalPrice),
				it.DiscountPercent, Euro(it.Cashback), it.Likes)
		}
	}

	_, err := io.WriteString(w, b.String())
	return err
}
