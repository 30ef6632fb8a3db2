// Package searchsync keeps the search input, the navigable URL and the
// listing fetches consistent under debounced typing.
//
// The URL (Location) is the single source of truth for the active term.
// All transitions go through Update; Session runs the resulting effects.
package searchsync

import (
	"net/url"
	"strings"
)

const (
	HomePath  = "/"
	GamesPath = "/games"

	searchParam = "search"
)

// Location is the navigable part of the frontend URL.
type Location struct {
	Path   string
	Search string
}

// Games is the results view for term; an empty term is the unfiltered listing.
func Games(term string) Location {
	return Location{Path: GamesPath, Search: term}
}

func Home() Location {
	return Location{Path: HomePath}
}

// ParseLocation reads a path with optional query. A malformed query or a
// missing search parameter yields an empty term.
func ParseLocation(raw string) Location {
	path, rawQuery, _ := strings.Cut(raw, "?")
	if path == "" {
		path = HomePath
	}

	q, _ := url.ParseQuery(rawQuery)
	return Location{Path: path, Search: q.Get(searchParam)}
}

// OnGames reports whether l is the results view.
func (l Location) OnGames() bool {
	return l.Path == GamesPath || strings.HasPrefix(l.Path, GamesPath+"/")
}

func (l Location) String() string {
	if l.Search == "" {
		return l.Path
	}
	return l.Path + "?" + url.Values{searchParam: {l.Search}}.Encode()
}
