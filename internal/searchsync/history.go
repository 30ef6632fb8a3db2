package searchsync

import "sync"

// History receives the controller's own navigations.
type History interface {
	Push(Location)
	Replace(Location)
}

// MemoryHistory is a browser-like back stack.
type MemoryHistory struct {
	mu      sync.Mutex
	entries []Location
	idx     int
}

func NewMemoryHistory(start Location) *MemoryHistory {
	return &MemoryHistory{entries: []Location{start}}
}

// Push adds l after the current entry and drops any forward entries.
func (h *MemoryHistory) Push(l Location) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries = append(h.entries[:h.idx+1], l)
	h.idx++
}

// Replace overwrites the current entry.
func (h *MemoryHistory) Replace(l Location) {
	h.mu.Lock()
	defer h.mu.Unlock()

	h.entries[h.idx] = l
}

func (h *MemoryHistory) Current() Location {
	h.mu.Lock()
	defer h.mu.Unlock()

	return h.entries[h.idx]
}

func (h *MemoryHistory) Back() (Location, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.idx == 0 {
		return h.entries[0], false
	}
	h.idx--
	return h.entries[h.idx], true
}

func (h *MemoryHistory) Forward() (Location, bool) {
	h.mu.Lock()
	defer h.mu.Unlock()

	if h.idx == len(h.entries)-1 {
		return h.entries[h.idx], false
	}
	h.idx++
	return h.entries[h.idx], true
}

// Len is the number of entries, current and forward included.
func (h *MemoryHistory) Len() int {
	h.mu.Lock()
	defer h.mu.Unlock()

	return len(h.entries)
}
