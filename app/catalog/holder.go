package catalog

import (
	"sync"
	"time"
)

// Load states for the data acquisition machine: Idle -> Loading -> {Ready, Error}.
type LoadState string

const (
	LoadIdle    LoadState = "idle"
	LoadLoading LoadState = "loading"
	LoadReady   LoadState = "ready"
	LoadError   LoadState = "error"
)

// Data source that produced the current snapshot.
const (
	SourceLive  = "live"
	SourceCache = "cache"
)

// Holder owns the current catalog snapshot. A refresh swaps the whole
// snapshot under the lock, so a request always observes one coherent
// catalog and its matching stats.
type Holder struct {
	mu        sync.RWMutex
	state     LoadState
	items     []Item
	stats     Stats
	source    string
	updatedAt time.Time
}

func NewHolder() *Holder {
	return &Holder{state: LoadIdle}
}

// SetLoading marks an acquisition in flight. A ready snapshot stays ready:
// requests keep being served from the last coherent catalog while a refresh
// runs.
func (h *Holder) SetLoading() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == LoadReady {
		return
	}
	h.state = LoadLoading
}

func (h *Holder) SetReady(items []Item, source string) {
	h.mu.Lock()
	defer h.mu.Unlock()
	h.state = LoadReady
	h.items = items
	h.stats = Aggregate(items)
	h.source = source
	h.updatedAt = time.Now()
}

// SetError marks a total load failure. An already-ready snapshot is kept:
// the error state is only reachable when no data, live or cached, exists.
func (h *Holder) SetError() {
	h.mu.Lock()
	defer h.mu.Unlock()
	if h.state == LoadReady {
		return
	}
	h.state = LoadError
}

// Snapshot returns the current catalog and stats. ok is false until the
// first successful load.
func (h *Holder) Snapshot() (items []Item, stats Stats, ok bool) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	if h.state != LoadReady {
		return nil, Stats{}, false
	}
	return h.items, h.stats, true
}

func (h *Holder) State() LoadState {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state
}

func (h *Holder) Info() (state LoadState, source string, updatedAt time.Time, count int) {
	h.mu.RLock()
	defer h.mu.RUnlock()
	return h.state, h.source, h.updatedAt, len(h.items)
}
