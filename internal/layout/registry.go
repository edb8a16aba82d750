// Package layout holds the last-known on-screen measurements of item rows and
// list sections. Entries are recorded on every layout pass (render) and read
// on every drag tick; they go stale relative to scrolling between passes and
// are corrected at read time by the hit-tester.
package layout

import "sync"

// ItemEntry is an ephemeral measurement of a single item row.
type ItemEntry struct {
	ItemID string
	ListID string
	// Y is the absolute screen row at measurement time.
	Y      int
	Height int
	// Order is the item's order value at measurement time.
	Order int
	// ScrollOffset is the board scroll offset at measurement time. Readers
	// correct Y by the offset drift accumulated since.
	ScrollOffset int
}

// ListEntry is the analogous measurement for a whole list section, including
// its header and end-of-list drop row.
type ListEntry struct {
	ListID       string
	Y            int
	Height       int
	ScrollOffset int
}

// Registry maps item/list identity to its latest layout entry. Recording
// replaces by identity; there is no delete. Stale entries for removed items
// are tolerated and filtered by identity at read time.
//
// Reads and writes come from different goroutines (render pass vs. drag
// loop); the mutex guarantees readers only ever observe fully-formed entries.
type Registry struct {
	mu    sync.RWMutex
	items map[string]ItemEntry
	lists map[string]ListEntry
}

func NewRegistry() *Registry {
	return &Registry{
		items: make(map[string]ItemEntry),
		lists: make(map[string]ListEntry),
	}
}

// RecordItem inserts or replaces the entry for e.ItemID.
func (r *Registry) RecordItem(e ItemEntry) {
	if e.ItemID == "" {
		return
	}
	r.mu.Lock()
	r.items[e.ItemID] = e
	r.mu.Unlock()
}

// RecordList inserts or replaces the entry for e.ListID.
func (r *Registry) RecordList(e ListEntry) {
	if e.ListID == "" {
		return
	}
	r.mu.Lock()
	r.lists[e.ListID] = e
	r.mu.Unlock()
}

// Item returns the entry for id, if one was ever recorded.
func (r *Registry) Item(id string) (ItemEntry, bool) {
	r.mu.RLock()
	e, ok := r.items[id]
	r.mu.RUnlock()
	return e, ok
}

// List returns the entry for id, if one was ever recorded.
func (r *Registry) List(id string) (ListEntry, bool) {
	r.mu.RLock()
	e, ok := r.lists[id]
	r.mu.RUnlock()
	return e, ok
}

// Lists returns a snapshot of all list entries, in unspecified order.
func (r *Registry) Lists() []ListEntry {
	r.mu.RLock()
	out := make([]ListEntry, 0, len(r.lists))
	for _, e := range r.lists {
		out = append(out, e)
	}
	r.mu.RUnlock()
	return out
}

// ItemsInList returns a snapshot of the item entries recorded for listID,
// in unspecified order. The caller filters out the dragged item and sorts by
// corrected position.
func (r *Registry) ItemsInList(listID string) []ItemEntry {
	r.mu.RLock()
	out := make([]ItemEntry, 0, 16)
	for _, e := range r.items {
		if e.ListID == listID {
			out = append(out, e)
		}
	}
	r.mu.RUnlock()
	return out
}
