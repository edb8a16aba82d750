// Package mutate applies resolved drops to the authoritative item collection.
// Every function is pure: callers get a freshly-built collection back and
// swap it in atomically; no partial update is ever observable.
package mutate

import (
	"errors"
	"strings"
	"time"

	"triage-cli/internal/model"
)

// DropRequest is the gesture side's hand-off: what was dragged, from where,
// and which slot it resolved to.
type DropRequest struct {
	ItemID       string
	SourceListID string
	TargetListID string
	Slot         model.Slot
}

var ErrItemNotFound = errors.New("dropped item not found")

// ApplyDrop translates a resolved drop into a new, fully-reordered item
// collection. Same-list reorder and cross-list move are distinct paths; both
// end with every affected list renumbered to a dense 0..n-1 sequence.
//
// A slot naming an item that no longer exists in the target list (stale
// reference) silently falls back to inserting at the end; that is recovery,
// not an error.
func ApplyDrop(items []model.Item, req DropRequest, patch *model.ItemPatch, now time.Time) ([]model.Item, error) {
	itemID := strings.TrimSpace(req.ItemID)
	targetList := strings.TrimSpace(req.TargetListID)
	if itemID == "" || targetList == "" {
		return nil, errors.New("incomplete drop request")
	}

	out := make([]model.Item, len(items))
	copy(out, items)

	movedIdx := -1
	for i := range out {
		if out[i].ID == itemID {
			movedIdx = i
			break
		}
	}
	if movedIdx < 0 {
		return nil, ErrItemNotFound
	}

	sourceList := out[movedIdx].ListID
	moved := &out[movedIdx]

	if sourceList == targetList {
		// Same-list reorder: only order values in this list change.
		renumberWithInsert(out, moved, targetList, req.Slot)
	} else {
		// Cross-list move: reassign, patch, close the source gap, splice
		// into the target.
		moved.ListID = targetList
		patch.Apply(moved)
		renumberList(out, sourceList)
		renumberWithInsert(out, moved, targetList, req.Slot)
	}
	moved.UpdatedAt = now
	return out, nil
}

// renumberWithInsert rewrites listID's order values to a dense ascending
// sequence with moved spliced in at the slot position. moved.ListID must
// already be listID.
func renumberWithInsert(items []model.Item, moved *model.Item, listID string, slot model.Slot) {
	seq := orderedIndexes(items, listID, moved.ID)
	at := insertIndex(items, seq, slot)

	order := 0
	for i, idx := range seq {
		if i == at {
			moved.Order = order
			order++
		}
		items[idx].Order = order
		order++
	}
	if at >= len(seq) {
		moved.Order = order
	}
}

// renumberList rewrites the list's order values to a dense ascending sequence
// in current sort order.
func renumberList(items []model.Item, listID string) {
	seq := orderedIndexes(items, listID, "")
	for i, idx := range seq {
		items[idx].Order = i
	}
}

// Renumber returns a copy of items with every named list renumbered densely.
// Used by flows that bypass the drag engine (CLI moves, deletes).
func Renumber(items []model.Item, listIDs ...string) []model.Item {
	out := make([]model.Item, len(items))
	copy(out, items)
	for _, id := range listIDs {
		renumberList(out, id)
	}
	return out
}

// orderedIndexes returns indexes into items for the members of listID (minus
// excludeID), sorted by the collection's order semantics.
func orderedIndexes(items []model.Item, listID, excludeID string) []int {
	idx := make([]int, 0, 16)
	for i := range items {
		if items[i].ListID == listID && items[i].ID != excludeID {
			idx = append(idx, i)
		}
	}
	// Insertion sort by (Order, CreatedAt, ID); sibling sets are small.
	for i := 1; i < len(idx); i++ {
		for j := i; j > 0 && lessItems(items[idx[j]], items[idx[j-1]]); j-- {
			idx[j], idx[j-1] = idx[j-1], idx[j]
		}
	}
	return idx
}

func lessItems(a, b model.Item) bool {
	if a.Order != b.Order {
		return a.Order < b.Order
	}
	if !a.CreatedAt.Equal(b.CreatedAt) {
		return a.CreatedAt.Before(b.CreatedAt)
	}
	return a.ID < b.ID
}

// insertIndex maps the slot to an index in seq (the target's order sequence
// without the moved item). A "before" slot whose item vanished from the list
// falls back to the end.
func insertIndex(items []model.Item, seq []int, slot model.Slot) int {
	if slot.BeforeItemID != "" {
		for i, idx := range seq {
			if items[idx].ID == slot.BeforeItemID {
				return i
			}
		}
	}
	return len(seq)
}
