package drag

import (
	"sort"

	"triage-cli/internal/layout"
	"triage-cli/internal/model"
)

// HitResult is the outcome of resolving a finger position against the layout
// registry. A zero result (no list, zero slot) means no valid drop target
// exists at that position; that is a designed terminal outcome, not an error.
type HitResult struct {
	ListID string
	Slot   model.Slot
}

func (h HitResult) Valid() bool { return h.ListID != "" && !h.Slot.IsZero() }

// HitTest resolves fingerY (absolute screen row) to a target list and
// insertion slot. excludeItemID is the item currently being dragged; its
// stale layout entry is ignored so the finger can pass through the space it
// vacated.
//
// Registry entries are only refreshed on layout passes, not on every scroll
// tick, so each stored position is first corrected for the scroll drift
// accumulated since it was measured:
//
//	liveY = storedY - (scrollOffset - entry.ScrollOffset)
//
// Called on every drag tick; keep it allocation-light and free of side
// effects.
func HitTest(reg *layout.Registry, excludeItemID string, fingerY, scrollOffset int) HitResult {
	var target layout.ListEntry
	found := false
	for _, le := range reg.Lists() {
		liveY := le.Y - (scrollOffset - le.ScrollOffset)
		if fingerY >= liveY && fingerY < liveY+le.Height {
			target = le
			found = true
			break
		}
	}
	if !found {
		return HitResult{}
	}

	entries := reg.ItemsInList(target.ListID)
	siblings := entries[:0]
	for _, e := range entries {
		if e.ItemID == excludeItemID {
			continue
		}
		siblings = append(siblings, e)
	}
	sort.Slice(siblings, func(i, j int) bool {
		yi := siblings[i].Y - (scrollOffset - siblings[i].ScrollOffset)
		yj := siblings[j].Y - (scrollOffset - siblings[j].ScrollOffset)
		if yi != yj {
			return yi < yj
		}
		return siblings[i].Order < siblings[j].Order
	})

	// Walk top to bottom: the slot is "before" the first sibling whose
	// vertical midpoint lies strictly below the finger. Past every midpoint
	// (or an otherwise empty list) resolves to the end sentinel.
	for _, e := range siblings {
		liveY := e.Y - (scrollOffset - e.ScrollOffset)
		mid := liveY*2 + e.Height // midpoint*2, avoids fractional rows
		if mid > fingerY*2 {
			return HitResult{ListID: target.ListID, Slot: model.SlotBefore(e.ItemID)}
		}
	}
	return HitResult{ListID: target.ListID, Slot: model.SlotEnd(target.ListID)}
}

// ItemAt returns the item row under fingerY, with the same scroll correction
// as HitTest. Used to resolve which item a press landed on.
func ItemAt(reg *layout.Registry, fingerY, scrollOffset int) (layout.ItemEntry, bool) {
	var target layout.ListEntry
	found := false
	for _, le := range reg.Lists() {
		liveY := le.Y - (scrollOffset - le.ScrollOffset)
		if fingerY >= liveY && fingerY < liveY+le.Height {
			target = le
			found = true
			break
		}
	}
	if !found {
		return layout.ItemEntry{}, false
	}
	for _, e := range reg.ItemsInList(target.ListID) {
		liveY := e.Y - (scrollOffset - e.ScrollOffset)
		if fingerY >= liveY && fingerY < liveY+e.Height {
			return e, true
		}
	}
	return layout.ItemEntry{}, false
}
