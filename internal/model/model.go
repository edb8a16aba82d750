package model

import (
	"sort"
	"strings"
	"time"
)

// TimeSlot is a coarse time-of-day bucket attached to scheduled items.
type TimeSlot string

const (
	TimeSlotNone      TimeSlot = ""
	TimeSlotMorning   TimeSlot = "morning"
	TimeSlotAfternoon TimeSlot = "afternoon"
	TimeSlotEvening   TimeSlot = "evening"
)

// TimeSlots lists the selectable buckets in display order.
var TimeSlots = []TimeSlot{TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening}

func ValidTimeSlot(s TimeSlot) bool {
	switch s {
	case TimeSlotNone, TimeSlotMorning, TimeSlotAfternoon, TimeSlotEvening:
		return true
	}
	return false
}

// Item is a single to-do entry. Order is dense (0..n-1) within its list after
// every commit; the add flow may briefly introduce min-1 so new items sort
// first until the next commit renumbers.
type Item struct {
	ID          string `json:"id"`
	ListID      string `json:"listId"`
	Order       int    `json:"order"`
	Title       string `json:"title"`
	Description string `json:"description,omitempty"`

	ScheduledAt *string  `json:"scheduledAt,omitempty"` // HH:MM
	TimeSlot    TimeSlot `json:"timeSlot,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// List is a named, ordered container of items. Lists are static for the
// lifetime of a session.
type List struct {
	ID   string `json:"id"`
	Name string `json:"name"`
	Icon string `json:"icon,omitempty"`
}

// ItemPatch carries optional field overrides merged onto an item during a
// commit (e.g. the schedule collected by the pending-drop form).
type ItemPatch struct {
	Title       *string
	Description *string
	ScheduledAt *string
	TimeSlot    *TimeSlot
}

// Merge overlays other on top of p, field by field. Either side may be nil.
func (p *ItemPatch) Merge(other *ItemPatch) *ItemPatch {
	if p == nil {
		return other
	}
	if other == nil {
		return p
	}
	out := *p
	if other.Title != nil {
		out.Title = other.Title
	}
	if other.Description != nil {
		out.Description = other.Description
	}
	if other.ScheduledAt != nil {
		out.ScheduledAt = other.ScheduledAt
	}
	if other.TimeSlot != nil {
		out.TimeSlot = other.TimeSlot
	}
	return &out
}

// Apply writes the patch's non-nil fields onto it.
func (p *ItemPatch) Apply(it *Item) {
	if p == nil || it == nil {
		return
	}
	if p.Title != nil {
		it.Title = strings.TrimSpace(*p.Title)
	}
	if p.Description != nil {
		it.Description = *p.Description
	}
	if p.ScheduledAt != nil {
		v := strings.TrimSpace(*p.ScheduledAt)
		if v == "" {
			it.ScheduledAt = nil
		} else {
			it.ScheduledAt = &v
		}
	}
	if p.TimeSlot != nil && ValidTimeSlot(*p.TimeSlot) {
		it.TimeSlot = *p.TimeSlot
	}
}

// Slot identifies an insertion point in a list: either "before the item with
// BeforeItemID" or, when BeforeItemID is empty, the end of list ListID.
type Slot struct {
	BeforeItemID string
	ListID       string
}

func SlotBefore(itemID string) Slot { return Slot{BeforeItemID: strings.TrimSpace(itemID)} }

func SlotEnd(listID string) Slot { return Slot{ListID: strings.TrimSpace(listID)} }

func (s Slot) IsZero() bool { return s.BeforeItemID == "" && s.ListID == "" }

func (s Slot) IsEnd() bool { return s.BeforeItemID == "" && s.ListID != "" }

// Key returns a stable string form used for change detection and the event
// log ("before:<item>" / "end:<list>").
func (s Slot) Key() string {
	if s.IsZero() {
		return ""
	}
	if s.BeforeItemID != "" {
		return "before:" + s.BeforeItemID
	}
	return "end:" + s.ListID
}

// ItemsInList returns the items belonging to listID, sorted by order.
func ItemsInList(items []Item, listID string) []Item {
	out := make([]Item, 0, len(items))
	for _, it := range items {
		if it.ListID == listID {
			out = append(out, it)
		}
	}
	SortItemsByOrder(out)
	return out
}

// SortItemsByOrder sorts in place by order, breaking ties by CreatedAt then
// ID so the result is deterministic even before a renumber.
func SortItemsByOrder(items []Item) {
	sort.SliceStable(items, func(i, j int) bool {
		if items[i].Order != items[j].Order {
			return items[i].Order < items[j].Order
		}
		if !items[i].CreatedAt.Equal(items[j].CreatedAt) {
			return items[i].CreatedAt.Before(items[j].CreatedAt)
		}
		return items[i].ID < items[j].ID
	})
}

// MinOrder returns the smallest order value in listID, or 0 when the list is
// empty. The add flow assigns MinOrder-1 so new items sort first.
func MinOrder(items []Item, listID string) int {
	found := false
	min := 0
	for _, it := range items {
		if it.ListID != listID {
			continue
		}
		if !found || it.Order < min {
			min = it.Order
			found = true
		}
	}
	return min
}

// FindItem returns a copy of the item with the given id.
func FindItem(items []Item, id string) (Item, bool) {
	id = strings.TrimSpace(id)
	for _, it := range items {
		if it.ID == id {
			return it, true
		}
	}
	return Item{}, false
}

// FindList returns the list with the given id.
func FindList(lists []List, id string) (List, bool) {
	id = strings.TrimSpace(id)
	for _, l := range lists {
		if l.ID == id {
			return l, true
		}
	}
	return List{}, false
}
