package model

import (
	"testing"
	"time"
)

func TestSlotKeys(t *testing.T) {
	if got := SlotBefore("item-1").Key(); got != "before:item-1" {
		t.Fatalf("Key = %q", got)
	}
	if got := SlotEnd("today").Key(); got != "end:today" {
		t.Fatalf("Key = %q", got)
	}
	var zero Slot
	if !zero.IsZero() {
		t.Fatal("zero slot not zero")
	}
	if SlotBefore("x").IsEnd() {
		t.Fatal("before slot reported as end")
	}
	if !SlotEnd("today").IsEnd() {
		t.Fatal("end slot not reported as end")
	}
}

func TestSortItemsByOrderTiebreaks(t *testing.T) {
	t1 := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	t2 := t1.Add(time.Hour)
	items := []Item{
		{ID: "b", Order: 1, CreatedAt: t1},
		{ID: "a", Order: 1, CreatedAt: t1},
		{ID: "c", Order: 1, CreatedAt: t2},
		{ID: "d", Order: 0, CreatedAt: t2},
	}
	SortItemsByOrder(items)
	want := []string{"d", "a", "b", "c"}
	for i, w := range want {
		if items[i].ID != w {
			t.Fatalf("pos %d = %s, want %s", i, items[i].ID, w)
		}
	}
}

func TestItemPatchMerge(t *testing.T) {
	at := "09:00"
	slot := TimeSlotMorning
	stored := &ItemPatch{TimeSlot: &slot}
	extra := &ItemPatch{ScheduledAt: &at}

	got := stored.Merge(extra)
	if got.TimeSlot == nil || *got.TimeSlot != TimeSlotMorning {
		t.Fatalf("stored field lost: %+v", got)
	}
	if got.ScheduledAt == nil || *got.ScheduledAt != "09:00" {
		t.Fatalf("extra field lost: %+v", got)
	}

	// Either side may be nil.
	if (*ItemPatch)(nil).Merge(extra) == nil {
		t.Fatal("nil receiver merge returned nil")
	}
	if stored.Merge(nil) == nil {
		t.Fatal("nil argument merge returned nil")
	}
}

func TestItemPatchApply(t *testing.T) {
	at := "  14:30 "
	slot := TimeSlotAfternoon
	it := Item{Title: "keep"}
	(&ItemPatch{ScheduledAt: &at, TimeSlot: &slot}).Apply(&it)
	if it.ScheduledAt == nil || *it.ScheduledAt != "14:30" {
		t.Fatalf("ScheduledAt = %v", it.ScheduledAt)
	}
	if it.TimeSlot != TimeSlotAfternoon {
		t.Fatalf("TimeSlot = %q", it.TimeSlot)
	}
	if it.Title != "keep" {
		t.Fatal("unpatched field changed")
	}

	// Clearing: an explicit empty schedule removes it.
	empty := ""
	(&ItemPatch{ScheduledAt: &empty}).Apply(&it)
	if it.ScheduledAt != nil {
		t.Fatalf("ScheduledAt = %v, want cleared", it.ScheduledAt)
	}

	var nilPatch *ItemPatch
	nilPatch.Apply(&it) // must not panic
}

func TestMinOrder(t *testing.T) {
	items := []Item{
		{ID: "a", ListID: "inbox", Order: -2},
		{ID: "b", ListID: "inbox", Order: 3},
		{ID: "c", ListID: "today", Order: -9},
	}
	if got := MinOrder(items, "inbox"); got != -2 {
		t.Fatalf("MinOrder = %d, want -2", got)
	}
	if got := MinOrder(items, "empty"); got != 0 {
		t.Fatalf("MinOrder of empty list = %d, want 0", got)
	}
}
