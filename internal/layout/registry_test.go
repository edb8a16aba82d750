package layout

import "testing"

func TestRegistryLastWriteWins(t *testing.T) {
	r := NewRegistry()
	r.RecordItem(ItemEntry{ItemID: "a", ListID: "inbox", Y: 3, Height: 1, ScrollOffset: 0})
	r.RecordItem(ItemEntry{ItemID: "a", ListID: "inbox", Y: 5, Height: 1, ScrollOffset: 2})

	got, ok := r.Item("a")
	if !ok {
		t.Fatal("expected entry for a")
	}
	if got.Y != 5 || got.ScrollOffset != 2 {
		t.Fatalf("stale entry survived: %+v", got)
	}
}

func TestRegistryMissLeavesPreviousVisible(t *testing.T) {
	r := NewRegistry()
	r.RecordItem(ItemEntry{ItemID: "a", ListID: "inbox", Y: 3, Height: 1})
	if _, ok := r.Item("b"); ok {
		t.Fatal("unexpected entry for b")
	}
	// Entries are never deleted; a row that stops rendering keeps its last
	// known geometry until the next layout pass overwrites it.
	if _, ok := r.Item("a"); !ok {
		t.Fatal("entry for a vanished")
	}
}

func TestRegistryItemsInList(t *testing.T) {
	r := NewRegistry()
	r.RecordItem(ItemEntry{ItemID: "a", ListID: "inbox", Y: 2})
	r.RecordItem(ItemEntry{ItemID: "b", ListID: "inbox", Y: 3})
	r.RecordItem(ItemEntry{ItemID: "c", ListID: "today", Y: 6})

	got := r.ItemsInList("inbox")
	if len(got) != 2 {
		t.Fatalf("want 2 inbox entries, got %d", len(got))
	}
	for _, e := range got {
		if e.ListID != "inbox" {
			t.Fatalf("wrong list in result: %+v", e)
		}
	}
}

func TestRegistryListSpan(t *testing.T) {
	r := NewRegistry()
	r.RecordList(ListEntry{ListID: "today", Y: 5, Height: 4, ScrollOffset: 1})

	got, ok := r.List("today")
	if !ok {
		t.Fatal("expected list entry")
	}
	if got.Y != 5 || got.Height != 4 || got.ScrollOffset != 1 {
		t.Fatalf("unexpected span: %+v", got)
	}
	if len(r.Lists()) != 1 {
		t.Fatalf("want 1 list, got %d", len(r.Lists()))
	}
}
