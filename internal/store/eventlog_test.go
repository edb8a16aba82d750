package store

import (
	"context"
	"testing"
	"time"
)

func TestEventLogAppendRecent(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	log, err := s.OpenEventLog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer log.Close()

	for i, id := range []string{"item-1", "item-2", "item-3"} {
		ev := DropEvent{
			TS:       time.Date(2026, 8, 30, 10, i, 0, 0, time.UTC),
			ItemID:   id,
			FromList: ListInbox,
			ToList:   ListToday,
			SlotKey:  "end:" + ListToday,
		}
		if err := log.Append(ctx, ev); err != nil {
			t.Fatal(err)
		}
	}

	got, err := log.Recent(ctx, 2)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 2 {
		t.Fatalf("Recent(2) returned %d events", len(got))
	}
	// Most recent first.
	if got[0].ItemID != "item-3" || got[1].ItemID != "item-2" {
		t.Fatalf("order = %s, %s", got[0].ItemID, got[1].ItemID)
	}
	if got[0].FromList != ListInbox || got[0].ToList != ListToday {
		t.Fatalf("lists = %s -> %s", got[0].FromList, got[0].ToList)
	}
	if got[0].TS.IsZero() {
		t.Fatal("timestamp lost in round trip")
	}
}

func TestEventLogSurvivesReopen(t *testing.T) {
	s := testStore(t)
	ctx := context.Background()

	log, err := s.OpenEventLog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	if err := log.Append(ctx, DropEvent{ItemID: "item-1", FromList: ListInbox, ToList: ListSomeday, SlotKey: "end:" + ListSomeday}); err != nil {
		t.Fatal(err)
	}
	if err := log.Close(); err != nil {
		t.Fatal(err)
	}

	log2, err := s.OpenEventLog(ctx)
	if err != nil {
		t.Fatal(err)
	}
	defer log2.Close()
	got, err := log2.Recent(ctx, 10)
	if err != nil {
		t.Fatal(err)
	}
	if len(got) != 1 || got[0].ItemID != "item-1" {
		t.Fatalf("reopened log lost data: %+v", got)
	}
}
