package store

import (
	"time"

	"triage-cli/internal/model"
)

// List ids are stable identifiers, not display names; the TUI and the
// pending-drop policy key off them.
const (
	ListInbox   = "inbox"
	ListToday   = "today"
	ListSomeday = "someday"
)

// SeedBoard builds the default board for a fresh store: the three standard
// lists and a couple of starter items so the board is not empty on first run.
func SeedBoard(now time.Time) *Board {
	b := &Board{
		Version: 1,
		Lists: []model.List{
			{ID: ListInbox, Name: "Inbox", Icon: "📥"},
			{ID: ListToday, Name: "Today", Icon: "🔥"},
			{ID: ListSomeday, Name: "Someday", Icon: "🌙"},
		},
	}
	starters := []struct {
		title, desc string
	}{
		{"Welcome to triage", "Long-press an item with the mouse and drag it between lists.\n\nDrops into **Today** ask for a time."},
		{"Try dragging this one", ""},
	}
	for i, s := range starters {
		b.Items = append(b.Items, model.Item{
			ID:          NewItemID(),
			ListID:      ListInbox,
			Order:       i,
			Title:       s.title,
			Description: s.desc,
			CreatedAt:   now,
			UpdatedAt:   now,
		})
	}
	return b
}

// RequiresSchedule reports whether drops into listID need a time before they
// can commit (the deferred-commit path).
func RequiresSchedule(listID string) bool {
	return listID == ListToday
}
