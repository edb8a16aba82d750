package store

import (
	"context"
	"database/sql"
	"path/filepath"
	"time"

	_ "modernc.org/sqlite"
)

// DropEvent is one committed drop, as recorded in the history log.
type DropEvent struct {
	ID       int64
	TS       time.Time
	ItemID   string
	FromList string
	ToList   string
	SlotKey  string
}

// EventLog is an append-only SQLite history of committed drops, used by
// `triage events`. It is derived data: losing it never loses board state.
type EventLog struct {
	db *sql.DB
}

func (s Store) eventLogPath() string {
	return filepath.Join(s.Dir, "events.sqlite")
}

// OpenEventLog opens (and if needed creates) the drop-event log.
func (s Store) OpenEventLog(ctx context.Context) (*EventLog, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	db, err := sql.Open("sqlite", s.eventLogPath())
	if err != nil {
		return nil, err
	}
	// WAL + busy_timeout: the TUI and CLI may both have the log open.
	pragmas := []string{
		"PRAGMA journal_mode=WAL;",
		"PRAGMA synchronous=NORMAL;",
		"PRAGMA busy_timeout=5000;",
	}
	for _, p := range pragmas {
		if _, err := db.ExecContext(ctx, p); err != nil {
			_ = db.Close()
			return nil, err
		}
	}
	schema := `
CREATE TABLE IF NOT EXISTS drop_events (
  id        INTEGER PRIMARY KEY AUTOINCREMENT,
  ts        TEXT NOT NULL,
  item_id   TEXT NOT NULL,
  from_list TEXT NOT NULL,
  to_list   TEXT NOT NULL,
  slot_key  TEXT NOT NULL
);
CREATE INDEX IF NOT EXISTS idx_drop_events_ts ON drop_events(ts);`
	if _, err := db.ExecContext(ctx, schema); err != nil {
		_ = db.Close()
		return nil, err
	}
	return &EventLog{db: db}, nil
}

func (l *EventLog) Close() error { return l.db.Close() }

// Append records one committed drop. Best effort from the caller's point of
// view; the board save does not depend on it.
func (l *EventLog) Append(ctx context.Context, ev DropEvent) error {
	ts := ev.TS
	if ts.IsZero() {
		ts = time.Now().UTC()
	}
	_, err := l.db.ExecContext(ctx,
		`INSERT INTO drop_events (ts, item_id, from_list, to_list, slot_key) VALUES (?, ?, ?, ?, ?)`,
		ts.Format(time.RFC3339Nano), ev.ItemID, ev.FromList, ev.ToList, ev.SlotKey)
	return err
}

// Recent returns the newest events, most recent first.
func (l *EventLog) Recent(ctx context.Context, limit int) ([]DropEvent, error) {
	if limit <= 0 {
		limit = 20
	}
	rows, err := l.db.QueryContext(ctx,
		`SELECT id, ts, item_id, from_list, to_list, slot_key FROM drop_events ORDER BY id DESC LIMIT ?`, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []DropEvent
	for rows.Next() {
		var ev DropEvent
		var ts string
		if err := rows.Scan(&ev.ID, &ts, &ev.ItemID, &ev.FromList, &ev.ToList, &ev.SlotKey); err != nil {
			return nil, err
		}
		if t, err := time.Parse(time.RFC3339Nano, ts); err == nil {
			ev.TS = t
		}
		out = append(out, ev)
	}
	return out, rows.Err()
}
