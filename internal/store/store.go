// Package store persists the board as a single JSON blob plus a SQLite log
// of drop events. Save is a whole-collection replace, best effort: in-memory
// state is never rolled back on a write failure.
package store

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"time"

	"github.com/google/uuid"

	"triage-cli/internal/model"
)

const boardFileName = "board.json"

// Board is the persisted collection: the static lists plus every item.
type Board struct {
	Version int          `json:"version"`
	Lists   []model.List `json:"lists"`
	Items   []model.Item `json:"items"`
}

// Clone copies the board so the copy can be read or mutated independently.
// ScheduledAt pointers stay shared; they are replaced, never written through.
func (b *Board) Clone() *Board {
	c := &Board{Version: b.Version}
	c.Lists = append([]model.List(nil), b.Lists...)
	c.Items = append([]model.Item(nil), b.Items...)
	return c
}

type Store struct {
	Dir string
}

// DiscoverDir walks up from start looking for an existing .triage directory.
func DiscoverDir(start string) (string, bool) {
	dir := start
	for {
		candidate := filepath.Join(dir, ".triage")
		if st, err := os.Stat(candidate); err == nil && st.IsDir() {
			return candidate, true
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "", false
		}
		dir = parent
	}
}

// DefaultDir resolves the store location: an existing .triage above the
// working directory, else ~/.triage.
func DefaultDir() (string, error) {
	cwd, err := os.Getwd()
	if err != nil {
		return "", err
	}
	if found, ok := DiscoverDir(cwd); ok {
		return found, nil
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return "", err
	}
	return filepath.Join(home, ".triage"), nil
}

func (s Store) Ensure() error {
	return os.MkdirAll(s.Dir, 0o755)
}

func (s Store) BoardPath() string {
	return filepath.Join(s.Dir, boardFileName)
}

// Load reads the board, seeding defaults when nothing is persisted yet.
func (s Store) Load() (*Board, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(s.BoardPath())
	if errors.Is(err, os.ErrNotExist) {
		b := SeedBoard(time.Now().UTC())
		if err := s.Save(b); err != nil {
			return nil, err
		}
		return b, nil
	}
	if err != nil {
		return nil, err
	}
	var b Board
	if err := json.Unmarshal(data, &b); err != nil {
		return nil, fmt.Errorf("parse %s: %w", boardFileName, err)
	}
	if len(b.Lists) == 0 {
		b.Lists = SeedBoard(time.Now().UTC()).Lists
	}
	return &b, nil
}

// Save writes the board atomically (temp file + rename) so a concurrent
// reader or watcher never sees a torn file.
func (s Store) Save(b *Board) error {
	if b == nil {
		return errors.New("nil board")
	}
	if err := s.Ensure(); err != nil {
		return err
	}
	if b.Version == 0 {
		b.Version = 1
	}
	data, err := json.MarshalIndent(b, "", "  ")
	if err != nil {
		return err
	}
	tmp := s.BoardPath() + ".tmp"
	if err := os.WriteFile(tmp, append(data, '\n'), 0o644); err != nil {
		return err
	}
	return os.Rename(tmp, s.BoardPath())
}

// NewItemID mints an item id.
func NewItemID() string {
	return "item-" + uuid.NewString()[:8]
}

// AddItem appends a new item to listID with order min-1 so it sorts first.
func AddItem(b *Board, listID, title, description string, now time.Time) (model.Item, error) {
	listID = strings.TrimSpace(listID)
	title = strings.TrimSpace(title)
	if title == "" {
		return model.Item{}, errors.New("missing title")
	}
	if _, ok := model.FindList(b.Lists, listID); !ok {
		return model.Item{}, fmt.Errorf("unknown list %q", listID)
	}
	it := model.Item{
		ID:          NewItemID(),
		ListID:      listID,
		Order:       model.MinOrder(b.Items, listID) - 1,
		Title:       title,
		Description: description,
		CreatedAt:   now,
		UpdatedAt:   now,
	}
	b.Items = append(b.Items, it)
	return it, nil
}

// DeleteItem removes the item and closes the order gap in its list.
func DeleteItem(b *Board, itemID string) bool {
	for i := range b.Items {
		if b.Items[i].ID == itemID {
			listID := b.Items[i].ListID
			b.Items = append(b.Items[:i], b.Items[i+1:]...)
			b.Items = renumbered(b.Items, listID)
			return true
		}
	}
	return false
}

func renumbered(items []model.Item, listID string) []model.Item {
	ordered := model.ItemsInList(items, listID)
	orderByID := make(map[string]int, len(ordered))
	for i, it := range ordered {
		orderByID[it.ID] = i
	}
	for i := range items {
		if o, ok := orderByID[items[i].ID]; ok {
			items[i].Order = o
		}
	}
	return items
}
