package tui

import (
	"context"
	"sync"
	"time"

	"triage-cli/internal/logging"
	"triage-cli/internal/model"
	"triage-cli/internal/mutate"
	"triage-cli/internal/store"
)

// controller is the logic context of the system: the lower-priority goroutine
// that exclusively owns the authoritative item collection and all I/O.
// Everything reaches it through one-way channels (the gesture loop's commit
// hand-off, the form's pending confirm/cancel, board ops from keyboard flows)
// and it publishes fresh collection snapshots back to the TUI via a callback.
// It never touches the layout registry.
type controller struct {
	store   store.Store
	board   *store.Board
	pending *mutate.PendingDrops
	evlog   *store.EventLog

	commits <-chan mutate.DropRequest
	confirm chan *model.ItemPatch
	cancel  chan struct{}
	ops     chan func(*store.Board) bool
	reload  chan struct{}

	onBoard   func(store.Board)            // snapshot after every change
	onPending func(req mutate.DropRequest) // a drop is waiting on user input

	done     chan struct{}
	stopOnce sync.Once
}

func newController(s store.Store, b *store.Board, commits <-chan mutate.DropRequest, evlog *store.EventLog) *controller {
	return &controller{
		store:   s,
		board:   b,
		pending: mutate.NewPendingDrops(),
		evlog:   evlog,
		commits: commits,
		confirm: make(chan *model.ItemPatch, 1),
		cancel:  make(chan struct{}, 1),
		ops:     make(chan func(*store.Board) bool, 8),
		reload:  make(chan struct{}, 1),
		done:    make(chan struct{}),
	}
}

func (c *controller) run() { go c.loop() }

func (c *controller) stop() { c.stopOnce.Do(func() { close(c.done) }) }

// ConfirmPending finalizes the stored pending drop with the extra data the
// form collected.
func (c *controller) ConfirmPending(extra *model.ItemPatch) {
	select {
	case c.confirm <- extra:
	case <-c.done:
	}
}

// CancelPending discards the pending drop; the collection stays untouched.
func (c *controller) CancelPending() {
	select {
	case c.cancel <- struct{}{}:
	case <-c.done:
	}
}

// Do schedules op on the logic context. When op reports a change the board is
// saved and a fresh snapshot published.
func (c *controller) Do(op func(*store.Board) bool) {
	select {
	case c.ops <- op:
	case <-c.done:
	}
}

// Reload asks the logic context to re-read the board from disk (external
// change notification).
func (c *controller) Reload() {
	select {
	case c.reload <- struct{}{}:
	default:
	}
}

func (c *controller) loop() {
	for {
		select {
		case req := <-c.commits:
			c.handleDrop(req)
		case extra := <-c.confirm:
			c.handleConfirm(extra)
		case <-c.cancel:
			c.pending.Cancel()
		case op := <-c.ops:
			if op(c.board) {
				c.persistAndPublish()
			}
		case <-c.reload:
			c.handleReload()
		case <-c.done:
			return
		}
	}
}

// handleDrop applies a resolved drop, or parks it as a pending drop when the
// target list needs a schedule the item doesn't have yet.
func (c *controller) handleDrop(req mutate.DropRequest) {
	if c.dropNeedsInput(req) {
		if err := c.pending.Begin(req, nil); err != nil {
			logging.Warn().Err(err).Msg("pending drop rejected")
			return
		}
		if c.onPending != nil {
			c.onPending(req)
		}
		return
	}
	c.commit(req, nil)
}

// dropNeedsInput: moves into Today must carry a time; reorders within Today
// and already-scheduled items commit immediately.
func (c *controller) dropNeedsInput(req mutate.DropRequest) bool {
	if !store.RequiresSchedule(req.TargetListID) {
		return false
	}
	if req.SourceListID == req.TargetListID {
		return false
	}
	it, ok := model.FindItem(c.board.Items, req.ItemID)
	return !ok || it.ScheduledAt == nil
}

func (c *controller) handleConfirm(extra *model.ItemPatch) {
	req, patch, err := c.pending.Confirm(extra)
	if err != nil {
		logging.Warn().Err(err).Msg("confirm without pending drop")
		return
	}
	c.commit(req, patch)
}

func (c *controller) commit(req mutate.DropRequest, patch *model.ItemPatch) {
	now := time.Now().UTC()
	next, err := mutate.ApplyDrop(c.board.Items, req, patch, now)
	if err != nil {
		// E.g. the item was deleted while the drop was pending.
		logging.Warn().Err(err).Str("item", req.ItemID).Msg("drop commit failed")
		return
	}
	c.board.Items = next
	c.persistAndPublish()

	if c.evlog != nil {
		ctx, cancel := context.WithTimeout(context.Background(), 2*time.Second)
		defer cancel()
		if err := c.evlog.Append(ctx, store.DropEvent{
			TS:       now,
			ItemID:   req.ItemID,
			FromList: req.SourceListID,
			ToList:   req.TargetListID,
			SlotKey:  req.Slot.Key(),
		}); err != nil {
			logging.Warn().Err(err).Msg("event log append failed")
		}
	}
}

func (c *controller) persistAndPublish() {
	// Save is best effort: a failed write never rolls back in-memory state.
	if err := c.store.Save(c.board); err != nil {
		logging.Error().Err(err).Msg("board save failed")
	}
	c.publish()
}

func (c *controller) publish() {
	if c.onBoard == nil {
		return
	}
	c.onBoard(*c.board.Clone())
}

func (c *controller) handleReload() {
	b, err := c.store.Load()
	if err != nil {
		logging.Warn().Err(err).Msg("reload after external change failed")
		return
	}
	c.board = b
	c.publish()
}
