package drag

import (
	"sync"
	"time"

	"triage-cli/internal/layout"
	"triage-cli/internal/logging"
	"triage-cli/internal/model"
	"triage-cli/internal/mutate"
)

// PointerEventKind classifies raw pointer input forwarded by the TUI.
type PointerEventKind int

const (
	PointerDown PointerEventKind = iota
	PointerMove
	PointerUp
	PointerCancel
)

// PointerEvent is one raw pointer sample in absolute screen coordinates.
type PointerEvent struct {
	Kind PointerEventKind
	X, Y int
}

// Config tunes the gesture loop. Zero values pick the defaults.
type Config struct {
	// HoldDelay is how long a press must stay put before it becomes a drag
	// rather than a tap or scroll.
	HoldDelay time.Duration
	// HoldSlop is how far (rows) the pointer may wander during the hold
	// without cancelling it.
	HoldSlop int
	// TickEvery paces the gesture loop's timer (hold activation, auto-scroll
	// repeat, snapback animation).
	TickEvery time.Duration
	// SnapbackTicks is how many ticks the ghost takes to settle back to its
	// origin after a rejected drop.
	SnapbackTicks int
}

func (c Config) withDefaults() Config {
	if c.HoldDelay <= 0 {
		c.HoldDelay = 300 * time.Millisecond
	}
	if c.HoldSlop <= 0 {
		c.HoldSlop = 1
	}
	if c.TickEvery <= 0 {
		c.TickEvery = 33 * time.Millisecond
	}
	if c.SnapbackTicks <= 0 {
		c.SnapbackTicks = 4
	}
	return c
}

// Engine runs the drag session on its own goroutine: the high-priority
// gesture context of the system. It consumes pointer events, owns the drag
// state machine, hit-tests on every tick, drives auto-scroll, and emits
// feedback. The only calls that cross to the logic context are one-way:
// feedback cues and the final commit hand-off over a buffered channel. The
// gesture loop never waits for a reply.
type Engine struct {
	cfg    Config
	reg    *layout.Registry
	scroll *ScrollState
	fb     Feedback

	session *Cell[State]
	events  chan PointerEvent
	commits chan mutate.DropRequest
	done    chan struct{}
	stop    sync.Once

	// Gesture-loop-local state below; only the loop goroutine (or tests
	// driving handlers directly) touches it.
	press        *pressState
	st           State
	lastX, lastY int
	snapLeft     int
}

type pressState struct {
	x, y int
	at   time.Time
	item layout.ItemEntry
}

func NewEngine(cfg Config, reg *layout.Registry, scroll *ScrollState, fb Feedback) *Engine {
	if fb == nil {
		fb = NopFeedback{}
	}
	return &Engine{
		cfg:     cfg.withDefaults(),
		reg:     reg,
		scroll:  scroll,
		fb:      fb,
		session: NewCell(State{}),
		events:  make(chan PointerEvent, 128),
		commits: make(chan mutate.DropRequest, 8),
		done:    make(chan struct{}),
	}
}

// Session exposes the observable drag state for renderers.
func (e *Engine) Session() *Cell[State] { return e.session }

// Commits is the one-way hand-off consumed by the logic context.
func (e *Engine) Commits() <-chan mutate.DropRequest { return e.commits }

// Pointer forwards a raw pointer event into the gesture loop.
func (e *Engine) Pointer(ev PointerEvent) {
	select {
	case e.events <- ev:
	case <-e.done:
	}
}

// Run starts the gesture loop.
func (e *Engine) Run() {
	go e.loop()
}

// Stop tears the engine down. Cleanup runs unconditionally, so an engine
// stopped mid-drag still restores scroll and item visibility.
func (e *Engine) Stop() {
	e.stop.Do(func() { close(e.done) })
}

func (e *Engine) loop() {
	ticker := time.NewTicker(e.cfg.TickEvery)
	defer ticker.Stop()
	for {
		select {
		case ev := <-e.events:
			e.handleEvent(ev, time.Now())
		case <-ticker.C:
			e.handleTick(time.Now())
		case <-e.done:
			e.teardown()
			return
		}
	}
}

func (e *Engine) handleEvent(ev PointerEvent, now time.Time) {
	switch ev.Kind {
	case PointerDown:
		e.handleDown(ev, now)
	case PointerMove:
		e.handleMove(ev, now)
	case PointerUp:
		e.handleUp(ev, now)
	case PointerCancel:
		e.teardown()
	}
}

// handleDown arms the hold timer when the press lands on an item row. The
// press does not become a drag until the pointer has stayed put for
// HoldDelay; that disambiguates dragging from scrolling and tapping.
func (e *Engine) handleDown(ev PointerEvent, now time.Time) {
	if e.st.Active() {
		return // one drag session system-wide
	}
	entry, ok := ItemAt(e.reg, ev.Y, e.scroll.Offset())
	if !ok {
		return
	}
	e.press = &pressState{x: ev.X, y: ev.Y, at: now, item: entry}
	e.lastX, e.lastY = ev.X, ev.Y
}

func (e *Engine) handleMove(ev PointerEvent, now time.Time) {
	e.lastX, e.lastY = ev.X, ev.Y

	if e.press != nil && !e.st.Dragging() {
		if abs(ev.Y-e.press.y) > e.cfg.HoldSlop || abs(ev.X-e.press.x) > e.cfg.HoldSlop*4 {
			// Moved too far too early: this is a scroll, not a drag.
			e.press = nil
		}
		return
	}
	if !e.st.Dragging() {
		return
	}

	st := e.st
	st.GhostX = st.OriginX + (ev.X - e.press.x)
	st.GhostY = st.OriginY + (ev.Y - e.press.y)
	e.resolveInto(&st, ev.Y, true)
	e.publish(st)
}

// handleTick activates held presses, repeats auto-scroll while the pointer
// sits in a hot zone, and steps the snapback animation.
func (e *Engine) handleTick(now time.Time) {
	if e.press != nil && !e.st.Dragging() && now.Sub(e.press.at) >= e.cfg.HoldDelay {
		e.activate(now)
		return
	}

	if e.st.Dragging() {
		vp := e.scroll.Viewport()
		if next, ok := AutoScroll(e.lastY, vp, e.scroll.Offset(), e.scroll.ContentHeight()); ok {
			e.scroll.SetOffset(next)
			// Content moved under the finger: re-resolve with the new offset.
			st := e.st
			e.resolveInto(&st, e.lastY, true)
			e.publish(st)
		}
		return
	}

	if e.st.Phase == PhaseResolving && e.snapLeft > 0 {
		e.snapLeft--
		st := e.st
		if e.snapLeft == 0 {
			e.teardown()
			return
		}
		// Step the ghost a proportional fraction of the way home.
		st.GhostX += (st.OriginX - st.GhostX) / (e.snapLeft + 1)
		st.GhostY += (st.OriginY - st.GhostY) / (e.snapLeft + 1)
		e.publish(st)
	}
}

// activate flips the session to dragging: capture the item's current
// rectangle as the ghost origin, suppress native scrolling, and run one
// immediate hit-test seeded with the item's own midpoint (the true pointer
// position may not have produced a Move yet).
func (e *Engine) activate(now time.Time) {
	entry, ok := e.reg.Item(e.press.item.ItemID)
	if !ok {
		logging.Debug().Str("item", e.press.item.ItemID).Msg("no layout entry at drag activation")
		entry = e.press.item
	}
	offset := e.scroll.Offset()
	liveY := entry.Y - (offset - entry.ScrollOffset)

	st := State{
		Phase:        PhaseDragging,
		ItemID:       entry.ItemID,
		SourceListID: entry.ListID,
		OriginX:      0,
		OriginY:      liveY,
		GhostX:       0,
		GhostY:       liveY,
		Height:       entry.Height,
	}
	e.scroll.DisableNative()
	e.resolveInto(&st, liveY+entry.Height/2, false)
	e.st = st
	e.session.Store(st)
	e.fb.Pickup()
}

func (e *Engine) handleUp(ev PointerEvent, now time.Time) {
	if !e.st.Dragging() {
		e.press = nil
		return
	}

	st := e.st
	st.GhostX = st.OriginX + (ev.X - e.press.x)
	st.GhostY = st.OriginY + (ev.Y - e.press.y)
	e.resolveInto(&st, ev.Y, true)

	if st.TargetListID != "" && !st.TargetSlot.IsZero() {
		req := mutate.DropRequest{
			ItemID:       st.ItemID,
			SourceListID: st.SourceListID,
			TargetListID: st.TargetListID,
			Slot:         st.TargetSlot,
		}
		select {
		case e.commits <- req:
		default:
			// Never block the gesture context on the logic side.
			logging.Warn().Str("item", req.ItemID).Msg("commit channel full; drop lost")
		}
		e.fb.DropSuccess()
		e.teardown()
		return
	}

	// Released outside any list: designed terminal outcome. Animate the
	// ghost home; no state mutation happens anywhere.
	e.press = nil
	e.fb.DropRejected()
	st.Phase = PhaseResolving
	st.TargetListID = ""
	st.TargetSlot = model.Slot{}
	e.snapLeft = e.cfg.SnapbackTicks
	e.publish(st)
}

// resolveInto runs the hit-tester and writes the result into st next to the
// ghost position, so both land in the same published snapshot. With cue set,
// a change of resolved slot emits the selection feedback (suppressed for the
// initial resolution at pickup).
func (e *Engine) resolveInto(st *State, fingerY int, cue bool) {
	res := HitTest(e.reg, st.ItemID, fingerY, e.scroll.Offset())
	if cue && res.Valid() && res.Slot.Key() != st.TargetSlot.Key() {
		e.fb.SlotChanged()
	}
	st.TargetListID = res.ListID
	st.TargetSlot = res.Slot
}

func (e *Engine) publish(st State) {
	e.st = st
	e.session.Store(st)
}

// teardown is the unconditional finalizer: it must be reachable from every
// exit path (drop, rejection, platform cancel, engine stop) and safe to run
// twice. It clears the session, restores native scrolling, and thereby
// restores the dragged item's normal visibility on the next render.
func (e *Engine) teardown() {
	e.press = nil
	e.snapLeft = 0
	if e.st != (State{}) {
		e.publish(State{})
	}
	e.scroll.EnableNative()
}

func abs(v int) int {
	if v < 0 {
		return -v
	}
	return v
}
