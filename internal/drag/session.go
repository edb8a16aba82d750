package drag

import (
	"sync/atomic"

	"triage-cli/internal/model"
)

// Phase is the drag session's lifecycle state.
type Phase int

const (
	PhaseIdle Phase = iota
	PhaseDragging
	PhaseResolving // released or rejected; ghost settling / commit handed off
)

// State is one atomic snapshot of the drag session. Ghost position and the
// hit-test result are always published together in a single snapshot, so no
// reader ever sees a moved ghost paired with a stale slot.
type State struct {
	Phase        Phase
	ItemID       string
	SourceListID string

	// Ghost rectangle, absolute screen coordinates.
	GhostX, GhostY   int
	OriginX, OriginY int
	Width, Height    int

	// Current hit-test resolution; zero values mean "no valid target".
	TargetListID string
	TargetSlot   model.Slot
}

func (s State) Dragging() bool { return s.Phase == PhaseDragging }

func (s State) Active() bool { return s.Phase != PhaseIdle }

// ScrollState is the scroll position and viewport geometry shared between the
// render pass and the gesture loop. Plain atomics: the gesture loop mutates
// the offset during auto-scroll without a round trip through the TUI, and the
// render pass picks it up on its next frame.
type ScrollState struct {
	offset         atomic.Int64
	viewportTop    atomic.Int64
	viewportHeight atomic.Int64
	contentHeight  atomic.Int64
	nativeDisabled atomic.Bool
}

func NewScrollState() *ScrollState { return &ScrollState{} }

func (s *ScrollState) Offset() int        { return int(s.offset.Load()) }
func (s *ScrollState) SetOffset(v int)    { s.offset.Store(int64(clampOffset(v, s.maxOffset()))) }
func (s *ScrollState) ContentHeight() int { return int(s.contentHeight.Load()) }

func (s *ScrollState) Viewport() Viewport {
	return Viewport{Top: int(s.viewportTop.Load()), Height: int(s.viewportHeight.Load())}
}

// SetGeometry records the viewport placement and total content height; called
// by the render pass on resize and whenever content changes.
func (s *ScrollState) SetGeometry(vp Viewport, contentHeight int) {
	s.viewportTop.Store(int64(vp.Top))
	s.viewportHeight.Store(int64(vp.Height))
	s.contentHeight.Store(int64(contentHeight))
	// Re-clamp: content may have shrunk under the current offset.
	s.SetOffset(s.Offset())
}

func (s *ScrollState) maxOffset() int {
	m := int(s.contentHeight.Load() - s.viewportHeight.Load())
	if m < 0 {
		m = 0
	}
	return m
}

func clampOffset(v, max int) int {
	if v < 0 {
		return 0
	}
	if v > max {
		return max
	}
	return v
}

// Native-scroll gating: while a drag is active the drag gesture has
// uncontested priority and wheel scrolling is suppressed.
func (s *ScrollState) DisableNative()      { s.nativeDisabled.Store(true) }
func (s *ScrollState) EnableNative()       { s.nativeDisabled.Store(false) }
func (s *ScrollState) NativeEnabled() bool { return !s.nativeDisabled.Load() }
