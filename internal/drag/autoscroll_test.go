package drag

import "testing"

func TestAutoScrollMiddleOfViewportDoesNothing(t *testing.T) {
	vp := Viewport{Top: 1, Height: 20}
	if next, ok := AutoScroll(10, vp, 5, 60); ok {
		t.Fatalf("scrolled to %d from the middle of the viewport", next)
	}
}

func TestAutoScrollTopHotZone(t *testing.T) {
	vp := Viewport{Top: 1, Height: 20}
	next, ok := AutoScroll(1, vp, 5, 60)
	if !ok || next >= 5 {
		t.Fatalf("expected upward scroll from offset 5, got %d (ok=%v)", next, ok)
	}
}

func TestAutoScrollBottomHotZone(t *testing.T) {
	vp := Viewport{Top: 1, Height: 20}
	next, ok := AutoScroll(20, vp, 5, 60)
	if !ok || next <= 5 {
		t.Fatalf("expected downward scroll from offset 5, got %d (ok=%v)", next, ok)
	}
}

func TestAutoScrollSpeedGrowsWithPenetration(t *testing.T) {
	vp := Viewport{Top: 0, Height: 30}
	shallow, _ := AutoScroll(27, vp, 10, 100) // first hot-zone row
	deep, _ := AutoScroll(29, vp, 10, 100)    // deepest hot-zone row
	if deep-10 < shallow-10 {
		t.Fatalf("deeper penetration scrolled less: shallow=%d deep=%d", shallow, deep)
	}
	if deep-10 <= 0 || shallow-10 <= 0 {
		t.Fatalf("hot zone did not scroll: shallow=%d deep=%d", shallow, deep)
	}
}

func TestAutoScrollClampsAtEdges(t *testing.T) {
	vp := Viewport{Top: 1, Height: 20}

	// Already at the top: the top hot zone must not report movement.
	if next, ok := AutoScroll(1, vp, 0, 60); ok {
		t.Fatalf("scrolled past the top to %d", next)
	}
	// Already at max offset: the bottom hot zone must not report movement.
	if next, ok := AutoScroll(20, vp, 40, 60); ok {
		t.Fatalf("scrolled past the bottom to %d", next)
	}
	// One row shy of max: movement happens but clamps.
	next, ok := AutoScroll(20, vp, 39, 60)
	if !ok || next != 40 {
		t.Fatalf("expected clamp to 40, got %d (ok=%v)", next, ok)
	}
}

func TestAutoScrollOutsideViewport(t *testing.T) {
	vp := Viewport{Top: 1, Height: 20}
	if _, ok := AutoScroll(0, vp, 5, 60); ok {
		t.Fatal("row above the viewport triggered scrolling")
	}
	if _, ok := AutoScroll(25, vp, 5, 60); ok {
		t.Fatal("row below the viewport triggered scrolling")
	}
}

func TestScrollStateClamping(t *testing.T) {
	s := NewScrollState()
	s.SetGeometry(Viewport{Top: 1, Height: 10}, 25)

	s.SetOffset(-3)
	if got := s.Offset(); got != 0 {
		t.Fatalf("negative offset clamped to %d, want 0", got)
	}
	s.SetOffset(100)
	if got := s.Offset(); got != 15 {
		t.Fatalf("oversized offset clamped to %d, want 15", got)
	}
	// Content shrinks under the current offset: SetGeometry re-clamps.
	s.SetGeometry(Viewport{Top: 1, Height: 10}, 12)
	if got := s.Offset(); got != 2 {
		t.Fatalf("offset after shrink = %d, want 2", got)
	}
}

func TestScrollStateNativeGating(t *testing.T) {
	s := NewScrollState()
	if !s.NativeEnabled() {
		t.Fatal("native scrolling should start enabled")
	}
	s.DisableNative()
	if s.NativeEnabled() {
		t.Fatal("native scrolling still enabled during drag")
	}
	s.EnableNative()
	if !s.NativeEnabled() {
		t.Fatal("native scrolling not restored")
	}
}
