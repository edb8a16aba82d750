package drag

// Viewport describes the visible board area in absolute screen rows.
type Viewport struct {
	Top    int
	Height int
}

func (v Viewport) Bottom() int { return v.Top + v.Height }

// Auto-scroll tuning. HotZoneRows is the edge band that triggers scrolling;
// speed grows with how deep the finger sits inside the band. Values are
// implementation-tunable, not contract.
const (
	HotZoneRows     = 3
	autoScrollNum   = 2 // rows scrolled per tick at full penetration...
	autoScrollDen   = 3 // ...scaled by penetration/HotZoneRows * num/den
	minScrollPerTik = 1
)

// AutoScroll computes the new scroll offset for a finger at fingerY. It runs
// on every drag tick on the gesture context and never waits on anything;
// outside both hot zones it reports ok=false and leaves the offset alone.
// The result is clamped to [0, contentHeight - viewport.Height].
func AutoScroll(fingerY int, vp Viewport, offset, contentHeight int) (int, bool) {
	if vp.Height <= 0 {
		return offset, false
	}
	maxOffset := contentHeight - vp.Height
	if maxOffset < 0 {
		maxOffset = 0
	}

	topEdge := vp.Top + HotZoneRows
	bottomEdge := vp.Bottom() - HotZoneRows

	switch {
	case fingerY < vp.Top || fingerY >= vp.Bottom():
		return offset, false
	case fingerY < topEdge:
		pen := topEdge - fingerY // 1..HotZoneRows
		next := offset - speedFor(pen)
		if next < 0 {
			next = 0
		}
		if next == offset {
			return offset, false
		}
		return next, true
	case fingerY >= bottomEdge:
		pen := fingerY - bottomEdge + 1
		next := offset + speedFor(pen)
		if next > maxOffset {
			next = maxOffset
		}
		if next == offset {
			return offset, false
		}
		return next, true
	}
	return offset, false
}

func speedFor(penetration int) int {
	if penetration > HotZoneRows {
		penetration = HotZoneRows
	}
	v := penetration * autoScrollNum / autoScrollDen
	if v < minScrollPerTik {
		v = minScrollPerTik
	}
	return v
}
