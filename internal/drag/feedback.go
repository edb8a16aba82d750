package drag

// Feedback receives the four haptic-style cues the drag engine emits. All
// calls are fire-and-forget from the gesture context; implementations must
// not block (the TUI's rings the terminal bell and flashes the status line).
type Feedback interface {
	Pickup()       // drag activated (medium impact)
	SlotChanged()  // resolved slot moved (light/selection)
	DropSuccess()  // valid drop handed off to commit
	DropRejected() // released outside any list
}

// NopFeedback discards all cues.
type NopFeedback struct{}

func (NopFeedback) Pickup()       {}
func (NopFeedback) SlotChanged()  {}
func (NopFeedback) DropSuccess()  {}
func (NopFeedback) DropRejected() {}
