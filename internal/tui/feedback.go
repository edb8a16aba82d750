package tui

import (
	"os"

	tea "github.com/charmbracelet/bubbletea"
)

type feedbackKind int

const (
	feedbackPickup feedbackKind = iota
	feedbackSlotChanged
	feedbackDropSuccess
	feedbackDropRejected
)

type feedbackMsg struct{ kind feedbackKind }

// termFeedback is the terminal stand-in for a haptic device: an audible bell
// for the strong cues plus a status-line flash, delivered to the TUI as a
// message. All methods are called fire-and-forget from the gesture context.
type termFeedback struct {
	send func(tea.Msg)
}

func (f *termFeedback) emit(kind feedbackKind, bell bool) {
	if bell {
		// The bell is invisible to the renderer, so writing it directly is
		// safe even on the alternate screen.
		_, _ = os.Stdout.WriteString("\a")
	}
	if f.send != nil {
		f.send(feedbackMsg{kind: kind})
	}
}

func (f *termFeedback) Pickup()       { f.emit(feedbackPickup, true) }
func (f *termFeedback) SlotChanged()  { f.emit(feedbackSlotChanged, false) }
func (f *termFeedback) DropSuccess()  { f.emit(feedbackDropSuccess, false) }
func (f *termFeedback) DropRejected() { f.emit(feedbackDropRejected, true) }
