package tui

import (
	tea "github.com/charmbracelet/bubbletea"

	"triage-cli/internal/drag"
)

// handleMouse translates terminal mouse events into pointer events for the
// gesture loop. Wheel scrolling goes straight to the scroll state, but only
// while native scrolling isn't claimed by an active drag.
func (m appModel) handleMouse(msg tea.MouseMsg) (tea.Model, tea.Cmd) {
	if m.mode != modeBoard {
		return m, nil
	}

	switch msg.Button {
	case tea.MouseButtonWheelUp:
		m.scrollBy(-1)
		return m, nil
	case tea.MouseButtonWheelDown:
		m.scrollBy(1)
		return m, nil
	}

	switch msg.Action {
	case tea.MouseActionPress:
		if msg.Button != tea.MouseButtonLeft {
			return m, nil
		}
		// A press also moves the keyboard selection to the row under it.
		if entry, ok := drag.ItemAt(m.reg, msg.Y, m.scroll.Offset()); ok {
			m.selItemID = entry.ItemID
		}
		m.eng.Pointer(drag.PointerEvent{Kind: drag.PointerDown, X: msg.X, Y: msg.Y})
	case tea.MouseActionMotion:
		m.eng.Pointer(drag.PointerEvent{Kind: drag.PointerMove, X: msg.X, Y: msg.Y})
	case tea.MouseActionRelease:
		m.eng.Pointer(drag.PointerEvent{Kind: drag.PointerUp, X: msg.X, Y: msg.Y})
	}
	return m, nil
}
