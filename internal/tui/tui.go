// Package tui is the interactive triage board: three stacked lists in one
// scrolling viewport, with press-and-hold mouse drag to move items between
// slots.
package tui

import (
	"context"
	"fmt"

	tea "github.com/charmbracelet/bubbletea"

	"triage-cli/internal/drag"
	"triage-cli/internal/layout"
	"triage-cli/internal/logging"
	"triage-cli/internal/mutate"
	"triage-cli/internal/store"
)

// Run loads the board from dir and blocks until the user quits.
func Run(dir string) error {
	s := store.Store{Dir: dir}
	board, err := s.Load()
	if err != nil {
		return fmt.Errorf("load board: %w", err)
	}

	evlog, err := s.OpenEventLog(context.Background())
	if err != nil {
		logging.Warn().Err(err).Msg("event log unavailable")
		evlog = nil
	}

	reg := layout.NewRegistry()
	scroll := drag.NewScrollState()
	fb := &termFeedback{}
	eng := drag.NewEngine(drag.Config{}, reg, scroll, fb)
	ctrl := newController(s, board, eng.Commits(), evlog)

	m := newAppModel(s, board, reg, scroll, eng, ctrl)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithMouseAllMotion())

	// Everything that happens off the TUI goroutine reaches it through Send.
	fb.send = p.Send
	unsubscribe := eng.Session().Subscribe(func() { p.Send(sessionMsg{}) })
	ctrl.onBoard = func(b store.Board) { p.Send(boardMsg{board: b}) }
	ctrl.onPending = func(req mutate.DropRequest) { p.Send(pendingMsg{req: req}) }

	watcher, err := s.Watch()
	if err != nil {
		logging.Warn().Err(err).Msg("file watcher unavailable")
	} else {
		go func() {
			for range watcher.C() {
				p.Send(externalChangeMsg{})
			}
		}()
	}

	eng.Run()
	ctrl.run()

	_, runErr := p.Run()

	unsubscribe()
	eng.Stop()
	ctrl.stop()
	if watcher != nil {
		watcher.Close()
	}
	if evlog != nil {
		evlog.Close()
	}
	return runErr
}
