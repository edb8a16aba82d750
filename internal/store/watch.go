package store

import (
	"path/filepath"
	"sync"
	"time"

	"github.com/fsnotify/fsnotify"

	"triage-cli/internal/logging"
)

const watchDebounce = 150 * time.Millisecond

// Watcher signals when another process rewrites the board file, so open
// screens can reload and stay in sync. Bursts of fs events (temp write +
// rename) are coalesced into one notification.
type Watcher struct {
	fsw  *fsnotify.Watcher
	ch   chan struct{}
	done chan struct{}
	stop sync.Once
}

// Watch starts watching the store directory for board changes.
func (s Store) Watch() (*Watcher, error) {
	if err := s.Ensure(); err != nil {
		return nil, err
	}
	fsw, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, err
	}
	if err := fsw.Add(s.Dir); err != nil {
		fsw.Close()
		return nil, err
	}
	w := &Watcher{
		fsw:  fsw,
		ch:   make(chan struct{}, 1),
		done: make(chan struct{}),
	}
	go w.loop()
	return w, nil
}

// C delivers one signal per (debounced) external change.
func (w *Watcher) C() <-chan struct{} { return w.ch }

func (w *Watcher) Close() {
	w.stop.Do(func() {
		close(w.done)
		w.fsw.Close()
	})
}

func (w *Watcher) loop() {
	var timer *time.Timer
	var timerC <-chan time.Time
	for {
		select {
		case ev, ok := <-w.fsw.Events:
			if !ok {
				return
			}
			if filepath.Base(ev.Name) != boardFileName {
				continue
			}
			if !ev.Has(fsnotify.Write) && !ev.Has(fsnotify.Create) && !ev.Has(fsnotify.Rename) {
				continue
			}
			if timer == nil {
				timer = time.NewTimer(watchDebounce)
				timerC = timer.C
			} else {
				timer.Reset(watchDebounce)
			}
		case <-timerC:
			timer = nil
			timerC = nil
			select {
			case w.ch <- struct{}{}:
			default: // a signal is already pending
			}
		case err, ok := <-w.fsw.Errors:
			if !ok {
				return
			}
			logging.Warn().Err(err).Msg("store watcher error")
		case <-w.done:
			return
		}
	}
}
