package drag

import (
	"sync"
	"sync/atomic"
)

// Cell is an atomically-observable value shared between the gesture and logic
// contexts. Load never blocks on a writer mid-update: readers see either the
// previous snapshot or the new one, never a half-written value. Store
// notifies subscribers synchronously; callbacks must be cheap and one-way
// (the TUI's just posts a message to its program).
type Cell[T any] struct {
	v atomic.Pointer[T]

	mu   sync.Mutex
	subs map[int]func()
	next int
}

func NewCell[T any](initial T) *Cell[T] {
	c := &Cell[T]{subs: make(map[int]func())}
	c.v.Store(&initial)
	return c
}

func (c *Cell[T]) Load() T {
	return *c.v.Load()
}

func (c *Cell[T]) Store(v T) {
	c.v.Store(&v)
	c.mu.Lock()
	subs := make([]func(), 0, len(c.subs))
	for _, fn := range c.subs {
		subs = append(subs, fn)
	}
	c.mu.Unlock()
	for _, fn := range subs {
		fn()
	}
}

// Subscribe registers fn to run after every Store. The returned function
// removes the subscription; it is safe to call more than once.
func (c *Cell[T]) Subscribe(fn func()) (cancel func()) {
	c.mu.Lock()
	id := c.next
	c.next++
	c.subs[id] = fn
	c.mu.Unlock()
	return func() {
		c.mu.Lock()
		delete(c.subs, id)
		c.mu.Unlock()
	}
}
