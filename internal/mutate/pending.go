package mutate

import (
	"errors"
	"sync"

	"triage-cli/internal/model"
)

// PendingDrops holds the single deferred drop awaiting extra user input
// (e.g. a drop into Today that still needs a time). Begin stores the drop
// parameters without touching the collection; Confirm releases them with the
// extra data merged in; Cancel discards them. At most one pending drop exists
// at a time.
type PendingDrops struct {
	mu    sync.Mutex
	cur   *DropRequest
	patch *model.ItemPatch
}

var (
	ErrPendingExists = errors.New("a pending drop already exists")
	ErrNoPending     = errors.New("no pending drop")
)

func NewPendingDrops() *PendingDrops { return &PendingDrops{} }

// Begin records the drop parameters. The collection is not mutated.
func (p *PendingDrops) Begin(req DropRequest, patch *model.ItemPatch) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur != nil {
		return ErrPendingExists
	}
	r := req
	p.cur = &r
	p.patch = patch
	return nil
}

// Current returns the stored request, if any.
func (p *PendingDrops) Current() (DropRequest, bool) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return DropRequest{}, false
	}
	return *p.cur, true
}

// Confirm releases the stored drop with extra merged onto the stored patch.
// The caller runs ApplyDrop with the result; after Confirm the pending slot
// is free again.
func (p *PendingDrops) Confirm(extra *model.ItemPatch) (DropRequest, *model.ItemPatch, error) {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.cur == nil {
		return DropRequest{}, nil, ErrNoPending
	}
	req := *p.cur
	patch := p.patch.Merge(extra)
	p.cur = nil
	p.patch = nil
	return req, patch, nil
}

// Cancel discards the stored parameters. No mutation has happened or will.
func (p *PendingDrops) Cancel() {
	p.mu.Lock()
	p.cur = nil
	p.patch = nil
	p.mu.Unlock()
}
