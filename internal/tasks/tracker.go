package tasks

import (
	"context"
	"sync"
)

// Ticket identifies one generation of work started by a [Tracker].
type Ticket uint64

// Tracker hands out generations and cancels the work of the previous one.
//
// The zero value is ready to use.
type Tracker struct {
	mu     sync.Mutex
	gen    Ticket
	cancel context.CancelFunc
}

// Begin advances the generation, cancels the previous generation's context and
// returns a context derived from parent for the new one.
func (t *Tracker) Begin(parent context.Context) (context.Context, Ticket) {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
	}

	ctx, cancel := context.WithCancel(parent)
	t.gen++
	t.cancel = cancel
	return ctx, t.gen
}

// Current reports whether ticket belongs to the latest generation.
func (t *Tracker) Current(ticket Ticket) bool {
	t.mu.Lock()
	defer t.mu.Unlock()
	return ticket == t.gen
}

// Cancel cancels the current generation's context and advances the generation
// so any result still in flight is treated as stale.
func (t *Tracker) Cancel() {
	t.mu.Lock()
	defer t.mu.Unlock()

	if t.cancel != nil {
		t.cancel()
		t.cancel = nil
	}
	t.gen++
}
