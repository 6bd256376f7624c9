// Package guarded wraps a statefulx.Instance with one mutex per instance,
// for callers that need to dispatch and transition from multiple
// goroutines. The core engine is deliberately unsynchronized; this package
// is the external-serialization pattern it prescribes, kept out of the hot
// path of single-goroutine users.
package guarded

import (
	"sync"

	"github.com/comalice/statefulx"
)

// Owner serializes all access to one instance. The zero value is not
// usable; construct with New.
type Owner[O any] struct {
	mu sync.Mutex
	in *statefulx.Instance[O]
}

// New wraps an instance. The instance must not be used directly afterward;
// every dispatch and transition must go through the wrapper.
func New[O any](in *statefulx.Instance[O]) *Owner[O] {
	return &Owner[O]{in: in}
}

// Invoke dispatches through the active bundle under the instance lock.
func (g *Owner[O]) Invoke(op string, args ...any) (any, error) {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.in.Invoke(op, args...)
}

// Transition swaps the active bundle under the instance lock.
func (g *Owner[O]) Transition(bundle string) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.in.Transition(bundle)
}

// ActiveBundle returns the name of the bundle currently governing
// dispatch.
func (g *Owner[O]) ActiveBundle() string {
	g.mu.Lock()
	defer g.mu.Unlock()
	return g.in.ActiveBundle().Name()
}

// Do runs fn with the instance lock held, for multi-step sequences that
// must not interleave with other goroutines (e.g. inspect-then-transition).
// fn must not retain the instance beyond the call.
func (g *Owner[O]) Do(fn func(in *statefulx.Instance[O]) error) error {
	g.mu.Lock()
	defer g.mu.Unlock()
	return fn(g.in)
}
