package testutil

import (
	"github.com/comalice/statefulx"
	"github.com/comalice/statefulx/guarded"
)

// Dispatcher is the common dispatch surface of a bare instance and the
// guarded wrapper. It lets one scenario suite run against both.
type Dispatcher interface {
	Invoke(op string, args ...any) (any, error)
	Transition(bundle string) error
	ActiveBundle() string
}

// InstanceAdapter exposes a bare statefulx.Instance as a Dispatcher.
type InstanceAdapter[O any] struct {
	In *statefulx.Instance[O]
}

func (a InstanceAdapter[O]) Invoke(op string, args ...any) (any, error) {
	return a.In.Invoke(op, args...)
}

func (a InstanceAdapter[O]) Transition(bundle string) error {
	return a.In.Transition(bundle)
}

func (a InstanceAdapter[O]) ActiveBundle() string {
	return a.In.ActiveBundle().Name()
}

// NewInstanceAdapter wraps an instance.
func NewInstanceAdapter[O any](in *statefulx.Instance[O]) InstanceAdapter[O] {
	return InstanceAdapter[O]{In: in}
}

// NewGuardedAdapter wraps an instance in the guarded serializer.
// *guarded.Owner satisfies Dispatcher directly.
func NewGuardedAdapter[O any](in *statefulx.Instance[O]) *guarded.Owner[O] {
	return guarded.New(in)
}
