package statefulx

import "fmt"

// Instance pairs one owner value with its currently active bundle. All
// dispatch and transitions on the owner go through here.
//
// The active-bundle reference is unsynchronized. Concurrent Invoke and
// Transition from multiple goroutines is a data race; serialize access to
// each instance externally (package guarded provides one way).
type Instance[O any] struct {
	typ    *OwnerType[O]
	owner  O
	active *Bundle[O]
}

// Type returns the owner type this instance was bound by.
func (in *Instance[O]) Type() *OwnerType[O] { return in.typ }

// Owner returns the wrapped owner value.
func (in *Instance[O]) Owner() O { return in.owner }

// ActiveBundle returns the bundle currently governing dispatch.
func (in *Instance[O]) ActiveBundle() *Bundle[O] { return in.active }

// Op resolves the named operation against the active bundle and returns it
// with the owner bound as first argument. The returned callable pins the
// operation resolved now; a later transition does not redirect it.
//
// An operation absent from the active bundle fails with
// ErrUnsupportedOperation. Only the active bundle is consulted.
func (in *Instance[O]) Op(name string) (BoundOp, error) {
	fn, ok := in.active.resolve(name)
	if !ok {
		return nil, fmt.Errorf("bundle %q of %s has no operation %q: %w",
			in.active.name, in.typ.name, name, ErrUnsupportedOperation)
	}
	owner := in.owner
	return func(args ...any) (any, error) {
		return fn(owner, args...)
	}, nil
}

// Invoke dispatches the named operation through the active bundle,
// forwarding the owner as the operation's first argument followed by args.
// The owner injection is invisible to the caller.
func (in *Instance[O]) Invoke(name string, args ...any) (any, error) {
	fn, ok := in.active.resolve(name)
	if !ok {
		return nil, fmt.Errorf("bundle %q of %s has no operation %q: %w",
			in.active.name, in.typ.name, name, ErrUnsupportedOperation)
	}
	return fn(in.owner, args...)
}

// Transition swaps the active bundle to the named one. A name absent from
// the registry fails with ErrUnknownBundle and leaves the active bundle
// untouched. Transitioning to the already-active bundle is a no-op swap.
// No entry or exit hooks run; this is a pure reference replacement.
func (in *Instance[O]) Transition(bundle string) error {
	b, ok := in.typ.bundles[bundle]
	if !ok {
		return fmt.Errorf("owner type %q has no bundle %q: %w", in.typ.name, bundle, ErrUnknownBundle)
	}
	in.active = b
	return nil
}
