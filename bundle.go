// Package statefulx implements behavioral dispatch for the State design
// pattern: a long-lived owner value whose operations are routed through a
// named, swappable bundle of behaviors instead of branching on a mode flag.
//
// An owner type declares its bundles once, eagerly validated, with exactly
// one bundle flagged default:
//
//	active := statefulx.NewBundle[*Window]("Active").
//		Default().
//		Op("rightClick", func(w *Window, args ...any) (any, error) {
//			fmt.Println("right clicked")
//			return nil, nil
//		})
//	inactive := statefulx.NewBundle[*Window]("Inactive").
//		Op("rightClick", func(w *Window, args ...any) (any, error) {
//			return nil, nil // deliberate no-op while inactive
//		})
//	window, err := statefulx.DeclareOwnerType("Window", active, inactive)
//
// Instances bind an owner value to the type and dispatch by name:
//
//	w := window.Bind(&Window{})
//	w.Invoke("rightClick")        // resolves against Active
//	w.Transition("Inactive")
//	w.Invoke("rightClick")        // resolves against Inactive
//
// The core is synchronous and unsynchronized; see package guarded for a
// per-instance serialization wrapper.
package statefulx

import (
	"fmt"
	"sort"
)

// Operation is a single bundle behavior. The owner is passed explicitly as
// the first parameter; there is no hidden binding.
type Operation[O any] func(owner O, args ...any) (any, error)

// BoundOp is an operation with the owner already bound, as returned by
// Instance.Op. Invoking it forwards only the caller-supplied arguments.
type BoundOp func(args ...any) (any, error)

// BundleDecl accumulates one bundle declaration for DeclareOwnerType.
// Builder mistakes (empty names, nil funcs, duplicate ops) are recorded
// and surfaced when the owner type is declared, not per call.
type BundleDecl[O any] struct {
	name   string
	ops    map[string]Operation[O]
	def    bool
	err    error
	sealed *Bundle[O]
}

// NewBundle starts a bundle declaration with the given name.
func NewBundle[O any](name string) *BundleDecl[O] {
	d := &BundleDecl[O]{
		name: name,
		ops:  make(map[string]Operation[O]),
	}
	if name == "" {
		d.fail(fmt.Errorf("bundle name is required: %w", ErrDefinition))
	}
	return d
}

// Op adds a named operation to the declaration.
func (d *BundleDecl[O]) Op(name string, fn Operation[O]) *BundleDecl[O] {
	switch {
	case name == "":
		d.fail(fmt.Errorf("bundle %q: operation name is required: %w", d.name, ErrDefinition))
	case fn == nil:
		d.fail(fmt.Errorf("bundle %q: operation %q has nil func: %w", d.name, name, ErrDefinition))
	default:
		if _, exists := d.ops[name]; exists {
			d.fail(fmt.Errorf("bundle %q: duplicate operation %q: %w", d.name, name, ErrDefinition))
			return d
		}
		d.ops[name] = fn
	}
	return d
}

// Default flags this bundle as the owner type's default.
func (d *BundleDecl[O]) Default() *BundleDecl[O] {
	d.def = true
	return d
}

// Name returns the declared bundle name.
func (d *BundleDecl[O]) Name() string { return d.name }

// Descriptor returns the immutable descriptor minted when this declaration
// was bound to an owner type. A declaration that has not been through
// DeclareOwnerType has no descriptor: bundles are behavior sources, never
// standalone values, so the attempt fails with ErrInstantiation.
func (d *BundleDecl[O]) Descriptor() (*Bundle[O], error) {
	if d.sealed == nil {
		return nil, fmt.Errorf("bundle %q is not bound to an owner type: %w", d.name, ErrInstantiation)
	}
	return d.sealed, nil
}

// fail keeps the first builder error only.
func (d *BundleDecl[O]) fail(err error) {
	if d.err == nil {
		d.err = err
	}
}

// seal copies the declaration into an immutable descriptor owned by the
// named owner type. Called by DeclareOwnerType exactly once per decl.
func (d *BundleDecl[O]) seal(ownerType string) (*Bundle[O], error) {
	if d.err != nil {
		return nil, d.err
	}
	if d.sealed != nil {
		return nil, fmt.Errorf("bundle %q is already bound to owner type %q: %w",
			d.name, d.sealed.ownerType, ErrDefinition)
	}
	ops := make(map[string]Operation[O], len(d.ops))
	for name, fn := range d.ops {
		ops[name] = fn
	}
	d.sealed = &Bundle[O]{
		name:      d.name,
		ownerType: ownerType,
		ops:       ops,
		def:       d.def,
	}
	return d.sealed, nil
}

// Bundle is an immutable behavior descriptor scoped to one owner type.
// Bundles hold no state and are shared read-only by every instance of the
// type; the only way to obtain one is through DeclareOwnerType.
type Bundle[O any] struct {
	name      string
	ownerType string
	ops       map[string]Operation[O]
	def       bool
}

// Name returns the bundle name.
func (b *Bundle[O]) Name() string { return b.name }

// OwnerType returns the name of the owner type this bundle belongs to.
func (b *Bundle[O]) OwnerType() string { return b.ownerType }

// IsDefault reports whether this bundle is its owner type's default.
func (b *Bundle[O]) IsDefault() bool { return b.def }

// Has reports whether the bundle defines the named operation.
func (b *Bundle[O]) Has(op string) bool {
	_, ok := b.ops[op]
	return ok
}

// Operations returns the bundle's operation names, sorted.
func (b *Bundle[O]) Operations() []string {
	names := make([]string, 0, len(b.ops))
	for name := range b.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// resolve looks the operation up in this bundle only. No fallback.
func (b *Bundle[O]) resolve(op string) (Operation[O], bool) {
	fn, ok := b.ops[op]
	return fn, ok
}
