package statefulx

import (
	"fmt"
	"sort"
)

// OwnerType is the immutable bundle registry for one stateful owner type.
// It is built once by DeclareOwnerType and never mutated afterward, so it
// is safe to share across instances and goroutines without locking.
type OwnerType[O any] struct {
	name    string
	bundles map[string]*Bundle[O]
	def     *Bundle[O]
}

// DeclareOwnerType validates the declared bundles and builds the owner
// type's registry. Exactly one bundle must be flagged default; zero or
// multiple is a definition error, detected here and never at first use.
func DeclareOwnerType[O any](name string, decls ...*BundleDecl[O]) (*OwnerType[O], error) {
	if name == "" {
		return nil, fmt.Errorf("owner type name is required: %w", ErrDefinition)
	}
	if len(decls) == 0 {
		return nil, fmt.Errorf("owner type %q declares no bundles: %w", name, ErrDefinition)
	}

	// Validate the whole declaration before sealing anything: a failed
	// declaration must leave every decl unbound, so Descriptor() keeps
	// failing and a corrected re-declare succeeds.
	seen := make(map[string]bool, len(decls))
	var defaults []string
	for _, d := range decls {
		if d == nil {
			return nil, fmt.Errorf("owner type %q: nil bundle declaration: %w", name, ErrDefinition)
		}
		if d.err != nil {
			return nil, fmt.Errorf("owner type %q: %w", name, d.err)
		}
		if d.sealed != nil {
			return nil, fmt.Errorf("owner type %q: bundle %q is already bound to owner type %q: %w",
				name, d.name, d.sealed.ownerType, ErrDefinition)
		}
		if seen[d.name] {
			return nil, fmt.Errorf("owner type %q: duplicate bundle %q: %w", name, d.name, ErrDefinition)
		}
		seen[d.name] = true
		if d.def {
			defaults = append(defaults, d.name)
		}
	}

	switch len(defaults) {
	case 0:
		return nil, fmt.Errorf("owner type %q has no default bundle: %w", name, ErrDefinition)
	case 1:
	default:
		sort.Strings(defaults)
		return nil, fmt.Errorf("owner type %q has more than one default bundle: %v: %w",
			name, defaults, ErrDefinition)
	}

	t := &OwnerType[O]{
		name:    name,
		bundles: make(map[string]*Bundle[O], len(decls)),
	}
	for _, d := range decls {
		b, err := d.seal(name)
		if err != nil {
			return nil, fmt.Errorf("owner type %q: %w", name, err)
		}
		t.bundles[b.name] = b
	}
	t.def = t.bundles[defaults[0]]

	return t, nil
}

// MustDeclareOwnerType is DeclareOwnerType that panics on definition
// errors, for package-level type tables built at program initialization.
func MustDeclareOwnerType[O any](name string, decls ...*BundleDecl[O]) *OwnerType[O] {
	t, err := DeclareOwnerType(name, decls...)
	if err != nil {
		panic(err)
	}
	return t
}

// Name returns the owner type name.
func (t *OwnerType[O]) Name() string { return t.name }

// Bundle looks a bundle up by name.
func (t *OwnerType[O]) Bundle(name string) (*Bundle[O], bool) {
	b, ok := t.bundles[name]
	return b, ok
}

// Default returns the bundle selected at instance construction.
func (t *OwnerType[O]) Default() *Bundle[O] { return t.def }

// Bundles returns the registered bundle names, sorted.
func (t *OwnerType[O]) Bundles() []string {
	names := make([]string, 0, len(t.bundles))
	for name := range t.bundles {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// OperationNames returns the union of operation names across all bundles,
// sorted. Diagnostic only; dispatch consults the active bundle alone.
func (t *OwnerType[O]) OperationNames() []string {
	seen := map[string]bool{}
	var names []string
	for _, b := range t.bundles {
		for op := range b.ops {
			if !seen[op] {
				seen[op] = true
				names = append(names, op)
			}
		}
	}
	sort.Strings(names)
	return names
}

// Bind constructs an instance around the given owner value, with the
// registry's default bundle active.
func (t *OwnerType[O]) Bind(owner O) *Instance[O] {
	return &Instance[O]{typ: t, owner: owner, active: t.def}
}

// BindInitial constructs an instance with a specific bundle active instead
// of the default.
func (t *OwnerType[O]) BindInitial(owner O, bundle string) (*Instance[O], error) {
	b, ok := t.bundles[bundle]
	if !ok {
		return nil, fmt.Errorf("owner type %q has no bundle %q: %w", t.name, bundle, ErrUnknownBundle)
	}
	return &Instance[O]{typ: t, owner: owner, active: b}, nil
}
