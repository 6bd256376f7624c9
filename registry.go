package statefulx

import (
	"fmt"
	"sync"
)

// Process-wide owner-type table. Written during program initialization
// (or lazily, idempotently) and read-only afterward; each name maps to
// exactly one declared owner type for the life of the process.
var (
	typesMu sync.RWMutex
	types   = make(map[string]any)
)

// RegisterOwnerType publishes an owner type in the process-wide table
// under its declared name. Registering a name twice is a definition error:
// the table is write-once per name.
func RegisterOwnerType[O any](t *OwnerType[O]) error {
	if t == nil {
		return fmt.Errorf("nil owner type: %w", ErrDefinition)
	}
	typesMu.Lock()
	defer typesMu.Unlock()
	if _, exists := types[t.name]; exists {
		return fmt.Errorf("owner type %q already registered: %w", t.name, ErrDefinition)
	}
	types[t.name] = t
	return nil
}

// LookupOwnerType retrieves a registered owner type by name. The second
// result is false if the name is unregistered or was registered for a
// different owner Go type.
func LookupOwnerType[O any](name string) (*OwnerType[O], bool) {
	typesMu.RLock()
	v, ok := types[name]
	typesMu.RUnlock()
	if !ok {
		return nil, false
	}
	t, ok := v.(*OwnerType[O])
	return t, ok
}

// RegisteredOwnerTypes returns the names currently in the table.
func RegisteredOwnerTypes() []string {
	typesMu.RLock()
	defer typesMu.RUnlock()
	names := make([]string, 0, len(types))
	for name := range types {
		names = append(names, name)
	}
	return names
}
