package statefulx

import "errors"

// Sentinel errors for the dispatch engine. Callers match with errors.Is;
// wrapped messages carry the offending names.
var (
	// ErrDefinition reports an invalid owner-type declaration: zero or
	// multiple default bundles, duplicate names, or a malformed builder.
	// Fatal to the type; it is never registered.
	ErrDefinition = errors.New("invalid owner type definition")

	// ErrInstantiation reports an attempt to materialize a behavior
	// bundle outside of an owner type. Always a programmer error.
	ErrInstantiation = errors.New("behavior bundle cannot exist standalone")

	// ErrUnsupportedOperation reports a dispatch against an operation
	// the active bundle does not define.
	ErrUnsupportedOperation = errors.New("operation not supported by active bundle")

	// ErrUnknownBundle reports a transition (or initial bind) naming a
	// bundle absent from the owner type's registry.
	ErrUnknownBundle = errors.New("unknown bundle")
)
