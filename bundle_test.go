package statefulx_test

import (
	"errors"
	"testing"

	. "github.com/comalice/statefulx"
)

// A bundle is a behavior source, never a standalone value: materializing a
// descriptor from a declaration that no owner type has adopted must fail.
func TestStandaloneBundleFailsInstantiation(t *testing.T) {
	decl := NewBundle[*widget]("Orphan").Op("run", noop)

	if _, err := decl.Descriptor(); !errors.Is(err, ErrInstantiation) {
		t.Fatalf("expected ErrInstantiation, got %v", err)
	}
}

func TestDescriptorAvailableOnceBound(t *testing.T) {
	decl := NewBundle[*widget]("Adopted").Default().Op("run", noop)

	typ, err := DeclareOwnerType("Host", decl)
	if err != nil {
		t.Fatal(err)
	}

	b, err := decl.Descriptor()
	if err != nil {
		t.Fatal(err)
	}
	if b.Name() != "Adopted" || b.OwnerType() != "Host" || !b.IsDefault() {
		t.Errorf("descriptor: name %q owner %q default %v", b.Name(), b.OwnerType(), b.IsDefault())
	}

	// Same descriptor the registry holds.
	reg, _ := typ.Bundle("Adopted")
	if reg != b {
		t.Error("registry and declaration must share one descriptor")
	}
}

func TestBundleIntrospection(t *testing.T) {
	decl := NewBundle[*widget]("Ops").Default().
		Op("stop", noop).
		Op("start", noop)

	if _, err := DeclareOwnerType("Svc", decl); err != nil {
		t.Fatal(err)
	}
	b, err := decl.Descriptor()
	if err != nil {
		t.Fatal(err)
	}

	if !b.Has("start") || b.Has("restart") {
		t.Error("Has: wrong membership")
	}

	ops := b.Operations()
	if len(ops) != 2 || ops[0] != "start" || ops[1] != "stop" {
		t.Errorf("expected sorted [start stop], got %v", ops)
	}
}

// Descriptors are shared read-only across every instance of the type.
func TestDescriptorSharedAcrossInstances(t *testing.T) {
	typ, err := DeclareOwnerType("Shared",
		NewBundle[*widget]("Only").Default().Op("run", noop))
	if err != nil {
		t.Fatal(err)
	}

	a := typ.Bind(&widget{})
	b := typ.Bind(&widget{})
	if a.ActiveBundle() != b.ActiveBundle() {
		t.Error("instances of one type must share bundle descriptors")
	}
}
