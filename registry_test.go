package statefulx_test

import (
	"errors"
	"testing"

	. "github.com/comalice/statefulx"
)

// The process-wide table is write-once per name, so each test registers
// under a name of its own.

func TestRegisterAndLookupOwnerType(t *testing.T) {
	typ, err := DeclareOwnerType("registry-test/Door",
		NewBundle[*widget]("Open").Default().Op("knock", noop),
		NewBundle[*widget]("Closed").Op("knock", noop),
	)
	if err != nil {
		t.Fatal(err)
	}

	if err := RegisterOwnerType(typ); err != nil {
		t.Fatal(err)
	}

	got, ok := LookupOwnerType[*widget]("registry-test/Door")
	if !ok || got != typ {
		t.Fatalf("lookup: got %v, %v", got, ok)
	}

	found := false
	for _, name := range RegisteredOwnerTypes() {
		if name == "registry-test/Door" {
			found = true
		}
	}
	if !found {
		t.Error("registered name missing from enumeration")
	}
}

func TestRegisterOwnerTypeRejectsDuplicates(t *testing.T) {
	typ, err := DeclareOwnerType("registry-test/Gate",
		NewBundle[*widget]("Up").Default())
	if err != nil {
		t.Fatal(err)
	}

	if err := RegisterOwnerType(typ); err != nil {
		t.Fatal(err)
	}
	if err := RegisterOwnerType(typ); !errors.Is(err, ErrDefinition) {
		t.Errorf("expected ErrDefinition on duplicate registration, got %v", err)
	}
}

func TestLookupOwnerTypeMisses(t *testing.T) {
	if _, ok := LookupOwnerType[*widget]("registry-test/Nothing"); ok {
		t.Error("lookup of unregistered name must miss")
	}

	// Registered under a different owner Go type.
	typ, err := DeclareOwnerType("registry-test/Typed",
		NewBundle[*widget]("Only").Default())
	if err != nil {
		t.Fatal(err)
	}
	if err := RegisterOwnerType(typ); err != nil {
		t.Fatal(err)
	}
	if _, ok := LookupOwnerType[*Window]("registry-test/Typed"); ok {
		t.Error("lookup with mismatched owner type must miss")
	}

	if err := RegisterOwnerType[*widget](nil); !errors.Is(err, ErrDefinition) {
		t.Errorf("expected ErrDefinition for nil owner type, got %v", err)
	}
}
