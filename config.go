package statefulx

import (
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// OwnerTypeConfig is the declarative form of an owner-type declaration:
// the bundle table as data, with operation implementations bound by name
// at declare time. Useful when the bundle layout is authored in a config
// file and reviewed separately from the Go implementations.
type OwnerTypeConfig struct {
	Name    string                   `json:"name" yaml:"name" toml:"name"`
	Bundles map[string]*BundleConfig `json:"bundles" yaml:"bundles" toml:"bundles"`
}

// BundleConfig declares one bundle: its default flag and the operation
// names it implements.
type BundleConfig struct {
	Default    bool     `json:"default,omitempty" yaml:"default,omitempty" toml:"default"`
	Operations []string `json:"operations" yaml:"operations" toml:"operations"`
}

// Validate checks the declarative table against the same rules
// DeclareOwnerType enforces:
// - Non-empty owner type name
// - At least one bundle
// - Exactly one bundle flagged default
// - Non-empty, non-duplicate operation names per bundle
func (c *OwnerTypeConfig) Validate() error {
	if c.Name == "" {
		return fmt.Errorf("owner type name is required: %w", ErrDefinition)
	}
	if len(c.Bundles) == 0 {
		return fmt.Errorf("owner type %q declares no bundles: %w", c.Name, ErrDefinition)
	}

	var defaults []string
	for name, b := range c.Bundles {
		if name == "" {
			return fmt.Errorf("owner type %q: bundle name is required: %w", c.Name, ErrDefinition)
		}
		if b == nil {
			return fmt.Errorf("owner type %q: bundle %q is empty: %w", c.Name, name, ErrDefinition)
		}
		if b.Default {
			defaults = append(defaults, name)
		}
		seen := map[string]bool{}
		for _, op := range b.Operations {
			if op == "" {
				return fmt.Errorf("owner type %q: bundle %q has an unnamed operation: %w", c.Name, name, ErrDefinition)
			}
			if seen[op] {
				return fmt.Errorf("owner type %q: bundle %q declares operation %q twice: %w", c.Name, name, op, ErrDefinition)
			}
			seen[op] = true
		}
	}

	switch len(defaults) {
	case 0:
		return fmt.Errorf("owner type %q has no default bundle: %w", c.Name, ErrDefinition)
	case 1:
		return nil
	default:
		sort.Strings(defaults)
		return fmt.Errorf("owner type %q has more than one default bundle: %v: %w",
			c.Name, defaults, ErrDefinition)
	}
}

// LoadOwnerTypeConfig reads a YAML declarative table and validates it.
func LoadOwnerTypeConfig(r io.Reader) (*OwnerTypeConfig, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("read owner type config: %w", err)
	}
	var cfg OwnerTypeConfig
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse owner type config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

// LoadOwnerTypeConfigFile loads a declarative table from a .yaml, .yml, or
// .toml file, selected by extension.
func LoadOwnerTypeConfigFile(path string) (*OwnerTypeConfig, error) {
	switch ext := strings.ToLower(filepath.Ext(path)); ext {
	case ".yaml", ".yml":
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open owner type config: %w", err)
		}
		defer f.Close()
		return LoadOwnerTypeConfig(f)
	case ".toml":
		var cfg OwnerTypeConfig
		if _, err := toml.DecodeFile(path, &cfg); err != nil {
			return nil, fmt.Errorf("parse owner type config: %w", err)
		}
		if err := cfg.Validate(); err != nil {
			return nil, err
		}
		return &cfg, nil
	default:
		return nil, fmt.Errorf("unsupported owner type config format %q", ext)
	}
}

// DeclareFromConfig builds an owner type from a validated declarative
// table, binding each declared operation name to its implementation in
// impl, keyed "<bundle>.<operation>". A declared operation with no
// implementation, or an implementation for an undeclared operation, is a
// definition error.
func DeclareFromConfig[O any](cfg *OwnerTypeConfig, impl map[string]Operation[O]) (*OwnerType[O], error) {
	if cfg == nil {
		return nil, fmt.Errorf("nil owner type config: %w", ErrDefinition)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	bound := map[string]bool{}
	decls := make([]*BundleDecl[O], 0, len(cfg.Bundles))

	// Deterministic declaration order for stable error messages.
	names := make([]string, 0, len(cfg.Bundles))
	for name := range cfg.Bundles {
		names = append(names, name)
	}
	sort.Strings(names)

	for _, name := range names {
		bc := cfg.Bundles[name]
		d := NewBundle[O](name)
		if bc.Default {
			d.Default()
		}
		for _, op := range bc.Operations {
			key := name + "." + op
			fn, ok := impl[key]
			if !ok {
				return nil, fmt.Errorf("owner type %q: no implementation for %q: %w", cfg.Name, key, ErrDefinition)
			}
			d.Op(op, fn)
			bound[key] = true
		}
		decls = append(decls, d)
	}

	for key := range impl {
		if !bound[key] {
			return nil, fmt.Errorf("owner type %q: implementation %q matches no declared operation: %w",
				cfg.Name, key, ErrDefinition)
		}
	}

	return DeclareOwnerType(cfg.Name, decls...)
}
