package variant

import (
	"errors"
	"fmt"
	"strings"
	"sync"
)

// Variant names a simulation profile. The tag doubles as the Phantom SETUP name, so it
// is what writemake.sh and phantomsetup receive and what the .setup/.in files are called.
type Variant string

const (
	Disc        Variant = "disc"
	DustyDisc   Variant = "dustydisc"
	DustySGDisc Variant = "dustysgdisc"
)

// ParameterSpec describes one editable field of a variant's .setup file.
type ParameterSpec struct {
	Name        string `yaml:"name"`
	Line        int    `yaml:"line"`
	Description string `yaml:"description"`
	Default     string `yaml:"default"`
}

// ErrUnknownVariant is matched by every *UnknownVariantError.
var ErrUnknownVariant = errors.New("unknown simulation variant")

type UnknownVariantError struct {
	Variant Variant
	Known   []Variant
}

func (e *UnknownVariantError) Error() string {
	known := make([]string, 0, len(e.Known))
	for _, k := range e.Known {
		known = append(known, string(k))
	}
	return fmt.Sprintf("unknown simulation variant %q (known: %s)", string(e.Variant), strings.Join(known, ", "))
}

func (e *UnknownVariantError) Is(target error) bool {
	return target == ErrUnknownVariant
}

// Registry maps variant tags to their ordered spec lists.
type Registry struct {
	mu     sync.RWMutex
	tables map[Variant][]ParameterSpec
	order  []Variant
}

func NewRegistry() *Registry {
	return &Registry{tables: map[Variant][]ParameterSpec{}}
}

// Register adds a variant table. Names must be non-empty and unique, line numbers
// positive and unique; registering the same tag twice is an error.
func (r *Registry) Register(v Variant, specs []ParameterSpec) error {
	if strings.TrimSpace(string(v)) == "" {
		return fmt.Errorf("variant tag is empty")
	}
	if err := validateSpecs(specs); err != nil {
		return fmt.Errorf("variant %s: %w", v, err)
	}

	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.tables[v]; ok {
		return fmt.Errorf("variant %s is already registered", v)
	}
	table := make([]ParameterSpec, len(specs))
	copy(table, specs)
	r.tables[v] = table
	r.order = append(r.order, v)
	return nil
}

func (r *Registry) MustRegister(v Variant, specs []ParameterSpec) {
	if err := r.Register(v, specs); err != nil {
		panic(err)
	}
}

// SpecsFor returns a copy of the variant's spec list in registration order.
func (r *Registry) SpecsFor(v Variant) ([]ParameterSpec, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	table, ok := r.tables[v]
	if !ok {
		known := make([]Variant, len(r.order))
		copy(known, r.order)
		return nil, &UnknownVariantError{Variant: v, Known: known}
	}
	out := make([]ParameterSpec, len(table))
	copy(out, table)
	return out, nil
}

// Variants returns the registered tags in registration order.
func (r *Registry) Variants() []Variant {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]Variant, len(r.order))
	copy(out, r.order)
	return out
}

func (r *Registry) Has(v Variant) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.tables[v]
	return ok
}

func validateSpecs(specs []ParameterSpec) error {
	names := make(map[string]struct{}, len(specs))
	lines := make(map[int]string, len(specs))
	for i, s := range specs {
		if strings.TrimSpace(s.Name) == "" {
			return fmt.Errorf("spec %d has an empty name", i+1)
		}
		if s.Line < 1 {
			return fmt.Errorf("spec %s: line number %d must be positive", s.Name, s.Line)
		}
		if _, ok := names[s.Name]; ok {
			return fmt.Errorf("duplicate field name %s", s.Name)
		}
		if other, ok := lines[s.Line]; ok {
			return fmt.Errorf("fields %s and %s both address line %d", other, s.Name, s.Line)
		}
		names[s.Name] = struct{}{}
		lines[s.Line] = s.Name
	}
	return nil
}

// Default holds the built-in variant tables.
var Default = NewRegistry()

func Register(v Variant, specs []ParameterSpec) error { return Default.Register(v, specs) }

func MustRegister(v Variant, specs []ParameterSpec) { Default.MustRegister(v, specs) }

func SpecsFor(v Variant) ([]ParameterSpec, error) { return Default.SpecsFor(v) }

func Variants() []Variant { return Default.Variants() }
