package engine

import (
	"errors"
	"fmt"
	"sort"
)

// Registry lookup failures. ErrEngineDisabled distinguishes engines compiled
// out of this build variant from names the system has never heard of, so
// callers get a stable, engine-specific diagnostic.
var (
	ErrUnknownEngine  = errors.New("engine: unknown engine")
	ErrEngineDisabled = errors.New("engine: engine disabled in this build")
)

// Capabilities is the compile-time selection of engines and diagnostics for
// one build variant. It is passed explicitly to registry construction so
// tests can build alternate variants without global state.
type Capabilities struct {
	// AllEngines enables the full table regardless of Engines.
	AllEngines bool
	// Engines lists the enabled engine names when AllEngines is false.
	Engines []string
	// StripDebugCodes collapses advisory return codes to plain success.
	StripDebugCodes bool
}

// EngineEnabled reports whether the named engine is part of this variant.
func (c Capabilities) EngineEnabled(name string) bool {
	if c.AllEngines {
		return true
	}
	for _, e := range c.Engines {
		if e == name {
			return true
		}
	}
	return false
}

// Registry is the immutable engine table, built once at process or plugin
// initialization. Safe for concurrent lookups without locking.
type Registry struct {
	byName map[string]*Descriptor
}

// NewRegistry builds the registry from the compiled-in engine table,
// marking engines outside the capability set disabled. Disabled engines stay
// present so lookups can report ErrEngineDisabled instead of a generic
// not-found.
func NewRegistry(caps Capabilities) *Registry {
	reg := &Registry{byName: make(map[string]*Descriptor)}
	for _, desc := range engineTable() {
		d := desc
		d.Enabled = caps.EngineEnabled(d.Name)
		reg.byName[d.Name] = &d
	}
	return reg
}

// Lookup returns the descriptor for an enabled engine.
func (r *Registry) Lookup(name string) (*Descriptor, error) {
	d, found := r.byName[name]
	if !found {
		return nil, fmt.Errorf("engine: %q: %w", name, ErrUnknownEngine)
	}
	if !d.Enabled {
		return nil, fmt.Errorf("engine: %q: %w", name, ErrEngineDisabled)
	}
	return d, nil
}

// Names lists every known engine name, enabled or not, sorted.
func (r *Registry) Names() []string {
	out := make([]string, 0, len(r.byName))
	for name := range r.byName {
		out = append(out, name)
	}
	sort.Strings(out)
	return out
}

// Describe returns the descriptor regardless of enablement, for
// introspection and query surfaces.
func (r *Registry) Describe(name string) (*Descriptor, error) {
	d, found := r.byName[name]
	if !found {
		return nil, fmt.Errorf("engine: %q: %w", name, ErrUnknownEngine)
	}
	return d, nil
}
