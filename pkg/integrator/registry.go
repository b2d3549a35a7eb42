package integrator

import (
	"errors"
	"fmt"
	"sort"
)

// ErrUnknownIntegrator is returned when no factory is registered under a name
var ErrUnknownIntegrator = errors.New("integrator: unknown integrator")

// Factory builds an integrator from options
type Factory func(opts Options) Integrator

// Registry maps integrator names to factories. Populate it before rendering;
// lookups afterwards are read-only and safe for concurrent use.
type Registry struct {
	factories map[string]Factory
}

// NewRegistry returns a registry holding every built-in estimator
func NewRegistry() *Registry {
	r := &Registry{factories: make(map[string]Factory)}
	r.Register("ao", func(opts Options) Integrator { return NewAOIntegrator(opts) })
	r.Register("simple", func(opts Options) Integrator { return NewSimpleIntegrator(opts) })
	r.Register("whitted", func(opts Options) Integrator { return NewWhittedIntegrator(opts) })
	r.Register("path_mats", func(opts Options) Integrator { return NewPathMatsIntegrator(opts) })
	r.Register("path_ems", func(opts Options) Integrator { return NewPathEMSIntegrator(opts) })
	r.Register("path_mis", func(opts Options) Integrator { return NewPathMISIntegrator(opts) })
	return r
}

// Register adds or replaces a factory
func (r *Registry) Register(name string, factory Factory) {
	r.factories[name] = factory
}

// New builds the integrator registered under name
func (r *Registry) New(name string, opts Options) (Integrator, error) {
	factory, ok := r.factories[name]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownIntegrator, name)
	}
	return factory(opts), nil
}

// Names returns the registered names in sorted order
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories))
	for name := range r.factories {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}
