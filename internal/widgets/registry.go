package widgets

import (
	"strings"
	"sync"
)

// DefinitionFactory returns the registration input for a widget definition.
type DefinitionFactory func() RegisterDefinitionInput

// Registry stores built-in and host-defined widget registrations.
type Registry struct {
	mu            sync.RWMutex
	registrations map[string]DefinitionFactory
}

// NewRegistry constructs an empty registry.
func NewRegistry() *Registry {
	return &Registry{
		registrations: make(map[string]DefinitionFactory),
	}
}

// Register adds a static definition input to the registry
func (r *Registry) Register(input RegisterDefinitionInput) {
	r.RegisterFactory(input.Name, func() RegisterDefinitionInput { return input })
}

// RegisterFactory adds a definition factory to the registry
func (r *Registry) RegisterFactory(key string, factory DefinitionFactory) {
	if factory == nil {
		return
	}
	name := canonicalKey(key)
	if name == "" {
		name = canonicalKey(factory().Name)
	}
	if name == "" {
		return
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if r.registrations == nil {
		r.registrations = make(map[string]DefinitionFactory)
	}
	r.registrations[name] = factory
}

// List returns all registered widget definition inputs.
func (r *Registry) List() []RegisterDefinitionInput {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]RegisterDefinitionInput, 0, len(r.registrations))
	for _, factory := range r.registrations {
		out = append(out, factory())
	}
	return out
}

func canonicalKey(input string) string {
	return strings.ToLower(strings.TrimSpace(input))
}

// DefaultRegistry returns the registry preloaded with the dashboard widgets.
func DefaultRegistry() *Registry {
	registry := NewRegistry()
	for _, input := range BuiltinDefinitions() {
		registry.Register(input)
	}
	return registry
}
