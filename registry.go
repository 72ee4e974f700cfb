package strata

import (
	"sort"
	"sync"
)

// Registry is the process-wide mapping cache, keyed by entity label.
// Descriptors are registered once, at setup time, and treated as read-only
// for the remainder of the process. The registry is safe for concurrent
// lookups.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*Mapping
}

// NewRegistry returns an empty registry.
func NewRegistry() *Registry {
	return &Registry{types: make(map[string]*Mapping)}
}

// Register validates the spec, builds the descriptor and stores it under
// the given label. Registering the same label twice is a MappingError.
func (r *Registry) Register(label string, spec MappingSpec) (*Mapping, error) {
	m, err := NewMapping(label, spec)
	if err != nil {
		return nil, err
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.types[label]; ok {
		return nil, NewMappingError(label, "", "already registered")
	}
	r.types[label] = m
	return m, nil
}

// Lookup returns the descriptor registered under the label.
func (r *Registry) Lookup(label string) (*Mapping, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	m, ok := r.types[label]
	if !ok {
		return nil, NewMappingError(label, "", "not registered")
	}
	return m, nil
}

// Labels returns the registered entity labels, sorted.
func (r *Registry) Labels() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	out := make([]string, 0, len(r.types))
	for l := range r.types {
		out = append(out, l)
	}
	sort.Strings(out)
	return out
}
