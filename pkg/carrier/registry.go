package carrier

import (
	"fmt"
	"sync"
)

// Registry manages registered shipping carriers. The active gateway for a
// deployment is selected by name at wiring time, which lets local runs swap
// a real carrier for the mock one by configuration.
type Registry struct {
	carriers map[string]Carrier
	mu       sync.RWMutex
}

// NewRegistry creates a new carrier registry.
func NewRegistry() *Registry {
	return &Registry{
		carriers: make(map[string]Carrier),
	}
}

// Register adds a carrier to the registry.
func (r *Registry) Register(c Carrier) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.carriers[c.Name()] = c
}

// Get returns a carrier by name.
func (r *Registry) Get(name string) (Carrier, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	if c, ok := r.carriers[name]; ok {
		return c, nil
	}
	return nil, fmt.Errorf("%w: %s", ErrCarrierNotFound, name)
}

// Names returns the names of all registered carriers.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()
	names := make([]string, 0, len(r.carriers))
	for name := range r.carriers {
		names = append(names, name)
	}
	return names
}

// Count returns the number of registered carriers.
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.carriers)
}
