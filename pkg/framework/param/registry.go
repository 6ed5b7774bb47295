package param

import (
	"fmt"
	"sync"
)

// Registry manages synth parameters by string ID. Lookups take a read lock and
// belong to setup code; the audio goroutine only touches resolved handles.
type Registry struct {
	params map[string]*Parameter
	order  []string // Maintain order for indexed access
	mu     sync.RWMutex
}

// NewRegistry creates a new parameter registry
func NewRegistry() *Registry {
	return &Registry{
		params: make(map[string]*Parameter),
		order:  make([]string, 0),
	}
}

// Add registers parameters. If any ID is already registered, or repeated
// within params, nothing is added.
func (r *Registry) Add(params ...*Parameter) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	seen := make(map[string]bool, len(params))
	for _, p := range params {
		if _, exists := r.params[p.ID]; exists || seen[p.ID] {
			return fmt.Errorf("add %q: %w", p.ID, ErrDuplicateParameter)
		}
		seen[p.ID] = true
	}

	for _, p := range params {
		r.params[p.ID] = p
		r.order = append(r.order, p.ID)
	}

	return nil
}

// Get retrieves a parameter by ID, or nil.
func (r *Registry) Get(id string) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.params[id]
}

// Float resolves id to a continuous parameter handle. It fails with a
// *ResolveError wrapping ErrParameterNotFound or ErrParameterType.
func (r *Registry) Float(id string) (*Parameter, error) {
	p := r.Get(id)
	if p == nil {
		return nil, &ResolveError{ID: id, Err: ErrParameterNotFound}
	}
	if p.Kind != KindFloat {
		return nil, &ResolveError{ID: id, Err: fmt.Errorf("%w: %s", ErrParameterType, p.Kind)}
	}
	return p, nil
}

// Set stores a plain value on the parameter with the given ID.
func (r *Registry) Set(id string, value float64) error {
	p := r.Get(id)
	if p == nil {
		return &ResolveError{ID: id, Err: ErrParameterNotFound}
	}
	p.Set(value)
	return nil
}

// GetByIndex retrieves a parameter by registration index
func (r *Registry) GetByIndex(index int) *Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	if index < 0 || index >= len(r.order) {
		return nil
	}

	return r.params[r.order[index]]
}

// Count returns the number of parameters
func (r *Registry) Count() int {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return len(r.order)
}

// All returns all parameters in registration order
func (r *Registry) All() []*Parameter {
	r.mu.RLock()
	defer r.mu.RUnlock()

	result := make([]*Parameter, len(r.order))
	for i, id := range r.order {
		result[i] = r.params[id]
	}

	return result
}

// ResetAll restores every parameter to its default.
func (r *Registry) ResetAll() {
	for _, p := range r.All() {
		p.Reset()
	}
}
