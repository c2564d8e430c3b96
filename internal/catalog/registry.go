package catalog

import "fmt"

// Registry indexes modules by ID, preserving load order.
type Registry struct {
	modules []*Module
	byID    map[string]*Module
}

// NewRegistry builds a Registry from modules.
//
// Precondition: modules must not share an ID.
// Postcondition: Returns a Registry or an error on duplicate IDs.
func NewRegistry(modules []*Module) (*Registry, error) {
	r := &Registry{byID: make(map[string]*Module, len(modules))}
	for _, m := range modules {
		if _, exists := r.byID[m.ID]; exists {
			return nil, fmt.Errorf("duplicate module ID: %q", m.ID)
		}
		r.byID[m.ID] = m
		r.modules = append(r.modules, m)
	}
	return r, nil
}

// Module returns the module with the given ID.
//
// Postcondition: Returns the module, or an error wrapping ErrUnknownModule.
func (r *Registry) Module(id string) (*Module, error) {
	m, ok := r.byID[id]
	if !ok {
		return nil, fmt.Errorf("%w: %q", ErrUnknownModule, id)
	}
	return m, nil
}

// Modules returns all modules in load order.
func (r *Registry) Modules() []*Module {
	out := make([]*Module, len(r.modules))
	copy(out, r.modules)
	return out
}

// Len returns the number of registered modules.
func (r *Registry) Len() int {
	return len(r.modules)
}
