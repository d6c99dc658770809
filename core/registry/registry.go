// Package registry is the process-wide model catalog. It owns registration,
// duplicate detection, and snapshot retrieval, and seals one-way into a
// read-only catalog once the boot sequence finishes loading models.
package registry

import (
	"sync"

	"github.com/modelgate/modelgate/core/schema"
)

// Registry stores registered models in insertion order.
//
// Registration is internally synchronized so concurrent registrations
// cannot interleave and corrupt the name-uniqueness check. After Seal the
// underlying data never changes, so reads are safe for unbounded
// concurrent callers.
type Registry struct {
	mu     sync.RWMutex
	sealed bool

	models map[string]schema.Model
	order  []string
}

// New creates an open registry.
func New() *Registry {
	return &Registry{
		models: make(map[string]schema.Model),
	}
}

// Register validates the model and stores a defensive copy. It fails with
// schema.RegistrySealedError after Seal, with the model's own validation
// error when malformed, and with schema.DuplicateModelError when the name
// is taken; the pre-existing entry is never overwritten.
func (r *Registry) Register(m schema.Model) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if r.sealed {
		return schema.RegistrySealedError{}
	}

	if err := schema.ValidateModel(m); err != nil {
		return err
	}

	if _, exists := r.models[m.Name]; exists {
		return schema.DuplicateModelError{Name: m.Name}
	}

	r.models[m.Name] = m.Clone()
	r.order = append(r.order, m.Name)

	return nil
}

// Get returns a copy of the named model, or schema.NotFoundError.
func (r *Registry) Get(name string) (schema.Model, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	m, ok := r.models[name]
	if !ok {
		return schema.Model{}, schema.NotFoundError{Name: name}
	}
	return m.Clone(), nil
}

// List returns copies of all registered models in insertion order.
// Mutating the returned models does not affect the registry.
func (r *Registry) List() []schema.Model {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]schema.Model, 0, len(r.order))
	for _, name := range r.order {
		out = append(out, r.models[name].Clone())
	}
	return out
}

// Len returns the number of registered models.
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.order)
}

// Seal transitions the registry from open to read-only. Subsequent
// Register calls fail with schema.RegistrySealedError. Sealing an already
// sealed registry is a no-op.
func (r *Registry) Seal() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.sealed = true
}

// Sealed reports whether the registry has been sealed.
func (r *Registry) Sealed() bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return r.sealed
}
