package object

import (
	"sort"
	"sync"

	"go.uber.org/zap"
)

// Registry holds every finalized type in the process. Types are published
// once and never removed or mutated afterward, so reads only need the
// read lock and returned slices are copies.
type Registry struct {
	mu    sync.RWMutex
	types map[string]*TypeMetaobject
	log   *zap.Logger
}

// NewRegistry creates an empty registry
func NewRegistry() *Registry {
	return &Registry{
		types: make(map[string]*TypeMetaobject),
		log:   zap.NewNop(),
	}
}

// Global registry instance; Finalize publishes here unless the Builder was
// pointed elsewhere.
var globalRegistry = NewRegistry()

// DefaultRegistry returns the process-wide registry
func DefaultRegistry() *Registry {
	return globalRegistry
}

// SetLogger attaches a logger for registration traces
func (r *Registry) SetLogger(log *zap.Logger) {
	if log == nil {
		log = zap.NewNop()
	}
	r.mu.Lock()
	defer r.mu.Unlock()
	r.log = log
}

// Register publishes a finalized type. Duplicate names are rejected.
func (r *Registry) Register(t *TypeMetaobject) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	if _, exists := r.types[t.name]; exists {
		return NewDuplicateTypeError(t.name)
	}
	r.types[t.name] = t
	r.log.Debug("type registered", zap.String("type", t.name))
	return nil
}

// Lookup finds a type by name
func (r *Registry) Lookup(name string) (*TypeMetaobject, bool) {
	r.mu.RLock()
	defer r.mu.RUnlock()
	t, ok := r.types[name]
	return t, ok
}

// Types returns all registered types sorted by name
func (r *Registry) Types() []*TypeMetaobject {
	r.mu.RLock()
	defer r.mu.RUnlock()

	out := make([]*TypeMetaobject, 0, len(r.types))
	for _, t := range r.types {
		out = append(out, t)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].name < out[j].name })
	return out
}

// Names returns all registered type names sorted
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Len returns the number of registered types
func (r *Registry) Len() int {
	r.mu.RLock()
	defer r.mu.RUnlock()
	return len(r.types)
}

// Reset clears the registry (used for testing)
func (r *Registry) Reset() {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.types = make(map[string]*TypeMetaobject)
}
