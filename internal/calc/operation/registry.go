package operation

import (
	"fmt"
	"sort"
	"sync"
)

// Registry resolves operations by exact name.
type Registry struct {
	mu  sync.RWMutex
	ops map[string]Operation
}

// NewRegistry creates a registry populated with the builtin operations.
func NewRegistry() *Registry {
	r := &Registry{
		ops: make(map[string]Operation),
	}
	for _, op := range builtins() {
		r.ops[op.Name()] = op
	}
	return r
}

// Register adds an operation under its name. Names are taken verbatim;
// registering over an existing name (builtin or plugin) is an error.
func (r *Registry) Register(op Operation) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	name := op.Name()
	if _, exists := r.ops[name]; exists {
		return fmt.Errorf("register %q: %w", name, ErrDuplicateOperation)
	}
	r.ops[name] = op
	return nil
}

// Resolve returns the operation registered under name.
func (r *Registry) Resolve(name string) (Operation, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	op, ok := r.ops[name]
	if !ok {
		return nil, fmt.Errorf("resolve %q: %w", name, ErrUnknownOperation)
	}
	return op, nil
}

// Has reports whether an operation is registered under name.
func (r *Registry) Has(name string) bool {
	r.mu.RLock()
	defer r.mu.RUnlock()
	_, ok := r.ops[name]
	return ok
}

// Names returns all registered operation names, sorted.
func (r *Registry) Names() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	names := make([]string, 0, len(r.ops))
	for name := range r.ops {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// All returns all registered operations, sorted by name.
func (r *Registry) All() []Operation {
	r.mu.RLock()
	defer r.mu.RUnlock()

	ops := make([]Operation, 0, len(r.ops))
	for _, op := range r.ops {
		ops = append(ops, op)
	}
	sort.Slice(ops, func(i, j int) bool { return ops[i].Name() < ops[j].Name() })
	return ops
}
