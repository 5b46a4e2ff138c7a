package registry

import (
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/blueprintgo/internal/nodestore"
)

// Module is the interface that all node modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// NodeType describes one registered node record type.
type NodeType struct {
	Name        string
	Description string
	// NewSource creates an empty storage for the record type.
	NewSource func() nodestore.Source
}

// Registry holds all node types for a single application instance.
type Registry struct {
	types map[string]*NodeType
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{types: make(map[string]*NodeType)}
}

// Register adds a node type backed by records of type T. It panics if name
// is already taken.
func Register[T any](r *Registry, name, description string) {
	if _, exists := r.types[name]; exists {
		panic(fmt.Sprintf("node type with name '%s' already registered", name))
	}
	slog.Debug("Registering node type.", "name", name)
	r.types[name] = &NodeType{
		Name:        name,
		Description: description,
		NewSource:   func() nodestore.Source { return nodestore.New[T](name) },
	}
}

// RegisterModules lets every module add its node types.
func (r *Registry) RegisterModules(modules ...Module) {
	for _, m := range modules {
		m.Register(r)
	}
}

// Lookup returns the node type registered under name.
func (r *Registry) Lookup(name string) (*NodeType, bool) {
	t, ok := r.types[name]
	return t, ok
}

// Names returns every registered type name, sorted.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.types))
	for name := range r.types {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}
