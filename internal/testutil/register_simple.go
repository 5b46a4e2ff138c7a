package testutil

import "github.com/specialistvlad/blueprintgo/internal/registry"

// SimpleModule registers a single node type backed by records of type T.
type SimpleModule[T any] struct {
	Name string
}

// Register implements the registry.Module interface.
func (m *SimpleModule[T]) Register(r *registry.Registry) {
	registry.Register[T](r, m.Name, "")
}
