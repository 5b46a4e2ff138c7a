// Package value provides the built-in data node types.
package value

import "github.com/specialistvlad/blueprintgo/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the node types with the engine.
func (m *Module) Register(r *registry.Registry) {
	registry.Register[Constant](r, "constant", "Authored constant on output `value`.")
	registry.Register[Add](r, "add", "Sum of the number inputs `a` and `b`.")
	registry.Register[Join](r, "join", "Joins every string linked to `parts` with `separator`.")
	registry.Register[Split](r, "split", "Splits `text` into one output value per part.")
	registry.Register[Variable](r, "variable", "Holds a value per instance; `set` stores `new_value`.")
}
