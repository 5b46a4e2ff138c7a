// Package flow provides the built-in control-flow node types: labels and
// jumps, sequences, branches and subgraph bindings.
package flow

import "github.com/specialistvlad/blueprintgo/internal/registry"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the node types with the engine.
func (m *Module) Register(r *registry.Registry) {
	registry.Register[Label](r, "label", "Named entry point. Calling the label fires `out`.")
	registry.Register[Goto](r, "goto", "Calls the label named by the `label` input.")
	registry.Register[Sequence](r, "sequence", "Fires `then_0` to `then_<count-1>` in order.")
	registry.Register[Branch](r, "branch", "Fires `true` or `false` depending on `condition`.")
	registry.Register[Subgraph](r, "subgraph", "Binds another graph and exposes its promoted ports.")
}
