package runtime

import (
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/node"
)

// Initialize hands runner to the graph and calls OnInitialize on every node
// in id order.
func (g *Graph) Initialize(runner node.Runner) error {
	if g.state != compiled {
		return fmt.Errorf("initialize %s graph: %w", g.state, ErrAlreadyInitialized)
	}
	g.runner = runner
	g.state = initialized

	ids := g.Nodes()
	for _, id := range ids {
		record, err := g.Node(id)
		if err != nil {
			return err
		}
		if init, ok := record.(node.Initializer); ok {
			init.OnInitialize(g, g.tokens[id])
		}
	}
	g.logger.Debug("Graph initialized.", "nodes", len(ids))
	return nil
}

// DeInitialize calls OnDeInitialize on every node in reverse id order.
func (g *Graph) DeInitialize() error {
	if g.state != initialized {
		return fmt.Errorf("deinitialize %s graph: %w", g.state, ErrNotInitialized)
	}

	ids := g.Nodes()
	for i := len(ids) - 1; i >= 0; i-- {
		record, err := g.Node(ids[i])
		if err != nil {
			return err
		}
		if deinit, ok := record.(node.DeInitializer); ok {
			deinit.OnDeInitialize(g, g.tokens[ids[i]])
		}
	}
	g.state = deinitialized
	g.logger.Debug("Graph deinitialized.", "nodes", len(ids))
	return nil
}

// Initialized reports whether the graph is between Initialize and
// DeInitialize.
func (g *Graph) Initialized() bool {
	return g.state == initialized
}
