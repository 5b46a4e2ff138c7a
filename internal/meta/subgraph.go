package meta

import (
	"cmp"
	"fmt"
	"slices"

	"github.com/specialistvlad/blueprintgo/internal/nodeid"
)

type binding struct {
	ref      string
	graph    *Graph
	promoted map[int]nodeid.Endpoint
}

// SetSubgraph binds id to the graph ref resolves to and promotes that
// graph's exposed ports onto id.
func (g *Graph) SetSubgraph(id nodeid.Address, ref string) error {
	if !g.Has(id) {
		return fmt.Errorf("node %s in graph '%s': %w", id, g.name, ErrNodeNotFound)
	}
	if g.resolver == nil {
		return fmt.Errorf("subgraph '%s': no resolver: %w", ref, ErrUnknownSubgraph)
	}
	inner, ok := g.resolver.ResolveGraph(ref)
	if !ok || inner == nil {
		return fmt.Errorf("subgraph '%s': %w", ref, ErrUnknownSubgraph)
	}
	if inner == g {
		return fmt.Errorf("subgraph '%s' bound in graph '%s': %w", ref, g.name, ErrRecursiveSubgraph)
	}

	g.bindings[id] = &binding{ref: ref, graph: inner}
	_, err := g.InvalidateNode(id, true)
	return err
}

// RemoveSubgraph unbinds id and drops its promoted ports.
func (g *Graph) RemoveSubgraph(id nodeid.Address) error {
	if _, ok := g.bindings[id]; !ok {
		return nil
	}
	delete(g.bindings, id)
	_, err := g.InvalidateNode(id, true)
	return err
}

// Subgraph returns the reference and resolved graph bound to id.
func (g *Graph) Subgraph(id nodeid.Address) (string, *Graph, bool) {
	b, ok := g.bindings[id]
	if !ok {
		return "", nil, false
	}
	return b.ref, b.graph, true
}

// Bindings returns every node bound to a subgraph, in id order.
func (g *Graph) Bindings() []nodeid.Address {
	ids := make([]nodeid.Address, 0, len(g.bindings))
	for id := range g.bindings {
		ids = append(ids, id)
	}
	slices.SortFunc(ids, func(a, b nodeid.Address) int {
		return cmp.Compare(a.Pack(), b.Pack())
	})
	return ids
}

// PromotedPort returns the inner endpoint behind a promoted port of id.
func (g *Graph) PromotedPort(id nodeid.Address, index int) (nodeid.Endpoint, *Graph, bool) {
	b, ok := g.bindings[id]
	if !ok {
		return nodeid.Endpoint{}, nil, false
	}
	inner, ok := b.promoted[index]
	if !ok {
		return nodeid.Endpoint{}, nil, false
	}
	return inner, b.graph, true
}

// RefreshBindings re-derives the ports of every bound node, picking up
// exposure changes made in the bound graphs.
func (g *Graph) RefreshBindings() error {
	for _, id := range g.Bindings() {
		if _, err := g.InvalidateNode(id, true); err != nil {
			return err
		}
	}
	return nil
}
