package meta

import (
	"fmt"
	"maps"

	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
)

// SetPortValue seeds the authored constant read from the unlinked data
// input (id, index).
func (g *Graph) SetPortValue(id nodeid.Address, index int, v cty.Value) error {
	p, err := g.Port(id, index)
	if err != nil {
		return err
	}
	if !p.IsInput() {
		return fmt.Errorf("port %s (%s): %w", id.At(index), p, ErrNotAnInput)
	}
	g.values[id.At(index)] = v
	return nil
}

// ClearPortValue removes a seeded value.
func (g *Graph) ClearPortValue(id nodeid.Address, index int) {
	delete(g.values, id.At(index))
}

// PortValue returns the seeded value of (id, index).
func (g *Graph) PortValue(id nodeid.Address, index int) (cty.Value, bool) {
	v, ok := g.values[id.At(index)]
	return v, ok
}

// PortValues returns a copy of every seeded value.
func (g *Graph) PortValues() map[nodeid.Endpoint]cty.Value {
	return maps.Clone(g.values)
}

func (g *Graph) moveValues(id nodeid.Address, mapping []int, dropUnmatched bool) {
	claimed := make(map[int]bool)
	for i, j := range mapping {
		if j >= 0 && j != i {
			claimed[j] = true
		}
	}
	moved := make(map[int]cty.Value)
	for i, j := range mapping {
		v, ok := g.values[id.At(i)]
		if !ok || j == i {
			continue
		}
		if j < 0 && !dropUnmatched && !claimed[i] {
			continue
		}
		delete(g.values, id.At(i))
		if j >= 0 {
			moved[j] = v
		}
	}
	for j, v := range moved {
		g.values[id.At(j)] = v
	}
}
