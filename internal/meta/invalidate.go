package meta

import (
	"github.com/specialistvlad/blueprintgo/internal/linkstore"
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
)

// InvalidateNode re-derives the ports of id from its record and its
// subgraph binding.
//
// Each old port is matched to a new port with the same signature, trying
// the same index first and then the nearest free index. Links and seeded
// values of matched ports follow them to their new index. Unmatched ports
// lose their links and values when invalidateLinks is set; otherwise those
// are left in place, unless a matched port moves into their index, which
// then carries only its own links and value. Listeners registered with OnInvalidateNode receive
// every index whose port changed, and the bool result reports whether any
// did.
func (g *Graph) InvalidateNode(id nodeid.Address, invalidateLinks bool) (bool, error) {
	record, err := g.Node(id)
	if err != nil {
		return false, err
	}

	oldPorts := make([]port.Port, g.ports.Count(id))
	for _, ip := range g.ports.Ports(id) {
		if ip.Index < len(oldPorts) {
			oldPorts[ip.Index] = ip.Port
		}
	}
	newPorts, promoted := g.derivePorts(id, record)
	mapping := matchPorts(oldPorts, newPorts)

	remap := func(ep nodeid.Endpoint) (nodeid.Endpoint, bool) {
		if ep.Node != id || ep.Port >= len(mapping) {
			return ep, true
		}
		j := mapping[ep.Port]
		if j < 0 {
			return ep, false
		}
		return id.At(j), true
	}

	// Detach links of moved ports before anything is re-attached so that
	// ports trading places do not collide.
	var moved []linkstore.Edge
	for i, j := range mapping {
		if j == i || j < 0 {
			continue
		}
		for _, target := range g.links.LinksFrom(id, i) {
			moved = append(moved, linkstore.Edge{From: id.At(i), To: target})
			g.links.RemoveLink(id, i, target.Node, target.Port)
		}
		for _, owner := range g.links.LinksTo(id, i) {
			moved = append(moved, linkstore.Edge{From: owner, To: id.At(i)})
			g.links.RemoveLink(owner.Node, owner.Port, id, i)
		}
	}
	// A kept unmatched port never shares its index with a moved port.
	claimed := make(map[int]bool)
	for i, j := range mapping {
		if j >= 0 && j != i {
			claimed[j] = true
		}
	}
	for i, j := range mapping {
		if j >= 0 || (!invalidateLinks && !claimed[i]) {
			continue
		}
		if n := g.links.RemovePort(id, i); n > 0 && !invalidateLinks {
			g.logger.Debug("Dropped links of a port taken over by a moved port.", "graph", g.name, "node", id.String(), "port", i, "links", n)
		}
	}
	for _, e := range moved {
		from, okFrom := remap(e.From)
		to, okTo := remap(e.To)
		if okFrom && okTo {
			g.links.AddLink(from.Node, from.Port, to.Node, to.Port)
		}
	}

	g.moveValues(id, mapping, invalidateLinks)

	g.ports.RemoveNode(id)
	for j, p := range newPorts {
		for i, mj := range mapping {
			if mj == j {
				p = p.WithExposed(oldPorts[i].Exposed)
				break
			}
		}
		g.ports.AddPort(id, j, p)
	}
	if b := g.bindings[id]; b != nil {
		b.promoted = promoted
	}

	changed := changedIndices(oldPorts, newPorts)
	if len(changed) == 0 {
		return false, nil
	}
	g.logger.Debug("Node ports invalidated.", "graph", g.name, "node", id.String(), "changed", changed)
	g.notifyInvalidate(id, changed)
	return true, nil
}

// derivePorts returns the declared ports of record followed by the ports
// promoted from its subgraph binding, and the inner endpoint of each
// promoted index.
func (g *Graph) derivePorts(id nodeid.Address, record any) ([]port.Port, map[int]nodeid.Endpoint) {
	ports := node.Declare(record)
	b := g.bindings[id]
	if b == nil {
		return ports, nil
	}

	used := make(map[string]bool, len(ports))
	for _, p := range ports {
		used[p.Name] = true
	}
	promoted := make(map[int]nodeid.Endpoint)
	for _, inner := range b.graph.Nodes() {
		for _, ip := range b.graph.Ports(inner) {
			if !ip.Port.Exposed {
				continue
			}
			p := ip.Port.WithExposed(false)
			if used[p.Name] {
				qualifier, ok := b.graph.NodeName(inner)
				if !ok {
					qualifier = inner.String()
				}
				p.Name = qualifier + "." + p.Name
			}
			used[p.Name] = true
			promoted[len(ports)] = inner.At(ip.Index)
			ports = append(ports, p)
		}
	}
	return ports, promoted
}

// matchPorts maps every old index to the index of a new port with the same
// signature, or -1.
func matchPorts(oldPorts, newPorts []port.Port) []int {
	mapping := make([]int, len(oldPorts))
	taken := make([]bool, len(newPorts))
	for i := range mapping {
		mapping[i] = -1
		if i < len(newPorts) && oldPorts[i].HasSameSignature(newPorts[i]) {
			mapping[i] = i
			taken[i] = true
		}
	}

	for i, j := range mapping {
		if j >= 0 {
			continue
		}
		for d := 1; d < len(newPorts)+len(oldPorts); d++ {
			if k := i - d; k >= 0 && k < len(newPorts) && !taken[k] && oldPorts[i].HasSameSignature(newPorts[k]) {
				mapping[i], taken[k] = k, true
				break
			}
			if k := i + d; k < len(newPorts) && !taken[k] && oldPorts[i].HasSameSignature(newPorts[k]) {
				mapping[i], taken[k] = k, true
				break
			}
		}
	}
	return mapping
}

func changedIndices(oldPorts, newPorts []port.Port) []int {
	var changed []int
	for i := 0; i < max(len(oldPorts), len(newPorts)); i++ {
		if i >= len(oldPorts) || i >= len(newPorts) || !oldPorts[i].HasSameSignature(newPorts[i]) {
			changed = append(changed, i)
		}
	}
	return changed
}
