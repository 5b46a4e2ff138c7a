package meta

import (
	"github.com/specialistvlad/blueprintgo/internal/linkstore"
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
)

// TryCreateLink links (a, ap) and (b, bp) in whichever order makes the
// owning port first. It reports false, changing nothing, when an endpoint is
// missing, the ports are incompatible, or the link would join a node to
// itself without WithAllowSelfLinks. Linking an already linked pair is a
// successful no-op. A single-cardinality owner drops its previous link
// before the new one is stored.
func (g *Graph) TryCreateLink(a nodeid.Address, ap int, b nodeid.Address, bp int) bool {
	if a == b && !g.allowSelfLinks {
		g.logger.Debug("Rejected self link.", "graph", g.name, "node", a.String())
		return false
	}
	if !g.Has(a) || !g.Has(b) {
		return false
	}
	pa, okA := g.ports.TryGetPort(a, ap)
	pb, okB := g.ports.TryGetPort(b, bp)
	if !okA || !okB {
		return false
	}

	ownerFirst, ok := port.Owner(pa, pb)
	if !ok {
		return false
	}
	owner, ownerPort, op := a, ap, pa
	remote, remotePort, rp := b, bp, pb
	if !ownerFirst {
		owner, ownerPort, op = b, bp, pb
		remote, remotePort, rp = a, ap, pa
	}

	if !port.Compatible(op, rp, g.isStringer(remote, remotePort)) {
		g.logger.Debug("Rejected incompatible link.",
			"graph", g.name,
			"from", owner.At(ownerPort).String(), "from_port", op.String(),
			"to", remote.At(remotePort).String(), "to_port", rp.String())
		return false
	}

	if g.links.HasLink(owner, ownerPort, remote, remotePort) {
		return true
	}
	if !op.Multiple {
		for _, old := range g.links.LinksFrom(owner, ownerPort) {
			g.links.RemoveLink(owner, ownerPort, old.Node, old.Port)
		}
	}
	g.links.AddLink(owner, ownerPort, remote, remotePort)
	return true
}

// isStringer reports whether the record behind (id, index) can be read as a
// string, looking through promoted subgraph ports.
func (g *Graph) isStringer(id nodeid.Address, index int) bool {
	inner, innerGraph, ok := g.PromotedPort(id, index)
	if ok {
		return innerGraph.isStringer(inner.Node, inner.Port)
	}
	record, err := g.Node(id)
	if err != nil {
		return false
	}
	_, ok = record.(node.StringOutputter)
	return ok
}

// RemoveLink removes the link between the two endpoints, in either order.
func (g *Graph) RemoveLink(a nodeid.Address, ap int, b nodeid.Address, bp int) bool {
	if g.links.RemoveLink(a, ap, b, bp) {
		return true
	}
	return g.links.RemoveLink(b, bp, a, ap)
}

// HasLink reports whether the owning endpoint (a, ap) links to (b, bp).
func (g *Graph) HasLink(a nodeid.Address, ap int, b nodeid.Address, bp int) bool {
	return g.links.HasLink(a, ap, b, bp)
}

// LinksFrom returns the targets of the owning port (id, index).
func (g *Graph) LinksFrom(id nodeid.Address, index int) []nodeid.Endpoint {
	return g.links.LinksFrom(id, index)
}

// LinksTo returns the owners linked to (id, index).
func (g *Graph) LinksTo(id nodeid.Address, index int) []nodeid.Endpoint {
	return g.links.LinksTo(id, index)
}

// SortLinksFrom stably reorders the targets of (id, index).
func (g *Graph) SortLinksFrom(id nodeid.Address, index int, less func(a, b nodeid.Endpoint) bool) {
	g.links.SortLinksFrom(id, index, less)
}

// Edges returns every link from its owning side.
func (g *Graph) Edges() []linkstore.Edge {
	return g.links.Edges()
}

// LinkCount is the number of links in the graph.
func (g *Graph) LinkCount() int {
	return g.links.Count()
}

// DisconnectPort drops every link attached to (id, index).
func (g *Graph) DisconnectPort(id nodeid.Address, index int) int {
	return g.links.RemovePort(id, index)
}
