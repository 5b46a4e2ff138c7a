package runtime

import (
	"hash/fnv"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
)

// HashLabel is the hash CallLabel uses for name.
func HashLabel(name string) uint64 {
	h := fnv.New64a()
	_, _ = h.Write([]byte(name))
	return h.Sum64()
}

// Call follows every link of the exit port (id, index) in chain order.
func (g *Graph) Call(id nodeid.Address, index int) {
	if !g.running("call", id) {
		return
	}
	p, ok := g.ports.TryGetPort(id, index)
	if !ok {
		g.logger.Warn("Call on unknown port.", "node", id.String(), "port", index)
		return
	}
	if p.Kind != port.Exit {
		g.logger.Warn("Call on a port that is not an exit.", "node", id.String(), "port", p.String())
		return
	}

	h, ok := g.links.TryGetLinksFrom(id, index)
	for ok {
		target, found := g.links.GetLink(h)
		if found {
			g.enter(target.Node, target.Port)
		}
		h, ok = g.links.TryGetNextLink(h)
	}
}

// Enter invokes OnEnterPort on id directly.
func (g *Graph) Enter(id nodeid.Address, index int) {
	if !g.running("enter", id) {
		return
	}
	g.enter(id, index)
}

func (g *Graph) enter(id nodeid.Address, index int) {
	if g.depth >= g.maxDepth {
		g.logger.Error("Call depth limit reached, walk stopped.", "node", id.String(), "port", index, "max_depth", g.maxDepth)
		return
	}
	record, err := g.Node(id)
	if err != nil {
		g.logger.Warn("Enter on missing node.", "node", id.String(), "error", err)
		return
	}
	enterer, ok := record.(node.Enterer)
	if !ok {
		g.logger.Warn("Node cannot be entered.", "node", id.String(), "port", index)
		return
	}

	g.depth++
	defer func() { g.depth-- }()
	enterer.OnEnterPort(g, id, index)
}

// CallHash enters every target registered under hash, in registration
// order.
func (g *Graph) CallHash(hash uint64) {
	targets, ok := g.hashes[hash]
	if !ok {
		g.logger.Warn("No targets registered for hash.", "hash", hash)
		return
	}
	for _, t := range targets {
		g.Enter(t.Node, t.Port)
	}
}

// CallLabel is CallHash(HashLabel(name)).
func (g *Graph) CallLabel(name string) {
	hash := HashLabel(name)
	if _, ok := g.hashes[hash]; !ok {
		g.logger.Warn("No targets registered for label.", "label", name)
		return
	}
	g.CallHash(hash)
}

func (g *Graph) running(op string, id nodeid.Address) bool {
	if g.state == initialized {
		return true
	}
	g.logger.Warn("Flow operation outside of a run.", "op", op, "node", id.String(), "state", g.state.String())
	return false
}
