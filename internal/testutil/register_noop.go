package testutil

import (
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/specialistvlad/blueprintgo/internal/registry"
)

// NoOpModule registers a "noop" node type that passes flow from `in`
// straight to `out`. It is useful for graphs that only need valid wiring.
type NoOpModule struct{}

type noop struct{}

func (*noop) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewExit("out"))
}

func (*noop) OnEnterPort(g node.Graph, id nodeid.Address, _ int) {
	g.Call(id, 1)
}

// Register implements the registry.Module interface.
func (m *NoOpModule) Register(r *registry.Registry) {
	registry.Register[noop](r, "noop", "")
}
