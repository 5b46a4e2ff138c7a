// Package print provides the `print` node type, which writes a message to
// the run's output.
package print

import (
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

const (
	printIn = iota
	printMessage
	printOut
)

// Print writes `message` on every call of `in`, then fires `out`.
type Print struct {
	Prefix string
}

func (p *Print) Configure(fields map[string]cty.Value) error {
	if err := node.KnownFields(fields, "prefix"); err != nil {
		return err
	}
	return node.Field(fields, "prefix", &p.Prefix)
}

func (*Print) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewInput("message", cty.String))
	d.Add(port.NewExit("out"))
}

func (p *Print) OnEnterPort(g node.Graph, id nodeid.Address, _ int) {
	msg := p.Prefix + node.ReadString(g, id, printMessage, "")
	g.Logger().Debug("Printing message.", "node", id.String())
	if r := g.Runner(); r != nil && r.Output() != nil {
		fmt.Fprintln(r.Output(), msg)
	}
	g.Call(id, printOut)
}

// Register registers the node type with the engine.
func (m *Module) Register(r *registry.Registry) {
	registry.Register[Print](r, "print", "Writes `message` to the run output.")
}
