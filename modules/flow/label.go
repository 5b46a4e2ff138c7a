package flow

import (
	"errors"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/zclconf/go-cty/cty"
)

const (
	labelIn = iota
	labelOut
)

// Label publishes its enter port under Name.
type Label struct {
	Name string
}

func (l *Label) Configure(fields map[string]cty.Value) error {
	if err := node.KnownFields(fields, "name"); err != nil {
		return err
	}
	return node.Field(fields, "name", &l.Name)
}

func (l *Label) OnValidate() error {
	if l.Name == "" {
		return errors.New("label requires a name")
	}
	return nil
}

func (*Label) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewExit("out"))
}

func (l *Label) FlowLabels() []node.Label {
	return []node.Label{{Name: l.Name, Port: labelIn}}
}

func (*Label) OnEnterPort(g node.Graph, id nodeid.Address, _ int) {
	g.Call(id, labelOut)
}

const (
	gotoIn = iota
	gotoLabel
)

// Goto jumps to a label by name.
type Goto struct{}

func (*Goto) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewInput("label", cty.String))
}

func (*Goto) OnEnterPort(g node.Graph, id nodeid.Address, _ int) {
	name := node.ReadString(g, id, gotoLabel, "")
	if name == "" {
		g.Logger().Warn("Goto without a label.", "node", id.String())
		return
	}
	g.CallLabel(name)
}
