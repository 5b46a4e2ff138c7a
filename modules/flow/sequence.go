package flow

import (
	"fmt"
	"strconv"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/zclconf/go-cty/cty"
)

const maxSequence = 64

// Sequence fires its exits one after another.
type Sequence struct {
	Count int
}

func (s *Sequence) OnSetDefaults() {
	s.Count = 2
}

func (s *Sequence) Configure(fields map[string]cty.Value) error {
	if err := node.KnownFields(fields, "count"); err != nil {
		return err
	}
	return node.Field(fields, "count", &s.Count)
}

func (s *Sequence) OnValidate() error {
	if s.Count < 1 || s.Count > maxSequence {
		return fmt.Errorf("sequence count must be between 1 and %d, got %d", maxSequence, s.Count)
	}
	return nil
}

func (s *Sequence) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	for i := range s.Count {
		d.Add(port.NewExit("then_" + strconv.Itoa(i)))
	}
}

func (s *Sequence) OnEnterPort(g node.Graph, id nodeid.Address, _ int) {
	for i := range s.Count {
		g.Call(id, 1+i)
	}
}

const (
	branchIn = iota
	branchCondition
	branchTrue
	branchFalse
)

// Branch picks one of two exits.
type Branch struct{}

func (*Branch) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewInput("condition", cty.Bool))
	d.Add(port.NewExit("true"))
	d.Add(port.NewExit("false"))
}

func (*Branch) OnEnterPort(g node.Graph, id nodeid.Address, _ int) {
	if node.ReadBool(g, id, branchCondition, false) {
		g.Call(id, branchTrue)
		return
	}
	g.Call(id, branchFalse)
}

// Subgraph is a binding node. Its ports are the ones promoted from the
// graph bound to it.
type Subgraph struct{}
