package value

import (
	"strings"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/zclconf/go-cty/cty"
)

const (
	addA = iota
	addB
	addSum
)

// Add outputs the sum of its inputs. Unlinked inputs read as zero.
type Add struct{}

func (*Add) CreatePorts(d *node.Declaration) {
	d.Add(port.NewInput("a", cty.Number).WithDefault(cty.Zero))
	d.Add(port.NewInput("b", cty.Number).WithDefault(cty.Zero))
	d.Add(port.NewOutput("sum", cty.Number))
}

func (*Add) GetPortValue(g node.Graph, id nodeid.Address, _ int) cty.Value {
	a := number(g.Read(id, addA, cty.Zero))
	b := number(g.Read(id, addB, cty.Zero))
	return a.Add(b)
}

func (a *Add) GetPortString(g node.Graph, id nodeid.Address, index int) string {
	return format(a.GetPortValue(g, id, index))
}

func number(v cty.Value) cty.Value {
	if v.IsNull() || !v.IsKnown() || !v.Type().Equals(cty.Number) {
		return cty.Zero
	}
	return v
}

const (
	joinParts = iota
	joinValue
)

// Join concatenates every string linked to its array input.
type Join struct {
	Separator string
}

func (j *Join) Configure(fields map[string]cty.Value) error {
	if err := node.KnownFields(fields, "separator"); err != nil {
		return err
	}
	return node.Field(fields, "separator", &j.Separator)
}

func (*Join) CreatePorts(d *node.Declaration) {
	d.Add(port.NewInputArray("parts", cty.String))
	d.Add(port.NewOutput("value", cty.String))
}

func (j *Join) GetPortValue(g node.Graph, id nodeid.Address, _ int) cty.Value {
	return cty.StringVal(strings.Join(node.ReadStrings(g, id, joinParts), j.Separator))
}

const (
	splitText = iota
	splitParts
)

// Split publishes each part of its input as a separate output value.
type Split struct {
	Separator string
}

func (s *Split) OnSetDefaults() {
	s.Separator = ","
}

func (s *Split) Configure(fields map[string]cty.Value) error {
	if err := node.KnownFields(fields, "separator"); err != nil {
		return err
	}
	return node.Field(fields, "separator", &s.Separator)
}

func (*Split) CreatePorts(d *node.Declaration) {
	d.Add(port.NewInput("text", cty.String))
	d.Add(port.NewOutput("parts", cty.String))
}

func (s *Split) GetPortValues(g node.Graph, id nodeid.Address, _ int) []cty.Value {
	text := node.ReadString(g, id, splitText, "")
	if text == "" {
		return nil
	}
	parts := strings.Split(text, s.Separator)
	out := make([]cty.Value, len(parts))
	for i, p := range parts {
		out[i] = cty.StringVal(p)
	}
	return out
}
