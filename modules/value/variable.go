package value

import (
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/zclconf/go-cty/cty"
)

const (
	varSet = iota
	varNewValue
	varOut
	varValue
)

// Variable holds a value for the lifetime of a run. Every compiled
// instance keeps its own value.
type Variable struct {
	Type    cty.Type
	Initial cty.Value

	current cty.Value
}

func (v *Variable) ConfigureType(ty cty.Type) error {
	initial, err := coerce(v.Initial, ty)
	if err != nil {
		return fmt.Errorf("initial value does not fit %s: %w", ty.FriendlyName(), err)
	}
	v.Type, v.Initial = ty, initial
	return nil
}

func (v *Variable) Configure(fields map[string]cty.Value) error {
	if err := node.KnownFields(fields, "value"); err != nil {
		return err
	}
	initial, ok := fields["value"]
	if !ok {
		return nil
	}
	initial, err := coerce(initial, v.Type)
	if err != nil {
		return fmt.Errorf("initial value does not fit %s: %w", v.Type.FriendlyName(), err)
	}
	v.Initial = initial
	return nil
}

func (v *Variable) valueType() cty.Type {
	if v.Type != cty.NilType {
		return v.Type
	}
	return cty.DynamicPseudoType
}

func (v *Variable) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("set"))
	d.Add(port.NewInput("new_value", v.valueType()))
	d.Add(port.NewExit("out"))
	d.Add(port.NewOutput("value", v.valueType()))
}

func (v *Variable) OnInitialize(node.Graph, node.Token) {
	v.current = v.Initial
}

func (v *Variable) OnDeInitialize(node.Graph, node.Token) {
	v.current = cty.NilVal
}

func (v *Variable) OnEnterPort(g node.Graph, id nodeid.Address, _ int) {
	v.current = g.Read(id, varNewValue, v.Value())
	g.Logger().Debug("Variable set.", "node", id.String(), "value", format(v.current))
	g.Call(id, varOut)
}

// Value is the current value, or null when none is set.
func (v *Variable) Value() cty.Value {
	if v.current == cty.NilVal {
		return cty.NullVal(v.valueType())
	}
	return v.current
}

func (v *Variable) GetPortValue(node.Graph, nodeid.Address, int) cty.Value {
	return v.Value()
}

func (v *Variable) GetPortString(node.Graph, nodeid.Address, int) string {
	return format(v.Value())
}
