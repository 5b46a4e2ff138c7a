package value

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/zclconf/go-cty/cty"
)

// Constant outputs an authored value. Its output is typed by the authored
// value type, or by the value itself when no type is given.
type Constant struct {
	Type  cty.Type
	Value cty.Value
}

func (c *Constant) ConfigureType(ty cty.Type) error {
	v, err := coerce(c.Value, ty)
	if err != nil {
		return fmt.Errorf("value does not fit %s: %w", ty.FriendlyName(), err)
	}
	c.Type, c.Value = ty, v
	return nil
}

func (c *Constant) Configure(fields map[string]cty.Value) error {
	if err := node.KnownFields(fields, "value"); err != nil {
		return err
	}
	v, ok := fields["value"]
	if !ok {
		return nil
	}
	v, err := coerce(v, c.Type)
	if err != nil {
		return fmt.Errorf("value does not fit %s: %w", c.Type.FriendlyName(), err)
	}
	c.Value = v
	return nil
}

func (c *Constant) OnValidate() error {
	if c.Value == cty.NilVal {
		return errors.New("constant requires a value")
	}
	return nil
}

func (c *Constant) outputType() cty.Type {
	switch {
	case c.Type != cty.NilType:
		return c.Type
	case c.Value != cty.NilVal:
		return c.Value.Type()
	default:
		return cty.DynamicPseudoType
	}
}

func (c *Constant) CreatePorts(d *node.Declaration) {
	d.Add(port.NewOutput("value", c.outputType()))
}

func (c *Constant) GetPortValue(node.Graph, nodeid.Address, int) cty.Value {
	return c.Value
}

func (c *Constant) GetPortString(node.Graph, nodeid.Address, int) string {
	return format(c.Value)
}
