// Package env_vars provides the `env` node type, which reads one process
// environment variable when a run starts.
package env_vars

import (
	"errors"
	"os"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Env outputs the variable Name as captured at initialization, or Default
// when it is unset.
type Env struct {
	Name    string
	Default string

	value string
	found bool
}

func (e *Env) Configure(fields map[string]cty.Value) error {
	if err := node.KnownFields(fields, "name", "default"); err != nil {
		return err
	}
	if err := node.Field(fields, "name", &e.Name); err != nil {
		return err
	}
	return node.Field(fields, "default", &e.Default)
}

func (e *Env) OnValidate() error {
	if e.Name == "" {
		return errors.New("env requires a variable name")
	}
	return nil
}

func (*Env) CreatePorts(d *node.Declaration) {
	d.Add(port.NewOutput("value", cty.String))
	d.Add(port.NewOutput("found", cty.Bool))
}

func (e *Env) OnInitialize(g node.Graph, tok node.Token) {
	e.value, e.found = os.LookupEnv(e.Name)
	if !e.found {
		e.value = e.Default
	}
	g.Logger().Debug("Environment variable captured.", "node", tok.Self.String(), "name", e.Name, "found", e.found)
}

func (e *Env) OnDeInitialize(node.Graph, node.Token) {
	e.value, e.found = "", false
}

func (e *Env) GetPortValue(_ node.Graph, _ nodeid.Address, index int) cty.Value {
	if index == 1 {
		return cty.BoolVal(e.found)
	}
	return cty.StringVal(e.value)
}

// Register registers the node type with the engine.
func (m *Module) Register(r *registry.Registry) {
	registry.Register[Env](r, "env", "Reads the environment variable `name`.")
}
