package node

import (
	"context"
	"io"
	"log/slog"

	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/nodestore"
	"github.com/zclconf/go-cty/cty"
)

// Runner supplies ambient services to nodes during a run. The engine passes
// it through untouched.
type Runner interface {
	Context() context.Context
	Output() io.Writer
}

// Graph is the view of a compiled graph handed to node capabilities.
type Graph interface {
	// Call invokes every link of the owning flow port (id, port).
	Call(id nodeid.Address, port int)
	// Enter invokes OnEnterPort on id directly.
	Enter(id nodeid.Address, port int)
	// Read resolves the data input (id, port), falling back to def.
	Read(id nodeid.Address, port int, def cty.Value) cty.Value
	// ReadArray aggregates every link of the data input (id, port).
	ReadArray(id nodeid.Address, port int) []cty.Value
	CallHash(hash uint64)
	CallLabel(name string)
	Runner() Runner
	Logger() *slog.Logger
}

// Token identifies a node instance inside a compiled graph. Caller is the
// subgraph node that instantiated it, or the zero address at the root.
type Token struct {
	Self   nodeid.Address
	Caller nodeid.Address
}

// Label is a named flow target published by a Labeled node.
type Label struct {
	Name string
	Port int
}

type (
	// Declarer registers the node's ports. The result must depend only on the
	// record's authored state.
	Declarer interface {
		CreatePorts(d *Declaration)
	}

	// Defaulter initialises a freshly allocated record.
	Defaulter = nodestore.Defaulter

	// Configurer applies authored fields to the record.
	Configurer interface {
		Configure(fields map[string]cty.Value) error
	}

	// TypeConfigurer accepts an authored value type for records whose port
	// types are not fixed.
	TypeConfigurer interface {
		ConfigureType(ty cty.Type) error
	}

	// Validator checks the record after it has been configured.
	Validator interface {
		OnValidate() error
	}

	Initializer interface {
		OnInitialize(g Graph, tok Token)
	}

	DeInitializer interface {
		OnDeInitialize(g Graph, tok Token)
	}

	// Enterer receives calls on its enter ports.
	Enterer interface {
		OnEnterPort(g Graph, id nodeid.Address, port int)
	}

	// Outputter answers reads of a single value from an output port.
	Outputter interface {
		GetPortValue(g Graph, id nodeid.Address, port int) cty.Value
	}

	// ArrayOutputter answers reads of a sequence from an output port.
	ArrayOutputter interface {
		GetPortValues(g Graph, id nodeid.Address, port int) []cty.Value
	}

	// StringOutputter lets any output satisfy a string-typed input.
	StringOutputter interface {
		GetPortString(g Graph, id nodeid.Address, port int) string
	}

	// Labeled publishes named flow targets.
	Labeled interface {
		FlowLabels() []Label
	}
)
