package meta

import (
	"io"
	"log/slog"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

type flowNode struct{}

func (*flowNode) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewExit("out"))
}

type singleExit struct{}

func (*singleExit) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewExit("next").Single())
}

type numberSource struct{ value float64 }

func (*numberSource) CreatePorts(d *node.Declaration) {
	d.Add(port.NewOutput("value", cty.Number))
}

func (n *numberSource) GetPortValue(node.Graph, nodeid.Address, int) cty.Value {
	return cty.NumberFloatVal(n.value)
}

type stringerSource struct{ numberSource }

func (*stringerSource) GetPortString(node.Graph, nodeid.Address, int) string {
	return "text"
}

type reader struct{}

func (*reader) CreatePorts(d *node.Declaration) {
	d.Add(port.NewInput("text", cty.String))
	d.Add(port.NewInput("num", cty.Number))
	d.Add(port.NewInputArray("all", cty.Number))
}

// shape declares whatever ports a test assigns to it.
type shape struct{ ports []port.Port }

func (s *shape) CreatePorts(d *node.Declaration) {
	for _, p := range s.ports {
		d.Add(p)
	}
}

type configurable struct {
	count int
}

func (c *configurable) Configure(fields map[string]cty.Value) error {
	if v, ok := fields["count"]; ok {
		n, _ := v.AsBigFloat().Int64()
		c.count = int(n)
	}
	return nil
}

func (c *configurable) CreatePorts(d *node.Declaration) {
	for i := 0; i < c.count; i++ {
		d.Add(port.NewExit("then"))
	}
}

type binder struct{}

func testRegistry() *registry.Registry {
	r := registry.New()
	registry.Register[flowNode](r, "flow", "")
	registry.Register[singleExit](r, "single", "")
	registry.Register[numberSource](r, "number", "")
	registry.Register[stringerSource](r, "stringer", "")
	registry.Register[reader](r, "reader", "")
	registry.Register[shape](r, "shape", "")
	registry.Register[configurable](r, "configurable", "")
	registry.Register[binder](r, "binder", "")
	return r
}

func newTestGraph(t *testing.T, opts ...Option) *Graph {
	t.Helper()
	opts = append([]Option{WithLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))}, opts...)
	return New(t.Name(), testRegistry(), opts...)
}

func mustAdd(t *testing.T, g *Graph, typeName string) nodeid.Address {
	t.Helper()
	id, err := g.AddNode(typeName)
	require.NoError(t, err)
	return id
}

type library map[string]*Graph

func (l library) ResolveGraph(ref string) (*Graph, bool) {
	g, ok := l[ref]
	return g, ok
}
