package runtime

import (
	"bytes"
	"context"
	"fmt"
	"log/slog"
	"os"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/nodestore"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

// journal is shared by every clone of a test record.
type journal struct{ events []string }

func (j *journal) add(format string, args ...any) {
	j.events = append(j.events, fmt.Sprintf(format, args...))
}

// target records every enter.
type target struct {
	name string
	j    *journal
}

func (n *target) OnEnterPort(_ node.Graph, _ nodeid.Address, port int) {
	n.j.add("%s.%d", n.name, port)
}

// relay records the enter and calls its exit at port 1.
type relay struct {
	name string
	j    *journal
}

func (n *relay) OnEnterPort(g node.Graph, id nodeid.Address, port int) {
	n.j.add("%s.%d", n.name, port)
	g.Call(id, 1)
}

// lifecycle records initialisation.
type lifecycle struct {
	name string
	j    *journal
}

func (n *lifecycle) OnInitialize(g node.Graph, tok node.Token) {
	n.j.add("init %s caller=%s", n.name, tok.Caller)
}

func (n *lifecycle) OnDeInitialize(node.Graph, node.Token) {
	n.j.add("deinit %s", n.name)
}

type inert struct{}

type constant struct{ v cty.Value }

func (c *constant) GetPortValue(node.Graph, nodeid.Address, int) cty.Value { return c.v }

type stringer struct{ constant }

func (*stringer) GetPortString(node.Graph, nodeid.Address, int) string { return "as-string" }

type many struct{ vs []cty.Value }

func (m *many) GetPortValues(node.Graph, nodeid.Address, int) []cty.Value { return m.vs }

type fixture struct {
	g   *Graph
	log *bytes.Buffer
	j   *journal
}

func newFixture(t *testing.T, opts ...Option) *fixture {
	t.Helper()
	buf := &bytes.Buffer{}
	logger := slog.New(slog.NewTextHandler(buf, &slog.HandlerOptions{Level: slog.LevelDebug}))
	t.Cleanup(func() {
		if os.Getenv("BLUEPRINT_TEST_LOGS") == "true" {
			t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), buf.String())
		}
	})
	return &fixture{
		g:   New(append([]Option{WithLogger(logger)}, opts...)...),
		log: buf,
		j:   &journal{},
	}
}

func add[T any](t *testing.T, f *fixture, record T, ports ...port.Port) nodeid.Address {
	t.Helper()
	src := nodestore.New[T](fmt.Sprintf("%T", record))
	id := src.AddNode()
	p, err := src.GetNode(id)
	require.NoError(t, err)
	*p = record

	rid, err := f.g.CloneNode(src, id, nodeid.Zero)
	require.NoError(t, err)
	for i, pt := range ports {
		f.g.AddPort(rid, i, pt)
	}
	return rid
}

func (f *fixture) start(t *testing.T) {
	t.Helper()
	require.NoError(t, f.g.Initialize(node.NewRunner(context.Background(), &bytes.Buffer{})))
}
