package meta

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestAddNode(t *testing.T) {
	g := newTestGraph(t)

	a := mustAdd(t, g, "flow")
	b := mustAdd(t, g, "number")
	c := mustAdd(t, g, "flow")

	assert.Equal(t, nodeid.New(1, 1), a)
	assert.Equal(t, nodeid.New(2, 1), b)
	assert.Equal(t, nodeid.New(1, 2), c)
	assert.Equal(t, []nodeid.Address{a, c, b}, g.Nodes())
	assert.Equal(t, 3, g.NodeCount())

	typeName, err := g.TypeOf(b)
	require.NoError(t, err)
	assert.Equal(t, "number", typeName)

	ports := g.Ports(a)
	require.Len(t, ports, 2)
	assert.Equal(t, "out", ports[1].Port.Name)

	_, err = g.AddNode("nope")
	assert.ErrorIs(t, err, ErrUnknownType)
}

func TestRemoveNode_Cascade(t *testing.T) {
	g := newTestGraph(t)
	a := mustAdd(t, g, "flow")
	b := mustAdd(t, g, "flow")
	c := mustAdd(t, g, "flow")
	n := mustAdd(t, g, "number")
	r := mustAdd(t, g, "reader")

	require.True(t, g.TryCreateLink(a, 1, b, 0))
	require.True(t, g.TryCreateLink(b, 1, c, 0))
	require.True(t, g.TryCreateLink(r, 1, n, 0))
	require.NoError(t, g.SetNodeName(b, "middle"))
	require.NoError(t, g.SetPortValue(r, 0, cty.StringVal("x")))

	var changed []nodeid.Endpoint
	g.OnPortChanged(func(id nodeid.Address, port int) {
		changed = append(changed, id.At(port))
	})

	require.NoError(t, g.RemoveNode(b))
	assert.Equal(t, 1, g.LinkCount())
	assert.Empty(t, g.LinksFrom(a, 1))
	assert.Empty(t, g.LinksTo(c, 0))
	want := []nodeid.Endpoint{a.At(1), b.At(0), b.At(1), c.At(0)}
	if diff := cmp.Diff(want, changed); diff != "" {
		t.Errorf("port change notifications (-want +got):\n%s", diff)
	}

	_, err := g.Node(b)
	assert.ErrorIs(t, err, ErrNodeNotFound)
	assert.ErrorIs(t, g.RemoveNode(b), ErrNodeNotFound)
	_, ok := g.NodeByName("middle")
	assert.False(t, ok)
	assert.Empty(t, g.Ports(b))

	require.NoError(t, g.RemoveNode(r))
	assert.Empty(t, g.PortValues())
	assert.Equal(t, 0, g.LinkCount())

	// The freed slot is reused for the next node of the same type.
	again := mustAdd(t, g, "flow")
	assert.Equal(t, b, again)
	assert.Empty(t, g.LinksTo(again, 0))
}

func TestNodeNames(t *testing.T) {
	g := newTestGraph(t)
	a := mustAdd(t, g, "flow")
	b := mustAdd(t, g, "flow")

	require.NoError(t, g.SetNodeName(a, "start"))
	assert.Error(t, g.SetNodeName(b, "start"))
	require.NoError(t, g.SetNodeName(a, "begin"))
	require.NoError(t, g.SetNodeName(b, "start"))

	id, ok := g.NodeByName("start")
	assert.True(t, ok)
	assert.Equal(t, b, id)
	name, _ := g.NodeName(a)
	assert.Equal(t, "begin", name)
	assert.ErrorIs(t, g.SetNodeName(nodeid.New(9, 9), "x"), ErrNodeNotFound)
}

func TestSetPortValue(t *testing.T) {
	g := newTestGraph(t)
	r := mustAdd(t, g, "reader")
	n := mustAdd(t, g, "number")

	require.NoError(t, g.SetPortValue(r, 1, cty.NumberIntVal(4)))
	assert.ErrorIs(t, g.SetPortValue(n, 0, cty.NumberIntVal(4)), ErrNotAnInput)

	v, ok := g.PortValue(r, 1)
	require.True(t, ok)
	assert.True(t, v.RawEquals(cty.NumberIntVal(4)))

	values := g.PortValues()
	delete(values, r.At(1))
	_, ok = g.PortValue(r, 1)
	assert.True(t, ok, "PortValues returns a copy")

	g.ClearPortValue(r, 1)
	_, ok = g.PortValue(r, 1)
	assert.False(t, ok)
}

func TestConfigure(t *testing.T) {
	g := newTestGraph(t)
	s := mustAdd(t, g, "configurable")
	f := mustAdd(t, g, "flow")
	assert.Empty(t, g.Ports(s))

	require.NoError(t, g.Configure(s, map[string]cty.Value{"count": cty.NumberIntVal(2)}))
	assert.Len(t, g.Ports(s), 2)
	require.True(t, g.TryCreateLink(s, 1, f, 0))

	require.NoError(t, g.Configure(s, map[string]cty.Value{"count": cty.NumberIntVal(1)}))
	assert.Len(t, g.Ports(s), 1)
	assert.Empty(t, g.LinksTo(f, 0), "links of the dropped port are removed")

	assert.Error(t, g.Configure(f, map[string]cty.Value{"count": cty.NumberIntVal(1)}))
}
