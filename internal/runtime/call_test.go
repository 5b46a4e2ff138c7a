package runtime

import (
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCall_EntersTargetExactlyOnce(t *testing.T) {
	f := newFixture(t)
	a := add(t, f, relay{name: "A", j: f.j}, port.NewEnter("in"), port.NewExit("out"))
	b := add(t, f, target{name: "B", j: f.j}, port.NewEnter("in"))
	require.True(t, f.g.AddLink(a.At(1), b.At(0)))

	h, ok := f.g.links.TryGetLinksFrom(a, 1)
	require.True(t, ok)
	got, ok := f.g.links.GetLink(h)
	require.True(t, ok)
	assert.Equal(t, b.At(0), got)

	f.start(t)
	f.g.Call(a, 1)
	assert.Equal(t, []string{"B.0"}, f.j.events)
}

func TestCall_MultiLinkInsertionOrder(t *testing.T) {
	f := newFixture(t)
	a := add(t, f, relay{name: "A", j: f.j}, port.NewEnter("in"), port.NewExit("out"))
	var targets []nodeid.Address
	for _, name := range []string{"B0", "B1", "B2"} {
		targets = append(targets, add(t, f, target{name: name, j: f.j}, port.NewEnter("in")))
	}
	for _, b := range targets {
		require.True(t, f.g.AddLink(a.At(1), b.At(0)))
	}

	f.start(t)
	f.g.Call(a, 1)
	assert.Equal(t, []string{"B0.0", "B1.0", "B2.0"}, f.j.events)

	// Depth first: a relay finishes its own walk before the next sibling.
	f.j.events = nil
	c := add(t, f, relay{name: "C", j: f.j}, port.NewEnter("in"), port.NewExit("out"))
	d := add(t, f, target{name: "D", j: f.j}, port.NewEnter("in"))
	require.True(t, f.g.AddLink(c.At(1), d.At(0)))
	root := add(t, f, relay{name: "R", j: f.j}, port.NewEnter("in"), port.NewExit("out"))
	require.True(t, f.g.AddLink(root.At(1), c.At(0)))
	require.True(t, f.g.AddLink(root.At(1), targets[0].At(0)))
	f.g.Enter(root, 0)
	assert.Equal(t, []string{"R.0", "C.0", "D.0", "B0.0"}, f.j.events)
}

func TestCall_Unresolvable(t *testing.T) {
	f := newFixture(t)
	a := add(t, f, relay{name: "A", j: f.j}, port.NewEnter("in"), port.NewExit("out"))
	b := add(t, f, inert{}, port.NewEnter("in"))
	c := add(t, f, target{name: "C", j: f.j}, port.NewEnter("in"))
	require.True(t, f.g.AddLink(a.At(1), b.At(0)))
	require.True(t, f.g.AddLink(a.At(1), c.At(0)))

	f.g.Call(a, 1)
	assert.Empty(t, f.j.events, "no dispatch before Initialize")
	assert.Contains(t, f.log.String(), "Flow operation outside of a run.")

	f.start(t)
	f.g.Call(a, 1)
	assert.Equal(t, []string{"C.0"}, f.j.events, "a node without Enterer is skipped")
	assert.Contains(t, f.log.String(), "Node cannot be entered.")

	f.g.Call(a, 0)
	assert.Contains(t, f.log.String(), "Call on a port that is not an exit.")
	f.g.Call(a, 9)
	assert.Contains(t, f.log.String(), "Call on unknown port.")
	f.g.Enter(nodeid.New(9, 9), 0)
	assert.Contains(t, f.log.String(), "Enter on missing node.")
}

func TestCall_DepthGuard(t *testing.T) {
	f := newFixture(t, WithMaxCallDepth(5))
	a := add(t, f, relay{name: "A", j: f.j}, port.NewEnter("in"), port.NewExit("out"))
	require.True(t, f.g.AddLink(a.At(1), a.At(0)))

	f.start(t)
	f.g.Enter(a, 0)
	assert.Len(t, f.j.events, 5)
	assert.Contains(t, f.log.String(), "Call depth limit reached, walk stopped.")
	assert.Equal(t, 0, f.g.depth, "depth unwinds after the walk")
	assert.Equal(t, 5, f.g.MaxCallDepth())
}

func TestCallLabel(t *testing.T) {
	f := newFixture(t)
	a := add(t, f, target{name: "A", j: f.j}, port.NewEnter("in"))
	b := add(t, f, target{name: "B", j: f.j}, port.NewEnter("in"), port.NewEnter("alt"))

	f.g.RegisterHash(HashLabel("main"), b.At(1))
	f.g.RegisterHash(HashLabel("main"), a.At(0))
	f.g.RegisterHash(HashLabel("other"), a.At(0))

	f.start(t)
	f.g.CallLabel("main")
	assert.Equal(t, []string{"B.1", "A.0"}, f.j.events)

	f.j.events = nil
	f.g.CallHash(HashLabel("other"))
	assert.Equal(t, []string{"A.0"}, f.j.events)

	f.g.CallLabel("missing")
	assert.Contains(t, f.log.String(), "No targets registered for label.")
	assert.Len(t, f.g.Hashes(), 2)
}

func TestHashLabel(t *testing.T) {
	assert.Equal(t, HashLabel("main"), HashLabel("main"))
	assert.NotEqual(t, HashLabel("main"), HashLabel("Main"))
	// FNV-1a 64 offset basis.
	assert.Equal(t, uint64(0xcbf29ce484222325), HashLabel(""))
}
