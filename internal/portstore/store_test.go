package portstore

import (
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestAddAndGetPort(t *testing.T) {
	s := New()
	a := nodeid.New(1, 1)

	s.AddPort(a, 0, port.NewEnter("in"))
	s.AddPort(a, 1, port.NewExit("out"))

	p, err := s.GetPort(a, 1)
	require.NoError(t, err)
	assert.Equal(t, "out", p.Name)

	s.AddPort(a, 1, port.NewExit("next"))
	p, err = s.GetPort(a, 1)
	require.NoError(t, err)
	assert.Equal(t, "next", p.Name, "AddPort must overwrite")
	assert.Equal(t, 2, s.Count(a))

	_, err = s.GetPort(a, 7)
	assert.ErrorIs(t, err, ErrNotFound)
	_, err = s.GetPort(nodeid.New(9, 9), 0)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestPorts_OrderedByIndex(t *testing.T) {
	s := New()
	a := nodeid.New(1, 1)
	s.AddPort(a, 2, port.NewOutput("c", cty.Number))
	s.AddPort(a, 0, port.NewEnter("a"))
	s.AddPort(a, 1, port.NewExit("b"))

	var names []string
	for _, ip := range s.Ports(a) {
		names = append(names, ip.Port.Name)
	}
	assert.Equal(t, []string{"a", "b", "c"}, names)

	index, ok := s.FindPort(a, "c")
	assert.True(t, ok)
	assert.Equal(t, 2, index)
	_, ok = s.FindPort(a, "missing")
	assert.False(t, ok)
}

func TestRemove(t *testing.T) {
	s := New()
	a := nodeid.New(1, 1)
	b := nodeid.New(1, 2)
	s.AddPort(a, 0, port.NewEnter("in"))
	s.AddPort(a, 1, port.NewExit("out"))
	s.AddPort(b, 0, port.NewEnter("in"))

	assert.True(t, s.RemovePort(a, 0))
	assert.False(t, s.RemovePort(a, 0))
	assert.Equal(t, 1, s.Count(a))

	assert.Equal(t, 1, s.RemoveNode(a))
	assert.Equal(t, 0, s.Count(a))
	assert.Equal(t, 1, s.Len())
	assert.Empty(t, s.Ports(a))
}
