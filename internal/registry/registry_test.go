package registry

import (
	"context"
	"io"
	"log/slog"
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type okNode struct{ hits int }

func (*okNode) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewExit("out"))
}

type dupNode struct{}

func (*dupNode) CreatePorts(d *node.Declaration) {
	d.Add(port.NewEnter("in"))
	d.Add(port.NewExit("in"))
	d.Add(port.NewExit(""))
}

type okModule struct{}

func (okModule) Register(r *Registry) {
	Register[okNode](r, "ok", "two flow ports")
	Register[struct{}](r, "bare", "no ports")
}

func testContext() context.Context {
	return ctxlog.WithLogger(context.Background(), slog.New(slog.NewTextHandler(io.Discard, nil)))
}

func TestRegisterAndLookup(t *testing.T) {
	r := New()
	r.RegisterModules(okModule{})

	assert.Equal(t, []string{"bare", "ok"}, r.Names())

	nt, ok := r.Lookup("ok")
	require.True(t, ok)
	assert.Equal(t, "two flow ports", nt.Description)

	src := nt.NewSource()
	assert.Equal(t, "ok", src.Name())
	id := src.AddNode()
	record, err := src.Node(id)
	require.NoError(t, err)
	assert.IsType(t, &okNode{}, record)

	_, ok = r.Lookup("missing")
	assert.False(t, ok)
}

func TestRegister_DuplicatePanics(t *testing.T) {
	r := New()
	Register[okNode](r, "ok", "")
	assert.Panics(t, func() { Register[dupNode](r, "ok", "") })
}

func TestValidateRegistry(t *testing.T) {
	r := New()
	r.RegisterModules(okModule{})
	require.NoError(t, r.ValidateRegistry(testContext()))

	Register[dupNode](r, "dup", "")
	err := r.ValidateRegistry(testContext())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "port 'in' declared at 0 and 1")
	assert.Contains(t, err.Error(), "port 2 has no name")
}
