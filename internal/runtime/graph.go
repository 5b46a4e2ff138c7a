package runtime

import (
	"cmp"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"slices"

	"github.com/specialistvlad/blueprintgo/internal/linkstore"
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/nodestore"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/specialistvlad/blueprintgo/internal/portstore"
	"github.com/zclconf/go-cty/cty"
)

// DefaultMaxCallDepth bounds nested Enter calls.
const DefaultMaxCallDepth = 256

var (
	// ErrNotInitialized is returned by DeInitialize before Initialize.
	ErrNotInitialized = errors.New("graph is not initialized")
	// ErrAlreadyInitialized is returned by a second Initialize.
	ErrAlreadyInitialized = errors.New("graph is already initialized")
	// ErrNodeNotFound is returned when an address names no compiled node.
	ErrNodeNotFound = errors.New("node not found")
)

type state uint8

const (
	compiled state = iota
	initialized
	deinitialized
)

func (s state) String() string {
	switch s {
	case compiled:
		return "compiled"
	case initialized:
		return "initialized"
	default:
		return "deinitialized"
	}
}

// Option configures a Graph.
type Option func(*Graph)

// WithMaxCallDepth sets the call depth limit. Values below 1 keep the default.
func WithMaxCallDepth(depth int) Option {
	return func(g *Graph) {
		if depth > 0 {
			g.maxDepth = depth
		}
	}
}

// WithLogger sets the logger used for diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) {
		if l != nil {
			g.logger = l
		}
	}
}

// Graph is a compiled graph.
type Graph struct {
	sources []nodestore.Source
	typeIDs map[string]int32
	ports   *portstore.Store
	links   *linkstore.Index
	values  map[nodeid.Endpoint]cty.Value
	tokens  map[nodeid.Address]node.Token
	hashes  map[uint64][]nodeid.Endpoint

	state    state
	runner   node.Runner
	depth    int
	maxDepth int
	logger   *slog.Logger
}

var _ node.Graph = (*Graph)(nil)

// New creates an empty compiled graph. It is populated by the compiler.
func New(opts ...Option) *Graph {
	g := &Graph{
		typeIDs:  make(map[string]int32),
		ports:    portstore.New(),
		links:    linkstore.New(),
		values:   make(map[nodeid.Endpoint]cty.Value),
		tokens:   make(map[nodeid.Address]node.Token),
		hashes:   make(map[uint64][]nodeid.Endpoint),
		maxDepth: DefaultMaxCallDepth,
		logger:   slog.New(slog.NewTextHandler(io.Discard, nil)),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// CloneNode copies record id of src into the runtime storage for src's
// node type and records the instance token.
func (g *Graph) CloneNode(src nodestore.Source, id int32, caller nodeid.Address) (nodeid.Address, error) {
	sourceID, ok := g.typeIDs[src.Name()]
	if !ok {
		g.sources = append(g.sources, src.NewEmpty())
		sourceID = int32(len(g.sources))
		g.typeIDs[src.Name()] = sourceID
	}

	n, err := g.sources[sourceID-1].CloneFrom(src, id)
	if err != nil {
		return nodeid.Zero, fmt.Errorf("clone %s node %d: %w", src.Name(), id, err)
	}
	rid := nodeid.New(sourceID, n)
	g.tokens[rid] = node.Token{Self: rid, Caller: caller}
	return rid, nil
}

// AddPort registers a port of a compiled node.
func (g *Graph) AddPort(id nodeid.Address, index int, p port.Port) {
	g.ports.AddPort(id, index, p)
}

// AddLink stores a resolved link from its owning endpoint.
func (g *Graph) AddLink(from nodeid.Endpoint, to nodeid.Endpoint) bool {
	return g.links.AddLink(from.Node, from.Port, to.Node, to.Port)
}

// SetPortValue seeds the value read from an unlinked input.
func (g *Graph) SetPortValue(ep nodeid.Endpoint, v cty.Value) {
	g.values[ep] = v
}

// RegisterHash adds target to the entries called by CallHash(hash).
// Registrations accumulate in order.
func (g *Graph) RegisterHash(hash uint64, target nodeid.Endpoint) {
	g.hashes[hash] = append(g.hashes[hash], target)
}

func (g *Graph) source(id nodeid.Address) (nodestore.Source, error) {
	if id.Source < 1 || int(id.Source) > len(g.sources) || !g.sources[id.Source-1].Has(id.Node) {
		return nil, fmt.Errorf("runtime node %s: %w", id, ErrNodeNotFound)
	}
	return g.sources[id.Source-1], nil
}

// Node returns a pointer to the record of id.
func (g *Graph) Node(id nodeid.Address) (any, error) {
	src, err := g.source(id)
	if err != nil {
		return nil, err
	}
	return src.Node(id.Node)
}

// TypeOf returns the node type name of id.
func (g *Graph) TypeOf(id nodeid.Address) (string, error) {
	src, err := g.source(id)
	if err != nil {
		return "", err
	}
	return src.Name(), nil
}

// Nodes returns every node ordered by source and slot.
func (g *Graph) Nodes() []nodeid.Address {
	var out []nodeid.Address
	for i, src := range g.sources {
		for _, n := range src.IDs() {
			out = append(out, nodeid.New(int32(i+1), n))
		}
	}
	return out
}

// NodesOfType returns the nodes of the named type in slot order.
func (g *Graph) NodesOfType(typeName string) []nodeid.Address {
	sourceID, ok := g.typeIDs[typeName]
	if !ok {
		return nil
	}
	var out []nodeid.Address
	for _, n := range g.sources[sourceID-1].IDs() {
		out = append(out, nodeid.New(sourceID, n))
	}
	return out
}

// Token returns the instance token of id.
func (g *Graph) Token(id nodeid.Address) (node.Token, bool) {
	tok, ok := g.tokens[id]
	return tok, ok
}

// Port returns the port at (id, index).
func (g *Graph) Port(id nodeid.Address, index int) (port.Port, bool) {
	return g.ports.TryGetPort(id, index)
}

// Ports returns the ports of id in index order.
func (g *Graph) Ports(id nodeid.Address) []portstore.Indexed {
	return g.ports.Ports(id)
}

// FindPort returns the lowest index of the port named name on id.
func (g *Graph) FindPort(id nodeid.Address, name string) (int, bool) {
	return g.ports.FindPort(id, name)
}

// Links returns every link from its owning side.
func (g *Graph) Links() []linkstore.Edge {
	return g.links.Edges()
}

// LinksFrom returns the targets of the owning port (id, index).
func (g *Graph) LinksFrom(id nodeid.Address, index int) []nodeid.Endpoint {
	return g.links.LinksFrom(id, index)
}

// PortValue returns the seeded value of (id, index).
func (g *Graph) PortValue(id nodeid.Address, index int) (cty.Value, bool) {
	v, ok := g.values[id.At(index)]
	return v, ok
}

// Hashes returns every registered hash in ascending order.
func (g *Graph) Hashes() []uint64 {
	out := make([]uint64, 0, len(g.hashes))
	for h := range g.hashes {
		out = append(out, h)
	}
	slices.SortFunc(out, cmp.Compare[uint64])
	return out
}

// Runner returns the runner passed to Initialize, or nil.
func (g *Graph) Runner() node.Runner {
	return g.runner
}

// Logger returns the diagnostic logger.
func (g *Graph) Logger() *slog.Logger {
	return g.logger
}

// MaxCallDepth is the configured call depth limit.
func (g *Graph) MaxCallDepth() int {
	return g.maxDepth
}
