package meta

import (
	"errors"
	"fmt"
	"log/slog"
	"slices"

	"github.com/specialistvlad/blueprintgo/internal/linkstore"
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/nodestore"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/specialistvlad/blueprintgo/internal/portstore"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

var (
	// ErrUnknownType is returned by AddNode for a type missing from the registry.
	ErrUnknownType = errors.New("unknown node type")
	// ErrNodeNotFound is returned when an address names no live node.
	ErrNodeNotFound = errors.New("node not found")
	// ErrNotAnInput is returned when a value is seeded on a port that is not a data input.
	ErrNotAnInput = errors.New("port is not a data input")
	// ErrUnknownSubgraph is returned when a subgraph reference cannot be resolved.
	ErrUnknownSubgraph = errors.New("unknown subgraph")
	// ErrRecursiveSubgraph is returned when a graph binds itself.
	ErrRecursiveSubgraph = errors.New("subgraph refers to itself")
)

// Resolver maps subgraph references to graphs.
type Resolver interface {
	ResolveGraph(ref string) (*Graph, bool)
}

// InvalidateFunc is notified with the port indices of id whose meaning
// changed during InvalidateNode.
type InvalidateFunc func(id nodeid.Address, changed []int)

// Option configures a Graph.
type Option func(*Graph)

// WithAllowSelfLinks permits links between two ports of the same node.
func WithAllowSelfLinks(allow bool) Option {
	return func(g *Graph) { g.allowSelfLinks = allow }
}

// WithResolver sets the resolver used by SetSubgraph.
func WithResolver(r Resolver) Option {
	return func(g *Graph) { g.resolver = r }
}

// WithLogger sets the logger used for authoring diagnostics.
func WithLogger(l *slog.Logger) Option {
	return func(g *Graph) { g.logger = l }
}

type invalidateListener struct {
	id int
	fn InvalidateFunc
}

// Graph is one authoring graph.
type Graph struct {
	name     string
	registry *registry.Registry

	sources  []nodestore.Source
	typeIDs  map[string]int32
	names    map[nodeid.Address]string
	byName   map[string]nodeid.Address
	ports    *portstore.Store
	links    *linkstore.Index
	values   map[nodeid.Endpoint]cty.Value
	bindings map[nodeid.Address]*binding

	resolver       Resolver
	allowSelfLinks bool
	logger         *slog.Logger

	invalidateListeners []invalidateListener
	nextListener        int
}

// New creates an empty graph whose node types come from reg.
func New(name string, reg *registry.Registry, opts ...Option) *Graph {
	g := &Graph{
		name:     name,
		registry: reg,
		typeIDs:  make(map[string]int32),
		names:    make(map[nodeid.Address]string),
		byName:   make(map[string]nodeid.Address),
		ports:    portstore.New(),
		links:    linkstore.New(),
		values:   make(map[nodeid.Endpoint]cty.Value),
		bindings: make(map[nodeid.Address]*binding),
		logger:   slog.Default(),
	}
	for _, opt := range opts {
		opt(g)
	}
	return g
}

// Name is the graph's name.
func (g *Graph) Name() string {
	return g.name
}

// SetResolver replaces the resolver used by SetSubgraph.
func (g *Graph) SetResolver(r Resolver) {
	g.resolver = r
}

func (g *Graph) source(id nodeid.Address) (nodestore.Source, error) {
	if id.Source < 1 || int(id.Source) > len(g.sources) || !g.sources[id.Source-1].Has(id.Node) {
		return nil, fmt.Errorf("node %s in graph '%s': %w", id, g.name, ErrNodeNotFound)
	}
	return g.sources[id.Source-1], nil
}

// AddNode allocates a node of the named type and registers the ports it
// declares.
func (g *Graph) AddNode(typeName string) (nodeid.Address, error) {
	sourceID, ok := g.typeIDs[typeName]
	if !ok {
		nt, found := g.registry.Lookup(typeName)
		if !found {
			return nodeid.Zero, fmt.Errorf("node type '%s': %w", typeName, ErrUnknownType)
		}
		g.sources = append(g.sources, nt.NewSource())
		sourceID = int32(len(g.sources))
		g.typeIDs[typeName] = sourceID
	}

	src := g.sources[sourceID-1]
	id := nodeid.New(sourceID, src.AddNode())
	record, err := src.Node(id.Node)
	if err != nil {
		return nodeid.Zero, err
	}
	for i, p := range node.Declare(record) {
		g.ports.AddPort(id, i, p)
	}

	g.logger.Debug("Node added.", "graph", g.name, "node", id.String(), "type", typeName)
	return id, nil
}

// RemoveNode removes id together with its links, ports, name, subgraph
// binding and seeded values.
func (g *Graph) RemoveNode(id nodeid.Address) error {
	src, err := g.source(id)
	if err != nil {
		return err
	}

	removed := g.links.RemoveNode(id)
	g.ports.RemoveNode(id)
	delete(g.bindings, id)
	for ep := range g.values {
		if ep.Node == id {
			delete(g.values, ep)
		}
	}
	if name, ok := g.names[id]; ok {
		delete(g.byName, name)
		delete(g.names, id)
	}
	if err := src.RemoveNode(id.Node); err != nil {
		return err
	}

	g.logger.Debug("Node removed.", "graph", g.name, "node", id.String(), "links", removed)
	return nil
}

// Has reports whether id is a live node.
func (g *Graph) Has(id nodeid.Address) bool {
	_, err := g.source(id)
	return err == nil
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

// Source returns the storage behind a source index, or nil.
func (g *Graph) Source(index int32) nodestore.Source {
	if index < 1 || int(index) > len(g.sources) {
		return nil
	}
	return g.sources[index-1]
}

// Nodes returns every live node ordered by source and slot.
func (g *Graph) Nodes() []nodeid.Address {
	var out []nodeid.Address
	for i, src := range g.sources {
		for _, n := range src.IDs() {
			out = append(out, nodeid.New(int32(i+1), n))
		}
	}
	return out
}

// NodeCount is the number of live nodes.
func (g *Graph) NodeCount() int {
	n := 0
	for _, src := range g.sources {
		n += src.Len()
	}
	return n
}

// SetNodeName attaches a unique authoring name to id.
func (g *Graph) SetNodeName(id nodeid.Address, name string) error {
	if !g.Has(id) {
		return fmt.Errorf("node %s in graph '%s': %w", id, g.name, ErrNodeNotFound)
	}
	if other, ok := g.byName[name]; ok && other != id {
		return fmt.Errorf("node name '%s' already used by %s in graph '%s'", name, other, g.name)
	}
	if old, ok := g.names[id]; ok {
		delete(g.byName, old)
	}
	g.names[id] = name
	g.byName[name] = id
	return nil
}

// NodeName returns the authoring name of id, if any.
func (g *Graph) NodeName(id nodeid.Address) (string, bool) {
	name, ok := g.names[id]
	return name, ok
}

// NodeByName finds a node by its authoring name.
func (g *Graph) NodeByName(name string) (nodeid.Address, bool) {
	id, ok := g.byName[name]
	return id, ok
}

// Port returns the port at (id, index).
func (g *Graph) Port(id nodeid.Address, index int) (port.Port, error) {
	p, err := g.ports.GetPort(id, index)
	if err != nil {
		return port.Port{}, fmt.Errorf("graph '%s': %w", g.name, err)
	}
	return p, nil
}

// Ports returns the ports of id in index order.
func (g *Graph) Ports(id nodeid.Address) []portstore.Indexed {
	return g.ports.Ports(id)
}

// FindPort returns the lowest index of the port named name on id.
func (g *Graph) FindPort(id nodeid.Address, name string) (int, bool) {
	return g.ports.FindPort(id, name)
}

// SetPortExposed toggles promotion of (id, index) into graphs binding g.
func (g *Graph) SetPortExposed(id nodeid.Address, index int, exposed bool) error {
	p, err := g.Port(id, index)
	if err != nil {
		return err
	}
	g.ports.AddPort(id, index, p.WithExposed(exposed))
	return nil
}

// Configure applies authored fields to id, validates the record and
// re-derives its ports.
func (g *Graph) Configure(id nodeid.Address, fields map[string]cty.Value) error {
	record, err := g.Node(id)
	if err != nil {
		return err
	}
	if c, ok := record.(node.Configurer); ok {
		if err := c.Configure(fields); err != nil {
			return fmt.Errorf("configure node %s: %w", id, err)
		}
	} else if len(fields) > 0 {
		return fmt.Errorf("node %s does not accept fields", id)
	}
	if v, ok := record.(node.Validator); ok {
		if err := v.OnValidate(); err != nil {
			return fmt.Errorf("validate node %s: %w", id, err)
		}
	}
	_, err = g.InvalidateNode(id, true)
	return err
}

// SetValueType applies an authored value type to id and re-derives its
// ports. Links that no longer type check are dropped.
func (g *Graph) SetValueType(id nodeid.Address, ty cty.Type) error {
	record, err := g.Node(id)
	if err != nil {
		return err
	}
	tc, ok := record.(node.TypeConfigurer)
	if !ok {
		return fmt.Errorf("node %s does not accept a value type", id)
	}
	if err := tc.ConfigureType(ty); err != nil {
		return fmt.Errorf("configure type of node %s: %w", id, err)
	}
	_, err = g.InvalidateNode(id, true)
	return err
}

// OnPortChanged registers fn for link cascades caused by port or node
// removal.
func (g *Graph) OnPortChanged(fn linkstore.PortChangedFunc) (unsubscribe func()) {
	return g.links.Subscribe(fn)
}

// OnInvalidateNode registers fn for port list changes.
func (g *Graph) OnInvalidateNode(fn InvalidateFunc) (unsubscribe func()) {
	g.nextListener++
	id := g.nextListener
	g.invalidateListeners = append(g.invalidateListeners, invalidateListener{id: id, fn: fn})
	return func() {
		g.invalidateListeners = slices.DeleteFunc(g.invalidateListeners, func(l invalidateListener) bool {
			return l.id == id
		})
	}
}

func (g *Graph) notifyInvalidate(id nodeid.Address, changed []int) {
	for _, l := range slices.Clone(g.invalidateListeners) {
		l.fn(id, changed)
	}
}
