package config

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"
)

var (
	ErrDuplicateGraph = errors.New("duplicate graph")
	ErrBadEndpoint    = errors.New("malformed endpoint")
)

// Model is the unified representation of every authored graph.
type Model struct {
	Graphs map[string]*Graph
}

// NewModel returns an empty model.
func NewModel() *Model {
	return &Model{Graphs: make(map[string]*Graph)}
}

// AddGraph adds g, rejecting a second graph with the same name.
func (m *Model) AddGraph(g *Graph) error {
	if prev, ok := m.Graphs[g.Name]; ok {
		return fmt.Errorf("graph '%s' in %s already defined in %s: %w", g.Name, g.File, prev.File, ErrDuplicateGraph)
	}
	m.Graphs[g.Name] = g
	return nil
}

// Names returns the graph names, sorted.
func (m *Model) Names() []string {
	names := make([]string, 0, len(m.Graphs))
	for name := range m.Graphs {
		names = append(names, name)
	}
	slices.Sort(names)
	return names
}

// Graph is the format-agnostic representation of a `graph` block.
type Graph struct {
	Name  string
	File  string
	Nodes []*Node
	Links []*Link
}

// Node finds a node by name.
func (g *Graph) Node(name string) (*Node, bool) {
	for _, n := range g.Nodes {
		if n.Name == name {
			return n, true
		}
	}
	return nil, false
}

// Node is the format-agnostic representation of a `node` block.
type Node struct {
	Name string
	Type string
	// Fields configure the node record.
	Fields map[string]cty.Value
	// Values seed unlinked data inputs, keyed by port name.
	Values map[string]cty.Value
	// Exposed names the ports promoted when the graph is bound as a subgraph.
	Exposed []string
	// Subgraph is the name of the graph bound to this node, if any.
	Subgraph string
	// ValueType is the declared value type for nodes with a configurable
	// port type; cty.NilType when unset.
	ValueType cty.Type
}

// Link connects two ports by name.
type Link struct {
	From Endpoint
	To   Endpoint
}

// Endpoint names one port of one node.
type Endpoint struct {
	Node string
	Port string
}

// ParseEndpoint parses "node.port". Everything after the first dot is the
// port name, so ports promoted from a subgraph may themselves contain dots.
func ParseEndpoint(raw string) (Endpoint, error) {
	nodeName, portName, ok := strings.Cut(raw, ".")
	if !ok || nodeName == "" || portName == "" {
		return Endpoint{}, fmt.Errorf("%w %q: expected \"node.port\"", ErrBadEndpoint, raw)
	}
	return Endpoint{Node: nodeName, Port: portName}, nil
}

func (e Endpoint) String() string {
	return e.Node + "." + e.Port
}
