package builder

import (
	"context"
	"errors"
	"fmt"
	"maps"
	"slices"

	"github.com/specialistvlad/blueprintgo/internal/config"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/dag"
	"github.com/specialistvlad/blueprintgo/internal/meta"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

var (
	ErrUnknownGraph = errors.New("unknown graph")
	ErrUnknownNode  = errors.New("unknown node")
	ErrUnknownPort  = errors.New("unknown port")
	ErrLinkRejected = errors.New("link rejected")
)

// Library is the set of authoring graphs built from one model.
type Library struct {
	graphs map[string]*meta.Graph
	order  []string
}

var _ meta.Resolver = (*Library)(nil)

// ResolveGraph implements meta.Resolver.
func (l *Library) ResolveGraph(ref string) (*meta.Graph, bool) {
	g, ok := l.graphs[ref]
	return g, ok
}

// Graph returns the graph named name.
func (l *Library) Graph(name string) (*meta.Graph, error) {
	g, ok := l.graphs[name]
	if !ok {
		return nil, fmt.Errorf("graph '%s': %w", name, ErrUnknownGraph)
	}
	return g, nil
}

// Names returns the graph names in build order: every graph follows the
// graphs it binds as subgraphs.
func (l *Library) Names() []string {
	return slices.Clone(l.order)
}

// Build constructs one authoring graph per graph of model.
func Build(ctx context.Context, model *config.Model, reg *registry.Registry) (*Library, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Build: Starting graph construction.", "graphs", len(model.Graphs))

	order, err := buildOrder(model)
	if err != nil {
		return nil, err
	}
	logger.Debug("Build: Build order resolved.", "order", order)

	lib := &Library{graphs: make(map[string]*meta.Graph, len(order)), order: order}
	for _, name := range order {
		if err := ctx.Err(); err != nil {
			return nil, err
		}
		g, err := lib.buildGraph(ctx, model.Graphs[name], reg)
		if err != nil {
			return nil, err
		}
		lib.graphs[name] = g
	}

	logger.Info("Build: Graph construction successful.", "graphs", len(lib.graphs))
	return lib, nil
}

// buildOrder sorts the model's graphs so that subgraphs come first.
func buildOrder(model *config.Model) ([]string, error) {
	deps := dag.New()
	for name := range model.Graphs {
		deps.AddNode(name)
	}
	for _, name := range model.Names() {
		for _, n := range model.Graphs[name].Nodes {
			if n.Subgraph == "" {
				continue
			}
			if _, ok := model.Graphs[n.Subgraph]; !ok {
				return nil, fmt.Errorf("graph '%s': node '%s' binds '%s': %w", name, n.Name, n.Subgraph, ErrUnknownGraph)
			}
			if n.Subgraph == name {
				return nil, fmt.Errorf("graph '%s': node '%s' binds its own graph: %w", name, n.Name, meta.ErrRecursiveSubgraph)
			}
			if err := deps.AddEdge(n.Subgraph, name); err != nil {
				return nil, fmt.Errorf("graph '%s': %w", name, err)
			}
		}
	}
	order, err := deps.TopologicalOrder()
	if err != nil {
		return nil, fmt.Errorf("subgraph bindings: %w", err)
	}
	return order, nil
}

func (l *Library) buildGraph(ctx context.Context, cg *config.Graph, reg *registry.Registry) (*meta.Graph, error) {
	logger := ctxlog.FromContext(ctx).With("graph", cg.Name)
	logger.Debug("Building graph.", "nodes", len(cg.Nodes), "links", len(cg.Links))

	g := meta.New(cg.Name, reg, meta.WithResolver(l), meta.WithLogger(logger))
	wrap := func(n *config.Node, err error) error {
		return fmt.Errorf("graph '%s': node '%s': %w", cg.Name, n.Name, err)
	}

	ids := make([]nodeid.Address, len(cg.Nodes))
	for i, n := range cg.Nodes {
		id, err := g.AddNode(n.Type)
		if err != nil {
			return nil, wrap(n, err)
		}
		if err := g.SetNodeName(id, n.Name); err != nil {
			return nil, wrap(n, err)
		}
		if n.ValueType != cty.NilType {
			if err := g.SetValueType(id, n.ValueType); err != nil {
				return nil, wrap(n, err)
			}
		}
		if err := g.Configure(id, n.Fields); err != nil {
			return nil, wrap(n, err)
		}
		if n.Subgraph != "" {
			if err := g.SetSubgraph(id, n.Subgraph); err != nil {
				return nil, wrap(n, err)
			}
		}
		ids[i] = id
	}

	for i, n := range cg.Nodes {
		id := ids[i]
		for _, name := range n.Exposed {
			index, err := findPort(g, id, name)
			if err != nil {
				return nil, wrap(n, err)
			}
			if err := g.SetPortExposed(id, index, true); err != nil {
				return nil, wrap(n, err)
			}
		}
		for _, name := range slices.Sorted(maps.Keys(n.Values)) {
			index, err := findPort(g, id, name)
			if err != nil {
				return nil, wrap(n, err)
			}
			if err := g.SetPortValue(id, index, n.Values[name]); err != nil {
				return nil, wrap(n, err)
			}
		}
	}

	for _, link := range cg.Links {
		from, err := resolveEndpoint(g, link.From)
		if err != nil {
			return nil, fmt.Errorf("graph '%s': link %s -> %s: %w", cg.Name, link.From, link.To, err)
		}
		to, err := resolveEndpoint(g, link.To)
		if err != nil {
			return nil, fmt.Errorf("graph '%s': link %s -> %s: %w", cg.Name, link.From, link.To, err)
		}
		if !g.TryCreateLink(from.Node, from.Port, to.Node, to.Port) {
			return nil, fmt.Errorf("graph '%s': link %s -> %s: %w", cg.Name, link.From, link.To, ErrLinkRejected)
		}
	}

	logger.Debug("Graph built.", "nodes", g.NodeCount(), "links", g.LinkCount())
	return g, nil
}

func findPort(g *meta.Graph, id nodeid.Address, name string) (int, error) {
	index, ok := g.FindPort(id, name)
	if !ok {
		return 0, fmt.Errorf("port '%s': %w", name, ErrUnknownPort)
	}
	return index, nil
}

func resolveEndpoint(g *meta.Graph, ep config.Endpoint) (nodeid.Endpoint, error) {
	id, ok := g.NodeByName(ep.Node)
	if !ok {
		return nodeid.Endpoint{}, fmt.Errorf("node '%s': %w", ep.Node, ErrUnknownNode)
	}
	index, err := findPort(g, id, ep.Port)
	if err != nil {
		return nodeid.Endpoint{}, fmt.Errorf("node '%s': %w", ep.Node, err)
	}
	return id.At(index), nil
}
