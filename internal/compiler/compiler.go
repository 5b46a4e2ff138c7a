package compiler

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"maps"
	"slices"

	"github.com/specialistvlad/blueprintgo/internal/dag"
	"github.com/specialistvlad/blueprintgo/internal/meta"
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/specialistvlad/blueprintgo/internal/runtime"
)

// ErrNilGraph is returned when Compile is given no root graph.
var ErrNilGraph = errors.New("nil root graph")

// Severity grades a Diagnostic.
type Severity uint8

const (
	Info Severity = iota
	Warning
)

func (s Severity) String() string {
	if s == Warning {
		return "warning"
	}
	return "info"
}

// Diagnostic is a non-fatal problem found while compiling.
type Diagnostic struct {
	Severity Severity
	Graph    string
	Message  string
}

func (d Diagnostic) String() string {
	return fmt.Sprintf("%s: graph '%s': %s", d.Severity, d.Graph, d.Message)
}

// Result is the output of Compile.
type Result struct {
	Graph       *runtime.Graph
	Diagnostics []Diagnostic
}

// Warnings returns the diagnostics of Warning severity.
func (r *Result) Warnings() []Diagnostic {
	var out []Diagnostic
	for _, d := range r.Diagnostics {
		if d.Severity == Warning {
			out = append(out, d)
		}
	}
	return out
}

type options struct {
	maxDepth int
	logger   *slog.Logger
}

// Option configures Compile.
type Option func(*options)

// WithMaxCallDepth sets the call depth limit of the compiled graph.
func WithMaxCallDepth(depth int) Option {
	return func(o *options) { o.maxDepth = depth }
}

// WithLogger sets the logger for compile diagnostics and the compiled graph.
func WithLogger(l *slog.Logger) Option {
	return func(o *options) { o.logger = l }
}

// instance is one compiled copy of an authoring graph.
type instance struct {
	graph    *meta.Graph
	ids      map[nodeid.Address]nodeid.Address
	children map[nodeid.Address]*instance
}

type compiler struct {
	rt     *runtime.Graph
	logger *slog.Logger
	diags  []Diagnostic
}

// Compile builds a runtime graph from root. The error is non-nil only when
// root is nil or a node record cannot be cloned.
func Compile(ctx context.Context, root *meta.Graph, opts ...Option) (*Result, error) {
	if root == nil {
		return nil, ErrNilGraph
	}
	o := options{logger: slog.New(slog.NewTextHandler(io.Discard, nil))}
	for _, opt := range opts {
		opt(&o)
	}

	c := &compiler{
		rt:     runtime.New(runtime.WithMaxCallDepth(o.maxDepth), runtime.WithLogger(o.logger)),
		logger: o.logger,
	}
	c.logger.Debug("Compiling graph.", "graph", root.Name())

	if _, err := c.compile(ctx, root, nodeid.Zero, []*meta.Graph{root}); err != nil {
		return nil, err
	}
	c.checkFlowCycles(root.Name())

	c.logger.Debug("Graph compiled.",
		"graph", root.Name(),
		"nodes", len(c.rt.Nodes()),
		"links", len(c.rt.Links()),
		"diagnostics", len(c.diags))
	return &Result{Graph: c.rt, Diagnostics: c.diags}, nil
}

func (c *compiler) report(sev Severity, graph string, format string, args ...any) {
	d := Diagnostic{Severity: sev, Graph: graph, Message: fmt.Sprintf(format, args...)}
	c.diags = append(c.diags, d)
	if sev == Warning {
		c.logger.Warn("Compile diagnostic.", "graph", d.Graph, "message", d.Message)
	} else {
		c.logger.Debug("Compile diagnostic.", "graph", d.Graph, "message", d.Message)
	}
}

// compile clones one instance of g whose nodes are owned by caller. stack
// holds the graphs currently being compiled, outermost first.
func (c *compiler) compile(ctx context.Context, g *meta.Graph, caller nodeid.Address, stack []*meta.Graph) (*instance, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	inst := &instance{
		graph:    g,
		ids:      make(map[nodeid.Address]nodeid.Address),
		children: make(map[nodeid.Address]*instance),
	}

	for _, id := range g.Nodes() {
		rid, err := c.rt.CloneNode(g.Source(id.Source), id.Node, caller)
		if err != nil {
			return nil, fmt.Errorf("graph '%s': %w", g.Name(), err)
		}
		inst.ids[id] = rid

		for _, ip := range g.Ports(id) {
			if _, _, promoted := g.PromotedPort(id, ip.Index); promoted {
				continue
			}
			c.rt.AddPort(rid, ip.Index, ip.Port)
		}
		c.registerLabels(g, id, rid)
	}

	for _, id := range g.Bindings() {
		ref, sub, _ := g.Subgraph(id)
		if slices.Contains(stack, sub) {
			c.report(Warning, g.Name(), "recursive subgraph reference '%s' on node %s was cut", ref, id)
			continue
		}
		child, err := c.compile(ctx, sub, inst.ids[id], append(slices.Clone(stack), sub))
		if err != nil {
			return nil, err
		}
		inst.children[id] = child
	}

	for _, e := range g.Edges() {
		from, okFrom := c.resolve(inst, e.From)
		to, okTo := c.resolve(inst, e.To)
		if !okFrom || !okTo {
			c.report(Warning, g.Name(), "dropped link %s -> %s: endpoint not found", e.From, e.To)
			continue
		}
		c.rt.AddLink(from, to)
	}

	values := g.PortValues()
	for _, ep := range slices.SortedFunc(maps.Keys(values), nodeid.Endpoint.Compare) {
		v := values[ep]
		rep, ok := c.resolve(inst, ep)
		if !ok {
			c.report(Info, g.Name(), "dropped seeded value of %s: endpoint not found", ep)
			continue
		}
		c.rt.SetPortValue(rep, v)
	}
	return inst, nil
}

func (c *compiler) registerLabels(g *meta.Graph, id, rid nodeid.Address) {
	record, err := c.rt.Node(rid)
	if err != nil {
		return
	}
	labeled, ok := record.(node.Labeled)
	if !ok {
		return
	}
	for _, l := range labeled.FlowLabels() {
		if l.Name == "" {
			c.report(Info, g.Name(), "node %s publishes an empty label", id)
			continue
		}
		c.rt.RegisterHash(runtime.HashLabel(l.Name), rid.At(l.Port))
		c.logger.Debug("Label registered.", "label", l.Name, "node", rid.String())
	}
}

// resolve translates an authoring endpoint of inst to its runtime endpoint,
// following promoted ports into the bound instance.
func (c *compiler) resolve(inst *instance, ep nodeid.Endpoint) (nodeid.Endpoint, bool) {
	if inner, _, ok := inst.graph.PromotedPort(ep.Node, ep.Port); ok {
		child, ok := inst.children[ep.Node]
		if !ok {
			return nodeid.Endpoint{}, false
		}
		return c.resolve(child, inner)
	}
	rid, ok := inst.ids[ep.Node]
	if !ok {
		return nodeid.Endpoint{}, false
	}
	if _, ok := c.rt.Port(rid, ep.Port); !ok {
		return nodeid.Endpoint{}, false
	}
	return rid.At(ep.Port), true
}

// checkFlowCycles reports flow cycles in the compiled graph. They are legal;
// the runtime bounds the recursion.
func (c *compiler) checkFlowCycles(rootName string) {
	graph := dag.New()
	for _, id := range c.rt.Nodes() {
		graph.AddNode(id.String())
	}
	for _, e := range c.rt.Links() {
		p, ok := c.rt.Port(e.From.Node, e.From.Port)
		if !ok || p.Kind != port.Exit {
			continue
		}
		if e.From.Node == e.To.Node {
			c.report(Warning, rootName, "flow cycle: node %s calls itself", e.From.Node)
			continue
		}
		if err := graph.AddEdge(e.From.Node.String(), e.To.Node.String()); err != nil {
			c.report(Info, rootName, "flow link %s -> %s skipped in cycle check: %v", e.From, e.To, err)
		}
	}
	if err := graph.DetectCycles(); err != nil {
		c.report(Warning, rootName, "flow %s; recursion is bounded at depth %d", err, c.rt.MaxCallDepth())
	}
}
