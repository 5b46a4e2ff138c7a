package app

import (
	"context"
	"errors"
	"fmt"
	"slices"

	"github.com/specialistvlad/blueprintgo/internal/builder"
	"github.com/specialistvlad/blueprintgo/internal/compiler"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/runtime"
	"github.com/specialistvlad/blueprintgo/internal/telemetry"
)

const serviceName = "blueprintgo"

// ErrUnknownEntry is returned when the compiled graph publishes no label
// with the configured entry name.
var ErrUnknownEntry = errors.New("unknown entry label")

// Run loads, builds and compiles the configured graphs, then initializes
// the root graph, calls its entry label and de-initializes it.
func (a *App) Run(ctx context.Context) (err error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	shutdown, err := telemetry.Setup(ctx, a.config.TraceEndpoint, serviceName)
	if err != nil {
		return fmt.Errorf("failed to set up tracing: %w", err)
	}
	defer func() {
		if serr := shutdown(context.Background()); serr != nil {
			a.logger.Warn("Tracer shutdown failed.", "error", serr)
		}
	}()

	ctx, span := telemetry.Span(ctx, "run", "root", a.config.Root, "entry", a.config.Entry)
	defer func() { telemetry.End(span, err) }()

	lib, err := a.build(ctx)
	if err != nil {
		return err
	}
	rt, err := a.compile(ctx, lib)
	if err != nil {
		return err
	}
	if err := a.execute(ctx, rt); err != nil {
		return err
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}

func (a *App) build(ctx context.Context) (lib *builder.Library, err error) {
	ctx, span := telemetry.Span(ctx, "build")
	defer func() { telemetry.End(span, err) }()

	model, err := a.loader.Load(ctx, a.config.GraphPaths...)
	if err != nil {
		return nil, fmt.Errorf("failed to load graphs: %w", err)
	}
	a.logger.Debug("Configuration loaded and translated into unified model.", "graphs", len(model.Graphs))

	lib, err = builder.Build(ctx, model, a.registry)
	if err != nil {
		return nil, fmt.Errorf("failed to build graphs: %w", err)
	}
	return lib, nil
}

func (a *App) compile(ctx context.Context, lib *builder.Library) (rt *runtime.Graph, err error) {
	ctx, span := telemetry.Span(ctx, "compile", "graph", a.config.Root)
	defer func() { telemetry.End(span, err) }()

	root, err := lib.Graph(a.config.Root)
	if err != nil {
		return nil, fmt.Errorf("root graph: %w", err)
	}

	opts := []compiler.Option{compiler.WithLogger(a.logger)}
	if a.config.MaxCallDepth > 0 {
		opts = append(opts, compiler.WithMaxCallDepth(a.config.MaxCallDepth))
	}
	result, err := compiler.Compile(ctx, root, opts...)
	if err != nil {
		return nil, fmt.Errorf("failed to compile graph '%s': %w", a.config.Root, err)
	}
	for _, d := range result.Diagnostics {
		if d.Severity == compiler.Warning {
			a.logger.Warn("Compiler warning.", "graph", d.Graph, "message", d.Message)
		} else {
			a.logger.Info("Compiler note.", "graph", d.Graph, "message", d.Message)
		}
	}
	a.logger.Debug("Graph compiled.", "nodes", len(result.Graph.Nodes()), "links", len(result.Graph.Links()))
	return result.Graph, nil
}

func (a *App) execute(ctx context.Context, rt *runtime.Graph) (err error) {
	ctx, span := telemetry.Span(ctx, "execute", "entry", a.config.Entry)
	defer func() { telemetry.End(span, err) }()

	if !slices.Contains(rt.Hashes(), runtime.HashLabel(a.config.Entry)) {
		return fmt.Errorf("graph '%s': label '%s': %w", a.config.Root, a.config.Entry, ErrUnknownEntry)
	}

	if err := rt.Initialize(node.NewRunner(ctx, a.nodeOut)); err != nil {
		return fmt.Errorf("failed to initialize graph: %w", err)
	}
	a.logger.Info("Starting run.", "graph", a.config.Root, "entry", a.config.Entry)
	rt.CallLabel(a.config.Entry)
	if err := rt.DeInitialize(); err != nil {
		return fmt.Errorf("failed to de-initialize graph: %w", err)
	}
	a.logger.Info("Run finished.")
	return nil
}
