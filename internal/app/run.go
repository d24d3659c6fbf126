package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/google/uuid"
	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/flowfile"
	"github.com/specialistvlad/flowgraph/internal/graph"
	"github.com/specialistvlad/flowgraph/internal/layerrun"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Run loads every flow under the configured path and reports on each one
// according to the configured mode. The first failing flow ends the run.
func (a *App) Run(ctx context.Context) error {
	logger := a.logger.With("run_id", uuid.NewString())
	ctx = ctxlog.WithLogger(ctx, logger)
	logger.Debug("App.Run method started.", "mode", a.config.Mode)

	files, err := flowfile.LoadPath(ctx, a.config.FlowPath)
	if err != nil {
		return fmt.Errorf("failed to load flows: %w", err)
	}
	if len(files) == 0 {
		logger.Warn("No flow files found, nothing to do.", "path", a.config.FlowPath)
		return nil
	}

	for _, f := range files {
		fctx := ctxlog.With(ctx, "flow", f.Path)
		g, err := graph.New(fctx, f.Flow, graph.WithRegistry(a.registry))
		if err != nil {
			return fmt.Errorf("flow %s: %w", f.Path, err)
		}

		fmt.Fprintf(a.outW, "== %s (%d vertices)\n", f.Path, g.Len())
		if err := a.report(fctx, g); err != nil {
			return fmt.Errorf("flow %s: %w", f.Path, err)
		}
	}

	logger.Info("🏁 Run finished.", "flows", len(files))
	return nil
}

func (a *App) report(ctx context.Context, g *graph.Graph) error {
	switch a.config.Mode {
	case ModeLayers:
		layers, err := g.LayeredTopologicalSort()
		if err != nil {
			return err
		}
		for i, layer := range layers {
			fmt.Fprintf(a.outW, "layer %d: %s\n", i, joinIDs(layer))
		}

	case ModeBuild:
		root, ok := g.Root()
		if !ok {
			return graph.ErrNoRootVertex
		}
		res, err := layerrun.New(a.config.WorkerCount).Run(ctx, g)
		if err != nil {
			return err
		}
		for i, layer := range res.Layers {
			fmt.Fprintf(a.outW, "layer %d: %s\n", i, joinIDs(layer))
		}
		fmt.Fprintf(a.outW, "root %s: %T\n", root.ID(), res.Artifacts[root.ID()])
		ctxlog.FromContext(ctx).Info("Graph built.", "vertices", len(res.Artifacts), "elapsed", res.Elapsed)

	case ModeSequence:
		i := 0
		for v, err := range g.Sequence(ctx) {
			if err != nil {
				return err
			}
			fmt.Fprintf(a.outW, "%d %s (%s)\n", i, v.ID(), v.Kind())
			i++
		}

	default:
		order, err := g.TopologicalSort()
		if err != nil {
			return err
		}
		fmt.Fprintf(a.outW, "order: %s\n", joinIDs(order))
	}
	return nil
}

func joinIDs(vs []*vertex.Vertex) string {
	ids := make([]string, len(vs))
	for i, v := range vs {
		ids[i] = v.ID()
	}
	return strings.Join(ids, " ")
}
