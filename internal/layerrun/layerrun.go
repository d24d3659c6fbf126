// Package layerrun materializes every vertex of a graph, one layer at a time,
// building the vertices of a layer concurrently.
package layerrun

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/vertex"
	"golang.org/x/sync/errgroup"
)

// Layered is the part of a graph the runner needs.
type Layered interface {
	vertex.Lookup
	LayeredTopologicalSort() ([][]*vertex.Vertex, error)
	CheckDependencies() error
}

// Result holds the artifact of every built vertex.
type Result struct {
	Layers    [][]*vertex.Vertex
	Artifacts map[string]any
	Elapsed   time.Duration
}

// Runner builds graphs layer by layer.
type Runner struct {
	workers int
}

// New creates a runner that builds at most workers vertices at once. A
// non-positive count means no limit.
func New(workers int) *Runner {
	return &Runner{workers: workers}
}

// Run builds every vertex of g. Layers run in order; the vertices of a layer
// run concurrently. The first failure cancels the layer and ends the run.
func (r *Runner) Run(ctx context.Context, g Layered) (*Result, error) {
	logger := ctxlog.FromContext(ctx)
	start := time.Now()

	layers, err := g.LayeredTopologicalSort()
	if err != nil {
		return nil, err
	}
	if err := g.CheckDependencies(); err != nil {
		return nil, err
	}
	logger.Debug("Runner starting.", "layers", len(layers), "workers", r.workers)

	res := &Result{Layers: layers, Artifacts: map[string]any{}}
	var mu sync.Mutex

	for depth, layer := range layers {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		eg, layerCtx := errgroup.WithContext(ctx)
		if r.workers > 0 {
			eg.SetLimit(r.workers)
		}
		layerLogger := logger.With("layer", depth)
		layerLogger.Debug("Layer started.", "vertices", len(layer))

		for _, v := range layer {
			eg.Go(func() error {
				if err := layerCtx.Err(); err != nil {
					return err
				}
				out, err := v.Build(layerCtx, g)
				if err != nil {
					layerLogger.Error("Vertex build failed.", "vertex", v.ID(), "error", err)
					return fmt.Errorf("layer %d: %w", depth, err)
				}
				mu.Lock()
				res.Artifacts[v.ID()] = out
				mu.Unlock()
				return nil
			})
		}
		if err := eg.Wait(); err != nil {
			if errors.Is(err, context.Canceled) && ctx.Err() != nil {
				return nil, ctx.Err()
			}
			return nil, err
		}
		layerLogger.Debug("Layer finished.")
	}

	res.Elapsed = time.Since(start)
	logger.Info("All vertices built.", "vertices", len(res.Artifacts), "elapsed", res.Elapsed)
	return res, nil
}
