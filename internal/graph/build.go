package graph

import (
	"context"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Root returns the vertex Build starts from.
func (g *Graph) Root() (*vertex.Vertex, bool) {
	return g.opts.rootFinder(g.topology.Vertices(), g.topology.Edges())
}

// Build materializes the root vertex and, through it, every vertex the root
// references. Vertex builds are memoized, so a second call returns the same
// artifact.
func (g *Graph) Build(ctx context.Context) (any, error) {
	logger := ctxlog.FromContext(ctx)
	if g.topology.Len() == 0 {
		return nil, ErrEmptyGraph
	}
	if _, err := g.TopologicalSort(); err != nil {
		return nil, err
	}
	if err := g.CheckDependencies(); err != nil {
		return nil, err
	}

	root, ok := g.Root()
	if !ok {
		return nil, ErrNoRootVertex
	}

	logger.Debug("Build: building from root.", "root", root.ID(), "type", root.NodeType())
	out, err := root.Build(ctx, g)
	if err != nil {
		return nil, err
	}
	logger.Info("Graph built.", "root", root.ID())
	return out, nil
}
