package graph

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/normalize"
	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/rootfinder"
	"github.com/specialistvlad/flowgraph/internal/topology"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Graph is a constructed, validated flow graph.
type Graph struct {
	topology topology.Store
	topLevel []string
	input    payload.Flow
	opts     options
}

type options struct {
	registry   *registry.Registry
	normalize  normalize.Func
	rootFinder rootfinder.Func
}

// Option configures graph construction.
type Option func(*options)

// WithRegistry sets the registry that resolves node types to behaviors.
func WithRegistry(r *registry.Registry) Option {
	return func(o *options) { o.registry = r }
}

// WithNormalizer replaces the flow normalizer.
func WithNormalizer(fn normalize.Func) Option {
	return func(o *options) { o.normalize = fn }
}

// WithRootFinder replaces the function Build uses to find the root vertex.
func WithRootFinder(fn rootfinder.Func) Option {
	return func(o *options) { o.rootFinder = fn }
}

// FromPayload parses a raw JSON payload and constructs a graph from it.
func FromPayload(ctx context.Context, raw []byte, opts ...Option) (*Graph, error) {
	flow, err := payload.Parse(raw)
	if err != nil {
		return nil, err
	}
	return New(ctx, flow, opts...)
}

// New constructs a graph from a flow.
func New(ctx context.Context, flow payload.Flow, opts ...Option) (*Graph, error) {
	logger := ctxlog.FromContext(ctx)
	o := options{
		normalize:  normalize.Flatten,
		rootFinder: rootfinder.UniqueSink,
	}
	for _, opt := range opts {
		opt(&o)
	}
	if o.registry == nil {
		o.registry = registry.New()
	}

	g := &Graph{
		topology: topology.New(),
		topLevel: flow.NodeIDs(),
		input:    flow,
		opts:     o,
	}
	logger.Debug("New: Starting graph construction.", "nodes", len(flow.Nodes), "edges", len(flow.Edges))

	normalized, err := o.normalize(flow)
	if err != nil {
		return nil, fmt.Errorf("failed to normalize flow: %w", err)
	}
	logger.Debug("New: Flow normalized.", "nodes", len(normalized.Nodes), "edges", len(normalized.Edges))

	if err := g.buildVertices(normalized.Nodes); err != nil {
		return nil, err
	}
	logger.Debug("New: Vertex creation complete.", "vertex_count", g.topology.Len())

	if err := g.buildEdges(normalized.Edges); err != nil {
		return nil, err
	}
	logger.Debug("New: Edge linking complete.", "edge_count", len(g.topology.Edges()))

	if err := g.buildParams(); err != nil {
		return nil, err
	}
	logger.Debug("New: Parameter propagation complete.")

	if err := g.validate(); err != nil {
		return nil, err
	}

	logger.Info("Graph constructed.", "vertices", g.topology.Len(), "edges", len(g.topology.Edges()))
	return g, nil
}

func (g *Graph) buildVertices(nodes []payload.Node) error {
	topLevel := make(map[string]struct{}, len(g.topLevel))
	for _, id := range g.topLevel {
		topLevel[id] = struct{}{}
	}

	for i, n := range nodes {
		if n.ID == "" {
			return fmt.Errorf("%w: node at position %d has no id", payload.ErrInvalidPayload, i)
		}
		factory := g.opts.registry.Resolve(n.Data.Type, n.Data.Node.Template.BaseType(), n.ID)
		v := vertex.New(i, n, factory())
		v.SetTopLevel(topLevel)
		if err := g.topology.AddVertex(v); err != nil {
			return err
		}
	}
	return nil
}

func (g *Graph) buildEdges(raws []payload.Edge) error {
	for _, raw := range raws {
		source, ok := g.topology.Vertex(raw.Source)
		if !ok {
			return fmt.Errorf("%w: source node %s not found", ErrVertexNotFound, raw.Source)
		}
		target, ok := g.topology.Vertex(raw.Target)
		if !ok {
			return fmt.Errorf("%w: target node %s not found", ErrVertexNotFound, raw.Target)
		}

		e, err := edge.New(raw)
		if err != nil {
			return err
		}
		if err := g.topology.AddEdge(e); err != nil {
			return err
		}
		source.AddEdge(e)
		if target != source {
			target.AddEdge(e)
		}
	}
	return nil
}

func (g *Graph) validate() error {
	vertices := g.topology.Vertices()
	if len(vertices) == 1 {
		return nil
	}
	for _, v := range vertices {
		if len(v.Edges()) == 0 {
			return fmt.Errorf("%w: %s is not connected to any other components (vertex %s)",
				ErrDisconnectedVertex, v.NodeType(), v.ID())
		}
	}
	return nil
}
