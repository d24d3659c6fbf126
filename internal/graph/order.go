package graph

import (
	"context"
	"fmt"
	"iter"
	"slices"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

type visitState uint8

const (
	unvisited visitState = iota
	inProgress
	done
)

// traverse runs the depth-first walk shared by the ordering operations. It
// starts from every unvisited vertex in collection order and follows each
// vertex's outgoing edges in registration order. finish is called when a
// vertex becomes done, with the recursion depth it was reached at.
func (g *Graph) traverse(finish func(v *vertex.Vertex, depth int)) error {
	vertices := g.topology.Vertices()
	state := make([]visitState, len(vertices))

	var visit func(v *vertex.Vertex, depth int) error
	visit = func(v *vertex.Vertex, depth int) error {
		switch state[v.Index()] {
		case inProgress:
			return fmt.Errorf("%w: vertex %s is reachable from itself", ErrCycle, v.ID())
		case done:
			return nil
		}

		state[v.Index()] = inProgress
		for _, e := range v.Edges() {
			if e.Source() != v.ID() {
				continue
			}
			target, ok := g.topology.Vertex(e.Target())
			if !ok {
				return fmt.Errorf("%w: target node %s not found", ErrVertexNotFound, e.Target())
			}
			if err := visit(target, depth+1); err != nil {
				return err
			}
		}
		state[v.Index()] = done
		finish(v, depth)
		return nil
	}

	for _, v := range vertices {
		if state[v.Index()] != unvisited {
			continue
		}
		if err := visit(v, 0); err != nil {
			return err
		}
	}
	return nil
}

// TopologicalSort returns every vertex after all the vertices it depends on.
func (g *Graph) TopologicalSort() ([]*vertex.Vertex, error) {
	sorted := make([]*vertex.Vertex, 0, g.topology.Len())
	err := g.traverse(func(v *vertex.Vertex, _ int) {
		sorted = append(sorted, v)
	})
	if err != nil {
		return nil, err
	}
	slices.Reverse(sorted)
	return sorted, nil
}

// LayeredTopologicalSort groups the vertices by the depth at which the
// traversal finished them. Layers are indexed from 0 and none is empty. Every
// vertex's Layer is set as a side effect, but only when the call succeeds.
func (g *Graph) LayeredTopologicalSort() ([][]*vertex.Vertex, error) {
	var layers [][]*vertex.Vertex
	err := g.traverse(func(v *vertex.Vertex, depth int) {
		for len(layers) <= depth {
			layers = append(layers, nil)
		}
		layers[depth] = append(layers[depth], v)
	})
	if err != nil {
		return nil, err
	}

	for depth, layer := range layers {
		for _, v := range layer {
			v.SetLayer(depth)
		}
	}
	return layers, nil
}

// Sequence yields the vertices in topological order. The order is computed
// when iteration starts; a cycle yields a single (nil, err) pair.
func (g *Graph) Sequence(ctx context.Context) iter.Seq2[*vertex.Vertex, error] {
	return func(yield func(*vertex.Vertex, error) bool) {
		sorted, err := g.TopologicalSort()
		if err != nil {
			yield(nil, err)
			return
		}
		ctxlog.FromContext(ctx).Debug("Sequence: vertices in graph.", "count", len(sorted))
		for _, v := range sorted {
			if !yield(v, nil) {
				return
			}
		}
	}
}
