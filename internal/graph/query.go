package graph

import (
	"slices"

	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Vertex looks a vertex up by id.
func (g *Graph) Vertex(id string) (*vertex.Vertex, bool) { return g.topology.Vertex(id) }

// VertexAt looks a vertex up by its construction index.
func (g *Graph) VertexAt(index int) (*vertex.Vertex, bool) { return g.topology.VertexAt(index) }

// Vertices returns all vertices in construction order.
func (g *Graph) Vertices() []*vertex.Vertex { return g.topology.Vertices() }

// Edges returns all edges in construction order.
func (g *Graph) Edges() []*edge.Edge { return g.topology.Edges() }

// Len is the number of vertices.
func (g *Graph) Len() int { return g.topology.Len() }

// TopLevelNodes returns the ids of the nodes the graph was given, before
// normalization.
func (g *Graph) TopLevelNodes() []string { return slices.Clone(g.topLevel) }

// NodesWithTarget returns the sources of all edges pointing at v, in edge
// order.
func (g *Graph) NodesWithTarget(v *vertex.Vertex) []*vertex.Vertex {
	var out []*vertex.Vertex
	for _, e := range g.topology.Edges() {
		if e.Target() != v.ID() {
			continue
		}
		if src, ok := g.topology.Vertex(e.Source()); ok {
			out = append(out, src)
		}
	}
	return out
}

// Neighbors counts, for every vertex adjacent to v, the edges between them.
func (g *Graph) Neighbors(v *vertex.Vertex) map[*vertex.Vertex]int {
	neighbors := map[*vertex.Vertex]int{}
	for _, e := range g.topology.Edges() {
		var other string
		switch {
		case e.Source() == v.ID():
			other = e.Target()
		case e.Target() == v.ID():
			other = e.Source()
		default:
			continue
		}
		if n, ok := g.topology.Vertex(other); ok {
			neighbors[n]++
		}
	}
	return neighbors
}

// ChildrenByNodeType returns v itself when its declared type or one of its
// base classes is nodeType, and nothing otherwise.
func (g *Graph) ChildrenByNodeType(v *vertex.Vertex, nodeType string) []*vertex.Vertex {
	if v.NodeType() == nodeType || slices.Contains(v.BaseClasses(), nodeType) {
		return []*vertex.Vertex{v}
	}
	return nil
}

// Revalidate resets and validates every edge again, e.g. after a graph was
// restored from its serialized form.
func (g *Graph) Revalidate() error {
	for _, e := range g.topology.Edges() {
		e.Reset()
		if err := e.Validate(); err != nil {
			return err
		}
	}
	return nil
}
