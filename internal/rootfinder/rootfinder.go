// Package rootfinder selects the vertex whose build drives the build of a
// whole graph.
package rootfinder

import (
	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Func picks the root vertex of a graph, or reports that there is none.
type Func func(vertices []*vertex.Vertex, edges []*edge.Edge) (*vertex.Vertex, bool)

// UniqueSink returns the only vertex that is not the source of any edge.
// Graphs with zero or several such vertices have no root.
func UniqueSink(vertices []*vertex.Vertex, edges []*edge.Edge) (*vertex.Vertex, bool) {
	sources := sourceSet(edges)
	var root *vertex.Vertex
	for _, v := range vertices {
		if _, ok := sources[v.ID()]; ok {
			continue
		}
		if root != nil {
			return nil, false
		}
		root = v
	}
	return root, root != nil
}

// FirstSink returns the first vertex, in graph order, that is not the source
// of any edge.
func FirstSink(vertices []*vertex.Vertex, edges []*edge.Edge) (*vertex.Vertex, bool) {
	sources := sourceSet(edges)
	for _, v := range vertices {
		if _, ok := sources[v.ID()]; !ok {
			return v, true
		}
	}
	return nil, false
}

func sourceSet(edges []*edge.Edge) map[string]struct{} {
	sources := make(map[string]struct{}, len(edges))
	for _, e := range edges {
		sources[e.Source()] = struct{}{}
	}
	return sources
}
