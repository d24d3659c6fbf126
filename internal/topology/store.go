// Package topology stores the static structure of a flow graph: its vertices
// in construction order and the edges between them.
//
// The store is populated once while a graph is constructed and is read-only
// afterwards. Vertices are addressed both by identifier and by their
// construction index; the index is what vertex.Ref handles carry.
package topology

import (
	"errors"

	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// ErrDuplicateVertex is returned when a vertex id is added twice.
var ErrDuplicateVertex = errors.New("duplicate vertex")

// Store is the interface for the static topology of a flow graph.
//
// Implementations must be safe for concurrent use: graphs are built once but
// queried from many goroutines while vertices are materialized.
type Store interface {
	// AddVertex registers a vertex. Its Index must equal the number of
	// vertices already stored.
	AddVertex(v *vertex.Vertex) error

	// AddEdge registers an edge. Both endpoints must already be stored.
	AddEdge(e *edge.Edge) error

	// Vertex looks a vertex up by identifier.
	Vertex(id string) (*vertex.Vertex, bool)

	// VertexAt looks a vertex up by construction index.
	VertexAt(index int) (*vertex.Vertex, bool)

	// Vertices returns all vertices in construction order.
	Vertices() []*vertex.Vertex

	// Edges returns all edges in construction order.
	Edges() []*edge.Edge

	// Len is the number of vertices.
	Len() int
}
