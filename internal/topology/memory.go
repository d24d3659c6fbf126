package topology

import (
	"fmt"
	"sync"

	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Memory implements Store with slices, an id index and a mutex.
type Memory struct {
	mu       sync.RWMutex
	vertices []*vertex.Vertex
	byID     map[string]int
	edges    []*edge.Edge
}

// New creates a new, empty in-memory topology store.
func New() Store {
	return &Memory{byID: make(map[string]int)}
}

// AddVertex adds a vertex to the store.
func (s *Memory) AddVertex(v *vertex.Vertex) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[v.ID()]; exists {
		return fmt.Errorf("%w: '%s'", ErrDuplicateVertex, v.ID())
	}
	if v.Index() != len(s.vertices) {
		return fmt.Errorf("vertex '%s' has index %d, expected %d", v.ID(), v.Index(), len(s.vertices))
	}
	s.byID[v.ID()] = len(s.vertices)
	s.vertices = append(s.vertices, v)
	return nil
}

// AddEdge adds an edge between two stored vertices.
func (s *Memory) AddEdge(e *edge.Edge) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if _, exists := s.byID[e.Source()]; !exists {
		return fmt.Errorf("edge source vertex '%s' not found in topology", e.Source())
	}
	if _, exists := s.byID[e.Target()]; !exists {
		return fmt.Errorf("edge target vertex '%s' not found in topology", e.Target())
	}
	s.edges = append(s.edges, e)
	return nil
}

// Vertex retrieves a single vertex by its identifier.
func (s *Memory) Vertex(id string) (*vertex.Vertex, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	i, ok := s.byID[id]
	if !ok {
		return nil, false
	}
	return s.vertices[i], true
}

// VertexAt retrieves a single vertex by its construction index.
func (s *Memory) VertexAt(index int) (*vertex.Vertex, bool) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	if index < 0 || index >= len(s.vertices) {
		return nil, false
	}
	return s.vertices[index], true
}

// Vertices returns a copy of the vertex list.
func (s *Memory) Vertices() []*vertex.Vertex {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*vertex.Vertex, len(s.vertices))
	copy(out, s.vertices)
	return out
}

// Edges returns a copy of the edge list.
func (s *Memory) Edges() []*edge.Edge {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]*edge.Edge, len(s.edges))
	copy(out, s.edges)
	return out
}

// Len returns the number of vertices.
func (s *Memory) Len() int {
	s.mu.RLock()
	defer s.mu.RUnlock()
	return len(s.vertices)
}
