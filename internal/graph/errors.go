package graph

import "errors"

var (
	// ErrVertexNotFound is returned when an edge names an unknown vertex.
	ErrVertexNotFound = errors.New("vertex not found")
	// ErrDisconnectedVertex is returned when a vertex of a multi-vertex graph
	// has no incident edges.
	ErrDisconnectedVertex = errors.New("disconnected vertex")
	// ErrCycle is returned by the ordering operations for cyclic graphs.
	ErrCycle = errors.New("graph contains a cycle, cannot perform topological sort")
	// ErrNoRootVertex is returned by Build when no unique root exists.
	ErrNoRootVertex = errors.New("no root vertex found")
	// ErrEmptyGraph is returned by Build for a graph without vertices.
	ErrEmptyGraph = errors.New("graph has no vertices")
	// ErrMultipleLLMVertices is returned when toolkits cannot be given an
	// unambiguous LLM.
	ErrMultipleLLMVertices = errors.New("more than one LLM vertex")
)
