// Package graph turns a declarative flow into a validated, directed graph of
// vertices and orders those vertices so each can be materialized after the
// vertices it depends on.
//
// # Construction
//
// New runs a fixed sequence of steps and aborts on the first failure, so a
// caller either gets a complete graph or none at all:
//
//  1. The ids of the input nodes are recorded as the top-level nodes.
//  2. The flow is handed to the normalizer (by default normalize.Flatten,
//     which expands group nodes).
//  3. Every normalized node becomes a vertex; the registry decides which
//     behavior it gets.
//  4. Every edge is resolved to its endpoints, contract-checked and registered
//     on both of them.
//  5. Parameters are prepared per vertex, then the LLM vertex is injected into
//     every toolkit vertex under the "llm" key.
//  6. A graph with more than one vertex must not contain isolated vertices.
//
// # Ordering
//
// TopologicalSort, LayeredTopologicalSort and Sequence share one depth-first
// traversal with three visitation states (unvisited, in progress, done). A
// revisit of an in-progress vertex is a cycle and fails the whole call.
//
// Build is the pull-based alternative: it finds the root vertex (the unique
// sink) and builds it, which recursively builds everything it references.
//
// # Thread-Safety
//
// Construction and ordering are synchronous. After New returns, the vertex
// and edge collections are read-only; vertex builds are memoized and safe to
// run concurrently, which is what package layerrun relies on.
package graph
