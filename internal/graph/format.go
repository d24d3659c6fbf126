package graph

import (
	"fmt"
	"strings"

	"github.com/goccy/go-json"
)

// String renders the canonical textual form of the graph:
//
//	Graph:
//	Nodes: [A B C]
//	Connections:
//	A --> B
//	B --> C
func (g *Graph) String() string {
	vertices := g.topology.Vertices()
	ids := make([]string, len(vertices))
	for i, v := range vertices {
		ids[i] = v.ID()
	}

	edges := g.topology.Edges()
	lines := make([]string, len(edges))
	for i, e := range edges {
		lines[i] = e.String()
	}
	return fmt.Sprintf("Graph:\nNodes: %v\nConnections:\n%s", ids, strings.Join(lines, "\n"))
}

// Equal reports whether two graphs have the same canonical form.
func (g *Graph) Equal(other *Graph) bool {
	if g == nil || other == nil {
		return g == other
	}
	return g.String() == other.String()
}

// MarshalJSON encodes the flow the graph was constructed from. FromPayload
// rebuilds an equal graph from the result.
func (g *Graph) MarshalJSON() ([]byte, error) {
	return json.Marshal(g.input)
}
