package testutil

import (
	"fmt"
	"strings"
	"testing"

	"github.com/specialistvlad/flowgraph/internal/vertex"
	"github.com/stretchr/testify/require"
)

// AssertVertexBuilt checks debug log output to confirm that a vertex was
// built.
func AssertVertexBuilt(t *testing.T, logs string, id string) {
	t.Helper()

	expectedLogSubstring := fmt.Sprintf("vertex=%s ", id)
	require.True(t,
		strings.Contains(logs, expectedLogSubstring),
		"expected build log for vertex '%s' was not found in logs", id,
	)
}

// IDs maps vertices to their ids.
func IDs(vs []*vertex.Vertex) []string {
	ids := make([]string, len(vs))
	for i, v := range vs {
		ids[i] = v.ID()
	}
	return ids
}

// LayerIDs maps layers of vertices to layers of ids.
func LayerIDs(layers [][]*vertex.Vertex) [][]string {
	out := make([][]string, len(layers))
	for i, l := range layers {
		out[i] = IDs(l)
	}
	return out
}
