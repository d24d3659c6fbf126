package rootfinder

import (
	"testing"

	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/specialistvlad/flowgraph/internal/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func fixture(t *testing.T, ids []string, links [][2]string) ([]*vertex.Vertex, []*edge.Edge) {
	t.Helper()
	vs := make([]*vertex.Vertex, len(ids))
	for i, id := range ids {
		vs[i] = vertex.New(i, payload.Node{ID: id}, nil)
	}
	es := make([]*edge.Edge, len(links))
	for i, l := range links {
		e, err := edge.New(payload.Edge{Source: l[0], Target: l[1]})
		require.NoError(t, err)
		es[i] = e
	}
	return vs, es
}

func TestSinks(t *testing.T) {
	testCases := []struct {
		name       string
		ids        []string
		links      [][2]string
		uniqueRoot string
		firstRoot  string
	}{
		{name: "chain", ids: []string{"A", "B", "C"}, links: [][2]string{{"A", "B"}, {"B", "C"}}, uniqueRoot: "C", firstRoot: "C"},
		{name: "single vertex", ids: []string{"A"}, uniqueRoot: "A", firstRoot: "A"},
		{name: "two sinks", ids: []string{"A", "B", "C"}, links: [][2]string{{"A", "B"}, {"A", "C"}}, firstRoot: "B"},
		{name: "cycle has no sink", ids: []string{"A", "B"}, links: [][2]string{{"A", "B"}, {"B", "A"}}},
		{name: "empty"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			vs, es := fixture(t, tc.ids, tc.links)

			root, ok := UniqueSink(vs, es)
			if tc.uniqueRoot == "" {
				assert.False(t, ok)
				assert.Nil(t, root)
			} else {
				require.True(t, ok)
				assert.Equal(t, tc.uniqueRoot, root.ID())
			}

			root, ok = FirstSink(vs, es)
			if tc.firstRoot == "" {
				assert.False(t, ok)
			} else {
				require.True(t, ok)
				assert.Equal(t, tc.firstRoot, root.ID())
			}
		})
	}
}
