package graph

import (
	"context"
	"testing"

	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/specialistvlad/flowgraph/internal/rootfinder"
	"github.com/specialistvlad/flowgraph/internal/testutil"
	"github.com/specialistvlad/flowgraph/internal/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func flowOf(ids []string, links [][2]string) payload.Flow {
	flow := payload.Flow{}
	for _, id := range ids {
		flow.Nodes = append(flow.Nodes, testutil.Node(id, "Generic"))
	}
	for _, l := range links {
		flow.Edges = append(flow.Edges, testutil.Link(l[0], l[1]))
	}
	return flow
}

var acyclicCases = []struct {
	name  string
	ids   []string
	links [][2]string
}{
	{name: "chain", ids: []string{"A", "B", "C"}, links: [][2]string{{"A", "B"}, {"B", "C"}}},
	{name: "reverse declared chain", ids: []string{"C", "B", "A"}, links: [][2]string{{"A", "B"}, {"B", "C"}}},
	{name: "diamond", ids: []string{"A", "B", "C", "D"}, links: [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}}},
	{name: "fan in", ids: []string{"X", "Y", "Z", "OUT"}, links: [][2]string{{"X", "OUT"}, {"Y", "OUT"}, {"Z", "OUT"}}},
	{name: "two components", ids: []string{"A", "B", "C", "D"}, links: [][2]string{{"A", "B"}, {"C", "D"}}},
	{name: "parallel edges", ids: []string{"A", "B"}, links: [][2]string{{"A", "B"}, {"A", "B"}}},
	{
		name:  "wide dag",
		ids:   []string{"n1", "n2", "n3", "n4", "n5", "n6", "n7"},
		links: [][2]string{{"n1", "n4"}, {"n2", "n4"}, {"n4", "n6"}, {"n3", "n5"}, {"n5", "n6"}, {"n6", "n7"}, {"n1", "n7"}},
	},
}

func TestTopologicalSort_Law(t *testing.T) {
	for _, tc := range acyclicCases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustNew(t, flowOf(tc.ids, tc.links))

			sorted, err := g.TopologicalSort()
			require.NoError(t, err)
			require.Len(t, sorted, len(tc.ids))

			pos := map[string]int{}
			for i, v := range sorted {
				pos[v.ID()] = i
			}
			require.Len(t, pos, len(tc.ids))
			for _, l := range tc.links {
				assert.Less(t, pos[l[0]], pos[l[1]], "%s must precede %s", l[0], l[1])
			}
		})
	}
}

func TestTopologicalSort_Chain(t *testing.T) {
	g := mustNew(t, testutil.Chain("A", "B", "C"))
	sorted, err := g.TopologicalSort()
	require.NoError(t, err)
	assert.Equal(t, []string{"A", "B", "C"}, testutil.IDs(sorted))
}

func TestOrdering_Cycle(t *testing.T) {
	testCases := []struct {
		name  string
		ids   []string
		links [][2]string
	}{
		{name: "closing edge", ids: []string{"A", "B", "C"}, links: [][2]string{{"A", "B"}, {"B", "C"}, {"C", "A"}}},
		{name: "self loop", ids: []string{"A"}, links: [][2]string{{"A", "A"}}},
		{name: "cycle downstream of acyclic part", ids: []string{"S", "A", "B"}, links: [][2]string{{"S", "A"}, {"A", "B"}, {"B", "A"}}},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustNew(t, flowOf(tc.ids, tc.links))

			sorted, err := g.TopologicalSort()
			require.ErrorIs(t, err, ErrCycle)
			assert.Nil(t, sorted)

			layers, err := g.LayeredTopologicalSort()
			require.ErrorIs(t, err, ErrCycle)
			assert.Nil(t, layers)
			for _, v := range g.Vertices() {
				_, ok := v.Layer()
				assert.False(t, ok, "vertex %s got a layer from a failed sort", v.ID())
			}

			var yielded int
			for v, err := range g.Sequence(context.Background()) {
				yielded++
				assert.Nil(t, v)
				require.ErrorIs(t, err, ErrCycle)
			}
			assert.Equal(t, 1, yielded)

			_, err = g.Build(context.Background())
			require.ErrorIs(t, err, ErrCycle)
		})
	}
}

func TestLayeredTopologicalSort(t *testing.T) {
	testCases := []struct {
		name     string
		ids      []string
		links    [][2]string
		expected [][]string
	}{
		{
			name:     "chain",
			ids:      []string{"A", "B", "C"},
			links:    [][2]string{{"A", "B"}, {"B", "C"}},
			expected: [][]string{{"A"}, {"B"}, {"C"}},
		},
		{
			name:     "diamond",
			ids:      []string{"A", "B", "C", "D"},
			links:    [][2]string{{"A", "B"}, {"A", "C"}, {"B", "D"}, {"C", "D"}},
			expected: [][]string{{"A"}, {"B", "C"}, {"D"}},
		},
		{
			name:     "single vertex",
			ids:      []string{"A"},
			expected: [][]string{{"A"}},
		},
		{
			// The target is visited first, so it finishes at depth 0 too.
			name:     "layers follow traversal depth",
			ids:      []string{"B", "A"},
			links:    [][2]string{{"A", "B"}},
			expected: [][]string{{"B", "A"}},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustNew(t, flowOf(tc.ids, tc.links))

			layers, err := g.LayeredTopologicalSort()
			require.NoError(t, err)
			assert.Equal(t, tc.expected, testutil.LayerIDs(layers))

			for depth, layer := range layers {
				for _, v := range layer {
					got, ok := v.Layer()
					require.True(t, ok)
					assert.Equal(t, depth, got)
				}
			}
		})
	}
}

// Every vertex reachable from v finishes, and so gets its layer, before v.
func TestLayeredTopologicalSort_CompletionLaw(t *testing.T) {
	for _, tc := range acyclicCases {
		t.Run(tc.name, func(t *testing.T) {
			g := mustNew(t, flowOf(tc.ids, tc.links))

			var finished []string
			require.NoError(t, g.traverse(func(v *vertex.Vertex, _ int) {
				finished = append(finished, v.ID())
			}))
			order := map[string]int{}
			for i, id := range finished {
				order[id] = i
			}
			for _, l := range tc.links {
				assert.Less(t, order[l[1]], order[l[0]])
			}

			layers, err := g.LayeredTopologicalSort()
			require.NoError(t, err)
			total := 0
			for _, layer := range layers {
				assert.NotEmpty(t, layer)
				total += len(layer)
			}
			assert.Equal(t, len(tc.ids), total)
		})
	}
}

func TestSequence(t *testing.T) {
	g := mustNew(t, testutil.Chain("A", "B", "C", "D"))

	var ids []string
	for v, err := range g.Sequence(context.Background()) {
		require.NoError(t, err)
		ids = append(ids, v.ID())
	}
	assert.Equal(t, []string{"A", "B", "C", "D"}, ids)

	ids = nil
	for v := range g.Sequence(context.Background()) {
		ids = append(ids, v.ID())
		if len(ids) == 2 {
			break
		}
	}
	assert.Equal(t, []string{"A", "B"}, ids)
}

func TestBuild(t *testing.T) {
	t.Run("chain builds from the sink", func(t *testing.T) {
		g := mustNew(t, testutil.Chain("A", "B", "C"))
		out, err := g.Build(context.Background())
		require.NoError(t, err)

		expected := map[string]any{
			vertex.InputsParam: []any{map[string]any{
				vertex.InputsParam: []any{map[string]any{}},
			}},
		}
		assert.Equal(t, expected, out)

		for _, v := range g.Vertices() {
			_, ok := v.Built()
			assert.True(t, ok, "vertex %s was not built", v.ID())
		}
	})

	t.Run("empty graph", func(t *testing.T) {
		g := mustNew(t, payload.Flow{})
		_, err := g.Build(context.Background())
		require.ErrorIs(t, err, ErrEmptyGraph)
	})

	t.Run("two sinks", func(t *testing.T) {
		g := mustNew(t, flowOf([]string{"A", "B", "C"}, [][2]string{{"A", "B"}, {"A", "C"}}))
		_, err := g.Build(context.Background())
		require.ErrorIs(t, err, ErrNoRootVertex)

		for _, v := range g.Vertices() {
			_, ok := v.Built()
			assert.False(t, ok)
		}
	})

	t.Run("custom root finder", func(t *testing.T) {
		g := mustNew(t, flowOf([]string{"A", "B", "C"}, [][2]string{{"A", "B"}, {"A", "C"}}),
			WithRootFinder(rootfinder.FirstSink))
		root, ok := g.Root()
		require.True(t, ok)
		assert.Equal(t, "B", root.ID())

		_, err := g.Build(context.Background())
		require.NoError(t, err)
		c, _ := g.Vertex("C")
		_, built := c.Built()
		assert.False(t, built)
	})

	t.Run("missing required parameter", func(t *testing.T) {
		flow := testutil.Chain("A", "B")
		flow.Nodes[0].Data.Node.Template["text"] = map[string]any{"type": "str", "required": true}
		g := mustNew(t, flow)

		_, err := g.Build(context.Background())
		require.ErrorIs(t, err, vertex.ErrMissingParam)
		assert.ErrorContains(t, err, "vertex A")
	})
}
