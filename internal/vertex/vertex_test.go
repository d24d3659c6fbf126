package vertex

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"

	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type sliceLookup []*Vertex

func (s sliceLookup) Vertex(id string) (*Vertex, bool) {
	for _, v := range s {
		if v.ID() == id {
			return v, true
		}
	}
	return nil, false
}

func (s sliceLookup) VertexAt(i int) (*Vertex, bool) {
	if i < 0 || i >= len(s) {
		return nil, false
	}
	return s[i], true
}

func node(id, typ string, tmpl payload.Template) payload.Node {
	return payload.Node{ID: id, Data: payload.NodeData{ID: id, Type: typ, Node: payload.NodeSpec{Template: tmpl}}}
}

func connect(t *testing.T, raw payload.Edge, vs ...*Vertex) {
	t.Helper()
	e, err := edge.New(raw)
	require.NoError(t, err)
	for _, v := range vs {
		v.AddEdge(e)
	}
}

func TestAccessors(t *testing.T) {
	v := New(3, payload.Node{ID: "ChatOpenAI-1", Data: payload.NodeData{
		Type: "ChatOpenAI",
		Node: payload.NodeSpec{
			Template:    payload.Template{"_type": "ChatOpenAI"},
			BaseClasses: []string{"BaseLanguageModel"},
		},
	}}, nil)

	assert.Equal(t, "ChatOpenAI-1", v.ID())
	assert.Equal(t, 3, v.Index())
	assert.Equal(t, Ref{ID: "ChatOpenAI-1", Index: 3}, v.Ref())
	assert.Equal(t, "ChatOpenAI", v.NodeType())
	assert.Equal(t, "ChatOpenAI", v.BaseType())
	assert.Equal(t, []string{"BaseLanguageModel"}, v.BaseClasses())
	assert.Equal(t, KindGeneric, v.Kind())

	_, ok := v.Layer()
	assert.False(t, ok)
	v.SetLayer(2)
	layer, ok := v.Layer()
	assert.True(t, ok)
	assert.Equal(t, 2, layer)

	v.SetTopLevel(map[string]struct{}{"other": {}})
	assert.False(t, v.IsTopLevel())
	v.SetTopLevel(map[string]struct{}{"ChatOpenAI-1": {}})
	assert.True(t, v.IsTopLevel())
}

func TestBuildParams(t *testing.T) {
	src1 := New(0, node("A", "X", nil), nil)
	src2 := New(1, node("B", "X", nil), nil)
	src3 := New(2, node("C", "X", nil), nil)
	dst := New(3, node("D", "Y", payload.Template{
		"text":  map[string]any{"type": "str", "value": "hello"},
		"llm":   map[string]any{"type": "BaseLanguageModel", "value": "overridden"},
		"tools": map[string]any{"type": "Tool", "list": true},
		"empty": map[string]any{"type": "str", "value": ""},
	}), nil)
	lookup := sliceLookup{src1, src2, src3, dst}

	connect(t, payload.Edge{Source: "A", Target: "D", TargetHandle: "BaseLanguageModel|llm|D"}, src1, dst)
	connect(t, payload.Edge{Source: "B", Target: "D", TargetHandle: "Tool|tools|D"}, src2, dst)
	connect(t, payload.Edge{Source: "C", Target: "D", TargetHandle: "Tool|tools|D"}, src3, dst)
	connect(t, payload.Edge{Source: "A", Target: "D"}, src1, dst)

	require.NoError(t, dst.BuildParams(lookup))
	assert.Equal(t, map[string]any{
		"text":      "hello",
		"llm":       Ref{ID: "A", Index: 0},
		"tools":     []Ref{{ID: "B", Index: 1}, {ID: "C", Index: 2}},
		InputsParam: []Ref{{ID: "A", Index: 0}},
	}, dst.Params())

	// Outgoing edges do not produce params.
	require.NoError(t, src1.BuildParams(lookup))
	assert.Empty(t, src1.Params())
}

func TestBuild_ResolvesReferencesOnce(t *testing.T) {
	var calls atomic.Int32
	counting := func(val string) Behavior {
		return Func{K: KindLLM, Fn: func(context.Context, *Vertex, map[string]any) (any, error) {
			calls.Add(1)
			return val, nil
		}}
	}

	llm := New(0, node("L", "FakeListLLM", nil), counting("model"))
	var seen []map[string]any
	collect := Func{K: KindToolkit, Fn: func(_ context.Context, v *Vertex, params map[string]any) (any, error) {
		seen = append(seen, params)
		return v.ID(), nil
	}}
	t1 := New(1, node("T1", "JsonToolkit", nil), collect)
	t2 := New(2, node("T2", "JsonToolkit", nil), collect)
	lookup := sliceLookup{llm, t1, t2}

	t1.SetParam("llm", llm.Ref())
	t2.SetParam("llm", llm.Ref())

	ctx := context.Background()
	out, err := t1.Build(ctx, lookup)
	require.NoError(t, err)
	assert.Equal(t, "T1", out)
	_, err = t2.Build(ctx, lookup)
	require.NoError(t, err)
	_, err = t1.Build(ctx, lookup)
	require.NoError(t, err)

	assert.Equal(t, int32(1), calls.Load())
	require.Len(t, seen, 2)
	assert.Equal(t, "model", seen[0]["llm"])
	assert.Equal(t, "model", seen[1]["llm"])

	built, ok := llm.Built()
	assert.True(t, ok)
	assert.Equal(t, "model", built)
}

func TestBuild_Errors(t *testing.T) {
	t.Run("missing required parameter", func(t *testing.T) {
		v := New(0, node("P", "PromptTemplate", payload.Template{
			"template": map[string]any{"type": "str", "required": true},
		}), nil)
		require.NoError(t, v.BuildParams(sliceLookup{v}))

		_, err := v.Build(context.Background(), sliceLookup{v})
		require.ErrorIs(t, err, ErrMissingParam)
		assert.ErrorContains(t, err, "[template]")
	})

	t.Run("dependency failure propagates and is memoized", func(t *testing.T) {
		boom := errors.New("boom")
		var calls int
		dep := New(0, node("A", "X", nil), Func{K: KindGeneric, Fn: func(context.Context, *Vertex, map[string]any) (any, error) {
			calls++
			return nil, boom
		}})
		v := New(1, node("B", "Y", nil), nil)
		v.SetParam("in", dep.Ref())
		lookup := sliceLookup{dep, v}

		_, err := v.Build(context.Background(), lookup)
		require.ErrorIs(t, err, boom)
		_, err = v.Build(context.Background(), lookup)
		require.ErrorIs(t, err, boom)
		assert.Equal(t, 1, calls)

		_, ok := v.Built()
		assert.False(t, ok)
	})

	t.Run("dangling reference", func(t *testing.T) {
		v := New(0, node("B", "Y", nil), nil)
		v.SetParam("in", Ref{ID: "ghost", Index: 7})
		_, err := v.Build(context.Background(), sliceLookup{v})
		assert.ErrorContains(t, err, "dangling reference to vertex ghost")
	})
}

func TestGenericBuildReturnsParams(t *testing.T) {
	v := New(0, node("G", "Unknown", payload.Template{
		"k": map[string]any{"type": "str", "value": "v"},
	}), nil)
	require.NoError(t, v.BuildParams(sliceLookup{v}))

	out, err := v.Build(context.Background(), sliceLookup{v})
	require.NoError(t, err)
	assert.Equal(t, map[string]any{"k": "v"}, out)
}
