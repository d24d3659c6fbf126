package filetool

import (
	"context"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/flowgraph/internal/graph"
	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/testutil"
	"github.com/specialistvlad/flowgraph/internal/vertex"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const specJSON = `{"info": {"title": "Pets", "version": "1.0"}, "paths": {"/pets": {"get": {}}}}`

func build(t *testing.T, tmpl payload.Template) (any, error) {
	t.Helper()
	tmpl[payload.TypeKey] = "JsonSpec"
	flow := payload.Flow{Nodes: []payload.Node{{
		// The id prefix is not a registered name, so the file-tool rule applies.
		ID:   "spec-1",
		Data: payload.NodeData{Type: "JsonSpec", Node: payload.NodeSpec{Template: tmpl}},
	}}}
	g, err := graph.New(context.Background(), flow, graph.WithRegistry(registry.New(&Module{})))
	require.NoError(t, err)

	v, _ := g.Vertex("spec-1")
	assert.Equal(t, vertex.KindFileTool, v.Kind())
	return g.Build(context.Background())
}

func TestJSONSpec(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"spec.json": specJSON})

	out, err := build(t, payload.Template{
		"path":             map[string]any{"type": "file", "required": true, "value": filepath.Join(dir, "spec.json")},
		"max_value_length": map[string]any{"type": "int", "value": 10.0},
	})
	require.NoError(t, err)

	spec, ok := out.(*JSONSpec)
	require.True(t, ok)
	assert.Equal(t, 10, spec.MaxValueLength)

	keys, err := spec.Keys()
	require.NoError(t, err)
	assert.Equal(t, []string{"info", "paths"}, keys)

	keys, err = spec.Keys("info")
	require.NoError(t, err)
	assert.Equal(t, []string{"title", "version"}, keys)

	val, err := spec.Value("info", "title")
	require.NoError(t, err)
	assert.Equal(t, `"Pets"`, val)

	val, err = spec.Value("info")
	require.NoError(t, err)
	assert.Equal(t, `{"title":"...`, val)

	_, err = spec.Keys("info", "title")
	assert.ErrorContains(t, err, "is not an object")
	_, err = spec.Value("nope")
	assert.ErrorContains(t, err, `key "nope" not found`)
}

func TestJSONSpec_Errors(t *testing.T) {
	dir := testutil.WriteFiles(t, map[string]string{"list.json": `[1, 2]`})

	_, err := build(t, payload.Template{"path": map[string]any{"type": "file"}})
	require.ErrorIs(t, err, vertex.ErrMissingParam)

	_, err = build(t, payload.Template{"path": map[string]any{"type": "file", "value": filepath.Join(dir, "missing.json")}})
	assert.Error(t, err)

	_, err = build(t, payload.Template{"path": map[string]any{"type": "file", "value": filepath.Join(dir, "list.json")}})
	assert.ErrorContains(t, err, "is not a JSON object")
}
