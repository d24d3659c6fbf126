package env_vars

import (
	"context"
	"testing"

	"github.com/specialistvlad/flowgraph/internal/graph"
	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestEnvVars(t *testing.T) {
	t.Setenv("FLOWGRAPH_ENVVARS_TEST_A", "1")
	t.Setenv("FLOWGRAPH_ENVVARS_TEST_B", "two")

	n := testutil.Node("env", "EnvVars")
	n.Data.Node.Template["prefix"] = map[string]any{"type": "str", "value": "FLOWGRAPH_ENVVARS_TEST_"}
	g, err := graph.New(context.Background(), payload.Flow{Nodes: []payload.Node{n}},
		graph.WithRegistry(registry.New(&Module{})))
	require.NoError(t, err)

	out, err := g.Build(context.Background())
	require.NoError(t, err)

	env, ok := out.(*Output)
	require.True(t, ok)
	assert.Equal(t, map[string]string{"FLOWGRAPH_ENVVARS_TEST_A": "1", "FLOWGRAPH_ENVVARS_TEST_B": "two"}, env.All)
	assert.Equal(t, "two", env.Get("FLOWGRAPH_ENVVARS_TEST_B", ""))
	assert.Equal(t, "fallback", env.Get("FLOWGRAPH_ENVVARS_TEST_C", "fallback"))
}
