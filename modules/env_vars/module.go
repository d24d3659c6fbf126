package env_vars

import (
	"context"
	"os"
	"strings"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Output is the built artifact of an EnvVars vertex.
type Output struct {
	All map[string]string
}

// Get returns a variable, or fallback when it is unset.
func (o *Output) Get(name, fallback string) string {
	if v, ok := o.All[name]; ok {
		return v
	}
	return fallback
}

// buildEnvVars snapshots the process environment. An optional "prefix"
// parameter keeps only the matching variables.
func buildEnvVars(ctx context.Context, v *vertex.Vertex, params map[string]any) (any, error) {
	prefix, _ := params["prefix"].(string)

	envMap := make(map[string]string)
	for _, e := range os.Environ() {
		pair := strings.SplitN(e, "=", 2)
		if len(pair) == 2 && strings.HasPrefix(pair[0], prefix) {
			envMap[pair[0]] = pair[1]
		}
	}

	ctxlog.FromContext(ctx).Debug("Environment captured.", "vertex", v.ID(), "prefix", prefix, "count", len(envMap))
	return &Output{All: envMap}, nil
}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("EnvVars", func() vertex.Behavior {
		return vertex.Func{K: vertex.KindGeneric, Fn: buildEnvVars}
	})
}
