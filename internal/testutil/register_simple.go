package testutil

import (
	"context"

	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// SimpleModule is a test helper for easily creating a mock module that
// registers a single node type.
type SimpleModule struct {
	Name string
	Kind vertex.Kind
	Fn   func(ctx context.Context, v *vertex.Vertex, params map[string]any) (any, error)
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	if m.Name == "" {
		return
	}
	kind := m.Kind
	if kind == "" {
		kind = vertex.KindGeneric
	}
	r.Register(m.Name, func() vertex.Behavior {
		return vertex.Func{K: kind, Fn: m.Fn}
	})
}
