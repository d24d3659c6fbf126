package testutil

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Node types served by RolesModule.
const (
	StubLLMType     = "StubLLM"
	StubToolkitType = "StubToolkit"
)

// StubToolkit is what a StubToolkit vertex builds into.
type StubToolkit struct {
	ID  string
	LLM any
}

// RolesModule registers one stub node type per propagation role, so graph
// tests can exercise LLM injection without real models.
type RolesModule struct{}

// Register registers the stub LLM and toolkit types.
func (RolesModule) Register(r *registry.Registry) {
	r.Register(StubLLMType, func() vertex.Behavior {
		return vertex.Func{K: vertex.KindLLM, Fn: func(_ context.Context, v *vertex.Vertex, _ map[string]any) (any, error) {
			return "llm:" + v.ID(), nil
		}}
	})
	r.Register(StubToolkitType, func() vertex.Behavior {
		return vertex.Func{K: vertex.KindToolkit, Fn: func(_ context.Context, v *vertex.Vertex, params map[string]any) (any, error) {
			llm, ok := params["llm"]
			if !ok {
				return nil, fmt.Errorf("toolkit %s has no llm", v.ID())
			}
			return StubToolkit{ID: v.ID(), LLM: llm}, nil
		}}
	})
}
