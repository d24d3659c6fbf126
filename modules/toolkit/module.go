// Package toolkit provides toolkit node types. A toolkit bundles the tools
// an agent may call together with the language model that drives them. The
// model is not wired by an edge: the graph hands the flow's model to every
// toolkit before building.
package toolkit

import (
	"context"
	"fmt"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/graph"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
	"github.com/specialistvlad/flowgraph/modules/filetool"
	"github.com/tmc/langchaingo/llms"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the toolkit node types.
func (m *Module) Register(r *registry.Registry) {
	r.Register("JsonToolkit", behavior(checkJSON))
	r.Register("OpenAPIToolkit", behavior(checkOpenAPI))
	r.Register("VectorStoreToolkit", behavior(nil))
	r.Register("BaseToolkit", behavior(nil))
}

// Toolkit is the built artifact of a toolkit vertex.
type Toolkit struct {
	Type   string
	LLM    llms.Model
	Params map[string]any
}

// Spec returns the JSON spec the toolkit was built with, if any.
func (t *Toolkit) Spec() (*filetool.JSONSpec, bool) {
	s, ok := t.Params["spec"].(*filetool.JSONSpec)
	return s, ok
}

type checkFunc func(v *vertex.Vertex, params map[string]any) error

func behavior(check checkFunc) vertex.Factory {
	return func() vertex.Behavior {
		return vertex.Func{K: vertex.KindToolkit, Fn: func(ctx context.Context, v *vertex.Vertex, params map[string]any) (any, error) {
			model, ok := params[graph.LLMParam].(llms.Model)
			if !ok {
				return nil, fmt.Errorf("%w: toolkit %s has no language model (got %T)", vertex.ErrMissingParam, v.ID(), params[graph.LLMParam])
			}
			if check != nil {
				if err := check(v, params); err != nil {
					return nil, err
				}
			}

			rest := make(map[string]any, len(params))
			for k, p := range params {
				if k != graph.LLMParam {
					rest[k] = p
				}
			}
			ctxlog.FromContext(ctx).Debug("Toolkit ready.", "vertex", v.ID(), "params", len(rest))
			return &Toolkit{Type: v.NodeType(), LLM: model, Params: rest}, nil
		}}
	}
}

func checkJSON(v *vertex.Vertex, params map[string]any) error {
	if _, ok := params["spec"].(*filetool.JSONSpec); !ok {
		return fmt.Errorf("%w: toolkit %s needs a JSON spec under 'spec' (got %T)", vertex.ErrMissingParam, v.ID(), params["spec"])
	}
	return nil
}

func checkOpenAPI(v *vertex.Vertex, params map[string]any) error {
	spec, ok := params["json_agent"].(*filetool.JSONSpec)
	if !ok {
		spec, ok = params["spec"].(*filetool.JSONSpec)
	}
	if !ok {
		return fmt.Errorf("%w: toolkit %s needs an OpenAPI document", vertex.ErrMissingParam, v.ID())
	}
	if _, err := spec.Value("paths"); err != nil {
		return fmt.Errorf("toolkit %s: %s is not an OpenAPI document: %w", v.ID(), spec.Path, err)
	}
	params["spec"] = spec
	return nil
}
