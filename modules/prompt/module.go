// Package prompt provides prompt template node types built on langchaingo's
// prompts package. Templates use single-brace placeholders, e.g. "{input}".
package prompt

import (
	"context"
	"fmt"
	"regexp"
	"slices"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
	"github.com/tmc/langchaingo/prompts"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the prompt node types.
func (m *Module) Register(r *registry.Registry) {
	for _, name := range []string{"PromptTemplate", "ChatPromptTemplate", "BasePromptTemplate"} {
		r.Register(name, func() vertex.Behavior {
			return vertex.Func{K: vertex.KindPrompt, Fn: build}
		})
	}
}

// Prompt is the built artifact of a prompt vertex. Variables filled by the
// flow itself are bound as partial values; the rest are left to the caller.
type Prompt struct {
	Template prompts.PromptTemplate
}

// Variables lists the variables a caller still has to supply.
func (p *Prompt) Variables() []string {
	return slices.Clone(p.Template.InputVariables)
}

// Format renders the template with the given values.
func (p *Prompt) Format(values map[string]any) (string, error) {
	return p.Template.Format(values)
}

var placeholder = regexp.MustCompile(`\{(\w+)\}`)

// Variables returns the distinct placeholders of an f-string template in
// order of first appearance. Escaped braces ("{{x}}") are not placeholders.
func Variables(template string) []string {
	var vars []string
	for _, loc := range placeholder.FindAllStringSubmatchIndex(template, -1) {
		start, end := loc[0], loc[1]
		if start > 0 && template[start-1] == '{' && end < len(template) && template[end] == '}' {
			continue
		}
		name := template[loc[2]:loc[3]]
		if !slices.Contains(vars, name) {
			vars = append(vars, name)
		}
	}
	return vars
}

func build(ctx context.Context, v *vertex.Vertex, params map[string]any) (any, error) {
	text, _ := params["template"].(string)
	if text == "" {
		return nil, fmt.Errorf("%w: prompt %s has no template", vertex.ErrMissingParam, v.ID())
	}

	vars, err := declared(params["input_variables"])
	if err != nil {
		return nil, fmt.Errorf("prompt %s: %w", v.ID(), err)
	}
	if len(vars) == 0 {
		vars = Variables(text)
	}

	tmpl := prompts.PromptTemplate{
		Template:         text,
		TemplateFormat:   prompts.TemplateFormatFString,
		PartialVariables: map[string]any{},
	}
	for _, name := range vars {
		if s, ok := params[name].(string); ok && s != "" {
			tmpl.PartialVariables[name] = s
			continue
		}
		tmpl.InputVariables = append(tmpl.InputVariables, name)
	}

	ctxlog.FromContext(ctx).Debug("Prompt template ready.", "vertex", v.ID(), "inputs", tmpl.InputVariables)
	return &Prompt{Template: tmpl}, nil
}

func declared(raw any) ([]string, error) {
	switch vs := raw.(type) {
	case nil:
		return nil, nil
	case []string:
		return vs, nil
	case []any:
		out := make([]string, 0, len(vs))
		for _, item := range vs {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("input variable %v is not a string", item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("input_variables: unexpected %T", raw)
	}
}
