// Package vertex implements a single node of a flow graph: its identity,
// its behavioral kind, the edges touching it and its lazily built artifact.
package vertex

import (
	"context"
	"errors"
	"fmt"
	"sync"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/payload"
)

// ErrMissingParam is returned when a required template field has neither a
// value nor an incoming connection at build time.
var ErrMissingParam = errors.New("missing required parameter")

// InputsParam collects connections that arrive without a target handle.
const InputsParam = "inputs"

// Ref points at another vertex of the same graph. Params hold Refs instead of
// the vertices themselves; Build resolves them through a Lookup.
type Ref struct {
	ID    string
	Index int
}

// Lookup resolves vertex identifiers and references. The graph implements it.
type Lookup interface {
	Vertex(id string) (*Vertex, bool)
	VertexAt(index int) (*Vertex, bool)
}

// Vertex is one node of the graph.
type Vertex struct {
	index    int
	raw      payload.Node
	behavior Behavior

	edges    []*edge.Edge
	topLevel bool
	layer    int
	layered  bool
	params   map[string]any

	once   sync.Once
	built  bool
	result any
	err    error
}

// New creates a vertex for the node at position index of its graph.
func New(index int, raw payload.Node, b Behavior) *Vertex {
	if b == nil {
		b = Generic{}
	}
	return &Vertex{
		index:    index,
		raw:      raw,
		behavior: b,
		params:   map[string]any{},
	}
}

// ID returns the vertex identifier.
func (v *Vertex) ID() string { return v.raw.ID }

// Index returns the position of the vertex in its graph.
func (v *Vertex) Index() int { return v.index }

// Ref returns a reference to this vertex.
func (v *Vertex) Ref() Ref { return Ref{ID: v.raw.ID, Index: v.index} }

// NodeType is the declared type of the node ("ChatOpenAI", "JsonToolkit"...).
func (v *Vertex) NodeType() string { return v.raw.Data.Type }

// BaseType is the template's "_type" entry.
func (v *Vertex) BaseType() string { return v.raw.Data.Node.Template.BaseType() }

// BaseClasses lists the types this vertex's output can stand in for.
func (v *Vertex) BaseClasses() []string { return v.raw.Data.Node.BaseClasses }

// Data returns the descriptor the vertex was created from.
func (v *Vertex) Data() payload.Node { return v.raw }

// Kind returns the behavioral category of the vertex.
func (v *Vertex) Kind() Kind { return v.behavior.Kind() }

// Behavior returns the node type behavior bound to the vertex.
func (v *Vertex) Behavior() Behavior { return v.behavior }

// Edges returns the edges incident to the vertex, in insertion order.
func (v *Vertex) Edges() []*edge.Edge {
	out := make([]*edge.Edge, len(v.edges))
	copy(out, v.edges)
	return out
}

// AddEdge records an incident edge.
func (v *Vertex) AddEdge(e *edge.Edge) { v.edges = append(v.edges, e) }

// IsTopLevel reports whether the vertex's id appeared in the input
// payload's node list.
func (v *Vertex) IsTopLevel() bool { return v.topLevel }

// SetTopLevel marks the vertex top-level if its id is in ids.
func (v *Vertex) SetTopLevel(ids map[string]struct{}) {
	_, v.topLevel = ids[v.raw.ID]
}

// Layer returns the vertex's layer, if one was assigned.
func (v *Vertex) Layer() (int, bool) { return v.layer, v.layered }

// SetLayer assigns the vertex's layer.
func (v *Vertex) SetLayer(layer int) {
	v.layer = layer
	v.layered = true
}

// Param returns a single build parameter.
func (v *Vertex) Param(name string) (any, bool) {
	p, ok := v.params[name]
	return p, ok
}

// Params returns a copy of the build parameters.
func (v *Vertex) Params() map[string]any {
	out := make(map[string]any, len(v.params))
	for k, p := range v.params {
		out[k] = p
	}
	return out
}

// SetParam sets a single build parameter.
func (v *Vertex) SetParam(name string, value any) { v.params[name] = value }

// BuildParams derives the parameters from the template and the incoming
// edges. Template values come first; a connection to a field overrides its
// value. Connections without a target handle are collected under InputsParam.
func (v *Vertex) BuildParams(lookup Lookup) error {
	params := map[string]any{}
	tmpl := v.raw.Data.Node.Template
	for _, name := range tmpl.FieldNames() {
		f, _ := tmpl.Field(name)
		if val, ok := f.Value(); ok {
			params[name] = val
		}
	}

	for _, e := range v.edges {
		if e.Target() != v.ID() {
			continue
		}
		src, ok := lookup.Vertex(e.Source())
		if !ok {
			return fmt.Errorf("vertex %s: source %q of incoming edge not found", v.ID(), e.Source())
		}

		name := e.TargetField()
		list := name == ""
		if list {
			name = InputsParam
		} else if f, ok := tmpl.Field(name); ok && f.List() {
			list = true
		}

		if !list {
			params[name] = src.Ref()
			continue
		}
		refs, _ := params[name].([]Ref)
		params[name] = append(refs, src.Ref())
	}

	v.params = params
	return nil
}

// Built returns the artifact of a completed build.
func (v *Vertex) Built() (any, bool) {
	if !v.built {
		return nil, false
	}
	return v.result, v.err == nil
}

// Build produces the vertex's artifact. Referenced vertices are built first.
// The result, or the error, is memoized: every later call returns it without
// building again. Build must not be called when the vertex's references
// lead back to it; the graph checks that before building.
func (v *Vertex) Build(ctx context.Context, lookup Lookup) (any, error) {
	v.once.Do(func() {
		v.result, v.err = v.build(ctx, lookup)
		v.built = true
	})
	return v.result, v.err
}

func (v *Vertex) build(ctx context.Context, lookup Lookup) (any, error) {
	resolved := make(map[string]any, len(v.params))
	for name, p := range v.params {
		switch p := p.(type) {
		case Ref:
			out, err := resolve(ctx, lookup, p)
			if err != nil {
				return nil, err
			}
			resolved[name] = out
		case []Ref:
			outs := make([]any, 0, len(p))
			for _, r := range p {
				out, err := resolve(ctx, lookup, r)
				if err != nil {
					return nil, err
				}
				outs = append(outs, out)
			}
			resolved[name] = outs
		default:
			resolved[name] = p
		}
	}

	if missing := v.missingRequired(resolved); len(missing) > 0 {
		return nil, fmt.Errorf("%w: vertex %s (%s): %v", ErrMissingParam, v.ID(), v.NodeType(), missing)
	}

	ctxlog.FromContext(ctx).Debug("Building vertex.", "vertex", v.ID(), "type", v.NodeType(), "kind", v.Kind())
	out, err := v.behavior.Build(ctx, v, resolved)
	if err != nil {
		return nil, fmt.Errorf("building vertex %s: %w", v.ID(), err)
	}
	return out, nil
}

func resolve(ctx context.Context, lookup Lookup, r Ref) (any, error) {
	dep, ok := lookup.VertexAt(r.Index)
	if !ok || dep.ID() != r.ID {
		return nil, fmt.Errorf("dangling reference to vertex %s", r.ID)
	}
	return dep.Build(ctx, lookup)
}

func (v *Vertex) missingRequired(params map[string]any) []string {
	var missing []string
	tmpl := v.raw.Data.Node.Template
	for _, name := range tmpl.FieldNames() {
		f, _ := tmpl.Field(name)
		if !f.Required() {
			continue
		}
		if _, ok := params[name]; !ok {
			missing = append(missing, name)
		}
	}
	return missing
}

// String returns the vertex identifier.
func (v *Vertex) String() string { return v.raw.ID }
