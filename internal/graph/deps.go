package graph

import (
	"fmt"
	"slices"

	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// CheckDependencies walks the references held in vertex params, which is the
// order Build actually follows. It catches cycles the edges alone do not
// show, such as a toolkit whose injected llm depends back on the toolkit.
func (g *Graph) CheckDependencies() error {
	vertices := g.topology.Vertices()
	state := make([]visitState, len(vertices))

	var visit func(v *vertex.Vertex) error
	visit = func(v *vertex.Vertex) error {
		switch state[v.Index()] {
		case inProgress:
			return fmt.Errorf("%w: vertex %s depends on itself through its parameters", ErrCycle, v.ID())
		case done:
			return nil
		}

		state[v.Index()] = inProgress
		for _, ref := range paramRefs(v) {
			dep, ok := g.topology.VertexAt(ref.Index)
			if !ok || dep.ID() != ref.ID {
				return fmt.Errorf("%w: vertex %s references %s", ErrVertexNotFound, v.ID(), ref.ID)
			}
			if err := visit(dep); err != nil {
				return err
			}
		}
		state[v.Index()] = done
		return nil
	}

	for _, v := range vertices {
		if err := visit(v); err != nil {
			return err
		}
	}
	return nil
}

// paramRefs lists the vertices v's params point at, by param name.
func paramRefs(v *vertex.Vertex) []vertex.Ref {
	params := v.Params()
	names := make([]string, 0, len(params))
	for name := range params {
		names = append(names, name)
	}
	slices.Sort(names)

	var refs []vertex.Ref
	for _, name := range names {
		switch p := params[name].(type) {
		case vertex.Ref:
			refs = append(refs, p)
		case []vertex.Ref:
			refs = append(refs, p...)
		}
	}
	return refs
}
