package graph

import (
	"fmt"

	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// LLMParam is the parameter key under which toolkit vertices receive the
// graph's LLM vertex.
const LLMParam = "llm"

// buildParams prepares every vertex's parameters, then hands the LLM vertex to
// every toolkit vertex.
func (g *Graph) buildParams() error {
	var (
		llm      *vertex.Vertex
		extra    *vertex.Vertex
		toolkits []*vertex.Vertex
	)
	for _, v := range g.topology.Vertices() {
		if err := v.BuildParams(g); err != nil {
			return err
		}
		switch v.Kind() {
		case vertex.KindLLM:
			if llm == nil {
				llm = v
			} else if extra == nil {
				extra = v
			}
		case vertex.KindToolkit:
			toolkits = append(toolkits, v)
		}
	}

	if llm == nil || len(toolkits) == 0 {
		return nil
	}
	if extra != nil {
		return fmt.Errorf("%w: %s and %s both qualify for toolkit %s",
			ErrMultipleLLMVertices, llm.ID(), extra.ID(), toolkits[0].ID())
	}
	for _, tk := range toolkits {
		tk.SetParam(LLMParam, llm.Ref())
	}
	return nil
}
