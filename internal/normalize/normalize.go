// Package normalize rewrites a raw flow before graph construction.
//
// The default normalizer, Flatten, expands group nodes into the nodes and
// edges of the sub-flow they carry, so the graph only ever sees plain nodes.
package normalize

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/flowgraph/internal/edge"
	"github.com/specialistvlad/flowgraph/internal/payload"
)

// ErrInvalidGroup is returned when an edge touching a group node cannot be
// rewired onto the group's inner nodes.
var ErrInvalidGroup = errors.New("invalid group node")

// Func turns a raw flow into the flow the graph is built from.
type Func func(payload.Flow) (payload.Flow, error)

// Identity returns the flow unchanged.
func Identity(flow payload.Flow) (payload.Flow, error) { return flow, nil }

// Flatten expands every group node, at any depth. An edge into a group is
// rewired to the inner field named by the target field's proxy. An edge out
// of a group is rewired to the unique sink of the group's sub-flow. Flows
// without groups are returned unchanged.
func Flatten(flow payload.Flow) (payload.Flow, error) {
	groups := map[string]payload.Flow{}
	specs := map[string]payload.NodeSpec{}
	var out payload.Flow

	var walk func(f payload.Flow)
	walk = func(f payload.Flow) {
		for _, n := range f.Nodes {
			if n.Data.Node.Flow == nil {
				out.Nodes = append(out.Nodes, n)
				continue
			}
			groups[n.ID] = n.Data.Node.Flow.Data
			specs[n.ID] = n.Data.Node
			walk(n.Data.Node.Flow.Data)
		}
		out.Edges = append(out.Edges, f.Edges...)
	}
	walk(flow)

	if len(groups) == 0 {
		return flow, nil
	}

	for i := range out.Edges {
		e := &out.Edges[i]
		for hops := 0; ; hops++ {
			if hops > len(groups) {
				return payload.Flow{}, fmt.Errorf("%w: edge %s -> %s: groups forward in a loop", ErrInvalidGroup, e.Source, e.Target)
			}
			_, srcGroup := groups[e.Source]
			_, dstGroup := groups[e.Target]
			if !srcGroup && !dstGroup {
				break
			}
			if dstGroup {
				if err := rewireTarget(e, specs[e.Target]); err != nil {
					return payload.Flow{}, err
				}
			}
			if srcGroup {
				if err := rewireSource(e, groups[e.Source]); err != nil {
					return payload.Flow{}, err
				}
			}
		}
	}
	return out, nil
}

func rewireTarget(e *payload.Edge, group payload.NodeSpec) error {
	h, ok, err := edge.ParseTargetHandle(e.TargetHandle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGroup, err)
	}
	if !ok {
		return fmt.Errorf("%w: edge %s -> %s has no target field", ErrInvalidGroup, e.Source, e.Target)
	}
	f, ok := group.Template.Field(h.Field)
	if !ok {
		return fmt.Errorf("%w: group %s has no field %q", ErrInvalidGroup, e.Target, h.Field)
	}
	proxy, ok := f.Proxy()
	if !ok {
		return fmt.Errorf("%w: field %q of group %s has no proxy", ErrInvalidGroup, h.Field, e.Target)
	}

	e.Target = proxy.ID
	e.TargetHandle = strings.Join([]string{h.FieldType, proxy.Field, proxy.ID}, "|")
	return nil
}

func rewireSource(e *payload.Edge, inner payload.Flow) error {
	sink, ok := uniqueSink(inner)
	if !ok {
		return fmt.Errorf("%w: group %s has no unique output node", ErrInvalidGroup, e.Source)
	}

	e.Source = sink
	h, ok, err := edge.ParseSourceHandle(e.SourceHandle)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInvalidGroup, err)
	}
	if ok {
		e.SourceHandle = strings.Join(append([]string{h.Type, sink}, h.OutputTypes...), "|")
	}
	return nil
}

func uniqueSink(f payload.Flow) (string, bool) {
	sources := make(map[string]struct{}, len(f.Edges))
	for _, e := range f.Edges {
		sources[e.Source] = struct{}{}
	}
	sink := ""
	for _, n := range f.Nodes {
		if _, ok := sources[n.ID]; ok {
			continue
		}
		if sink != "" {
			return "", false
		}
		sink = n.ID
	}
	return sink, sink != ""
}
