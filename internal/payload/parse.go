package payload

import (
	"errors"
	"fmt"
	"sort"

	"github.com/goccy/go-json"
)

// ErrInvalidPayload is returned when a payload lacks the nodes/edges keys.
var ErrInvalidPayload = errors.New("invalid payload")

// Parse decodes a raw JSON payload into a Flow. The payload is either
// {"nodes": [...], "edges": [...]} or the same object wrapped under an outer
// "data" key.
func Parse(raw []byte) (Flow, error) {
	var top map[string]json.RawMessage
	if err := json.Unmarshal(raw, &top); err != nil {
		return Flow{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}

	if inner, ok := top["data"]; ok {
		var unwrapped map[string]json.RawMessage
		if err := json.Unmarshal(inner, &unwrapped); err != nil {
			return Flow{}, fmt.Errorf("%w: 'data' is not an object: %v", ErrInvalidPayload, err)
		}
		top = unwrapped
	}

	rawNodes, hasNodes := top["nodes"]
	rawEdges, hasEdges := top["edges"]
	if !hasNodes || !hasEdges {
		return Flow{}, fmt.Errorf("%w: expected keys 'nodes' and 'edges', found %v", ErrInvalidPayload, sortedKeys(top))
	}

	var flow Flow
	if err := json.Unmarshal(rawNodes, &flow.Nodes); err != nil {
		return Flow{}, fmt.Errorf("%w: decoding nodes: %v", ErrInvalidPayload, err)
	}
	if err := json.Unmarshal(rawEdges, &flow.Edges); err != nil {
		return Flow{}, fmt.Errorf("%w: decoding edges: %v", ErrInvalidPayload, err)
	}
	return flow, nil
}

// FromMap converts an already-decoded generic document (for example one read
// from YAML) into a Flow using the same unwrapping rules as Parse.
func FromMap(doc map[string]any) (Flow, error) {
	raw, err := json.Marshal(doc)
	if err != nil {
		return Flow{}, fmt.Errorf("%w: %v", ErrInvalidPayload, err)
	}
	return Parse(raw)
}

func sortedKeys(m map[string]json.RawMessage) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}
