// Package filetool provides node types that wrap a file on disk. They are
// registered as file tools, which the registry resolves before any other
// node type.
package filetool

import (
	"context"
	"fmt"
	"os"
	"sort"
	"strings"

	"github.com/goccy/go-json"
	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// DefaultMaxValueLength bounds the length of values returned by JSONSpec.
const DefaultMaxValueLength = 200

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the file tools.
func (m *Module) Register(r *registry.Registry) {
	r.RegisterFileTool("JsonSpec", func() vertex.Behavior {
		return vertex.Func{K: vertex.KindFileTool, Fn: buildJSONSpec}
	})
}

// JSONSpec is a decoded JSON document that tools can explore key by key.
type JSONSpec struct {
	Path           string
	Data           map[string]any
	MaxValueLength int
}

func buildJSONSpec(ctx context.Context, v *vertex.Vertex, params map[string]any) (any, error) {
	path, _ := params["path"].(string)
	if path == "" {
		return nil, fmt.Errorf("%w: %s needs a file path", vertex.ErrMissingParam, v.ID())
	}

	raw, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	var data map[string]any
	if err := json.Unmarshal(raw, &data); err != nil {
		return nil, fmt.Errorf("file %s is not a JSON object: %w", path, err)
	}

	maxLen := DefaultMaxValueLength
	switch n := params["max_value_length"].(type) {
	case float64:
		maxLen = int(n)
	case int:
		maxLen = n
	}

	ctxlog.FromContext(ctx).Debug("Loaded JSON spec.", "vertex", v.ID(), "path", path, "keys", len(data))
	return &JSONSpec{Path: path, Data: data, MaxValueLength: maxLen}, nil
}

// Keys lists the keys of the object found at the given path, sorted.
func (s *JSONSpec) Keys(path ...string) ([]string, error) {
	val, err := s.lookup(path)
	if err != nil {
		return nil, err
	}
	obj, ok := val.(map[string]any)
	if !ok {
		return nil, fmt.Errorf("value at %s is not an object", strings.Join(path, "."))
	}
	keys := make([]string, 0, len(obj))
	for k := range obj {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys, nil
}

// Value returns the JSON encoding of the value at the given path, cut to
// MaxValueLength characters.
func (s *JSONSpec) Value(path ...string) (string, error) {
	val, err := s.lookup(path)
	if err != nil {
		return "", err
	}
	raw, err := json.Marshal(val)
	if err != nil {
		return "", err
	}
	out := string(raw)
	if s.MaxValueLength > 0 && len(out) > s.MaxValueLength {
		out = out[:s.MaxValueLength] + "..."
	}
	return out, nil
}

func (s *JSONSpec) lookup(path []string) (any, error) {
	var cur any = s.Data
	for i, key := range path {
		obj, ok := cur.(map[string]any)
		if !ok {
			return nil, fmt.Errorf("value at %s is not an object", strings.Join(path[:i], "."))
		}
		cur, ok = obj[key]
		if !ok {
			return nil, fmt.Errorf("key %q not found at %s", key, strings.Join(path[:i+1], "."))
		}
	}
	return cur, nil
}
