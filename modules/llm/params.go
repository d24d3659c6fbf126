package llm

import (
	"fmt"
	"strconv"
)

// params reads loosely typed template values. Numbers may arrive as float64
// from JSON and HCL, as int from YAML, or as strings typed into an editor.
type params map[string]any

func (p params) stringOr(key, fallback string) string {
	if s, ok := p[key].(string); ok && s != "" {
		return s
	}
	return fallback
}

func (p params) float(key string) (float64, bool, error) {
	switch v := p[key].(type) {
	case nil:
		return 0, false, nil
	case float64:
		return v, true, nil
	case int:
		return float64(v), true, nil
	case string:
		f, err := strconv.ParseFloat(v, 64)
		if err != nil {
			return 0, false, fmt.Errorf("parameter %q: %w", key, err)
		}
		return f, true, nil
	default:
		return 0, false, fmt.Errorf("parameter %q: unexpected %T", key, v)
	}
}

func (p params) strings(key string) ([]string, error) {
	switch v := p[key].(type) {
	case nil:
		return nil, nil
	case string:
		return []string{v}, nil
	case []string:
		return v, nil
	case []any:
		out := make([]string, 0, len(v))
		for _, item := range v {
			s, ok := item.(string)
			if !ok {
				return nil, fmt.Errorf("parameter %q: unexpected element %T", key, item)
			}
			out = append(out, s)
		}
		return out, nil
	default:
		return nil, fmt.Errorf("parameter %q: unexpected %T", key, v)
	}
}
