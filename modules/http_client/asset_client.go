package http_client

import (
	"fmt"
	"net/http"
	"time"
)

// DefaultTimeout applies when a wrapper declares no timeout.
const DefaultTimeout = 30 * time.Second

// newClient returns a pooled client. An empty timeout means DefaultTimeout.
func newClient(timeout string) (*http.Client, error) {
	d := DefaultTimeout
	if timeout != "" {
		var err error
		if d, err = time.ParseDuration(timeout); err != nil {
			return nil, fmt.Errorf("invalid timeout %q: %w", timeout, err)
		}
	}

	return &http.Client{
		Timeout: d,
		Transport: &http.Transport{
			MaxIdleConns:        100,
			MaxIdleConnsPerHost: 10,
			IdleConnTimeout:     90 * time.Second,
		},
	}, nil
}

// stringMap reads a header map as decoded from a flow file.
func stringMap(raw any) (map[string]string, error) {
	switch m := raw.(type) {
	case nil:
		return map[string]string{}, nil
	case map[string]string:
		return m, nil
	case map[string]any:
		out := make(map[string]string, len(m))
		for k, v := range m {
			s, ok := v.(string)
			if !ok {
				return nil, fmt.Errorf("header %q: expected a string, got %T", k, v)
			}
			out[k] = s
		}
		return out, nil
	default:
		return nil, fmt.Errorf("headers: unexpected %T", raw)
	}
}
