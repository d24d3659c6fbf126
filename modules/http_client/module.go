// Package http_client provides the requests wrapper node type: a shareable
// HTTP client, with default headers, that tools and chains use to fetch text.
package http_client

import (
	"context"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Module implements the registry.Module interface. It's the main entrypoint
// for the http_client module.
type Module struct{}

// Register registers the wrapper node types with the central registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register("TextRequestsWrapper", func() vertex.Behavior {
		return vertex.Func{K: vertex.KindWrapper, Fn: buildWrapper}
	})
}

func buildWrapper(ctx context.Context, v *vertex.Vertex, params map[string]any) (any, error) {
	timeout, _ := params["timeout"].(string)
	client, err := newClient(timeout)
	if err != nil {
		return nil, err
	}

	headers, err := stringMap(params["headers"])
	if err != nil {
		return nil, err
	}

	ctxlog.FromContext(ctx).Debug("Requests wrapper ready.", "vertex", v.ID(), "timeout", client.Timeout, "headers", len(headers))
	return &Requests{Client: client, Headers: headers}, nil
}
