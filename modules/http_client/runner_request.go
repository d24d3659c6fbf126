package http_client

import (
	"context"
	"fmt"
	"io"
	"net/http"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
)

// Requests is the built artifact of a requests wrapper vertex.
type Requests struct {
	Client  *http.Client
	Headers map[string]string
}

// Response is the text result of a request.
type Response struct {
	StatusCode int
	Body       string
}

// Get fetches url and returns the response body as text.
func (r *Requests) Get(ctx context.Context, url string) (*Response, error) {
	return r.Do(ctx, http.MethodGet, url, nil)
}

// Do sends a request with the wrapper's headers.
func (r *Requests) Do(ctx context.Context, method, url string, body io.Reader) (*Response, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Making HTTP request", "method", method, "url", url)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	for k, v := range r.Headers {
		req.Header.Set(k, v)
	}

	resp, err := r.Client.Do(req)
	if err != nil {
		return nil, fmt.Errorf("failed to execute request: %w", err)
	}
	defer resp.Body.Close()

	logger.Debug("Received HTTP response", "status", resp.Status)

	bodyBytes, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response body: %w", err)
	}
	return &Response{StatusCode: resp.StatusCode, Body: string(bodyBytes)}, nil
}

// Close releases idle connections.
func (r *Requests) Close() {
	r.Client.CloseIdleConnections()
}
