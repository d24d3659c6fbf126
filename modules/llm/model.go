package llm

import (
	"context"
	"errors"
	"sync"

	"github.com/tmc/langchaingo/llms"
)

// Configured is a model whose calls carry default options. Options given at
// call time are applied after the defaults and so take precedence.
type Configured struct {
	llms.Model
	Defaults []llms.CallOption
}

func (c *Configured) merge(options []llms.CallOption) []llms.CallOption {
	return append(append([]llms.CallOption{}, c.Defaults...), options...)
}

// GenerateContent implements llms.Model.
func (c *Configured) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	return c.Model.GenerateContent(ctx, messages, c.merge(options)...)
}

// Call implements llms.Model.
func (c *Configured) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, c, prompt, options...)
}

// FakeList is a model that answers with a fixed list of responses, in order,
// starting over when the list is exhausted.
type FakeList struct {
	mu        sync.Mutex
	responses []string
	next      int
	prompts   []string
}

// NewFakeList creates a fake model.
func NewFakeList(responses ...string) *FakeList {
	return &FakeList{responses: responses}
}

// GenerateContent implements llms.Model.
func (f *FakeList) GenerateContent(ctx context.Context, messages []llms.MessageContent, _ ...llms.CallOption) (*llms.ContentResponse, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	f.mu.Lock()
	defer f.mu.Unlock()
	if len(f.responses) == 0 {
		return nil, errors.New("fake model has no responses")
	}

	for _, m := range messages {
		for _, part := range m.Parts {
			if t, ok := part.(llms.TextContent); ok {
				f.prompts = append(f.prompts, t.Text)
			}
		}
	}
	resp := f.responses[f.next%len(f.responses)]
	f.next++
	return &llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: resp, StopReason: "stop"}}}, nil
}

// Call implements llms.Model.
func (f *FakeList) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	return llms.GenerateFromSinglePrompt(ctx, f, prompt, options...)
}

// Prompts returns every text prompt the model has received.
func (f *FakeList) Prompts() []string {
	f.mu.Lock()
	defer f.mu.Unlock()
	return append([]string(nil), f.prompts...)
}
