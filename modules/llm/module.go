// Package llm provides the language model node types. Every one of them
// builds into a langchaingo llms.Model.
package llm

import (
	"context"
	"fmt"
	"os"

	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
)

// Environment variables consulted when a node carries no API key.
const (
	EnvOpenAIKey    = "OPENAI_API_KEY"
	EnvAnthropicKey = "ANTHROPIC_API_KEY"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the handler with the engine.
func (m *Module) Register(r *registry.Registry) {
	r.Register("ChatOpenAI", behavior(buildOpenAI))
	r.Register("OpenAI", behavior(buildOpenAI))
	r.Register("ChatAnthropic", behavior(buildAnthropic))
	r.Register("FakeListLLM", behavior(buildFake))

	// Unknown providers that declare a language model base type are treated
	// as OpenAI-compatible endpoints.
	r.Register("BaseLanguageModel", behavior(buildOpenAI))
	r.Register("BaseLLM", behavior(buildOpenAI))
	r.Register("BaseChatModel", behavior(buildOpenAI))
}

type buildFunc func(ctx context.Context, v *vertex.Vertex, p params) (llms.Model, error)

func behavior(fn buildFunc) vertex.Factory {
	return func() vertex.Behavior {
		return vertex.Func{K: vertex.KindLLM, Fn: func(ctx context.Context, v *vertex.Vertex, raw map[string]any) (any, error) {
			p := params(raw)
			model, err := fn(ctx, v, p)
			if err != nil {
				return nil, err
			}
			return withDefaults(model, p)
		}}
	}
}

func buildOpenAI(_ context.Context, _ *vertex.Vertex, p params) (llms.Model, error) {
	opts := []openai.Option{openai.WithToken(p.stringOr("openai_api_key", os.Getenv(EnvOpenAIKey)))}
	if model := p.stringOr("model_name", ""); model != "" {
		opts = append(opts, openai.WithModel(model))
	}
	if base := p.stringOr("openai_api_base", ""); base != "" {
		opts = append(opts, openai.WithBaseURL(base))
	}
	model, err := openai.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("openai: %w", err)
	}
	return model, nil
}

func buildAnthropic(_ context.Context, _ *vertex.Vertex, p params) (llms.Model, error) {
	opts := []anthropic.Option{anthropic.WithToken(p.stringOr("anthropic_api_key", os.Getenv(EnvAnthropicKey)))}
	if model := p.stringOr("model", p.stringOr("model_name", "")); model != "" {
		opts = append(opts, anthropic.WithModel(model))
	}
	if base := p.stringOr("anthropic_api_url", ""); base != "" {
		opts = append(opts, anthropic.WithBaseURL(base))
	}
	model, err := anthropic.New(opts...)
	if err != nil {
		return nil, fmt.Errorf("anthropic: %w", err)
	}
	return model, nil
}

func buildFake(_ context.Context, v *vertex.Vertex, p params) (llms.Model, error) {
	responses, err := p.strings("responses")
	if err != nil {
		return nil, err
	}
	if len(responses) == 0 {
		return nil, fmt.Errorf("%s needs at least one response", v.ID())
	}
	return NewFakeList(responses...), nil
}

// withDefaults wraps a model so that every call carries the temperature and
// token limit configured on the node.
func withDefaults(model llms.Model, p params) (llms.Model, error) {
	var opts []llms.CallOption
	if t, ok, err := p.float("temperature"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, llms.WithTemperature(t))
	}
	if n, ok, err := p.float("max_tokens"); err != nil {
		return nil, err
	} else if ok {
		opts = append(opts, llms.WithMaxTokens(int(n)))
	}
	if len(opts) == 0 {
		return model, nil
	}
	return &Configured{Model: model, Defaults: opts}, nil
}
