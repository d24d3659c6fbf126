// Package chain provides chain and memory node types. A chain formats its
// prompt, sends it to its language model and, when it has memory, records
// the exchange.
package chain

import (
	"context"
	"fmt"
	"maps"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/specialistvlad/flowgraph/internal/vertex"
	"github.com/specialistvlad/flowgraph/modules/prompt"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/memory"
	"github.com/tmc/langchaingo/prompts"
	"github.com/tmc/langchaingo/schema"
)

// Keys used by conversation chains.
const (
	InputKey  = "input"
	OutputKey = "response"
)

// ConversationTemplate is the prompt of a conversation chain built without
// one of its own.
const ConversationTemplate = `The following is a friendly conversation between a human and an AI. The AI is talkative and provides lots of specific details from its context. If the AI does not know the answer to a question, it truthfully says it does not know.

Current conversation:
{history}
Human: {input}
AI:`

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the chain and memory node types.
func (m *Module) Register(r *registry.Registry) {
	r.Register("LLMChain", func() vertex.Behavior {
		return vertex.Func{K: vertex.KindChain, Fn: buildLLMChain}
	})
	r.Register("ConversationChain", func() vertex.Behavior {
		return vertex.Func{K: vertex.KindChain, Fn: buildConversation}
	})
	r.Register("ConversationBufferMemory", func() vertex.Behavior {
		return vertex.Func{K: vertex.KindMemory, Fn: buildMemory}
	})
}

// Chain is the built artifact of a chain vertex.
type Chain struct {
	LLM    llms.Model
	Prompt *prompt.Prompt
	Memory schema.Memory
	// OutputKey names the output saved to memory.
	OutputKey string
}

// Run formats the prompt with values and any memory variables, and returns
// the model's completion.
func (c *Chain) Run(ctx context.Context, values map[string]any) (string, error) {
	all := maps.Clone(values)
	if all == nil {
		all = map[string]any{}
	}
	if c.Memory != nil {
		mem, err := c.Memory.LoadMemoryVariables(ctx, values)
		if err != nil {
			return "", fmt.Errorf("loading memory: %w", err)
		}
		maps.Copy(all, mem)
	}

	text, err := c.Prompt.Format(all)
	if err != nil {
		return "", fmt.Errorf("formatting prompt: %w", err)
	}
	ctxlog.FromContext(ctx).Debug("Running chain.", "prompt_length", len(text))

	out, err := llms.GenerateFromSinglePrompt(ctx, c.LLM, text)
	if err != nil {
		return "", err
	}

	if c.Memory != nil {
		if err := c.Memory.SaveContext(ctx, values, map[string]any{c.OutputKey: out}); err != nil {
			return "", fmt.Errorf("saving memory: %w", err)
		}
	}
	return out, nil
}

func buildLLMChain(_ context.Context, v *vertex.Vertex, params map[string]any) (any, error) {
	model, err := languageModel(v, params)
	if err != nil {
		return nil, err
	}
	p, ok := params["prompt"].(*prompt.Prompt)
	if !ok {
		return nil, fmt.Errorf("%w: chain %s needs a prompt (got %T)", vertex.ErrMissingParam, v.ID(), params["prompt"])
	}
	c := &Chain{LLM: model, Prompt: p, OutputKey: "text"}
	if mem, ok := params["memory"].(schema.Memory); ok {
		c.Memory = mem
	}
	return c, nil
}

func buildConversation(_ context.Context, v *vertex.Vertex, params map[string]any) (any, error) {
	model, err := languageModel(v, params)
	if err != nil {
		return nil, err
	}
	p, ok := params["prompt"].(*prompt.Prompt)
	if !ok {
		p = &prompt.Prompt{Template: prompts.PromptTemplate{
			Template:       ConversationTemplate,
			TemplateFormat: prompts.TemplateFormatFString,
			InputVariables: []string{"history", InputKey},
		}}
	}
	mem, ok := params["memory"].(schema.Memory)
	if !ok {
		mem = memory.NewConversationBuffer()
	}
	return &Chain{LLM: model, Prompt: p, Memory: mem, OutputKey: OutputKey}, nil
}

func buildMemory(_ context.Context, _ *vertex.Vertex, _ map[string]any) (any, error) {
	return memory.NewConversationBuffer(), nil
}

func languageModel(v *vertex.Vertex, params map[string]any) (llms.Model, error) {
	model, ok := params["llm"].(llms.Model)
	if !ok {
		return nil, fmt.Errorf("%w: chain %s has no language model (got %T)", vertex.ErrMissingParam, v.ID(), params["llm"])
	}
	return model, nil
}
