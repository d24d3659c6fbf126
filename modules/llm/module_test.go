package llm

import (
	"context"
	"testing"

	"github.com/specialistvlad/flowgraph/internal/graph"
	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/specialistvlad/flowgraph/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
	"github.com/tmc/langchaingo/llms"
	"github.com/tmc/langchaingo/llms/anthropic"
	"github.com/tmc/langchaingo/llms/openai"
)

type mockModel struct {
	mock.Mock
}

func (m *mockModel) Call(ctx context.Context, prompt string, options ...llms.CallOption) (string, error) {
	args := m.Called(ctx, prompt, options)
	return args.String(0), args.Error(1)
}

func (m *mockModel) GenerateContent(ctx context.Context, messages []llms.MessageContent, options ...llms.CallOption) (*llms.ContentResponse, error) {
	args := m.Called(ctx, messages, options)
	return args.Get(0).(*llms.ContentResponse), args.Error(1)
}

func buildSingle(t *testing.T, id, nodeType string, tmpl payload.Template) (any, error) {
	t.Helper()
	if tmpl == nil {
		tmpl = payload.Template{}
	}
	tmpl[payload.TypeKey] = nodeType
	flow := payload.Flow{Nodes: []payload.Node{{
		ID:   id,
		Data: payload.NodeData{Type: nodeType, Node: payload.NodeSpec{Template: tmpl}},
	}}}
	g, err := graph.New(context.Background(), flow, graph.WithRegistry(registry.New(&Module{})))
	require.NoError(t, err)
	return g.Build(context.Background())
}

func field(value any) map[string]any {
	return map[string]any{"type": "str", "value": value}
}

func TestBuild_Providers(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "")
	t.Setenv(EnvAnthropicKey, "")

	testCases := []struct {
		name      string
		nodeType  string
		tmpl      payload.Template
		check     func(t *testing.T, out any)
		expectErr string
	}{
		{
			name:     "openai with explicit key",
			nodeType: "ChatOpenAI",
			tmpl:     payload.Template{"openai_api_key": field("sk-test"), "model_name": field("gpt-4o-mini")},
			check: func(t *testing.T, out any) {
				assert.IsType(t, &openai.LLM{}, out)
			},
		},
		{
			name:     "openai with defaults is wrapped",
			nodeType: "OpenAI",
			tmpl: payload.Template{
				"openai_api_key": field("sk-test"),
				"temperature":    map[string]any{"type": "float", "value": 0.2},
			},
			check: func(t *testing.T, out any) {
				c, ok := out.(*Configured)
				require.True(t, ok)
				assert.IsType(t, &openai.LLM{}, c.Model)
				assert.Len(t, c.Defaults, 1)
			},
		},
		{
			name:      "openai without key",
			nodeType:  "ChatOpenAI",
			expectErr: "openai",
		},
		{
			name:     "anthropic",
			nodeType: "ChatAnthropic",
			tmpl:     payload.Template{"anthropic_api_key": field("sk-ant-test"), "model": field("claude-3-haiku")},
			check: func(t *testing.T, out any) {
				assert.IsType(t, &anthropic.LLM{}, out)
			},
		},
		{
			name:     "fake list",
			nodeType: "FakeListLLM",
			tmpl:     payload.Template{"responses": map[string]any{"type": "str", "list": true, "value": []any{"a", "b"}}},
			check: func(t *testing.T, out any) {
				assert.IsType(t, &FakeList{}, out)
			},
		},
		{
			name:      "fake list without responses",
			nodeType:  "FakeListLLM",
			expectErr: "needs at least one response",
		},
		{
			name:      "bad temperature",
			nodeType:  "FakeListLLM",
			tmpl:      payload.Template{"responses": field("x"), "temperature": field("hot")},
			expectErr: `parameter "temperature"`,
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := buildSingle(t, "node-1", tc.nodeType, tc.tmpl)
			if tc.expectErr != "" {
				assert.ErrorContains(t, err, tc.expectErr)
				return
			}
			require.NoError(t, err)
			tc.check(t, out)
		})
	}
}

func TestBuild_EnvironmentKey(t *testing.T) {
	t.Setenv(EnvOpenAIKey, "sk-from-env")
	out, err := buildSingle(t, "node-1", "ChatOpenAI", nil)
	require.NoError(t, err)
	assert.IsType(t, &openai.LLM{}, out)
}

func TestBuild_BaseTypeResolvesToLLM(t *testing.T) {
	r := registry.New(&Module{})
	f := r.Resolve("AzureChatOpenAI", "BaseChatModel", "azure-1")
	assert.Equal(t, "llm", string(f().Kind()))
}

func TestConfigured_MergesDefaults(t *testing.T) {
	mm := new(mockModel)
	mm.On("GenerateContent", mock.Anything, mock.Anything, mock.MatchedBy(func(options []llms.CallOption) bool {
		var opts llms.CallOptions
		for _, o := range options {
			o(&opts)
		}
		return opts.Temperature == 0.7 && opts.MaxTokens == 64
	})).Return(&llms.ContentResponse{Choices: []*llms.ContentChoice{{Content: "hi"}}}, nil)

	c := &Configured{Model: mm, Defaults: []llms.CallOption{llms.WithTemperature(0.1), llms.WithMaxTokens(64)}}
	out, err := c.Call(context.Background(), "hello", llms.WithTemperature(0.7))
	require.NoError(t, err)
	assert.Equal(t, "hi", out)
	mm.AssertExpectations(t)
}

func TestFakeList(t *testing.T) {
	f := NewFakeList("one", "two")
	ctx := context.Background()

	for _, expected := range []string{"one", "two", "one"} {
		out, err := f.Call(ctx, "q")
		require.NoError(t, err)
		assert.Equal(t, expected, out)
	}
	assert.Equal(t, []string{"q", "q", "q"}, f.Prompts())

	_, err := NewFakeList().Call(ctx, "q")
	assert.Error(t, err)
}
