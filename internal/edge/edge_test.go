package edge

import (
	"testing"

	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNew_WithoutHandles(t *testing.T) {
	e, err := New(payload.Edge{Source: "A", Target: "B"})
	require.NoError(t, err)

	assert.Equal(t, "A", e.Source())
	assert.Equal(t, "B", e.Target())
	assert.True(t, e.Valid())
	assert.Empty(t, e.MatchedType())
	assert.Empty(t, e.TargetField())
	assert.Equal(t, "A --> B", e.String())
}

func TestNew_Contract(t *testing.T) {
	testCases := []struct {
		name        string
		raw         payload.Edge
		expectErr   string
		matchedType string
		targetField string
	}{
		{
			name: "output type satisfies field",
			raw: payload.Edge{
				Source: "ChatOpenAI-1", Target: "JsonToolkit-2",
				SourceHandle: "ChatOpenAI|ChatOpenAI-1|BaseLanguageModel|BaseLLM",
				TargetHandle: "BaseLLM|llm|JsonToolkit-2",
			},
			matchedType: "BaseLLM",
			targetField: "llm",
		},
		{
			name: "source type itself satisfies field",
			raw: payload.Edge{
				Source: "JsonSpec-1", Target: "JsonToolkit-2",
				SourceHandle: "JsonSpec|JsonSpec-1",
				TargetHandle: "JsonSpec|spec|JsonToolkit-2",
			},
			matchedType: "JsonSpec",
			targetField: "spec",
		},
		{
			name: "target handle only",
			raw: payload.Edge{
				Source: "A", Target: "B",
				TargetHandle: "str|text|B",
			},
			targetField: "text",
		},
		{
			name: "type mismatch",
			raw: payload.Edge{
				Source: "A", Target: "B",
				SourceHandle: "PromptTemplate|A|BasePromptTemplate",
				TargetHandle: "BaseLanguageModel|llm|B",
			},
			expectErr: "none of [PromptTemplate BasePromptTemplate] satisfies BaseLanguageModel field \"llm\"",
		},
		{
			name:      "source handle names another vertex",
			raw:       payload.Edge{Source: "A", Target: "B", SourceHandle: "X|Z|X"},
			expectErr: `source handle names "Z"`,
		},
		{
			name:      "target handle names another vertex",
			raw:       payload.Edge{Source: "A", Target: "B", TargetHandle: "X|f|Z"},
			expectErr: `target handle names "Z"`,
		},
		{
			name:      "malformed source handle",
			raw:       payload.Edge{Source: "A", Target: "B", SourceHandle: "justone"},
			expectErr: "malformed source handle",
		},
		{
			name:      "malformed target handle",
			raw:       payload.Edge{Source: "A", Target: "B", TargetHandle: "a|b"},
			expectErr: "malformed target handle",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			e, err := New(tc.raw)
			if tc.expectErr != "" {
				require.ErrorIs(t, err, ErrInvalidEdge)
				assert.ErrorContains(t, err, tc.expectErr)
				assert.Nil(t, e)
				return
			}
			require.NoError(t, err)
			assert.True(t, e.Valid())
			assert.Equal(t, tc.matchedType, e.MatchedType())
			assert.Equal(t, tc.targetField, e.TargetField())
		})
	}
}

func TestResetAndRevalidate(t *testing.T) {
	e, err := New(payload.Edge{
		Source: "A", Target: "B",
		SourceHandle: "ChatOpenAI|A|BaseLanguageModel",
		TargetHandle: "BaseLanguageModel|llm|B",
	})
	require.NoError(t, err)
	before := *e

	e.Reset()
	assert.False(t, e.Valid())
	assert.Empty(t, e.MatchedType())

	require.NoError(t, e.Validate())
	assert.Equal(t, before, *e)
}

func TestParseSourceHandle(t *testing.T) {
	h, ok, err := ParseSourceHandle("ChatOpenAI|c-1|BaseLanguageModel|BaseLLM")
	require.NoError(t, err)
	require.True(t, ok)
	assert.Equal(t, SourceHandle{Type: "ChatOpenAI", ID: "c-1", OutputTypes: []string{"BaseLanguageModel", "BaseLLM"}}, h)

	_, ok, err = ParseSourceHandle("")
	require.NoError(t, err)
	assert.False(t, ok)
}
