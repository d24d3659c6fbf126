package vertex

import (
	"context"
)

// Kind is the behavioral category of a vertex.
type Kind string

const (
	KindGeneric        Kind = "generic"
	KindLLM            Kind = "llm"
	KindToolkit        Kind = "toolkit"
	KindFileTool       Kind = "file_tool"
	KindPrompt         Kind = "prompt"
	KindChain          Kind = "chain"
	KindAgent          Kind = "agent"
	KindTool           Kind = "tool"
	KindMemory         Kind = "memory"
	KindWrapper        Kind = "wrapper"
	KindEmbeddings     Kind = "embeddings"
	KindVectorStore    Kind = "vector_store"
	KindDocumentLoader Kind = "document_loader"
	KindTextSplitter   Kind = "text_splitter"
	KindRetriever      Kind = "retriever"
	KindOutputParser   Kind = "output_parser"
)

// Behavior is what a concrete node type contributes to a vertex: its category
// and the function that turns resolved parameters into a built artifact.
type Behavior interface {
	Kind() Kind
	Build(ctx context.Context, v *Vertex, params map[string]any) (any, error)
}

// Factory creates a fresh Behavior for one vertex.
type Factory func() Behavior

// Generic is the behavior of vertices whose type is not registered. Building
// it yields the resolved parameters unchanged.
type Generic struct{}

func (Generic) Kind() Kind { return KindGeneric }

func (Generic) Build(_ context.Context, _ *Vertex, params map[string]any) (any, error) {
	return params, nil
}

// NewGeneric is the Factory for Generic.
func NewGeneric() Behavior { return Generic{} }

// Func adapts a kind and a build function into a Behavior.
type Func struct {
	K  Kind
	Fn func(ctx context.Context, v *Vertex, params map[string]any) (any, error)
}

func (f Func) Kind() Kind { return f.K }

func (f Func) Build(ctx context.Context, v *Vertex, params map[string]any) (any, error) {
	if f.Fn == nil {
		return params, nil
	}
	return f.Fn(ctx, v, params)
}
