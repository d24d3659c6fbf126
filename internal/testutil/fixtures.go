package testutil

import (
	"github.com/specialistvlad/flowgraph/internal/payload"
)

// Node returns a plain node record of the given declared type.
func Node(id, nodeType string) payload.Node {
	return payload.Node{
		ID:   id,
		Type: "genericNode",
		Data: payload.NodeData{
			ID:   id,
			Type: nodeType,
			Node: payload.NodeSpec{Template: payload.Template{payload.TypeKey: nodeType}},
		},
	}
}

// Link returns an edge record without handles.
func Link(source, target string) payload.Edge {
	return payload.Edge{ID: source + "->" + target, Source: source, Target: target}
}

// Chain returns a flow of generic nodes linked in the given order.
func Chain(ids ...string) payload.Flow {
	flow := payload.Flow{Nodes: []payload.Node{}, Edges: []payload.Edge{}}
	for i, id := range ids {
		flow.Nodes = append(flow.Nodes, Node(id, "Generic"))
		if i > 0 {
			flow.Edges = append(flow.Edges, Link(ids[i-1], id))
		}
	}
	return flow
}

// ChainJSON is Chain("A", "B", "C") as a raw payload.
const ChainJSON = `{
  "nodes": [
    {"id": "A", "data": {"type": "Generic", "node": {"template": {"_type": "Generic"}}}},
    {"id": "B", "data": {"type": "Generic", "node": {"template": {"_type": "Generic"}}}},
    {"id": "C", "data": {"type": "Generic", "node": {"template": {"_type": "Generic"}}}}
  ],
  "edges": [
    {"source": "A", "target": "B"},
    {"source": "B", "target": "C"}
  ]
}`

// AgentFlowJSON is a realistic flow: a fake LLM shared by two toolkits that
// both feed an agent-like generic node. It is wrapped in a "data" key.
const AgentFlowJSON = `{
  "data": {
    "nodes": [
      {"id": "FakeListLLM-1", "type": "genericNode", "data": {"type": "FakeListLLM", "node": {
        "base_classes": ["BaseLanguageModel", "BaseLLM"],
        "template": {"_type": "FakeListLLM",
          "responses": {"type": "str", "list": true, "value": ["ok"]}}}}},
      {"id": "JsonSpec-2", "type": "genericNode", "data": {"type": "JsonSpec", "node": {
        "base_classes": ["Tool"],
        "template": {"_type": "JsonSpec",
          "path": {"type": "file", "required": true, "value": "spec.json"}}}}},
      {"id": "JsonToolkit-3", "type": "genericNode", "data": {"type": "JsonToolkit", "node": {
        "base_classes": ["BaseToolkit"],
        "template": {"_type": "JsonToolkit",
          "spec": {"type": "JsonSpec", "required": true}}}}},
      {"id": "VectorStoreToolkit-4", "type": "genericNode", "data": {"type": "VectorStoreToolkit", "node": {
        "base_classes": ["BaseToolkit"],
        "template": {"_type": "VectorStoreToolkit"}}}},
      {"id": "Agent-5", "type": "genericNode", "data": {"type": "AgentExecutor", "node": {
        "base_classes": ["Chain"],
        "template": {"_type": "AgentExecutor",
          "toolkits": {"type": "BaseToolkit", "list": true}}}}}
    ],
    "edges": [
      {"source": "FakeListLLM-1", "target": "VectorStoreToolkit-4",
       "sourceHandle": "FakeListLLM|FakeListLLM-1|BaseLanguageModel|BaseLLM",
       "targetHandle": "BaseLanguageModel|llm|VectorStoreToolkit-4"},
      {"source": "JsonSpec-2", "target": "JsonToolkit-3",
       "sourceHandle": "JsonSpec|JsonSpec-2|Tool",
       "targetHandle": "JsonSpec|spec|JsonToolkit-3"},
      {"source": "JsonToolkit-3", "target": "Agent-5",
       "sourceHandle": "JsonToolkit|JsonToolkit-3|BaseToolkit",
       "targetHandle": "BaseToolkit|toolkits|Agent-5"},
      {"source": "VectorStoreToolkit-4", "target": "Agent-5",
       "sourceHandle": "VectorStoreToolkit|VectorStoreToolkit-4|BaseToolkit",
       "targetHandle": "BaseToolkit|toolkits|Agent-5"}
    ]
  }
}`
