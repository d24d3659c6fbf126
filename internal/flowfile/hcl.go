package flowfile

import (
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/gohcl"
	"github.com/hashicorp/hcl/v2/hclparse"
	"github.com/specialistvlad/flowgraph/internal/payload"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/gocty"
)

type hclCodec struct{}

func (hclCodec) Format() Format { return FormatHCL }

// fileRoot is the top level of an HCL flow file.
type fileRoot struct {
	Nodes  []*nodeBlock `hcl:"node,block"`
	Edges  []*edgeBlock `hcl:"edge,block"`
	Remain hcl.Body     `hcl:",remain"`
}

type nodeBlock struct {
	ID          string    `hcl:"id,label"`
	Type        string    `hcl:"type"`
	BaseType    string    `hcl:"base_type,optional"`
	BaseClasses []string  `hcl:"base_classes,optional"`
	DisplayName string    `hcl:"display_name,optional"`
	Description string    `hcl:"description,optional"`
	Template    cty.Value `hcl:"template,optional"`
}

type edgeBlock struct {
	Source       string `hcl:"source"`
	Target       string `hcl:"target"`
	SourceHandle string `hcl:"source_handle,optional"`
	TargetHandle string `hcl:"target_handle,optional"`
}

func (hclCodec) Decode(filename string, src []byte) (payload.Flow, error) {
	parser := hclparse.NewParser()
	file, diags := parser.ParseHCL(src, filename)
	if diags.HasErrors() {
		return payload.Flow{}, fmt.Errorf("failed to parse HCL file %s: %w", filename, diags)
	}

	var root fileRoot
	if diags := gohcl.DecodeBody(file.Body, nil, &root); diags.HasErrors() {
		return payload.Flow{}, fmt.Errorf("failed to decode HCL file %s: %w", filename, diags)
	}

	flow := payload.Flow{
		Nodes: make([]payload.Node, 0, len(root.Nodes)),
		Edges: make([]payload.Edge, 0, len(root.Edges)),
	}
	for _, n := range root.Nodes {
		node, err := n.translate()
		if err != nil {
			return payload.Flow{}, fmt.Errorf("node %q in %s: %w", n.ID, filename, err)
		}
		flow.Nodes = append(flow.Nodes, node)
	}
	for _, e := range root.Edges {
		flow.Edges = append(flow.Edges, payload.Edge{
			Source:       e.Source,
			Target:       e.Target,
			SourceHandle: e.SourceHandle,
			TargetHandle: e.TargetHandle,
		})
	}
	return flow, nil
}

func (n *nodeBlock) translate() (payload.Node, error) {
	tmpl := payload.Template{}
	if !n.Template.IsNull() {
		native, err := ctyToNative(n.Template)
		if err != nil {
			return payload.Node{}, fmt.Errorf("template: %w", err)
		}
		m, ok := native.(map[string]any)
		if !ok {
			return payload.Node{}, fmt.Errorf("template must be an object, got %s", n.Template.Type().FriendlyName())
		}
		tmpl = m
	}

	baseType := n.BaseType
	if baseType == "" {
		baseType = n.Type
	}
	tmpl[payload.TypeKey] = baseType

	return payload.Node{
		ID:   n.ID,
		Type: "genericNode",
		Data: payload.NodeData{
			ID:   n.ID,
			Type: n.Type,
			Node: payload.NodeSpec{
				Template:    tmpl,
				BaseClasses: n.BaseClasses,
				DisplayName: n.DisplayName,
				Description: n.Description,
			},
		},
	}, nil
}

// ctyToNative recursively converts a cty.Value to its most natural Go
// counterpart: strings, float64, bool, []any and map[string]any.
func ctyToNative(v cty.Value) (any, error) {
	if v.IsNull() || !v.IsKnown() {
		return nil, nil
	}

	ty := v.Type()

	switch {
	case ty == cty.String:
		return v.AsString(), nil

	case ty == cty.Number:
		var f float64
		if err := gocty.FromCtyValue(v, &f); err != nil {
			return nil, fmt.Errorf("could not convert number to float64: %w", err)
		}
		return f, nil

	case ty == cty.Bool:
		return v.True(), nil

	case ty.IsListType() || ty.IsTupleType() || ty.IsSetType():
		slice := make([]any, 0)
		it := v.ElementIterator()
		for it.Next() {
			_, val := it.Element()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, err
			}
			slice = append(slice, nativeVal)
		}
		return slice, nil

	case ty.IsObjectType() || ty.IsMapType():
		goMap := make(map[string]any)
		it := v.ElementIterator()
		for it.Next() {
			key, val := it.Element()
			keyStr := key.AsString()
			nativeVal, err := ctyToNative(val)
			if err != nil {
				return nil, fmt.Errorf("in attribute '%s': %w", keyStr, err)
			}
			goMap[keyStr] = nativeVal
		}
		return goMap, nil

	default:
		return nil, fmt.Errorf("unsupported value type %s", ty.FriendlyName())
	}
}
