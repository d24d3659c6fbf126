package payload

import "sort"

// Flow is the pair of ordered node and edge records describing a computation.
type Flow struct {
	Nodes []Node `json:"nodes"`
	Edges []Edge `json:"edges"`
}

// NodeIDs returns the identifiers of all nodes in input order. Records with an
// empty id are skipped.
func (f Flow) NodeIDs() []string {
	ids := make([]string, 0, len(f.Nodes))
	for _, n := range f.Nodes {
		if n.ID != "" {
			ids = append(ids, n.ID)
		}
	}
	return ids
}

// Node is a single raw node record.
type Node struct {
	ID string `json:"id"`
	// Type is the editor-level node kind, e.g. "genericNode" or "groupNode".
	// It does not take part in behavior resolution.
	Type     string    `json:"type,omitempty"`
	Position *Position `json:"position,omitempty"`
	Data     NodeData  `json:"data"`
}

// Position is the editor canvas position, carried through untouched.
type Position struct {
	X float64 `json:"x"`
	Y float64 `json:"y"`
}

// NodeData holds the declared type of a node and its template.
type NodeData struct {
	ID   string   `json:"id,omitempty"`
	Type string   `json:"type"`
	Node NodeSpec `json:"node"`
}

// NodeSpec is the configuration/type descriptor of a node.
type NodeSpec struct {
	Template    Template `json:"template"`
	BaseClasses []string `json:"base_classes,omitempty"`
	DisplayName string   `json:"display_name,omitempty"`
	Description string   `json:"description,omitempty"`
	// Flow is set on group nodes only: the nested sub-flow the group stands for.
	Flow *SubFlow `json:"flow,omitempty"`
}

// SubFlow is a nested flow carried by a group node.
type SubFlow struct {
	Name string `json:"name,omitempty"`
	Data Flow   `json:"data"`
}

// Edge is a single raw connection record.
type Edge struct {
	ID           string         `json:"id,omitempty"`
	Source       string         `json:"source"`
	Target       string         `json:"target"`
	SourceHandle string         `json:"sourceHandle,omitempty"`
	TargetHandle string         `json:"targetHandle,omitempty"`
	Data         map[string]any `json:"data,omitempty"`
}

// Template is the parameter template of a node. The "_type" key holds the
// declared base type; every other key names a Field.
type Template map[string]any

// TypeKey is the template key holding the declared base type.
const TypeKey = "_type"

// BaseType returns the declared base type, or "" when absent.
func (t Template) BaseType() string {
	s, _ := t[TypeKey].(string)
	return s
}

// FieldNames returns the names of all fields in sorted order.
func (t Template) FieldNames() []string {
	names := make([]string, 0, len(t))
	for k, v := range t {
		if k == TypeKey {
			continue
		}
		if _, ok := v.(map[string]any); ok {
			names = append(names, k)
		}
	}
	sort.Strings(names)
	return names
}

// Field returns the named field.
func (t Template) Field(name string) (Field, bool) {
	if name == TypeKey {
		return nil, false
	}
	m, ok := t[name].(map[string]any)
	return Field(m), ok
}

// Field describes one template parameter.
type Field map[string]any

// Type returns the declared field type, e.g. "str" or "BaseLanguageModel".
func (f Field) Type() string {
	s, _ := f["type"].(string)
	return s
}

// Value returns the configured value. Nil values and empty strings count as
// unset.
func (f Field) Value() (any, bool) {
	v, ok := f["value"]
	if !ok || v == nil {
		return nil, false
	}
	if s, isStr := v.(string); isStr && s == "" {
		return nil, false
	}
	return v, true
}

// Required reports whether the field must be set or connected.
func (f Field) Required() bool {
	b, _ := f["required"].(bool)
	return b
}

// List reports whether the field accepts several connections.
func (f Field) List() bool {
	b, _ := f["list"].(bool)
	return b
}

// Proxy identifies the inner node field a group node field forwards to.
type Proxy struct {
	ID    string `json:"id"`
	Field string `json:"field"`
}

// Proxy returns the forwarding target of a group node field.
func (f Field) Proxy() (Proxy, bool) {
	m, ok := f["proxy"].(map[string]any)
	if !ok {
		return Proxy{}, false
	}
	id, _ := m["id"].(string)
	field, _ := m["field"].(string)
	if id == "" || field == "" {
		return Proxy{}, false
	}
	return Proxy{ID: id, Field: field}, true
}
