// Package edge implements the directed, contract-checked connection between
// two vertices of a flow graph.
//
// An Edge refers to its endpoints by vertex identifier; the owning graph
// resolves identifiers to vertices. The optional source and target handles
// describe which output of the source feeds which input field of the target,
// and are checked against each other when the edge is validated.
package edge

import (
	"errors"
	"fmt"
	"strings"

	"github.com/specialistvlad/flowgraph/internal/payload"
)

// ErrInvalidEdge is returned for malformed handles or for handles whose types
// do not satisfy each other.
var ErrInvalidEdge = errors.New("invalid edge")

const handleSep = "|"

// SourceHandle describes the output side of a connection:
// "Type|sourceID|OutputType1|OutputType2...".
type SourceHandle struct {
	Type        string
	ID          string
	OutputTypes []string
}

// TargetHandle describes the input side of a connection:
// "FieldType|field|targetID".
type TargetHandle struct {
	FieldType string
	Field     string
	ID        string
}

// ParseSourceHandle parses a source handle. An empty string yields ok=false.
func ParseSourceHandle(s string) (h SourceHandle, ok bool, err error) {
	if s == "" {
		return SourceHandle{}, false, nil
	}
	parts := strings.Split(s, handleSep)
	if len(parts) < 2 || parts[0] == "" {
		return SourceHandle{}, false, fmt.Errorf("%w: malformed source handle %q", ErrInvalidEdge, s)
	}
	return SourceHandle{Type: parts[0], ID: parts[1], OutputTypes: parts[2:]}, true, nil
}

// ParseTargetHandle parses a target handle. An empty string yields ok=false.
func ParseTargetHandle(s string) (h TargetHandle, ok bool, err error) {
	if s == "" {
		return TargetHandle{}, false, nil
	}
	parts := strings.Split(s, handleSep)
	if len(parts) != 3 || parts[1] == "" {
		return TargetHandle{}, false, fmt.Errorf("%w: malformed target handle %q", ErrInvalidEdge, s)
	}
	return TargetHandle{FieldType: parts[0], Field: parts[1], ID: parts[2]}, true, nil
}

// Edge is a directed link from Source to Target.
type Edge struct {
	raw payload.Edge

	source    SourceHandle
	hasSource bool
	target    TargetHandle
	hasTarget bool

	validated   bool
	valid       bool
	matchedType string
}

// New creates an edge from a raw record, parsing and validating its handles.
func New(raw payload.Edge) (*Edge, error) {
	e := &Edge{raw: raw}

	var err error
	if e.source, e.hasSource, err = ParseSourceHandle(raw.SourceHandle); err != nil {
		return nil, fmt.Errorf("edge %s: %w", e, err)
	}
	if e.target, e.hasTarget, err = ParseTargetHandle(raw.TargetHandle); err != nil {
		return nil, fmt.Errorf("edge %s: %w", e, err)
	}
	if err := e.Validate(); err != nil {
		return nil, err
	}
	return e, nil
}

// Source returns the source vertex identifier.
func (e *Edge) Source() string { return e.raw.Source }

// Target returns the target vertex identifier.
func (e *Edge) Target() string { return e.raw.Target }

// Raw returns the record the edge was created from.
func (e *Edge) Raw() payload.Edge { return e.raw }

// SourceHandle returns the parsed source handle and whether one was given.
func (e *Edge) SourceHandle() (SourceHandle, bool) { return e.source, e.hasSource }

// TargetHandle returns the parsed target handle and whether one was given.
func (e *Edge) TargetHandle() (TargetHandle, bool) { return e.target, e.hasTarget }

// TargetField is the input field of the target this edge feeds, or "" when
// the edge carries no target handle.
func (e *Edge) TargetField() string {
	if !e.hasTarget {
		return ""
	}
	return e.target.Field
}

// Valid reports whether the last validation succeeded.
func (e *Edge) Valid() bool { return e.validated && e.valid }

// MatchedType is the source output type that satisfied the target field, or
// "" when the edge carries no type contract.
func (e *Edge) MatchedType() string { return e.matchedType }

// Reset clears everything derived by Validate.
func (e *Edge) Reset() {
	e.validated = false
	e.valid = false
	e.matchedType = ""
}

// Validate checks the handles against the endpoints and against each other.
// Validation is deterministic, so Reset followed by Validate restores the
// state of the first successful validation.
func (e *Edge) Validate() error {
	e.Reset()

	if e.hasSource && e.source.ID != "" && e.source.ID != e.raw.Source {
		return fmt.Errorf("%w: %s: source handle names %q", ErrInvalidEdge, e, e.source.ID)
	}
	if e.hasTarget && e.target.ID != "" && e.target.ID != e.raw.Target {
		return fmt.Errorf("%w: %s: target handle names %q", ErrInvalidEdge, e, e.target.ID)
	}

	e.validated = true
	if !e.hasSource || !e.hasTarget || e.target.FieldType == "" {
		e.valid = true
		return nil
	}

	candidates := append([]string{e.source.Type}, e.source.OutputTypes...)
	for _, t := range candidates {
		if t == e.target.FieldType {
			e.valid = true
			e.matchedType = t
			return nil
		}
	}
	return fmt.Errorf("%w: %s: none of %v satisfies %s field %q",
		ErrInvalidEdge, e, candidates, e.target.FieldType, e.target.Field)
}

// String renders the edge as "source --> target".
func (e *Edge) String() string {
	return e.raw.Source + " --> " + e.raw.Target
}
