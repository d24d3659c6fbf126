package registry

import (
	"fmt"
	"log/slog"
	"sort"
	"strings"

	"github.com/specialistvlad/flowgraph/internal/vertex"
)

// Module is the interface that all behavior modules must implement to be
// registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered vertex factories for a single graph or
// application instance.
type Registry struct {
	factories map[string]vertex.Factory
	fileTools map[string]vertex.Factory
	generic   vertex.Factory
}

// New creates a registry and registers the given modules into it.
func New(modules ...Module) *Registry {
	r := &Registry{
		factories: make(map[string]vertex.Factory),
		fileTools: make(map[string]vertex.Factory),
		generic:   vertex.NewGeneric,
	}
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// Register binds a type name to a factory. The name may be a declared node
// type, a base type or an identifier prefix.
func (r *Registry) Register(name string, f vertex.Factory) {
	if _, exists := r.factories[name]; exists {
		panic(fmt.Sprintf("vertex factory with name '%s' already registered", name))
	}
	slog.Debug("Registering vertex factory.", "name", name)
	r.factories[name] = f
}

// RegisterFileTool adds a node type to the file-tool set.
func (r *Registry) RegisterFileTool(name string, f vertex.Factory) {
	if _, exists := r.fileTools[name]; exists {
		panic(fmt.Sprintf("file tool with name '%s' already registered", name))
	}
	slog.Debug("Registering file tool.", "name", name)
	r.fileTools[name] = f
}

// Resolve selects the factory for a node. The first match wins:
//
//  1. the identifier up to its first "-" names a registered type
//  2. the node type is a file tool
//  3. the node type is registered
//  4. the base type is registered
//  5. the generic factory
func (r *Registry) Resolve(nodeType, baseType, id string) vertex.Factory {
	prefix, _, _ := strings.Cut(id, "-")
	if f, ok := r.factories[prefix]; ok && prefix != "" {
		return f
	}
	if f, ok := r.fileTools[nodeType]; ok {
		return f
	}
	if f, ok := r.factories[nodeType]; ok && nodeType != "" {
		return f
	}
	if f, ok := r.factories[baseType]; ok && baseType != "" {
		return f
	}
	return r.generic
}

// Names lists all registered names, file tools included, in sorted order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.factories)+len(r.fileTools))
	for n := range r.factories {
		names = append(names, n)
	}
	for n := range r.fileTools {
		if _, dup := r.factories[n]; !dup {
			names = append(names, n)
		}
	}
	sort.Strings(names)
	return names
}
