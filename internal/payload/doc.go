// Package payload defines the raw, format-agnostic flow description consumed
// by the graph engine: an ordered list of node records and an ordered list of
// edge records, optionally wrapped in an outer "data" object.
//
// The types here are plain data. They carry no behavior beyond small accessors
// over the loosely-typed node template, whose schema belongs to the vertex
// behaviors registered in the registry, not to the engine.
package payload
