// Package registry maps node type names onto the behaviors that implement
// them.
//
// Behavior modules compiled into the binary register their factories here
// under the type names, base types and identifier prefixes that flow payloads
// use. Graph construction asks the registry to resolve every node to exactly
// one factory; anything it does not recognize becomes a generic vertex.
package registry
