// Package compiler turns an authoring graph, and every subgraph bound inside
// it, into a flattened runtime.Graph.
//
// Each node record is cloned into the runtime storage for its type, so a
// running graph never shares mutable state with the authoring graph. Every
// binding of a subgraph compiles that subgraph again with its own id map:
// an asset used twice yields two disjoint sets of runtime nodes whose
// tokens name the binding node as their caller.
//
// Links are translated through the id maps. A link attached to a promoted
// port is rewritten to the inner endpoint of that binding's instance, so no
// trace of the binding remains in the runtime link index.
//
// Compilation never fails on a partially broken graph. Dangling links,
// recursive subgraph references and flow cycles are reported as
// Diagnostics and the rest of the graph is still compiled.
package compiler
