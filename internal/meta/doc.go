// Package meta implements the authoring graph ("Graph Meta"): the mutable
// node/port/link model an editor or a loader edits before compilation.
//
// A Graph owns one node storage per node type (allocated lazily, source
// indices starting at 1), a port store and a link index. Every mutation keeps
// the three consistent: removing a node removes its links in both directions,
// its ports, its subgraph binding and its seeded values.
//
// Links are always stored from the owning side (exit and input ports).
// TryCreateLink accepts the endpoints in either order and normalises them.
//
// A node can be bound to another Graph through a Resolver. Ports marked
// Exposed on the bound graph's nodes are promoted into the binding node's
// port list after its own declared ports, which lets a parent graph link to
// them as if they belonged to the binding node. The compiler rewrites such
// links to the inner endpoint.
//
// A Graph is not safe for concurrent use; callers serialise edits.
package meta
