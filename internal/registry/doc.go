// Package registry provides the central "glue" for the node type system.
//
// The Registry maps the type names used in authored graphs (e.g., "print")
// to the Go record types that implement them. Each registered NodeType knows
// how to create an empty nodestore for its record type, which is how the
// authoring graph and the compiler allocate storage without knowing concrete
// types.
//
// During application startup, every module registers its node types and the
// registry is then validated so that malformed port declarations are caught
// before any graph is built.
package registry
