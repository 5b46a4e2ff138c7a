// Package runtime holds the compiled graph and the engine that executes it.
//
// A Graph is produced by the compiler and is read-only afterwards: its
// node storages hold independent copies of the authored records, its link
// index contains only resolved links, and subgraph instances are already
// flattened into it.
//
// # Lifecycle
//
// Compiled → Initialize (OnInitialize in id order) → running →
// DeInitialize (OnDeInitialize in reverse id order) → discarded.
//
// # Execution
//
// Call is a synchronous depth-first walk: every link of an exit port is
// followed in chain order, and OnEnterPort is invoked on each target that
// implements node.Enterer. Nothing is suspended or queued. Cycles in flow
// links recurse; a call depth limit (MaxCallDepth) stops runaway walks.
//
// Read resolves the first link of a data input. A target implementing
// node.StringOutputter is preferred for string inputs; otherwise
// node.Outputter is asked and its value converted to the input's declared
// type. Unlinked inputs use the seeded value, then the port default, then
// the caller's default. Every unresolvable call or read is logged and
// degrades to a no-op or the default; nothing panics.
package runtime
