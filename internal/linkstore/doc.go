// Package linkstore implements the link index: a bidirectional adjacency
// store for blueprint links.
//
// # Layout
//
// Every link is stored twice, once in the From chain of its owning endpoint
// and once in the To chain of its remote endpoint, so both "links leaving X"
// and "links arriving at X" are found with a single keyed lookup. Chains are
// keyed by the same source → node → (port, direction) path as port storage;
// removing a node or port cascades through everything nested beneath it.
//
// Chain entries live in a nodestore arena and carry an explicit next pointer.
// Callers iterate with TryGetLinksFrom / TryGetLinksTo followed by
// TryGetNextLink, and resolve each handle with GetLink.
//
// # Ordering
//
// Chains preserve insertion order: a new link is appended at the tail, so
// iterating TryGetLinksFrom yields targets in the order they were linked.
// SortLinksFrom reorders a From chain with a stable, caller-supplied
// comparison when a deterministic evaluation order other than insertion
// order is needed.
//
// # Change notification
//
// RemovePort and RemoveNode invoke every subscribed listener synchronously,
// once per affected (node, port) pair per call, in the order the pairs were
// first touched.
package linkstore
