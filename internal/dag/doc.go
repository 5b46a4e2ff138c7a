// Package dag provides a small directed graph over string ids with cycle
// detection and a deterministic topological order.
//
// It is used wherever the application needs dependency ordering: the builder
// orders authored graphs so that every subgraph is built before the graphs
// binding it, and the compiler checks compiled flow links for cycles.
package dag
