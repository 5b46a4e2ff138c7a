package dag

// Graph is a directed graph over string IDs. An edge from A to B records
// that B depends on A. A Graph is not safe for concurrent use; the builder
// and the compiler each own theirs for a single pass.
type Graph struct {
	nodes map[string]*node
}

type node struct {
	id         string
	deps       map[string]*node // predecessors
	dependents map[string]*node // successors
}
