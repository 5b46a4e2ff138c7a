// Package forest provides a path-indexed forest: a three-level associative
// store (key1 → key2 → key3 → value) whose deletes cascade.
//
// Port storage and the link index both key their data by the same
// source → node → attribute path, so every lookup is anchored by a single
// unpacked node address. Removing a leaf prunes intermediate maps that became
// empty; removing a branch (key1, key2) or a root (key1) removes everything
// beneath it in one step.
package forest

import (
	"cmp"
	"slices"
)

// Forest is a three-level map with cascading deletes. The zero value is not
// usable; create one with New.
type Forest[K1, K2, K3 cmp.Ordered, V any] struct {
	roots map[K1]map[K2]map[K3]V
	count int
}

// New creates an empty forest.
func New[K1, K2, K3 cmp.Ordered, V any]() *Forest[K1, K2, K3, V] {
	return &Forest[K1, K2, K3, V]{roots: make(map[K1]map[K2]map[K3]V)}
}

// Len is the number of leaves.
func (f *Forest[K1, K2, K3, V]) Len() int {
	return f.count
}

// Get returns the leaf at the given path.
func (f *Forest[K1, K2, K3, V]) Get(k1 K1, k2 K2, k3 K3) (V, bool) {
	v, ok := f.roots[k1][k2][k3]
	return v, ok
}

// Set inserts or overwrites the leaf at the given path.
func (f *Forest[K1, K2, K3, V]) Set(k1 K1, k2 K2, k3 K3, v V) {
	branches, ok := f.roots[k1]
	if !ok {
		branches = make(map[K2]map[K3]V)
		f.roots[k1] = branches
	}
	leaves, ok := branches[k2]
	if !ok {
		leaves = make(map[K3]V)
		branches[k2] = leaves
	}
	if _, exists := leaves[k3]; !exists {
		f.count++
	}
	leaves[k3] = v
}

// Delete removes one leaf and prunes empty parents. It reports whether the
// leaf existed.
func (f *Forest[K1, K2, K3, V]) Delete(k1 K1, k2 K2, k3 K3) bool {
	leaves, ok := f.roots[k1][k2]
	if !ok {
		return false
	}
	if _, exists := leaves[k3]; !exists {
		return false
	}
	delete(leaves, k3)
	f.count--
	if len(leaves) == 0 {
		f.pruneBranch(k1, k2)
	}
	return true
}

// Branch returns the leaves under (k1, k2). The returned map must not be
// mutated by the caller.
func (f *Forest[K1, K2, K3, V]) Branch(k1 K1, k2 K2) map[K3]V {
	return f.roots[k1][k2]
}

// HasBranch reports whether any leaf lives under (k1, k2).
func (f *Forest[K1, K2, K3, V]) HasBranch(k1 K1, k2 K2) bool {
	return len(f.roots[k1][k2]) > 0
}

// DeleteBranch removes every leaf under (k1, k2) and returns them.
func (f *Forest[K1, K2, K3, V]) DeleteBranch(k1 K1, k2 K2) map[K3]V {
	leaves, ok := f.roots[k1][k2]
	if !ok {
		return nil
	}
	f.count -= len(leaves)
	f.pruneBranch(k1, k2)
	return leaves
}

// DeleteRoot removes every branch under k1 and reports the number of leaves removed.
func (f *Forest[K1, K2, K3, V]) DeleteRoot(k1 K1) int {
	branches, ok := f.roots[k1]
	if !ok {
		return 0
	}
	removed := 0
	for _, leaves := range branches {
		removed += len(leaves)
	}
	f.count -= removed
	delete(f.roots, k1)
	return removed
}

func (f *Forest[K1, K2, K3, V]) pruneBranch(k1 K1, k2 K2) {
	branches := f.roots[k1]
	delete(branches, k2)
	if len(branches) == 0 {
		delete(f.roots, k1)
	}
}

// Keys3 returns the leaf keys under (k1, k2) in ascending order.
func (f *Forest[K1, K2, K3, V]) Keys3(k1 K1, k2 K2) []K3 {
	leaves := f.roots[k1][k2]
	keys := make([]K3, 0, len(leaves))
	for k := range leaves {
		keys = append(keys, k)
	}
	slices.Sort(keys)
	return keys
}

// Range visits every leaf in ascending key order until fn returns false.
func (f *Forest[K1, K2, K3, V]) Range(fn func(k1 K1, k2 K2, k3 K3, v V) bool) {
	roots := make([]K1, 0, len(f.roots))
	for k1 := range f.roots {
		roots = append(roots, k1)
	}
	slices.Sort(roots)

	for _, k1 := range roots {
		branches := f.roots[k1]
		keys2 := make([]K2, 0, len(branches))
		for k2 := range branches {
			keys2 = append(keys2, k2)
		}
		slices.Sort(keys2)
		for _, k2 := range keys2 {
			for _, k3 := range f.Keys3(k1, k2) {
				if !fn(k1, k2, k3, branches[k2][k3]) {
					return
				}
			}
		}
	}
}
