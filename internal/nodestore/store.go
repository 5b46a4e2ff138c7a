// Package nodestore implements the node storage engine: a dense,
// arena-backed container holding every instance of one node record type.
//
// # Why Node Store Exists
//
// Blueprint graphs hold many small node records of a handful of concrete
// types. Each type gets its own Store, so records of one type sit in one
// contiguous slice and are addressed by small integer ids. Ids stay valid
// across insertions and removals of other records; a removed id's slot goes
// on a free list and is reused by the next AddNode before the slice grows.
//
// # Id Recycling
//
// Reusing slots means a raw id captured before a remove-then-add pair can
// alias an unrelated record. Every slot therefore carries a generation that
// is bumped on removal; a Handle pairs an id with the generation it was
// issued under, and GetByHandle rejects stale handles with ErrStale.
//
// # Lifecycle and Usage
//
//  1. **Authoring:** a graph owns one Store per node type and mutates it as
//     nodes are added and removed.
//  2. **Compilation:** the compiler clones authoring records into fresh
//     runtime stores (AddNodeClone / CloneFrom) so the two never share
//     mutable state.
//  3. **Execution:** the runtime reaches records through Source.Node and
//     dispatches on the capability interfaces they implement.
//
// Stores are not safe for concurrent use; callers serialise access.
package nodestore

import "errors"

var (
	// ErrNotFound is returned when an id was never allocated or has been removed.
	ErrNotFound = errors.New("node not found")
	// ErrStale is returned when a handle's generation no longer matches its slot.
	ErrStale = errors.New("stale node handle")
	// ErrTypeMismatch is returned when cloning between stores of different record types.
	ErrTypeMismatch = errors.New("node storage type mismatch")
)

// Defaulter is implemented by records that need non-zero defaults. It is
// called on every freshly allocated record.
type Defaulter interface {
	OnSetDefaults()
}

// Cloner is implemented by records holding reference fields (slices, maps,
// pointers) so clones never share mutable state with their source.
type Cloner[T any] interface {
	Clone() T
}

// Source is the type-erased view of a Store used by graph layers that hold
// storages of many record types side by side.
type Source interface {
	// Name is the node type name the storage was created for.
	Name() string
	// AddNode allocates a record initialised to its defaults.
	AddNode() int32
	// RemoveNode frees the slot. It fails with ErrNotFound for unknown ids.
	RemoveNode(id int32) error
	// Has reports whether id is live.
	Has(id int32) bool
	// Node returns a pointer to the live record as an any, so callers can
	// type-assert capability interfaces on it.
	Node(id int32) (any, error)
	// IDs returns the live ids in ascending order.
	IDs() []int32
	// Len is the number of live records.
	Len() int
	// CloneFrom allocates a new record that is a deep copy of src's record id.
	CloneFrom(src Source, id int32) (int32, error)
	// NewEmpty creates an empty storage for the same record type.
	NewEmpty() Source
}
