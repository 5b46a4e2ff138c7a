package nodeid

// Address is the structured representation of a unique node identifier:
// which storage, which slot.
type Address struct {
	// Source identifies the node storage, one per concrete node type in a graph.
	Source int32
	// Node is the slot inside that storage.
	Node int32
}

// Zero is the reserved "no id" address.
var Zero = Address{}

// New creates an address from its two indices.
func New(source, node int32) Address {
	return Address{Source: source, Node: node}
}

// IsZero reports whether the address is the reserved "no id" value, or has
// either half unset.
func (a Address) IsZero() bool {
	return a.Source == 0 || a.Node == 0
}

// Pack packs the address into a single 64-bit key, source in the high half.
func (a Address) Pack() uint64 {
	return uint64(uint32(a.Source))<<32 | uint64(uint32(a.Node))
}

// Unpack is the inverse of Address.Pack.
func Unpack(key uint64) Address {
	return Address{Source: int32(uint32(key >> 32)), Node: int32(uint32(key))}
}

// Less orders addresses by source, then node. It is used wherever the graph
// layers need a deterministic iteration order.
func (a Address) Less(other Address) bool {
	if a.Source != other.Source {
		return a.Source < other.Source
	}
	return a.Node < other.Node
}
