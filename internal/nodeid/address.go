package nodeid

import "strconv"

// String serializes the Address into its canonical `source:node` form.
func (a Address) String() string {
	return strconv.FormatInt(int64(a.Source), 10) + ":" + strconv.FormatInt(int64(a.Node), 10)
}

// Endpoint addresses one port on one node.
type Endpoint struct {
	Node Address
	Port int
}

// At returns the endpoint for the given port index on this node.
func (a Address) At(port int) Endpoint {
	return Endpoint{Node: a, Port: port}
}

// String serializes the endpoint as `source:node/port`.
func (e Endpoint) String() string {
	return e.Node.String() + "/" + strconv.Itoa(e.Port)
}

// Less orders endpoints by node address, then port index.
func (e Endpoint) Less(other Endpoint) bool {
	if e.Node != other.Node {
		return e.Node.Less(other.Node)
	}
	return e.Port < other.Port
}

// Compare orders endpoints like Less, returning -1, 0 or 1.
func (e Endpoint) Compare(other Endpoint) int {
	switch {
	case e.Less(other):
		return -1
	case other.Less(e):
		return 1
	default:
		return 0
	}
}
