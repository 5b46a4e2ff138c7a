package linkstore

import (
	"slices"

	"github.com/specialistvlad/blueprintgo/internal/forest"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/nodestore"
)

// Direction selects which chain of an endpoint is addressed.
type Direction uint8

const (
	// From chains hold links owned by the endpoint.
	From Direction = iota
	// To chains hold links terminating at the endpoint.
	To
)

// Handle points at one chain entry. The zero Handle means "no link".
type Handle int32

// Edge is one link seen from its owning endpoint.
type Edge struct {
	From nodeid.Endpoint
	To   nodeid.Endpoint
}

// PortChangedFunc is notified when links of (id, port) are removed by a
// cascading RemovePort or RemoveNode.
type PortChangedFunc func(id nodeid.Address, port int)

type entry struct {
	target nodeid.Endpoint
	next   Handle
}

type chain struct {
	head, tail Handle
	n          int
}

type listener struct {
	id int
	fn PortChangedFunc
}

// Index is the link index of one graph. It is not safe for concurrent use.
type Index struct {
	chains      *forest.Forest[int32, int32, int, *chain]
	entries     *nodestore.Store[entry]
	links       int
	linkedPorts int

	listeners    []listener
	nextListener int
}

// New creates an empty link index.
func New() *Index {
	return &Index{
		chains:  forest.New[int32, int32, int, *chain](),
		entries: nodestore.New[entry]("link"),
	}
}

func chainKey(port int, dir Direction) int {
	return port<<1 | int(dir)
}

func splitKey(key int) (int, Direction) {
	return key >> 1, Direction(key & 1)
}

func (x *Index) chain(id nodeid.Address, port int, dir Direction) *chain {
	c, _ := x.chains.Get(id.Source, id.Node, chainKey(port, dir))
	return c
}

func (x *Index) entry(h Handle) *entry {
	e, err := x.entries.GetNode(int32(h))
	if err != nil {
		return nil
	}
	return e
}

// Count is the number of links in the index.
func (x *Index) Count() int {
	return x.links
}

// LinkedPorts is the number of owning endpoints with at least one link.
func (x *Index) LinkedPorts() int {
	return x.linkedPorts
}

// HasLink reports whether the link (id, port) -> (toID, toPort) exists.
func (x *Index) HasLink(id nodeid.Address, port int, toID nodeid.Address, toPort int) bool {
	return x.find(x.chain(id, port, From), toID.At(toPort)) != 0
}

// AddLink inserts the link in the From chain of (id, port) and the To chain
// of (toID, toPort). It reports false, changing nothing, if the link already
// exists.
func (x *Index) AddLink(id nodeid.Address, port int, toID nodeid.Address, toPort int) bool {
	from := id.At(port)
	to := toID.At(toPort)

	fromChain := x.chain(id, port, From)
	if x.find(fromChain, to) != 0 {
		return false
	}
	if fromChain == nil {
		fromChain = &chain{}
		x.chains.Set(id.Source, id.Node, chainKey(port, From), fromChain)
		x.linkedPorts++
	}
	x.push(fromChain, to)

	toChain := x.chain(toID, toPort, To)
	if toChain == nil {
		toChain = &chain{}
		x.chains.Set(toID.Source, toID.Node, chainKey(toPort, To), toChain)
	}
	x.push(toChain, from)

	x.links++
	return true
}

func (x *Index) push(c *chain, target nodeid.Endpoint) {
	h := Handle(x.entries.AddNode())
	x.entry(h).target = target
	if c.tail != 0 {
		x.entry(c.tail).next = h
	} else {
		c.head = h
	}
	c.tail = h
	c.n++
}

func (x *Index) find(c *chain, target nodeid.Endpoint) Handle {
	if c == nil {
		return 0
	}
	for h := c.head; h != 0; h = x.entry(h).next {
		if x.entry(h).target == target {
			return h
		}
	}
	return 0
}

// unlink removes the entry pointing at target from the chain at
// (owner, dir) and prunes the chain when it becomes empty.
func (x *Index) unlink(owner nodeid.Endpoint, dir Direction, target nodeid.Endpoint) bool {
	c := x.chain(owner.Node, owner.Port, dir)
	if c == nil {
		return false
	}

	var prev Handle
	for h := c.head; h != 0; {
		e := x.entry(h)
		if e.target != target {
			prev, h = h, e.next
			continue
		}
		if prev == 0 {
			c.head = e.next
		} else {
			x.entry(prev).next = e.next
		}
		if c.tail == h {
			c.tail = prev
		}
		c.n--
		_ = x.entries.RemoveNode(int32(h))
		if c.n == 0 {
			x.chains.Delete(owner.Node.Source, owner.Node.Node, chainKey(owner.Port, dir))
		}
		return true
	}
	return false
}

// RemoveLink removes the link from both directions.
func (x *Index) RemoveLink(id nodeid.Address, port int, toID nodeid.Address, toPort int) bool {
	from := id.At(port)
	to := toID.At(toPort)

	if !x.unlink(from, From, to) {
		return false
	}
	x.unlink(to, To, from)
	x.links--
	if x.chain(id, port, From) == nil {
		x.linkedPorts--
	}
	return true
}

// TryGetLinksFrom returns the first link owned by (id, port).
func (x *Index) TryGetLinksFrom(id nodeid.Address, port int) (Handle, bool) {
	c := x.chain(id, port, From)
	if c == nil {
		return 0, false
	}
	return c.head, true
}

// TryGetLinksTo returns the first link terminating at (id, port).
func (x *Index) TryGetLinksTo(id nodeid.Address, port int) (Handle, bool) {
	c := x.chain(id, port, To)
	if c == nil {
		return 0, false
	}
	return c.head, true
}

// TryGetNextLink advances along a chain.
func (x *Index) TryGetNextLink(h Handle) (Handle, bool) {
	e := x.entry(h)
	if e == nil || e.next == 0 {
		return 0, false
	}
	return e.next, true
}

// GetLink returns the endpoint at the other end of the link behind h: the
// remote endpoint for From chains, the owning endpoint for To chains.
func (x *Index) GetLink(h Handle) (nodeid.Endpoint, bool) {
	e := x.entry(h)
	if e == nil {
		return nodeid.Endpoint{}, false
	}
	return e.target, true
}

func (x *Index) collect(id nodeid.Address, port int, dir Direction) []nodeid.Endpoint {
	c := x.chain(id, port, dir)
	if c == nil {
		return nil
	}
	out := make([]nodeid.Endpoint, 0, c.n)
	for h := c.head; h != 0; h = x.entry(h).next {
		out = append(out, x.entry(h).target)
	}
	return out
}

// LinksFrom returns the remote endpoints of (id, port) in chain order.
func (x *Index) LinksFrom(id nodeid.Address, port int) []nodeid.Endpoint {
	return x.collect(id, port, From)
}

// LinksTo returns the owning endpoints linked to (id, port) in chain order.
func (x *Index) LinksTo(id nodeid.Address, port int) []nodeid.Endpoint {
	return x.collect(id, port, To)
}

// CountFrom is the number of links owned by (id, port).
func (x *Index) CountFrom(id nodeid.Address, port int) int {
	if c := x.chain(id, port, From); c != nil {
		return c.n
	}
	return 0
}

// CountTo is the number of links terminating at (id, port).
func (x *Index) CountTo(id nodeid.Address, port int) int {
	if c := x.chain(id, port, To); c != nil {
		return c.n
	}
	return 0
}

// SortLinksFrom reorders the From chain of (id, port) with a stable sort.
func (x *Index) SortLinksFrom(id nodeid.Address, port int, less func(a, b nodeid.Endpoint) bool) {
	targets := x.collect(id, port, From)
	if len(targets) < 2 {
		return
	}
	slices.SortStableFunc(targets, func(a, b nodeid.Endpoint) int {
		switch {
		case less(a, b):
			return -1
		case less(b, a):
			return 1
		default:
			return 0
		}
	})

	c := x.chain(id, port, From)
	i := 0
	for h := c.head; h != 0; h = x.entry(h).next {
		x.entry(h).target = targets[i]
		i++
	}
}

// Edges returns every link from its owning side, ordered by owning endpoint
// and then chain order.
func (x *Index) Edges() []Edge {
	out := make([]Edge, 0, x.links)
	x.chains.Range(func(source, node int32, key int, c *chain) bool {
		port, dir := splitKey(key)
		if dir != From {
			return true
		}
		from := nodeid.New(source, node).At(port)
		for h := c.head; h != 0; h = x.entry(h).next {
			out = append(out, Edge{From: from, To: x.entry(h).target})
		}
		return true
	})
	return out
}
