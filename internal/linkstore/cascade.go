package linkstore

import "github.com/specialistvlad/blueprintgo/internal/nodeid"

// affected is an insertion-ordered set of endpoints.
type affected struct {
	seen  map[nodeid.Endpoint]struct{}
	order []nodeid.Endpoint
}

func (a *affected) add(e nodeid.Endpoint) {
	if a.seen == nil {
		a.seen = make(map[nodeid.Endpoint]struct{})
	}
	if _, ok := a.seen[e]; ok {
		return
	}
	a.seen[e] = struct{}{}
	a.order = append(a.order, e)
}

// removePort drops every link touching (id, port) in either direction.
func (x *Index) removePort(id nodeid.Address, port int, changed *affected) int {
	self := id.At(port)
	removed := 0

	for _, target := range x.LinksFrom(id, port) {
		if x.RemoveLink(id, port, target.Node, target.Port) {
			changed.add(self)
			changed.add(target)
			removed++
		}
	}
	for _, owner := range x.LinksTo(id, port) {
		if x.RemoveLink(owner.Node, owner.Port, id, port) {
			changed.add(owner)
			changed.add(self)
			removed++
		}
	}
	return removed
}

// RemovePort removes every link attached to (id, port) and notifies
// listeners. It returns the number of links removed.
func (x *Index) RemovePort(id nodeid.Address, port int) int {
	var changed affected
	removed := x.removePort(id, port, &changed)
	x.notify(changed.order)
	return removed
}

// RemoveNode removes every link attached to any port of id and notifies
// listeners. It returns the number of links removed.
func (x *Index) RemoveNode(id nodeid.Address) int {
	var ports []int
	for _, key := range x.chains.Keys3(id.Source, id.Node) {
		port, _ := splitKey(key)
		if len(ports) == 0 || ports[len(ports)-1] != port {
			ports = append(ports, port)
		}
	}

	var changed affected
	removed := 0
	for _, port := range ports {
		removed += x.removePort(id, port, &changed)
	}
	x.notify(changed.order)
	return removed
}

// Subscribe registers fn for port change notifications. The returned
// function unregisters it.
func (x *Index) Subscribe(fn PortChangedFunc) (unsubscribe func()) {
	x.nextListener++
	id := x.nextListener
	x.listeners = append(x.listeners, listener{id: id, fn: fn})
	return func() {
		for i, l := range x.listeners {
			if l.id == id {
				x.listeners = append(x.listeners[:i:i], x.listeners[i+1:]...)
				return
			}
		}
	}
}

func (x *Index) notify(changed []nodeid.Endpoint) {
	if len(changed) == 0 || len(x.listeners) == 0 {
		return
	}
	listeners := append([]listener(nil), x.listeners...)
	for _, e := range changed {
		for _, l := range listeners {
			l.fn(e.Node, e.Port)
		}
	}
}
