// Package portstore maps node addresses and port indices to port
// descriptors, keyed by the same source → node → port path as the link index
// so that removing a node drops its whole port list in one step.
package portstore

import (
	"errors"
	"fmt"

	"github.com/specialistvlad/blueprintgo/internal/forest"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
)

// ErrNotFound is returned when no port exists at the requested index.
var ErrNotFound = errors.New("port not found")

// Indexed pairs a port with its index on the owning node.
type Indexed struct {
	Index int
	Port  port.Port
}

// Store holds port descriptors for every node of a graph.
type Store struct {
	ports *forest.Forest[int32, int32, int, port.Port]
}

// New creates an empty port store.
func New() *Store {
	return &Store{ports: forest.New[int32, int32, int, port.Port]()}
}

// AddPort inserts or overwrites the port at (id, index).
func (s *Store) AddPort(id nodeid.Address, index int, p port.Port) {
	s.ports.Set(id.Source, id.Node, index, p)
}

// GetPort returns the port at (id, index) or ErrNotFound.
func (s *Store) GetPort(id nodeid.Address, index int) (port.Port, error) {
	p, ok := s.ports.Get(id.Source, id.Node, index)
	if !ok {
		return port.Port{}, fmt.Errorf("node %s port %d: %w", id, index, ErrNotFound)
	}
	return p, nil
}

// TryGetPort is GetPort without the error.
func (s *Store) TryGetPort(id nodeid.Address, index int) (port.Port, bool) {
	return s.ports.Get(id.Source, id.Node, index)
}

// Ports returns the node's ports ordered by index.
func (s *Store) Ports(id nodeid.Address) []Indexed {
	branch := s.ports.Branch(id.Source, id.Node)
	out := make([]Indexed, 0, len(branch))
	for _, index := range s.ports.Keys3(id.Source, id.Node) {
		out = append(out, Indexed{Index: index, Port: branch[index]})
	}
	return out
}

// Count is the number of ports registered for the node.
func (s *Store) Count(id nodeid.Address) int {
	return len(s.ports.Branch(id.Source, id.Node))
}

// FindPort returns the index of the node's port with the given name.
func (s *Store) FindPort(id nodeid.Address, name string) (int, bool) {
	for _, ip := range s.Ports(id) {
		if ip.Port.Name == name {
			return ip.Index, true
		}
	}
	return 0, false
}

// RemovePort removes one port descriptor.
func (s *Store) RemovePort(id nodeid.Address, index int) bool {
	return s.ports.Delete(id.Source, id.Node, index)
}

// RemoveNode removes every port of the node and returns how many were removed.
func (s *Store) RemoveNode(id nodeid.Address) int {
	return len(s.ports.DeleteBranch(id.Source, id.Node))
}

// Len is the total number of ports across all nodes.
func (s *Store) Len() int {
	return s.ports.Len()
}
