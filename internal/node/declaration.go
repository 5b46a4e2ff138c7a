package node

import (
	"github.com/specialistvlad/blueprintgo/internal/port"
)

// Declaration collects the ports a Declarer registers, in index order.
type Declaration struct {
	ports []port.Port
}

// Add appends p and returns its index.
func (d *Declaration) Add(p port.Port) int {
	d.ports = append(d.ports, p)
	return len(d.ports) - 1
}

// Ports returns the declared ports.
func (d *Declaration) Ports() []port.Port {
	return d.ports
}

// Len is the number of declared ports.
func (d *Declaration) Len() int {
	return len(d.ports)
}

// Declare runs CreatePorts on record if it implements Declarer.
func Declare(record any) []port.Port {
	var d Declaration
	if decl, ok := record.(Declarer); ok {
		decl.CreatePorts(&d)
	}
	return d.Ports()
}
