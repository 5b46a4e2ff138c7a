// Package port describes the connection points of blueprint nodes.
//
// A Port is either a flow port (control transfer: Enter, Exit) or a data port
// (values: Input, Output). Exit and Input ports own their links: an exit
// calls into the enter ports it is linked to, an input reads the output it
// is linked to. Enter and Output ports are link targets.
//
// Data ports carry a cty.Type tag used for compatibility checks. cty.NilType
// means untyped and cty.DynamicPseudoType accepts any value.
package port

import (
	"fmt"

	"github.com/zclconf/go-cty/cty"
)

// Kind is the direction and role of a port.
type Kind uint8

const (
	// Enter is a flow port entered by others.
	Enter Kind = iota + 1
	// Exit is a flow port that calls into linked enter ports.
	Exit
	// Input is a data port reading a value from a linked output.
	Input
	// Output is a data port read by linked inputs.
	Output
)

func (k Kind) String() string {
	switch k {
	case Enter:
		return "enter"
	case Exit:
		return "exit"
	case Input:
		return "input"
	case Output:
		return "output"
	default:
		return fmt.Sprintf("kind(%d)", uint8(k))
	}
}

// Port is an immutable descriptor of one node endpoint.
type Port struct {
	Name     string
	Kind     Kind
	Multiple bool
	// Type is the declared value type of a data port; cty.NilType when untyped.
	Type cty.Type
	// Exposed promotes the port to the parent graph's binding node when the
	// owning node lives inside a subgraph.
	Exposed bool
	// Default is returned by reads of an unlinked input; cty.NilVal when unset.
	Default cty.Value
}

// NewEnter declares a flow port entered by upstream exits.
func NewEnter(name string) Port {
	return Port{Name: name, Kind: Enter, Multiple: true, Type: cty.NilType}
}

// NewExit declares a flow port calling into downstream enters.
func NewExit(name string) Port {
	return Port{Name: name, Kind: Exit, Multiple: true, Type: cty.NilType}
}

// NewInput declares a single-valued data input.
func NewInput(name string, ty cty.Type) Port {
	return Port{Name: name, Kind: Input, Type: ty}
}

// NewInputArray declares a data input that aggregates every linked output.
func NewInputArray(name string, ty cty.Type) Port {
	return Port{Name: name, Kind: Input, Multiple: true, Type: ty}
}

// NewOutput declares a data output.
func NewOutput(name string, ty cty.Type) Port {
	return Port{Name: name, Kind: Output, Multiple: true, Type: ty}
}

// WithExposed returns a copy of p with the exposure flag set.
func (p Port) WithExposed(exposed bool) Port {
	p.Exposed = exposed
	return p
}

// WithDefault returns a copy of p with a default value for unlinked reads.
func (p Port) WithDefault(v cty.Value) Port {
	p.Default = v
	return p
}

// Single returns a copy of p restricted to one link.
func (p Port) Single() Port {
	p.Multiple = false
	return p
}

// IsFlow reports whether p is an enter or exit port.
func (p Port) IsFlow() bool {
	return p.Kind == Enter || p.Kind == Exit
}

// IsData reports whether p is an input or output port.
func (p Port) IsData() bool {
	return p.Kind == Input || p.Kind == Output
}

// IsInput reports whether p is a data input.
func (p Port) IsInput() bool {
	return p.Kind == Input
}

// IsOutput reports whether p is a data output.
func (p Port) IsOutput() bool {
	return p.Kind == Output
}

// IsOwner reports whether links are stored from this port's perspective.
func (p Port) IsOwner() bool {
	return p.Kind == Exit || p.Kind == Input
}

// IsTyped reports whether p declares a value type.
func (p Port) IsTyped() bool {
	return p.Type != cty.NilType
}

// HasSameSignature reports whether two ports are interchangeable for the
// links attached to them.
func (p Port) HasSameSignature(other Port) bool {
	return p.Name == other.Name &&
		p.Kind == other.Kind &&
		p.Multiple == other.Multiple &&
		typesEqual(p.Type, other.Type)
}

func (p Port) String() string {
	if p.IsTyped() {
		return fmt.Sprintf("%s %s(%s)", p.Kind, p.Name, p.Type.FriendlyName())
	}
	return fmt.Sprintf("%s %s", p.Kind, p.Name)
}

func typesEqual(a, b cty.Type) bool {
	if a == cty.NilType || b == cty.NilType {
		return a == cty.NilType && b == cty.NilType
	}
	return a.Equals(b)
}
