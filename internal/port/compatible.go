package port

import "github.com/zclconf/go-cty/cty"

// Compatible reports whether a link may join ports a and b.
//
// Flow ports join flow ports and data ports join data ports, always with
// opposite ownership roles. Data types must be equal, absent on either side,
// or dynamic. A cty.String input additionally accepts any output whose node
// can be read as a string (remoteStringer), regardless of the declared type.
func Compatible(a, b Port, remoteStringer bool) bool {
	if a.IsFlow() != b.IsFlow() {
		return false
	}
	if a.IsOwner() == b.IsOwner() {
		return false
	}
	if a.IsFlow() {
		return true
	}

	owner, remote := a, b
	if !owner.IsOwner() {
		owner, remote = b, a
	}
	if typeAccepts(owner.Type, remote.Type) {
		return true
	}
	return remoteStringer && owner.Type == cty.String
}

// Owner orders a pair of linkable ports so the owning side comes first. The
// bool is false when neither or both sides own.
func Owner(a, b Port) (ownerFirst bool, ok bool) {
	switch {
	case a.IsOwner() && !b.IsOwner():
		return true, true
	case b.IsOwner() && !a.IsOwner():
		return false, true
	default:
		return false, false
	}
}

func typeAccepts(want, got cty.Type) bool {
	if want == cty.NilType || got == cty.NilType {
		return true
	}
	if want == cty.DynamicPseudoType || got == cty.DynamicPseudoType {
		return true
	}
	return want.Equals(got)
}
