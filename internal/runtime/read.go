package runtime

import (
	"github.com/specialistvlad/blueprintgo/internal/node"
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
)

// Read resolves the data input (id, index).
func (g *Graph) Read(id nodeid.Address, index int, def cty.Value) cty.Value {
	p, ok := g.inputPort(id, index)
	if !ok {
		return def
	}

	h, ok := g.links.TryGetLinksFrom(id, index)
	if !ok {
		return g.unlinked(id, index, p, def)
	}
	src, _ := g.links.GetLink(h)
	v, ok := g.value(src, p.Type)
	if !ok {
		g.logger.Debug("Read falls back to default.", "node", id.String(), "port", p.Name)
		return def
	}
	return v
}

// ReadArray resolves every link of the data input (id, index). Array
// outputs contribute all their values. An unlinked input yields the
// elements of its seeded value or default.
func (g *Graph) ReadArray(id nodeid.Address, index int) []cty.Value {
	p, ok := g.inputPort(id, index)
	if !ok {
		return nil
	}

	h, ok := g.links.TryGetLinksFrom(id, index)
	if !ok {
		v, seeded := g.values[id.At(index)]
		if !seeded {
			v = p.Default
		}
		var out []cty.Value
		for _, e := range elements(v) {
			if cv, ok := g.convert(id.At(index), e, p.Type); ok {
				out = append(out, cv)
			}
		}
		return out
	}

	var out []cty.Value
	for ok {
		src, found := g.links.GetLink(h)
		if found {
			out = append(out, g.collect(src, p.Type)...)
		}
		h, ok = g.links.TryGetNextLink(h)
	}
	return out
}

func (g *Graph) inputPort(id nodeid.Address, index int) (port.Port, bool) {
	p, ok := g.ports.TryGetPort(id, index)
	if !ok {
		g.logger.Warn("Read of unknown port.", "node", id.String(), "port", index)
		return port.Port{}, false
	}
	if !p.IsInput() {
		g.logger.Warn("Read of a port that is not an input.", "node", id.String(), "port", p.String())
		return port.Port{}, false
	}
	return p, true
}

func (g *Graph) unlinked(id nodeid.Address, index int, p port.Port, def cty.Value) cty.Value {
	if v, ok := g.values[id.At(index)]; ok {
		if cv, ok := g.convert(id.At(index), v, p.Type); ok {
			return cv
		}
		return def
	}
	if p.Default != cty.NilVal {
		return p.Default
	}
	g.logger.Debug("Read of unlinked input uses the caller default.", "node", id.String(), "port", p.Name)
	return def
}

// value asks the node behind src for a single value of type want.
func (g *Graph) value(src nodeid.Endpoint, want cty.Type) (cty.Value, bool) {
	record, err := g.Node(src.Node)
	if err != nil {
		g.logger.Warn("Read from missing node.", "node", src.Node.String(), "error", err)
		return cty.NilVal, false
	}

	if want == cty.String {
		if s, ok := record.(node.StringOutputter); ok {
			return cty.StringVal(s.GetPortString(g, src.Node, src.Port)), true
		}
	}
	if out, ok := record.(node.Outputter); ok {
		return g.convert(src, out.GetPortValue(g, src.Node, src.Port), want)
	}
	if out, ok := record.(node.ArrayOutputter); ok {
		values := out.GetPortValues(g, src.Node, src.Port)
		if len(values) == 0 {
			return cty.NilVal, false
		}
		return g.convert(src, values[0], want)
	}

	g.logger.Warn("Node does not produce values.", "node", src.Node.String(), "port", src.Port)
	return cty.NilVal, false
}

// collect asks the node behind src for every value it produces.
func (g *Graph) collect(src nodeid.Endpoint, want cty.Type) []cty.Value {
	record, err := g.Node(src.Node)
	if err != nil {
		g.logger.Warn("Read from missing node.", "node", src.Node.String(), "error", err)
		return nil
	}
	out, ok := record.(node.ArrayOutputter)
	if !ok {
		if v, ok := g.value(src, want); ok {
			return []cty.Value{v}
		}
		return nil
	}

	var values []cty.Value
	for _, v := range out.GetPortValues(g, src.Node, src.Port) {
		if cv, ok := g.convert(src, v, want); ok {
			values = append(values, cv)
		}
	}
	return values
}

func (g *Graph) convert(src nodeid.Endpoint, v cty.Value, want cty.Type) (cty.Value, bool) {
	if v == cty.NilVal {
		return cty.NilVal, false
	}
	if want == cty.NilType || want == cty.DynamicPseudoType || v.Type().Equals(want) {
		return v, true
	}
	cv, err := convert.Convert(v, want)
	if err != nil {
		g.logger.Warn("Read value cannot be converted.",
			"node", src.Node.String(), "port", src.Port,
			"from", v.Type().FriendlyName(), "to", want.FriendlyName(), "error", err)
		return cty.NilVal, false
	}
	return cv, true
}

func elements(v cty.Value) []cty.Value {
	if v == cty.NilVal || v.IsNull() || !v.IsKnown() {
		return nil
	}
	ty := v.Type()
	if ty.IsListType() || ty.IsTupleType() || ty.IsSetType() {
		var out []cty.Value
		for it := v.ElementIterator(); it.Next(); {
			_, e := it.Element()
			out = append(out, e)
		}
		return out
	}
	return []cty.Value{v}
}
