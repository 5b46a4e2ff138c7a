package node

import (
	"github.com/specialistvlad/blueprintgo/internal/nodeid"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

func read[T any](g Graph, id nodeid.Address, port int, def T, fallback cty.Value) T {
	v := g.Read(id, port, fallback)
	if v.IsNull() || !v.IsKnown() {
		return def
	}
	var out T
	if err := gocty.FromCtyValue(v, &out); err != nil {
		g.Logger().Debug("Read value does not fit the requested Go type.", "node", id.String(), "port", port, "error", err)
		return def
	}
	return out
}

// ReadString reads (id, port) as a string.
func ReadString(g Graph, id nodeid.Address, port int, def string) string {
	return read(g, id, port, def, cty.StringVal(def))
}

// ReadNumber reads (id, port) as a float64.
func ReadNumber(g Graph, id nodeid.Address, port int, def float64) float64 {
	return read(g, id, port, def, cty.NumberFloatVal(def))
}

// ReadInt reads (id, port) as an int. Fractional values fall back to def.
func ReadInt(g Graph, id nodeid.Address, port int, def int) int {
	return read(g, id, port, def, cty.NumberIntVal(int64(def)))
}

// ReadBool reads (id, port) as a bool.
func ReadBool(g Graph, id nodeid.Address, port int, def bool) bool {
	return read(g, id, port, def, cty.BoolVal(def))
}

// ReadStrings reads every link of (id, port) as strings, skipping values
// that cannot be converted.
func ReadStrings(g Graph, id nodeid.Address, port int) []string {
	values := g.ReadArray(id, port)
	out := make([]string, 0, len(values))
	for _, v := range values {
		if v.IsNull() || !v.IsKnown() {
			continue
		}
		sv, err := convert.Convert(v, cty.String)
		if err != nil {
			continue
		}
		out = append(out, sv.AsString())
	}
	return out
}
