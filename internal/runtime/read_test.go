package runtime

import (
	"testing"

	"github.com/specialistvlad/blueprintgo/internal/port"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestRead(t *testing.T) {
	f := newFixture(t)
	r := add(t, f, inert{},
		port.NewInput("text", cty.String),
		port.NewInput("num", cty.Number),
		port.NewInput("seeded", cty.Number),
		port.NewInput("defaulted", cty.Bool).WithDefault(cty.True),
		port.NewInput("plain", cty.String),
		port.NewInput("bad", cty.Number),
		port.NewInput("any", cty.DynamicPseudoType),
		port.NewOutput("out", cty.Number),
	)
	num := add(t, f, constant{v: cty.NumberIntVal(2)}, port.NewOutput("value", cty.Number))
	str := add(t, f, stringer{constant{v: cty.NumberIntVal(7)}}, port.NewOutput("value", cty.Number))
	word := add(t, f, constant{v: cty.StringVal("word")}, port.NewOutput("value", cty.String))
	silent := add(t, f, inert{}, port.NewOutput("value", cty.Number))

	require.True(t, f.g.AddLink(r.At(0), num.At(0)))
	require.True(t, f.g.AddLink(r.At(1), str.At(0)))
	require.True(t, f.g.AddLink(r.At(5), word.At(0)))
	require.True(t, f.g.AddLink(r.At(6), word.At(0)))
	require.True(t, f.g.AddLink(r.At(4), silent.At(0)))
	f.g.SetPortValue(r.At(2), cty.StringVal("12"))

	def := cty.StringVal("def")
	testCases := []struct {
		name string
		port int
		def  cty.Value
		want cty.Value
	}{
		{"number converted to string input", 0, def, cty.StringVal("2")},
		{"stringer read as number", 1, def, cty.NumberIntVal(7)},
		{"seeded value converted", 2, def, cty.NumberIntVal(12)},
		{"port default", 3, def, cty.True},
		{"no capability falls back", 4, def, def},
		{"unconvertible falls back", 5, def, def},
		{"dynamic input takes any value", 6, def, cty.StringVal("word")},
		{"output port is not readable", 7, def, def},
		{"unknown port", 42, def, def},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			got := f.g.Read(r, tc.port, tc.def)
			assert.True(t, tc.want.RawEquals(got), "want %#v, got %#v", tc.want, got)
		})
	}

	assert.Contains(t, f.log.String(), "Node does not produce values.")
	assert.Contains(t, f.log.String(), "Read value cannot be converted.")
	assert.Contains(t, f.log.String(), "Read of a port that is not an input.")
}

func TestRead_PrefersStringerForStringInputs(t *testing.T) {
	f := newFixture(t)
	r := add(t, f, inert{}, port.NewInput("text", cty.String))
	s := add(t, f, stringer{constant{v: cty.NumberIntVal(7)}}, port.NewOutput("value", cty.Number))
	require.True(t, f.g.AddLink(r.At(0), s.At(0)))

	got := f.g.Read(r, 0, cty.StringVal("def"))
	assert.Equal(t, "as-string", got.AsString())
}

func TestReadArray(t *testing.T) {
	f := newFixture(t)
	r := add(t, f, inert{},
		port.NewInputArray("parts", cty.String),
		port.NewInputArray("seeded", cty.Number),
		port.NewInputArray("empty", cty.String),
	)
	one := add(t, f, constant{v: cty.StringVal("a")}, port.NewOutput("value", cty.String))
	arr := add(t, f, many{vs: []cty.Value{cty.NumberIntVal(1), cty.True}}, port.NewOutput("values", cty.DynamicPseudoType))
	two := add(t, f, constant{v: cty.NumberIntVal(2)}, port.NewOutput("value", cty.Number))

	require.True(t, f.g.AddLink(r.At(0), one.At(0)))
	require.True(t, f.g.AddLink(r.At(0), arr.At(0)))
	require.True(t, f.g.AddLink(r.At(0), two.At(0)))
	f.g.SetPortValue(r.At(1), cty.TupleVal([]cty.Value{cty.NumberIntVal(3), cty.StringVal("4")}))

	got := f.g.ReadArray(r, 0)
	want := []cty.Value{cty.StringVal("a"), cty.StringVal("1"), cty.StringVal("true"), cty.StringVal("2")}
	require.Len(t, got, len(want))
	for i := range want {
		assert.True(t, want[i].RawEquals(got[i]), "element %d: %#v", i, got[i])
	}

	seeded := f.g.ReadArray(r, 1)
	require.Len(t, seeded, 2)
	assert.True(t, seeded[1].RawEquals(cty.NumberIntVal(4)))

	assert.Empty(t, f.g.ReadArray(r, 2))
}
