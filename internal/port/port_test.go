package port

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/zclconf/go-cty/cty"
)

func TestDefaults(t *testing.T) {
	assert.True(t, NewEnter("in").Multiple)
	assert.True(t, NewExit("out").Multiple)
	assert.True(t, NewOutput("v", cty.Number).Multiple)
	assert.False(t, NewInput("v", cty.Number).Multiple)
	assert.True(t, NewInputArray("vs", cty.Number).Multiple)
	assert.False(t, NewExit("out").Single().Multiple)

	assert.True(t, NewExit("out").IsOwner())
	assert.True(t, NewInput("v", cty.Number).IsOwner())
	assert.False(t, NewEnter("in").IsOwner())
	assert.False(t, NewOutput("v", cty.Number).IsOwner())
	assert.False(t, NewEnter("in").IsTyped())
}

func TestCompatible(t *testing.T) {
	testCases := []struct {
		name     string
		a, b     Port
		stringer bool
		want     bool
	}{
		{name: "exit to enter", a: NewExit("out"), b: NewEnter("in"), want: true},
		{name: "enter to exit, reversed", a: NewEnter("in"), b: NewExit("out"), want: true},
		{name: "exit to exit", a: NewExit("a"), b: NewExit("b"), want: false},
		{name: "enter to enter", a: NewEnter("a"), b: NewEnter("b"), want: false},
		{name: "flow to data", a: NewExit("out"), b: NewOutput("v", cty.Number), want: false},
		{name: "same typed data", a: NewInput("v", cty.Number), b: NewOutput("v", cty.Number), want: true},
		{name: "mismatched typed data", a: NewInput("v", cty.Number), b: NewOutput("v", cty.Bool), want: false},
		{name: "input to input", a: NewInput("a", cty.Number), b: NewInput("b", cty.Number), want: false},
		{name: "untyped output", a: NewInput("v", cty.Number), b: NewOutput("v", cty.NilType), want: true},
		{name: "dynamic input", a: NewInput("v", cty.DynamicPseudoType), b: NewOutput("v", cty.Bool), want: true},
		{name: "string input from stringer", a: NewInput("s", cty.String), b: NewOutput("v", cty.Number), stringer: true, want: true},
		{name: "string input without stringer", a: NewInput("s", cty.String), b: NewOutput("v", cty.Number), want: false},
		{name: "stringer does not help number input", a: NewInput("n", cty.Number), b: NewOutput("v", cty.Bool), stringer: true, want: false},
		{name: "list types", a: NewInput("l", cty.List(cty.String)), b: NewOutput("l", cty.List(cty.String)), want: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Compatible(tc.a, tc.b, tc.stringer))
		})
	}
}

func TestOwner(t *testing.T) {
	first, ok := Owner(NewExit("out"), NewEnter("in"))
	assert.True(t, ok)
	assert.True(t, first)

	first, ok = Owner(NewOutput("v", cty.Number), NewInput("v", cty.Number))
	assert.True(t, ok)
	assert.False(t, first)

	_, ok = Owner(NewEnter("a"), NewOutput("b", cty.Number))
	assert.False(t, ok)
}

func TestHasSameSignature(t *testing.T) {
	base := NewInput("value", cty.Number)

	assert.True(t, base.HasSameSignature(NewInput("value", cty.Number)))
	assert.True(t, base.HasSameSignature(base.WithExposed(true)), "exposure is not part of the signature")
	assert.False(t, base.HasSameSignature(NewInput("other", cty.Number)))
	assert.False(t, base.HasSameSignature(NewInput("value", cty.String)))
	assert.False(t, base.HasSameSignature(NewInputArray("value", cty.Number)))
	assert.False(t, base.HasSameSignature(NewOutput("value", cty.Number)))
	assert.True(t, NewEnter("in").HasSameSignature(NewEnter("in")))
}

func TestString(t *testing.T) {
	assert.Equal(t, "enter in", NewEnter("in").String())
	assert.Equal(t, "input value(number)", NewInput("value", cty.Number).String())
}
