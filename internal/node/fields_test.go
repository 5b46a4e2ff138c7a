package node

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/zclconf/go-cty/cty"
)

func TestField(t *testing.T) {
	fields := map[string]cty.Value{
		"name":  cty.StringVal("main"),
		"count": cty.StringVal("3"),
		"empty": cty.NullVal(cty.String),
		"flag":  cty.StringVal("maybe"),
	}

	name := "default"
	require.NoError(t, Field(fields, "name", &name))
	assert.Equal(t, "main", name)

	count := 0
	require.NoError(t, Field(fields, "count", &count), "strings convert to numbers")
	assert.Equal(t, 3, count)

	empty := "kept"
	require.NoError(t, Field(fields, "empty", &empty))
	require.NoError(t, Field(fields, "missing", &empty))
	assert.Equal(t, "kept", empty)

	flag := false
	err := Field(fields, "flag", &flag)
	assert.ErrorContains(t, err, "field 'flag'")
}

func TestKnownFields(t *testing.T) {
	fields := map[string]cty.Value{"a": cty.True, "c": cty.True, "b": cty.True}
	assert.NoError(t, KnownFields(fields, "a", "b", "c"))
	assert.EqualError(t, KnownFields(fields, "a"), "unknown fields: b, c")
	assert.NoError(t, KnownFields(nil))
}
