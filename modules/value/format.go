package value

import (
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

// format renders v as text: primitives directly, collections as JSON.
func format(v cty.Value) string {
	if v == cty.NilVal || v.IsNull() || !v.IsWhollyKnown() {
		return ""
	}
	if s, err := convert.Convert(v, cty.String); err == nil {
		return s.AsString()
	}
	b, err := ctyjson.Marshal(v, v.Type())
	if err != nil {
		return v.GoString()
	}
	return string(b)
}

// coerce converts v to ty when ty is set.
func coerce(v cty.Value, ty cty.Type) (cty.Value, error) {
	if ty == cty.NilType || v == cty.NilVal {
		return v, nil
	}
	return convert.Convert(v, ty)
}
