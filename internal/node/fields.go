package node

import (
	"fmt"
	"slices"
	"strings"

	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// Field decodes fields[name] into out. A missing or null field leaves out
// untouched.
func Field[T any](fields map[string]cty.Value, name string, out *T) error {
	v, ok := fields[name]
	if !ok || v.IsNull() {
		return nil
	}
	ty, err := gocty.ImpliedType(*out)
	if err != nil {
		return fmt.Errorf("field '%s': %w", name, err)
	}
	v, err = convert.Convert(v, ty)
	if err != nil {
		return fmt.Errorf("field '%s': %w", name, err)
	}
	if err := gocty.FromCtyValue(v, out); err != nil {
		return fmt.Errorf("field '%s': %w", name, err)
	}
	return nil
}

// KnownFields rejects any field not named in allowed.
func KnownFields(fields map[string]cty.Value, allowed ...string) error {
	var unknown []string
	for name := range fields {
		if !slices.Contains(allowed, name) {
			unknown = append(unknown, name)
		}
	}
	if len(unknown) == 0 {
		return nil
	}
	slices.Sort(unknown)
	return fmt.Errorf("unknown fields: %s", strings.Join(unknown, ", "))
}
