package hclgraph

import (
	"context"
	"fmt"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/ext/typeexpr"
	"github.com/specialistvlad/blueprintgo/internal/config"
	"github.com/specialistvlad/blueprintgo/internal/ctxlog"
	"github.com/zclconf/go-cty/cty"
)

// translateGraph converts a decoded graph block into the agnostic model.
func translateGraph(ctx context.Context, evalCtx *hcl.EvalContext, file string, b *graphBlock) (*config.Graph, error) {
	ctx, logger := ctxlog.With(ctx, "graph", b.Name)
	logger.Debug("Translating HCL graph.", "nodes", len(b.Nodes), "links", len(b.Links))

	g := &config.Graph{Name: b.Name, File: file}
	for _, nb := range b.Nodes {
		if _, dup := g.Node(nb.Name); dup {
			return nil, fmt.Errorf("graph '%s': node '%s' declared twice", b.Name, nb.Name)
		}
		n, err := translateNode(ctx, evalCtx, nb)
		if err != nil {
			return nil, fmt.Errorf("graph '%s': node '%s': %w", b.Name, nb.Name, err)
		}
		g.Nodes = append(g.Nodes, n)
	}

	for i, lb := range b.Links {
		from, err := config.ParseEndpoint(lb.From)
		if err != nil {
			return nil, fmt.Errorf("graph '%s': link %d: %w", b.Name, i, err)
		}
		to, err := config.ParseEndpoint(lb.To)
		if err != nil {
			return nil, fmt.Errorf("graph '%s': link %d: %w", b.Name, i, err)
		}
		g.Links = append(g.Links, &config.Link{From: from, To: to})
	}
	return g, nil
}

func translateNode(ctx context.Context, evalCtx *hcl.EvalContext, b *nodeBlock) (*config.Node, error) {
	fields, err := evalObject(b.Fields, evalCtx, "fields")
	if err != nil {
		return nil, err
	}
	values, err := evalObject(b.Values, evalCtx, "values")
	if err != nil {
		return nil, err
	}

	valueType := cty.NilType
	if isExprDefined(ctx, b.ValueType, "value_type") {
		ty, diags := typeexpr.TypeConstraint(b.ValueType)
		if diags.HasErrors() {
			return nil, fmt.Errorf("invalid value_type: %w", diags)
		}
		valueType = ty
	}

	return &config.Node{
		Name:      b.Name,
		Type:      b.Type,
		Fields:    fields,
		Values:    values,
		Exposed:   b.Exposed,
		Subgraph:  b.Subgraph,
		ValueType: valueType,
	}, nil
}

// evalObject evaluates an object-valued attribute into its attributes.
// A missing attribute yields nil.
func evalObject(expr hcl.Expression, evalCtx *hcl.EvalContext, attrName string) (map[string]cty.Value, error) {
	if expr == nil {
		return nil, nil
	}
	val, diags := expr.Value(evalCtx)
	if diags.HasErrors() {
		return nil, fmt.Errorf("invalid %s: %w", attrName, diags)
	}
	if val.IsNull() {
		return nil, nil
	}
	ty := val.Type()
	if !ty.IsObjectType() && !ty.IsMapType() {
		return nil, fmt.Errorf("%s must be an object, got %s", attrName, ty.FriendlyName())
	}
	if !val.IsWhollyKnown() {
		return nil, fmt.Errorf("%s must be known at load time", attrName)
	}
	return val.AsValueMap(), nil
}
