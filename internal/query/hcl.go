package query

import (
	"context"
	"math/big"
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/samber/lo"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/function"
	"github.com/zclconf/go-cty/cty/function/stdlib"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// hclFunctions is the function table available to HCL expressions.
var hclFunctions = map[string]function.Function{
	"abs":       stdlib.AbsoluteFunc,
	"ceil":      stdlib.CeilFunc,
	"coalesce":  stdlib.CoalesceFunc,
	"concat":    stdlib.ConcatFunc,
	"contains":  stdlib.ContainsFunc,
	"floor":     stdlib.FloorFunc,
	"format":    stdlib.FormatFunc,
	"join":      stdlib.JoinFunc,
	"length":    stdlib.LengthFunc,
	"lower":     stdlib.LowerFunc,
	"max":       stdlib.MaxFunc,
	"min":       stdlib.MinFunc,
	"regex":     stdlib.RegexFunc,
	"strlen":    stdlib.StrlenFunc,
	"substr":    stdlib.SubstrFunc,
	"trimspace": stdlib.TrimSpaceFunc,
	"upper":     stdlib.UpperFunc,
}

// unresolvedSummaries are the diagnostics raised when a traversal runs into
// a missing or null attribute.
var unresolvedSummaries = []string{
	"Unsupported attribute",
	"Attempt to get attribute from null value",
	"Unknown variable",
	"Invalid index",
	"Attempt to index null value",
}

// HCL evaluates HCL native-syntax expressions with go-cty.
type HCL struct{}

// NewHCL creates an HCL evaluator.
func NewHCL() *HCL { return &HCL{} }

// Match implements Evaluator.
func (h *HCL) Match(ctx context.Context, src string, node syntax.Node) (bool, error) {
	env := matchEnv(node)
	vars := make(map[string]cty.Value, len(env))
	for k, v := range env {
		vars[k] = toCty(v)
	}

	v, resolved, err := h.eval(ctx, src, vars)
	if err != nil || !resolved {
		return false, err
	}
	return Truthy(fromCty(v)), nil
}

// Index implements Evaluator.
func (h *HCL) Index(ctx context.Context, src string, nodes []syntax.Node) (any, error) {
	vars := map[string]cty.Value{"nodes": toCty(listData(nodes))}
	v, resolved, err := h.eval(ctx, src, vars)
	if err != nil {
		return nil, err
	}
	if !resolved {
		return nil, errs.Newf(errs.ErrQuery, "index expression %q does not resolve against the list", src)
	}
	return fromCty(v), nil
}

// eval parses and evaluates src. resolved is false when evaluation failed
// only because a traversal reached a missing or null attribute.
func (h *HCL) eval(ctx context.Context, src string, vars map[string]cty.Value) (cty.Value, bool, error) {
	expr, diags := hclsyntax.ParseExpression([]byte(src), "query.hcl", hcl.InitialPos)
	if diags.HasErrors() {
		return cty.NilVal, false, errs.Wrapf(errs.ErrQuery, diags, "parse expression %q", src)
	}

	if unknown := lo.Filter(queryCalls(expr), func(name string, _ int) bool {
		_, ok := hclFunctions[name]
		return !ok
	}); len(unknown) > 0 {
		return cty.NilVal, false, errs.Newf(errs.ErrQuery, "expression %q calls unknown functions %v", src, unknown)
	}

	v, diags := expr.Value(&hcl.EvalContext{Variables: vars, Functions: hclFunctions})
	if diags.HasErrors() {
		for _, d := range diags.Errs() {
			if diag, ok := d.(*hcl.Diagnostic); !ok || !slices.Contains(unresolvedSummaries, diag.Summary) {
				return cty.NilVal, false, errs.Wrapf(errs.ErrQuery, diags, "evaluate expression %q", src)
			}
		}
		ctxlog.FromContext(ctx).Debug("Expression did not resolve; treating it as no match.", "expr", src, "reason", diags.Error())
		return cty.NilVal, false, nil
	}
	return v, true, nil
}

// toCty converts a plain data value into a cty value. Lists become tuples so
// that items of different shapes can sit side by side.
func toCty(v any) cty.Value {
	switch v := v.(type) {
	case nil:
		return cty.NullVal(cty.DynamicPseudoType)
	case string:
		return cty.StringVal(v)
	case bool:
		return cty.BoolVal(v)
	case int:
		return cty.NumberIntVal(int64(v))
	case float64:
		return cty.NumberFloatVal(v)
	case []any:
		if len(v) == 0 {
			return cty.EmptyTupleVal
		}
		items := make([]cty.Value, len(v))
		for i, item := range v {
			items[i] = toCty(item)
		}
		return cty.TupleVal(items)
	case map[string]any:
		if len(v) == 0 {
			return cty.EmptyObjectVal
		}
		attrs := make(map[string]cty.Value, len(v))
		for k, item := range v {
			attrs[k] = toCty(item)
		}
		return cty.ObjectVal(attrs)
	}
	return cty.NullVal(cty.DynamicPseudoType)
}

// fromCty converts a primitive cty result back into plain data. Collections
// become []any or map[string]any.
func fromCty(v cty.Value) any {
	if v.IsNull() || !v.IsKnown() {
		return nil
	}
	t := v.Type()
	switch {
	case t == cty.String:
		return v.AsString()
	case t == cty.Bool:
		return v.True()
	case t == cty.Number:
		f, _ := v.AsBigFloat().Float64()
		if v.AsBigFloat().IsInt() {
			if i, acc := v.AsBigFloat().Int64(); acc == big.Exact {
				return int(i)
			}
		}
		return f
	case t.IsTupleType() || t.IsListType() || t.IsSetType():
		out := []any{}
		for it := v.ElementIterator(); it.Next(); {
			_, item := it.Element()
			out = append(out, fromCty(item))
		}
		return out
	case t.IsObjectType() || t.IsMapType():
		out := map[string]any{}
		for it := v.ElementIterator(); it.Next(); {
			k, item := it.Element()
			out[k.AsString()] = fromCty(item)
		}
		return out
	}
	return v.GoString()
}
