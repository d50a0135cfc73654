package query

import (
	"slices"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/samber/lo"
)

// queryCalls lists, sorted and without repeats, the functions a compiled
// identity or condition query calls. Calls nested in arguments, templates,
// for expressions and splats are included.
func queryCalls(expr hclsyntax.Expression) []string {
	seen := map[string]struct{}{}
	hclsyntax.VisitAll(expr, func(n hclsyntax.Node) hcl.Diagnostics {
		if call, ok := n.(*hclsyntax.FunctionCallExpr); ok {
			seen[call.Name] = struct{}{}
		}
		return nil
	})
	names := lo.Keys(seen)
	slices.Sort(names)
	return names
}
