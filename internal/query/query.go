// Package query evaluates the match predicates and index expressions found in
// reconciliation policies.
//
// Expressions never see syntax nodes directly; they run against the plain
// data view produced by syntax.Data, in which every known field of a kind is
// present (absent children are null) and lists are always lists.
package query

import (
	"context"
	"math"

	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Evaluator evaluates expressions of one dialect.
type Evaluator interface {
	// Match reports whether expr holds for node. A traversal that reaches a
	// missing or null attribute is not a match; a malformed expression is an
	// error marked errs.ErrQuery.
	Match(ctx context.Context, expr string, node syntax.Node) (bool, error)
	// Index evaluates expr against the full list of nodes and returns the
	// raw result. Callers check that it is an integer within bounds.
	Index(ctx context.Context, expr string, nodes []syntax.Node) (any, error)
}

// Supported dialects.
const (
	DialectHCL  = "hcl"
	DialectExpr = "expr"
	DialectJQ   = "jq"
)

// Dialects lists the supported dialect names.
var Dialects = []string{DialectHCL, DialectExpr, DialectJQ}

// New returns the evaluator for dialect. The empty string selects HCL.
func New(dialect string) (Evaluator, error) {
	switch dialect {
	case DialectHCL, "":
		return NewHCL(), nil
	case DialectExpr:
		return NewExpr(), nil
	case DialectJQ:
		return NewJQ(), nil
	}
	return nil, errs.Newf(errs.ErrQuery, "unknown query dialect %q, expected one of %v", dialect, Dialects)
}

// Truthy applies the match truthiness rules: null, false, zero, the empty
// string and empty lists are false; everything else is true.
func Truthy(v any) bool {
	switch v := v.(type) {
	case nil:
		return false
	case bool:
		return v
	case int:
		return v != 0
	case int64:
		return v != 0
	case float64:
		return v != 0 && !math.IsNaN(v)
	case string:
		return v != ""
	case []any:
		return len(v) > 0
	}
	return true
}

// AsInt converts an index result to an int when it is an integral number.
func AsInt(v any) (int, bool) {
	switch v := v.(type) {
	case int:
		return v, true
	case int64:
		return int(v), true
	case float64:
		if v == math.Trunc(v) && !math.IsInf(v, 0) && math.Abs(v) <= math.MaxInt32 {
			return int(v), true
		}
	}
	return 0, false
}

// matchEnv returns the variables a predicate sees: the node's fields at top
// level plus the node itself as self.
func matchEnv(node syntax.Node) map[string]any {
	data := syntax.Data(node)
	env := make(map[string]any, len(data)+1)
	for k, v := range data {
		env[k] = v
	}
	env["self"] = data
	return env
}

// listData returns the data view of every node of a list.
func listData(nodes []syntax.Node) []any {
	return syntax.DataList(nodes)
}
