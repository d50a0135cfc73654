package query

import (
	"context"

	"github.com/expr-lang/expr"
	"github.com/expr-lang/expr/vm"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Expr evaluates expr-lang expressions.
type Expr struct{}

// NewExpr creates an expr-lang evaluator.
func NewExpr() *Expr { return &Expr{} }

// Match implements Evaluator. Runtime failures, such as fetching a field of
// a null child, are treated as no match.
func (e *Expr) Match(ctx context.Context, src string, node syntax.Node) (bool, error) {
	env := matchEnv(node)
	program, err := e.compile(src)
	if err != nil {
		return false, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		ctxlog.FromContext(ctx).Debug("Expression did not resolve; treating it as no match.", "expr", src, "reason", err.Error())
		return false, nil
	}
	return Truthy(normalize(out)), nil
}

// Index implements Evaluator.
func (e *Expr) Index(_ context.Context, src string, nodes []syntax.Node) (any, error) {
	env := map[string]any{"nodes": listData(nodes)}
	program, err := e.compile(src)
	if err != nil {
		return nil, err
	}
	out, err := expr.Run(program, env)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrQuery, err, "evaluate expression %q", src)
	}
	return normalize(out), nil
}

// compile checks syntax only; field shapes vary per kind, so identifiers are
// resolved at run time.
func (e *Expr) compile(src string) (*vm.Program, error) {
	program, err := expr.Compile(src, expr.AllowUndefinedVariables())
	if err != nil {
		return nil, errs.Wrapf(errs.ErrQuery, err, "compile expression %q", src)
	}
	return program, nil
}

// normalize maps the numeric types expr-lang produces onto int and float64.
func normalize(v any) any {
	switch v := v.(type) {
	case int8:
		return int(v)
	case int16:
		return int(v)
	case int32:
		return int(v)
	case int64:
		return int(v)
	case uint:
		return int(v)
	case float32:
		return float64(v)
	}
	return v
}
