package query

import (
	"context"

	"github.com/itchyny/gojq"

	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// JQ evaluates jq programs with gojq. The input of a predicate is the node
// itself; the input of an index expression is the list. Only the first
// output of a program is used.
type JQ struct{}

// NewJQ creates a jq evaluator.
func NewJQ() *JQ { return &JQ{} }

// Match implements Evaluator. jq yields null for fields of null, so missing
// attributes never raise here.
func (j *JQ) Match(ctx context.Context, src string, node syntax.Node) (bool, error) {
	out, err := j.run(ctx, src, map[string]any(syntax.Data(node)))
	if err != nil {
		return false, err
	}
	return Truthy(out), nil
}

// Index implements Evaluator.
func (j *JQ) Index(ctx context.Context, src string, nodes []syntax.Node) (any, error) {
	return j.run(ctx, src, listData(nodes))
}

func (j *JQ) run(ctx context.Context, src string, input any) (any, error) {
	q, err := gojq.Parse(src)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrQuery, err, "parse jq program %q", src)
	}
	code, err := gojq.Compile(q)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrQuery, err, "compile jq program %q", src)
	}

	iter := code.RunWithContext(ctx, input)
	v, ok := iter.Next()
	if !ok {
		return nil, nil
	}
	if err, isErr := v.(error); isErr {
		return nil, errs.Wrapf(errs.ErrQuery, err, "run jq program %q", src)
	}
	return v, nil
}
