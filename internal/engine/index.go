package engine

import (
	"github.com/cockroachdb/errors"

	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/query"
)

// index resolves the position of a positional rule.
//
// A literal is passed through unchanged and checked when the instruction is
// applied. An expression is evaluated against the current target list and
// must produce an integer in [0, len] for INSERT or [0, len-1] for REPLACE
// and REMOVE. Without an index the rule defaults to the matched node, which
// is only meaningful when the rule targets the list it matched in.
func (g *generator) index(t target, found int, typ instruction.Type, idx definition.Index) (int, error) {
	if idx.Literal != nil {
		return *idx.Literal, nil
	}
	if idx.Expr == "" {
		if !t.matched {
			return 0, errs.Newf(errs.ErrInvalidRule, "%s rule targeting %q needs an explicit index", typ, t.field)
		}
		return found, nil
	}

	current, err := g.registry.Read(t.owner, t.field)
	if err != nil {
		return 0, err
	}
	if !current.IsList {
		return 0, errs.Newf(errs.ErrInvalidRule, "%s rule targets %q of %s, which is not a list", typ, t.field, t.owner.Kind())
	}

	raw, err := g.eval.Index(g.ctx, idx.Expr, current.Nodes)
	if err != nil {
		return 0, errors.Wrapf(err, "evaluate index %q", idx.Expr)
	}
	bound := len(current.Nodes)
	if typ != instruction.Insert {
		bound--
	}
	n, ok := query.AsInt(raw)
	if !ok || n < 0 || n > bound {
		return 0, errs.NewIndexError(typ.String(), bound, raw)
	}
	g.logger.Debug("Rule index resolved.", "instruction", typ.String(), "expr", idx.Expr, "index", n, "bound", bound)
	return n, nil
}
