package executor

import (
	"context"

	"github.com/samber/lo"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// step applies a single instruction: resolve the owner, build the payload,
// then run the procedure registered for (kind, field, type).
func (e *Executor) step(ctx context.Context, root syntax.Node, in instruction.Instruction) error {
	if err := in.Validate(); err != nil {
		return err
	}

	owner, err := e.registry.Resolve(root, in.Path)
	if err != nil {
		return err
	}

	var value syntax.Node
	if in.Type.HasDefinition() {
		if value, err = e.registry.Build(in.Definition); err != nil {
			return err
		}
	}

	mutate, err := e.registry.Mutator(owner.Kind(), in.Field, in.Type)
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Debug("Mutating node.", "kind", owner.Kind(), "field", in.Field, "type", in.Type.String())
	return mutate(owner, lo.FromPtr(in.Index), value)
}
