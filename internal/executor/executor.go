// Package executor applies generated instructions to a live tree.
//
// Instructions are applied strictly in order. Every path is resolved against
// the tree as it is after the previous instruction, so a list produced by
// the engine must never be reordered or split across goroutines. A failure
// stops the run and leaves the tree partially mutated; callers discard the
// tree and start again from source.
package executor

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Executor applies instructions through the procedures of a registry.
type Executor struct {
	registry *registry.Registry
}

// New creates an executor.
func New(reg *registry.Registry) *Executor {
	return &Executor{registry: reg}
}

// Apply applies instrs to root in order. The context is checked between
// instructions.
func (e *Executor) Apply(ctx context.Context, root syntax.Node, instrs []instruction.Instruction) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Applying instructions.", "count", len(instrs))

	for i, in := range instrs {
		if err := ctx.Err(); err != nil {
			return errors.Wrapf(err, "apply stopped before instruction %d", i)
		}
		stepLogger := logger.With("ordinal", i, "instruction", in.String())
		if err := e.step(ctx, root, in); err != nil {
			stepLogger.Error("Instruction failed.", "error", err)
			return errors.Wrapf(err, "instruction %d (%s)", i, in)
		}
		stepLogger.Debug("Instruction applied.")
	}

	logger.Debug("Finished applying instructions.", "count", len(instrs))
	return nil
}
