package app

import (
	"context"

	"github.com/cockroachdb/errors"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Plan is the instruction list generated for one definition file.
type Plan struct {
	Definition   string                    `json:"definition"`
	Instructions []instruction.Instruction `json:"instructions"`
}

// Result is the outcome of a reconciliation.
type Result struct {
	Plans []Plan
	// Source is the reconciled document, printed.
	Source string
}

// Changed reports whether any definition produced an instruction.
func (r *Result) Changed() bool {
	for _, p := range r.Plans {
		if len(p.Instructions) > 0 {
			return true
		}
	}
	return false
}

// Plan returns the instructions that Reconcile would apply. Definitions are
// still applied in memory one after another, so every plan is generated
// against the tree its predecessors produce.
func (a *App) Plan(ctx context.Context, sourcePath, definitionPath string) ([]Plan, error) {
	res, err := a.Reconcile(ctx, sourcePath, definitionPath)
	if err != nil {
		return nil, err
	}
	return res.Plans, nil
}

// Reconcile loads the source, and for every definition under definitionPath
// generates and applies instructions in turn. Nothing is written to disk.
func (a *App) Reconcile(ctx context.Context, sourcePath, definitionPath string) (*Result, error) {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Reconcile method started.", "source", sourcePath, "definitions", definitionPath)

	root, err := LoadSource(ctx, sourcePath)
	if err != nil {
		return nil, err
	}
	files, err := ResolveDefinitionPath(ctx, definitionPath)
	if err != nil {
		return nil, err
	}
	if len(files) == 0 {
		a.logger.Warn("No definition files found at the specified path.", "path", definitionPath)
	}

	res := &Result{}
	for _, file := range files {
		def, err := LoadDefinition(ctx, file)
		if err != nil {
			return nil, err
		}
		instrs, err := a.reconcile(ctx, root, file, def)
		if err != nil {
			return nil, err
		}
		res.Plans = append(res.Plans, Plan{Definition: file, Instructions: instrs})
	}

	res.Source = syntax.Print(root)
	a.logger.Info("Reconciliation finished.", "definitions", len(files), "changed", res.Changed())
	return res, nil
}

func (a *App) reconcile(ctx context.Context, root *syntax.File, file string, def *definition.Definition) ([]instruction.Instruction, error) {
	ctx = ctxlog.With(ctx, "definition", file)
	a.logger.Debug("Reconciling definition.", "definition", file, "kind", def.Kind)
	instrs, err := a.engine.Generate(ctx, root, def)
	if err != nil {
		return nil, errors.Wrapf(err, "generate %s", file)
	}
	if err := a.executor.Apply(ctx, root, instrs); err != nil {
		return nil, errors.Wrapf(err, "apply %s", file)
	}
	a.logger.Info("Definition reconciled.", "definition", file, "instructions", len(instrs))
	return instrs, nil
}
