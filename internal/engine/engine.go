package engine

import (
	"context"
	"log/slog"

	"github.com/cockroachdb/errors"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/nodeid"
	"github.com/specialistvlad/codeshape/internal/query"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Engine generates instructions. It holds no per-call state and may be used
// by several goroutines on distinct trees.
type Engine struct {
	registry *registry.Registry
	eval     query.Evaluator
}

// New creates an engine reading fields through reg and evaluating policy
// expressions with eval.
func New(reg *registry.Registry, eval query.Evaluator) *Engine {
	return &Engine{registry: reg, eval: eval}
}

// Generate returns the instructions that reconcile root toward def.
func (e *Engine) Generate(ctx context.Context, root syntax.Node, def *definition.Definition) ([]instruction.Instruction, error) {
	if root == nil || def == nil {
		return nil, errs.Newf(errs.ErrInvalidNode, "generate needs both a tree and a definition")
	}
	g := &generator{Engine: e, ctx: ctx, logger: ctxlog.FromContext(ctx)}
	g.logger.Debug("Generating instructions.", "kind", def.Kind)

	if err := checkKind(nodeid.Root(), root, def); err != nil {
		return nil, err
	}
	if def.HasPolicy() && len(def.Policy.Rules) > 0 {
		s := scope{owner: root, path: nodeid.Root(), root: true, nodes: []syntax.Node{root}}
		if err := g.rules(s, def); err != nil {
			return nil, err
		}
	}
	if err := g.node(nodeid.Root(), root, def); err != nil {
		return nil, err
	}

	g.logger.Debug("Finished generating instructions.", "count", len(g.out))
	return g.out, nil
}

// generator carries the state of a single Generate call.
type generator struct {
	*Engine
	ctx    context.Context
	logger *slog.Logger
	out    []instruction.Instruction
}

func (g *generator) emit(in instruction.Instruction) {
	g.logger.Debug("Instruction generated.", "instruction", in.String())
	g.out = append(g.out, in)
}

func checkKind(path nodeid.Address, n syntax.Node, def *definition.Definition) error {
	if def.Kind != n.Kind() {
		return errs.Newf(errs.ErrSchemaMismatch, "at %q: definition of kind %s cannot be reconciled against %s", path, def.Kind, n.Kind())
	}
	return nil
}

// node reconciles the fields of def against n, which lives at path.
func (g *generator) node(path nodeid.Address, n syntax.Node, def *definition.Definition) error {
	if err := checkKind(path, n, def); err != nil {
		return err
	}
	for _, f := range def.Fields {
		if err := g.field(path, n, f); err != nil {
			return err
		}
	}
	return nil
}

func (g *generator) field(path nodeid.Address, n syntax.Node, f definition.Field) error {
	if definition.IsScalar(f.Value) {
		if !g.registry.KnowsField(n.Kind(), f.Name) {
			return errs.Newf(errs.ErrUnknownField, "field %q is not supported for kind %s", f.Name, n.Kind())
		}
		return nil
	}

	current, err := g.registry.Read(n, f.Name)
	if err != nil {
		return err
	}

	switch value := f.Value.(type) {
	case []*definition.Definition:
		if !current.IsList {
			return errs.Newf(errs.ErrSchemaMismatch, "at %q: field %q of %s holds a single node, not a list", path, f.Name, n.Kind())
		}
		if current.Empty() {
			for _, item := range value {
				g.emit(instruction.New(instruction.Add, path, f.Name, 0, item))
			}
			return nil
		}
		s := scope{owner: n, path: path, field: f.Name, nodes: current.Nodes, list: true}
		for i, item := range value {
			if err := g.listItem(s, item); err != nil {
				return errors.Wrapf(err, "%s[%d]", f.Name, i)
			}
		}
	case *definition.Definition:
		if current.IsList {
			return errs.Newf(errs.ErrSchemaMismatch, "at %q: field %q of %s is a list", path, f.Name, n.Kind())
		}
		if current.Empty() {
			g.emit(instruction.New(instruction.Set, path, f.Name, 0, value))
			return nil
		}
		s := scope{owner: n, path: path, field: f.Name, nodes: []syntax.Node{current.Node}}
		if err := g.single(s, value); err != nil {
			return errors.Wrapf(err, "%s", f.Name)
		}
	default:
		return errs.Newf(errs.ErrInvalidNode, "field %q of %s has unsupported value %T", f.Name, n.Kind(), f.Value)
	}
	return nil
}

// listItem reconciles one item of a list field whose current value is
// non-empty.
func (g *generator) listItem(s scope, item *definition.Definition) error {
	switch {
	case !item.HasPolicy():
		g.emit(instruction.New(instruction.Add, s.path, s.field, 0, item))
	case item.Policy.ID != "":
		found, err := g.match(s, item.Policy.ID)
		if err != nil {
			return err
		}
		if found < 0 {
			g.logger.Debug("No existing node matched, adding.", "field", s.field, "id", item.Policy.ID)
			g.emit(instruction.New(instruction.Add, s.path, s.field, 0, item))
		} else {
			at := s.at(found)
			g.logger.Debug("Existing node matched.", "path", at.String(), "id", item.Policy.ID)
			if err := g.node(at, s.nodes[found], item); err != nil {
				return err
			}
		}
	}
	if item.HasPolicy() {
		return g.rules(s, item)
	}
	return nil
}

// single reconciles a non-list field that already holds a node.
func (g *generator) single(s scope, item *definition.Definition) error {
	if !item.HasPolicy() {
		return nil
	}
	if item.Policy.ID != "" {
		found, err := g.match(s, item.Policy.ID)
		if err != nil {
			return err
		}
		if found < 0 {
			g.emit(instruction.New(instruction.Set, s.path, s.field, 0, item))
		} else if err := g.node(s.at(found), s.nodes[found], item); err != nil {
			return err
		}
	}
	return g.rules(s, item)
}

// match returns the index of the first node of s that satisfies expr, or -1.
func (g *generator) match(s scope, expr string) (int, error) {
	for i, n := range s.nodes {
		ok, err := g.eval.Match(g.ctx, expr, n)
		if err != nil {
			return -1, errors.Wrapf(err, "evaluate %q", expr)
		}
		if ok {
			return i, nil
		}
	}
	return -1, nil
}
