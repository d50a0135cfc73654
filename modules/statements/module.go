// Package statements registers blocks and the statements that can appear in
// them.
package statements

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers accessors, builders and mutators with the registry.
func (m *Module) Register(r *registry.Registry) {
	registerBlock(r)
	registerExpressionStatement(r)
	registerReturn(r)
}

func registerBlock(r *registry.Registry) {
	r.RegisterFields(syntax.Block, map[string]registry.FieldReader{
		"statements": func(n syntax.Node) registry.FieldValue { return registry.Many(n.(*syntax.BlockStmt).Statements) },
	})
	r.RegisterAttributes(syntax.Block, "multiline")
	r.RegisterBuilder(syntax.Block, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		stmts, err := registry.BuildChildren[syntax.Node](b, def, "statements", registry.AsStatement)
		if err != nil {
			return nil, err
		}
		return &syntax.BlockStmt{Statements: stmts, Multiline: def.Bool("multiline")}, nil
	})
	r.RegisterMutators(syntax.Block, "statements", registry.ListMutators[*syntax.BlockStmt, syntax.Node]("statements",
		func(blk *syntax.BlockStmt) *[]syntax.Node { return &blk.Statements },
		registry.AsStatement,
	))
}

func registerExpressionStatement(r *registry.Registry) {
	r.RegisterFields(syntax.ExpressionStatement, map[string]registry.FieldReader{
		"expression": func(n syntax.Node) registry.FieldValue { return registry.One(n.(*syntax.ExprStmt).Expression) },
	})
	r.RegisterBuilder(syntax.ExpressionStatement, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		expr, err := registry.BuildChild[syntax.Node](b, def, "expression", registry.AsExpression)
		if err != nil {
			return nil, err
		}
		if expr == nil {
			return nil, registry.MissingField(def, "expression")
		}
		return &syntax.ExprStmt{Expression: expr}, nil
	})
	r.RegisterMutators(syntax.ExpressionStatement, "expression", registry.SlotMutators[*syntax.ExprStmt, syntax.Node]("expression",
		func(s *syntax.ExprStmt, e syntax.Node) { s.Expression = e },
		registry.AsExpression,
	).Only(instruction.Set))
}

func registerReturn(r *registry.Registry) {
	r.RegisterFields(syntax.ReturnStatement, map[string]registry.FieldReader{
		"expression": func(n syntax.Node) registry.FieldValue { return registry.One(n.(*syntax.ReturnStmt).Expression) },
	})
	r.RegisterBuilder(syntax.ReturnStatement, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		expr, err := registry.BuildChild[syntax.Node](b, def, "expression", registry.AsExpression)
		if err != nil {
			return nil, err
		}
		return &syntax.ReturnStmt{Expression: expr}, nil
	})
	r.RegisterMutators(syntax.ReturnStatement, "expression", registry.SlotMutators[*syntax.ReturnStmt, syntax.Node]("expression",
		func(s *syntax.ReturnStmt, e syntax.Node) { s.Expression = e },
		registry.AsExpression,
	))
}
