// Package declarations registers source files and the declarations that can
// appear in them: functions, interfaces, their properties and parameters.
package declarations

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers accessors, builders and mutators with the registry.
func (m *Module) Register(r *registry.Registry) {
	registerSourceFile(r)
	registerFunction(r)
	registerInterface(r)
	registerProperty(r)
	registerParameter(r)
}

func registerSourceFile(r *registry.Registry) {
	r.RegisterFields(syntax.SourceFile, map[string]registry.FieldReader{
		"statements": func(n syntax.Node) registry.FieldValue { return registry.Many(n.(*syntax.File).Statements) },
	})
	r.RegisterBuilder(syntax.SourceFile, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		stmts, err := registry.BuildChildren[syntax.Node](b, def, "statements", registry.AsStatement)
		if err != nil {
			return nil, err
		}
		return &syntax.File{Statements: stmts}, nil
	})
	r.RegisterMutators(syntax.SourceFile, "statements", registry.ListMutators[*syntax.File, syntax.Node]("statements",
		func(f *syntax.File) *[]syntax.Node { return &f.Statements },
		registry.AsStatement,
	))
}
