package declarations

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

func asFunction(n syntax.Node) *syntax.Function { return n.(*syntax.Function) }

var functionModifiers = modifierFlags[*syntax.Function]{
	syntax.ExportKeyword:  func(f *syntax.Function) *bool { return &f.Exported },
	syntax.DefaultKeyword: func(f *syntax.Function) *bool { return &f.Default },
	syntax.AsyncKeyword:   func(f *syntax.Function) *bool { return &f.Async },
}

func registerFunction(r *registry.Registry) {
	r.RegisterFields(syntax.FunctionDeclaration, map[string]registry.FieldReader{
		"name":          func(n syntax.Node) registry.FieldValue { return registry.One(asFunction(n).Name) },
		"modifiers":     func(n syntax.Node) registry.FieldValue { return registry.Many(asFunction(n).Modifiers()) },
		"asteriskToken": func(n syntax.Node) registry.FieldValue { return flagToken(asFunction(n).Generator, syntax.AsteriskToken) },
		"parameters":    func(n syntax.Node) registry.FieldValue { return registry.Many(asFunction(n).Parameters) },
		"type":          func(n syntax.Node) registry.FieldValue { return registry.One(asFunction(n).ReturnType) },
		"body":          func(n syntax.Node) registry.FieldValue { return registry.One(asFunction(n).Body) },
	})

	r.RegisterBuilder(syntax.FunctionDeclaration, buildFunction)

	r.RegisterMutators(syntax.FunctionDeclaration, "modifiers", functionModifiers.mutators())
	r.RegisterMutators(syntax.FunctionDeclaration, "asteriskToken", registry.SlotMutators("asteriskToken",
		func(f *syntax.Function, set bool) { f.Generator = set },
		registry.AsToken(syntax.AsteriskToken),
	))
	r.RegisterMutators(syntax.FunctionDeclaration, "parameters", registry.ListMutators("parameters",
		func(f *syntax.Function) *[]*syntax.Param { return &f.Parameters },
		registry.AsNode[*syntax.Param]("parameters"),
	))
	r.RegisterMutators(syntax.FunctionDeclaration, "type", registry.SlotMutators[*syntax.Function, syntax.Node]("type",
		func(f *syntax.Function, t syntax.Node) { f.ReturnType = t },
		registry.AsType,
	))
	r.RegisterMutators(syntax.FunctionDeclaration, "body", registry.SlotMutators("body",
		func(f *syntax.Function, body *syntax.BlockStmt) { f.Body = body },
		registry.AsNode[*syntax.BlockStmt]("body"),
	))
}

func buildFunction(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
	fn := &syntax.Function{}

	var err error
	if fn.Name, err = registry.BuildName(b, def, "name"); err != nil {
		return nil, err
	}
	if err = functionModifiers.build(b, def, fn); err != nil {
		return nil, err
	}
	if fn.Generator, err = registry.BuildChild(b, def, "asteriskToken", registry.AsToken(syntax.AsteriskToken)); err != nil {
		return nil, err
	}
	if fn.Parameters, err = registry.BuildChildren(b, def, "parameters", registry.AsNode[*syntax.Param]("parameters")); err != nil {
		return nil, err
	}
	if fn.ReturnType, err = registry.BuildChild[syntax.Node](b, def, "type", registry.AsType); err != nil {
		return nil, err
	}
	if fn.Body, err = registry.BuildChild(b, def, "body", registry.AsNode[*syntax.BlockStmt]("body")); err != nil {
		return nil, err
	}
	if fn.Body == nil {
		fn.Body = &syntax.BlockStmt{}
	}
	return fn, nil
}
