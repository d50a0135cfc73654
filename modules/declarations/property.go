package declarations

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

func asProperty(n syntax.Node) *syntax.Property { return n.(*syntax.Property) }
func asParam(n syntax.Node) *syntax.Param       { return n.(*syntax.Param) }

var propertyModifiers = modifierFlags[*syntax.Property]{
	syntax.ReadonlyKeyword: func(p *syntax.Property) *bool { return &p.Readonly },
}

func registerProperty(r *registry.Registry) {
	r.RegisterFields(syntax.PropertySignature, map[string]registry.FieldReader{
		"name":          func(n syntax.Node) registry.FieldValue { return registry.One(asProperty(n).Name) },
		"modifiers":     func(n syntax.Node) registry.FieldValue { return registry.Many(asProperty(n).Modifiers()) },
		"questionToken": func(n syntax.Node) registry.FieldValue { return flagToken(asProperty(n).Optional, syntax.QuestionToken) },
		"type":          func(n syntax.Node) registry.FieldValue { return registry.One(asProperty(n).Type) },
	})

	r.RegisterBuilder(syntax.PropertySignature, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		p := &syntax.Property{}
		var err error
		if p.Name, err = registry.BuildName(b, def, "name"); err != nil {
			return nil, err
		}
		if err = propertyModifiers.build(b, def, p); err != nil {
			return nil, err
		}
		if p.Optional, err = registry.BuildChild(b, def, "questionToken", registry.AsToken(syntax.QuestionToken)); err != nil {
			return nil, err
		}
		if p.Type, err = registry.BuildChild[syntax.Node](b, def, "type", registry.AsType); err != nil {
			return nil, err
		}
		return p, nil
	})

	r.RegisterMutators(syntax.PropertySignature, "modifiers", propertyModifiers.mutators())
	r.RegisterMutators(syntax.PropertySignature, "questionToken", registry.SlotMutators("questionToken",
		func(p *syntax.Property, set bool) { p.Optional = set },
		registry.AsToken(syntax.QuestionToken),
	))
	r.RegisterMutators(syntax.PropertySignature, "type", registry.SlotMutators[*syntax.Property, syntax.Node]("type",
		func(p *syntax.Property, t syntax.Node) { p.Type = t },
		registry.AsType,
	))
}

func registerParameter(r *registry.Registry) {
	r.RegisterFields(syntax.Parameter, map[string]registry.FieldReader{
		"name":          func(n syntax.Node) registry.FieldValue { return registry.One(asParam(n).Name) },
		"questionToken": func(n syntax.Node) registry.FieldValue { return flagToken(asParam(n).Optional, syntax.QuestionToken) },
		"type":          func(n syntax.Node) registry.FieldValue { return registry.One(asParam(n).Type) },
	})

	r.RegisterBuilder(syntax.Parameter, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		p := &syntax.Param{}
		var err error
		if p.Name, err = registry.BuildName(b, def, "name"); err != nil {
			return nil, err
		}
		if p.Optional, err = registry.BuildChild(b, def, "questionToken", registry.AsToken(syntax.QuestionToken)); err != nil {
			return nil, err
		}
		if p.Type, err = registry.BuildChild[syntax.Node](b, def, "type", registry.AsType); err != nil {
			return nil, err
		}
		return p, nil
	})

	r.RegisterMutators(syntax.Parameter, "questionToken", registry.SlotMutators("questionToken",
		func(p *syntax.Param, set bool) { p.Optional = set },
		registry.AsToken(syntax.QuestionToken),
	))
	r.RegisterMutators(syntax.Parameter, "type", registry.SlotMutators[*syntax.Param, syntax.Node]("type",
		func(p *syntax.Param, t syntax.Node) { p.Type = t },
		registry.AsType,
	))
}
