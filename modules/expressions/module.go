// Package expressions registers call and property access expressions,
// identifiers and literals.
package expressions

import (
	"strconv"

	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers accessors, builders and mutators with the registry.
func (m *Module) Register(r *registry.Registry) {
	registerCall(r)
	registerPropertyAccess(r)

	r.RegisterAttributes(syntax.Identifier, "text")
	r.RegisterBuilder(syntax.Identifier, func(_ registry.Builder, def *definition.Definition) (syntax.Node, error) {
		text, err := requiredText(def)
		if err != nil {
			return nil, err
		}
		return syntax.NewIdent(text), nil
	})

	for _, kind := range []syntax.Kind{syntax.StringLiteral, syntax.NumericLiteral} {
		r.RegisterAttributes(kind, "text")
		r.RegisterBuilder(kind, buildLiteral)
	}
}

func registerCall(r *registry.Registry) {
	r.RegisterFields(syntax.CallExpression, map[string]registry.FieldReader{
		"expression": func(n syntax.Node) registry.FieldValue { return registry.One(n.(*syntax.Call).Expression) },
		"arguments":  func(n syntax.Node) registry.FieldValue { return registry.Many(n.(*syntax.Call).Arguments) },
	})
	r.RegisterBuilder(syntax.CallExpression, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		callee, err := registry.BuildChild[syntax.Node](b, def, "expression", registry.AsExpression)
		if err != nil {
			return nil, err
		}
		if callee == nil {
			return nil, registry.MissingField(def, "expression")
		}
		args, err := registry.BuildChildren[syntax.Node](b, def, "arguments", registry.AsExpression)
		if err != nil {
			return nil, err
		}
		return &syntax.Call{Expression: callee, Arguments: args}, nil
	})
	r.RegisterMutators(syntax.CallExpression, "expression", registry.SlotMutators[*syntax.Call, syntax.Node]("expression",
		func(c *syntax.Call, e syntax.Node) { c.Expression = e },
		registry.AsExpression,
	).Only(instruction.Set))
	r.RegisterMutators(syntax.CallExpression, "arguments", registry.ListMutators[*syntax.Call, syntax.Node]("arguments",
		func(c *syntax.Call) *[]syntax.Node { return &c.Arguments },
		registry.AsExpression,
	))
}

func registerPropertyAccess(r *registry.Registry) {
	r.RegisterFields(syntax.PropertyAccessExpression, map[string]registry.FieldReader{
		"expression": func(n syntax.Node) registry.FieldValue { return registry.One(n.(*syntax.PropertyAccess).Expression) },
		"name":       func(n syntax.Node) registry.FieldValue { return registry.One(n.(*syntax.PropertyAccess).Name) },
	})
	r.RegisterBuilder(syntax.PropertyAccessExpression, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		obj, err := registry.BuildChild[syntax.Node](b, def, "expression", registry.AsExpression)
		if err != nil {
			return nil, err
		}
		name, err := registry.BuildName(b, def, "name")
		if err != nil {
			return nil, err
		}
		if obj == nil {
			return nil, registry.MissingField(def, "expression")
		}
		if name == nil {
			return nil, registry.MissingField(def, "name")
		}
		return &syntax.PropertyAccess{Expression: obj, Name: name}, nil
	})
}

func buildLiteral(_ registry.Builder, def *definition.Definition) (syntax.Node, error) {
	v, ok := def.Get("text")
	if !ok {
		return nil, registry.MissingField(def, "text")
	}
	switch v := v.(type) {
	case string:
		return &syntax.Literal{LiteralKind: def.Kind, Text: v}, nil
	case float64:
		if def.Kind == syntax.NumericLiteral {
			return syntax.NewNumber(strconv.FormatFloat(v, 'f', -1, 64)), nil
		}
	}
	return nil, errs.Newf(errs.ErrInvalidNode, "field \"text\" of %s has an invalid value %v", def.Kind, v)
}

func requiredText(def *definition.Definition) (string, error) {
	v, ok := def.Get("text")
	if !ok {
		return "", registry.MissingField(def, "text")
	}
	text, ok := v.(string)
	if !ok || text == "" {
		return "", errs.Newf(errs.ErrInvalidNode, "field \"text\" of %s must be a non-empty string", def.Kind)
	}
	return text, nil
}
