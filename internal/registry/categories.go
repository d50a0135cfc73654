package registry

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// AsStatement accepts statements and wraps bare expressions into an
// expression statement.
func AsStatement(value syntax.Node) (syntax.Node, error) {
	switch {
	case syntax.IsStatement(value):
		return value, nil
	case syntax.IsExpression(value):
		return &syntax.ExprStmt{Expression: value}, nil
	}
	return nil, errs.Newf(errs.ErrInvalidNode, "a %s node is not a statement", kindOf(value))
}

// AsExpression accepts expression nodes only.
func AsExpression(value syntax.Node) (syntax.Node, error) {
	if !syntax.IsExpression(value) {
		return nil, errs.Newf(errs.ErrInvalidNode, "a %s node is not an expression", kindOf(value))
	}
	return value, nil
}

// AsType accepts type annotation nodes only.
func AsType(value syntax.Node) (syntax.Node, error) {
	if !syntax.IsTypeNode(value) {
		return nil, errs.Newf(errs.ErrInvalidNode, "a %s node is not a type", kindOf(value))
	}
	return value, nil
}

// AsTypeElement accepts interface members only.
func AsTypeElement(value syntax.Node) (syntax.Node, error) {
	if !syntax.IsTypeElement(value) {
		return nil, errs.Newf(errs.ErrInvalidNode, "a %s node is not an interface member", kindOf(value))
	}
	return value, nil
}

// AsToken accepts a token of exactly kind.
func AsToken(kind syntax.Kind) AcceptFunc[bool] {
	return func(value syntax.Node) (bool, error) {
		if value == nil || value.Kind() != kind {
			return false, errs.Newf(errs.ErrInvalidNode, "expected %s, got %s", kind, kindOf(value))
		}
		return true, nil
	}
}

// AsNode returns an AcceptFunc converting a built node to the concrete type T.
func AsNode[T syntax.Node](field string) AcceptFunc[T] {
	return func(value syntax.Node) (T, error) {
		return Accept[T](value, field)
	}
}

// BuildAll builds defs and checks every node with accept.
func BuildAll[T any](b Builder, defs []*definition.Definition, accept AcceptFunc[T]) ([]T, error) {
	nodes, err := b.BuildList(defs)
	if err != nil {
		return nil, err
	}
	out := make([]T, 0, len(nodes))
	for _, n := range nodes {
		v, err := accept(n)
		if err != nil {
			return nil, err
		}
		out = append(out, v)
	}
	return out, nil
}

// BuildChild builds the nested definition stored in field, if any, and
// checks it with accept. An absent field yields the zero value.
func BuildChild[T any](b Builder, def *definition.Definition, field string, accept AcceptFunc[T]) (T, error) {
	var zero T
	v, ok := def.Get(field)
	if !ok {
		return zero, nil
	}
	child, ok := v.(*definition.Definition)
	if !ok {
		return zero, errs.Newf(errs.ErrInvalidNode, "field %q of %s must hold a definition, got %T", field, def.Kind, v)
	}
	n, err := b.Build(child)
	if err != nil {
		return zero, err
	}
	return accept(n)
}

// BuildChildren builds the list of definitions stored in field and checks
// every node with accept. An absent field yields an empty list.
func BuildChildren[T any](b Builder, def *definition.Definition, field string, accept AcceptFunc[T]) ([]T, error) {
	v, ok := def.Get(field)
	if !ok {
		return nil, nil
	}
	defs, ok := v.([]*definition.Definition)
	if !ok {
		return nil, errs.Newf(errs.ErrInvalidNode, "field %q of %s must hold a list, got %T", field, def.Kind, v)
	}
	return BuildAll(b, defs, accept)
}

// BuildName builds an identifier from a name field. The field may hold the
// plain text or an Identifier definition; an absent name yields nil.
func BuildName(b Builder, def *definition.Definition, field string) (*syntax.Ident, error) {
	v, ok := def.Get(field)
	if !ok {
		return nil, nil
	}
	switch v := v.(type) {
	case string:
		return syntax.NewIdent(v), nil
	case *definition.Definition:
		return BuildChild(b, def, field, AsNode[*syntax.Ident](field))
	}
	return nil, errs.Newf(errs.ErrInvalidNode, "field %q of %s must be a string or an Identifier", field, def.Kind)
}

// MissingField reports a required field absent from def.
func MissingField(def *definition.Definition, field string) error {
	return errs.Newf(errs.ErrInvalidNode, "%s requires field %q", def.Kind, field)
}
