package registry

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Builder constructs nodes from definitions. It is handed to every
// BuildFunc so builders can construct their children.
type Builder interface {
	Build(def *definition.Definition) (syntax.Node, error)
	MaybeBuild(def *definition.Definition) (syntax.Node, error)
	BuildList(defs []*definition.Definition) ([]syntax.Node, error)
}

// BuildFunc constructs a node of a single kind.
type BuildFunc func(b Builder, def *definition.Definition) (syntax.Node, error)

// Build constructs a brand-new node from def, recursively building every
// nested definition.
func (r *Registry) Build(def *definition.Definition) (syntax.Node, error) {
	if def == nil {
		return nil, errs.Newf(errs.ErrInvalidNode, "cannot build a node from an empty definition")
	}
	fn, ok := r.builders[def.Kind]
	if !ok {
		return nil, errs.Newf(errs.ErrUnsupportedNodeKind, "no builder for kind %s", def.Kind)
	}
	for _, f := range def.Fields {
		if !r.KnowsField(def.Kind, f.Name) {
			return nil, errs.Newf(errs.ErrUnknownField, "field %q is not supported for kind %s", f.Name, def.Kind)
		}
	}
	n, err := fn(r, def)
	if err != nil {
		return nil, err
	}
	if t := def.LeadingTrivia; t != nil {
		n.AddLeadingComment(syntax.Comment{Kind: t.Kind, Text: t.Text})
	}
	return n, nil
}

// MaybeBuild is like Build but returns nil for a nil definition.
func (r *Registry) MaybeBuild(def *definition.Definition) (syntax.Node, error) {
	if def == nil {
		return nil, nil
	}
	return r.Build(def)
}

// BuildList builds every definition of defs in order.
func (r *Registry) BuildList(defs []*definition.Definition) ([]syntax.Node, error) {
	out := make([]syntax.Node, 0, len(defs))
	for _, d := range defs {
		n, err := r.Build(d)
		if err != nil {
			return nil, err
		}
		out = append(out, n)
	}
	return out, nil
}
