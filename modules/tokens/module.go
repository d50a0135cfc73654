// Package tokens registers the childless nodes: keyword types, modifiers
// and punctuation tokens.
package tokens

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Kinds lists every kind registered by this module.
var Kinds = []syntax.Kind{
	syntax.VoidKeyword,
	syntax.StringKeyword,
	syntax.NumberKeyword,
	syntax.BooleanKeyword,
	syntax.AnyKeyword,
	syntax.UnknownKeyword,
	syntax.NeverKeyword,
	syntax.UndefinedKeyword,
	syntax.ObjectKeyword,
	syntax.ExportKeyword,
	syntax.DefaultKeyword,
	syntax.AsyncKeyword,
	syntax.DeclareKeyword,
	syntax.ReadonlyKeyword,
	syntax.QuestionToken,
	syntax.AsteriskToken,
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers a builder for every token kind.
func (m *Module) Register(r *registry.Registry) {
	for _, kind := range Kinds {
		r.RegisterBuilder(kind, func(_ registry.Builder, def *definition.Definition) (syntax.Node, error) {
			return syntax.NewToken(def.Kind), nil
		})
	}
}
