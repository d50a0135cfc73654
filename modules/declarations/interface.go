package declarations

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

func asInterface(n syntax.Node) *syntax.Interface { return n.(*syntax.Interface) }

var interfaceModifiers = modifierFlags[*syntax.Interface]{
	syntax.ExportKeyword:  func(i *syntax.Interface) *bool { return &i.Exported },
	syntax.DeclareKeyword: func(i *syntax.Interface) *bool { return &i.Declare },
}

func registerInterface(r *registry.Registry) {
	r.RegisterFields(syntax.InterfaceDeclaration, map[string]registry.FieldReader{
		"name":      func(n syntax.Node) registry.FieldValue { return registry.One(asInterface(n).Name) },
		"modifiers": func(n syntax.Node) registry.FieldValue { return registry.Many(asInterface(n).Modifiers()) },
		"members":   func(n syntax.Node) registry.FieldValue { return registry.Many(asInterface(n).Members) },
	})

	r.RegisterBuilder(syntax.InterfaceDeclaration, func(b registry.Builder, def *definition.Definition) (syntax.Node, error) {
		iface := &syntax.Interface{}
		var err error
		if iface.Name, err = registry.BuildName(b, def, "name"); err != nil {
			return nil, err
		}
		if err = interfaceModifiers.build(b, def, iface); err != nil {
			return nil, err
		}
		if iface.Members, err = registry.BuildChildren[syntax.Node](b, def, "members", registry.AsTypeElement); err != nil {
			return nil, err
		}
		return iface, nil
	})

	r.RegisterMutators(syntax.InterfaceDeclaration, "modifiers", interfaceModifiers.mutators())
	r.RegisterMutators(syntax.InterfaceDeclaration, "members", registry.ListMutators[*syntax.Interface, syntax.Node]("members",
		func(i *syntax.Interface) *[]syntax.Node { return &i.Members },
		registry.AsTypeElement,
	))
}
