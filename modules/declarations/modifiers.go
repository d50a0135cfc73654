package declarations

import (
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// modifierFlags maps the modifiers a declaration accepts to the flag that
// stores each of them.
type modifierFlags[P syntax.Node] map[syntax.Kind]func(P) *bool

// flag returns the flag for a modifier token, rejecting modifiers the
// declaration does not accept.
func (m modifierFlags[P]) flag(target P, value syntax.Node) (*bool, error) {
	if value == nil {
		return nil, errs.Newf(errs.ErrInvalidNode, "modifier is missing")
	}
	get, ok := m[value.Kind()]
	if !ok {
		return nil, errs.Newf(errs.ErrInvalidNode, "%s is not a valid modifier of %s", value.Kind(), target.Kind())
	}
	return get(target), nil
}

func (m modifierFlags[P]) build(b registry.Builder, def *definition.Definition, target P) error {
	mods, err := registry.BuildChildren[syntax.Node](b, def, "modifiers", func(n syntax.Node) (syntax.Node, error) { return n, nil })
	if err != nil {
		return err
	}
	for _, mod := range mods {
		f, err := m.flag(target, mod)
		if err != nil {
			return err
		}
		*f = true
	}
	return nil
}

// mutators returns ADD and REMOVE procedures. ADD raises the flag of the
// given modifier; REMOVE clears the flag of the modifier found at index in
// the derived modifier list.
func (m modifierFlags[P]) mutators() registry.Mutators {
	return registry.Mutators{
		instruction.Add: func(n syntax.Node, _ int, value syntax.Node) error {
			target, err := registry.Accept[P](n, "modifiers")
			if err != nil {
				return err
			}
			f, err := m.flag(target, value)
			if err != nil {
				return err
			}
			*f = true
			return nil
		},
		instruction.Remove: func(n syntax.Node, index int, _ syntax.Node) error {
			target, err := registry.Accept[P](n, "modifiers")
			if err != nil {
				return err
			}
			current := modifiersOf(target)
			if index < 0 || index >= len(current) {
				return errs.NewIndexError(instruction.Remove.String(), len(current)-1, index)
			}
			f, err := m.flag(target, current[index])
			if err != nil {
				return err
			}
			*f = false
			return nil
		},
	}
}

func modifiersOf(n syntax.Node) []syntax.Node {
	switch n := n.(type) {
	case *syntax.Function:
		return n.Modifiers()
	case *syntax.Interface:
		return n.Modifiers()
	case *syntax.Property:
		return n.Modifiers()
	}
	return nil
}

// flagToken exposes a boolean flag as an optional token field.
func flagToken(set bool, kind syntax.Kind) registry.FieldValue {
	if !set {
		return registry.FieldValue{}
	}
	return registry.One(syntax.NewToken(kind))
}
