package registry

import (
	"github.com/samber/lo"

	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// MutateFunc edits one field of target in place. index is only meaningful
// for positional instructions and value is nil for REMOVE and UNSET.
type MutateFunc func(target syntax.Node, index int, value syntax.Node) error

// Mutators maps instruction types to edit procedures of a single field.
type Mutators map[instruction.Type]MutateFunc

// Mutator returns the edit procedure registered for (kind, field, typ).
func (r *Registry) Mutator(kind syntax.Kind, field string, typ instruction.Type) (MutateFunc, error) {
	fn, ok := r.mutators[mutationKey{kind: kind, field: field, typ: typ}]
	if !ok {
		return nil, errs.Newf(errs.ErrUnsupportedMutation, "%s is not supported for field %q of kind %s", typ, field, kind)
	}
	return fn, nil
}

// Accept converts value to T, raising InvalidNode when the node is of the
// wrong syntactic category for field.
func Accept[T syntax.Node](value syntax.Node, field string) (T, error) {
	v, ok := value.(T)
	if !ok {
		var zero T
		return zero, errs.Newf(errs.ErrInvalidNode, "a %s node cannot be used as %q", kindOf(value), field)
	}
	return v, nil
}

// AcceptFunc converts a built node into the element type of a field.
type AcceptFunc[T any] func(value syntax.Node) (T, error)

// ListMutators returns ADD, INSERT, REPLACE and REMOVE procedures for a list
// field. list returns a pointer to the field inside the owning node, which
// must be of type P.
func ListMutators[P syntax.Node, T any](field string, list func(P) *[]T, accept AcceptFunc[T]) Mutators {
	target := func(n syntax.Node) (*[]T, error) {
		p, err := Accept[P](n, field)
		if err != nil {
			return nil, err
		}
		return list(p), nil
	}
	return Mutators{
		instruction.Add: func(n syntax.Node, _ int, value syntax.Node) error {
			l, err := target(n)
			if err != nil {
				return err
			}
			item, err := accept(value)
			if err != nil {
				return err
			}
			*l = syntax.Append(*l, item)
			return nil
		},
		instruction.Insert: func(n syntax.Node, index int, value syntax.Node) error {
			l, err := target(n)
			if err != nil {
				return err
			}
			item, err := accept(value)
			if err != nil {
				return err
			}
			*l, err = syntax.InsertAt(*l, index, item)
			return err
		},
		instruction.Replace: func(n syntax.Node, index int, value syntax.Node) error {
			l, err := target(n)
			if err != nil {
				return err
			}
			item, err := accept(value)
			if err != nil {
				return err
			}
			*l, err = syntax.ReplaceAt(*l, index, item)
			return err
		},
		instruction.Remove: func(n syntax.Node, index int, _ syntax.Node) error {
			l, err := target(n)
			if err != nil {
				return err
			}
			*l, err = syntax.RemoveAt(*l, index)
			return err
		},
	}
}

// SlotMutators returns SET and UNSET procedures for a single-node field.
// set receives nil to clear the slot.
func SlotMutators[P syntax.Node, T any](field string, set func(P, T), accept AcceptFunc[T]) Mutators {
	return Mutators{
		instruction.Set: func(n syntax.Node, _ int, value syntax.Node) error {
			p, err := Accept[P](n, field)
			if err != nil {
				return err
			}
			v, err := accept(value)
			if err != nil {
				return err
			}
			set(p, v)
			return nil
		},
		instruction.Unset: func(n syntax.Node, _ int, _ syntax.Node) error {
			p, err := Accept[P](n, field)
			if err != nil {
				return err
			}
			var zero T
			set(p, zero)
			return nil
		},
	}
}

func kindOf(n syntax.Node) syntax.Kind {
	if n == nil {
		return syntax.Unknown
	}
	return n.Kind()
}

// Only returns the subset of m registered for types.
func (m Mutators) Only(types ...instruction.Type) Mutators {
	return Mutators(lo.PickByKeys(m, types))
}
