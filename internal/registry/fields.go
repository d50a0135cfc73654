package registry

import (
	"slices"

	"github.com/samber/lo"

	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/nodeid"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// FieldReader returns the current value of one field of a node.
type FieldReader func(n syntax.Node) FieldValue

// FieldValue is the current value of a field: a single node or a list.
type FieldValue struct {
	Node   syntax.Node
	Nodes  []syntax.Node
	IsList bool
}

// One wraps a single child node.
func One(n syntax.Node) FieldValue {
	if syntax.IsNil(n) {
		return FieldValue{}
	}
	return FieldValue{Node: n}
}

// Many wraps a list of child nodes.
func Many[T syntax.Node](list []T) FieldValue {
	nodes := make([]syntax.Node, len(list))
	for i, n := range list {
		nodes[i] = n
	}
	return FieldValue{Nodes: nodes, IsList: true}
}

// Empty reports whether the field has no value. Empty lists count as absent.
func (v FieldValue) Empty() bool {
	if v.IsList {
		return len(v.Nodes) == 0
	}
	return syntax.IsNil(v.Node)
}

// Read returns the current value of field on n.
func (r *Registry) Read(n syntax.Node, field string) (FieldValue, error) {
	fn, ok := r.fields[n.Kind()][field]
	if !ok {
		return FieldValue{}, errs.Newf(errs.ErrUnknownField, "field %q is not supported for kind %s", field, n.Kind())
	}
	v := fn(n)
	if !v.IsList && syntax.IsNil(v.Node) {
		v.Node = nil
	}
	return v, nil
}

// KnowsField reports whether field is a readable field or an attribute of kind.
func (r *Registry) KnowsField(kind syntax.Kind, field string) bool {
	if _, ok := r.fields[kind][field]; ok {
		return true
	}
	_, ok := r.attributes[kind][field]
	return ok
}

// IsAttribute reports whether field is a scalar attribute of kind.
func (r *Registry) IsAttribute(kind syntax.Kind, field string) bool {
	_, ok := r.attributes[kind][field]
	return ok
}

// Fields returns the sorted names of the readable fields of kind.
func (r *Registry) Fields(kind syntax.Kind) []string {
	names := lo.Keys(r.fields[kind])
	slices.Sort(names)
	return names
}

// Resolve walks addr from root and returns the addressed node.
func (r *Registry) Resolve(root syntax.Node, addr nodeid.Address) (syntax.Node, error) {
	cur := root
	for i, seg := range addr.Path {
		walked := nodeid.Address{Path: addr.Path[:i+1]}
		v, err := r.Read(cur, seg.Name)
		if err != nil {
			return nil, errs.Wrapf(errs.ErrUnresolvedPath, err, "resolve %q", walked)
		}
		switch {
		case v.IsList && !seg.HasIndex():
			return nil, errs.Newf(errs.ErrUnresolvedPath, "resolve %q: field %q of %s is a list and needs an index", walked, seg.Name, cur.Kind())
		case v.IsList && seg.Index >= len(v.Nodes):
			return nil, errs.Newf(errs.ErrUnresolvedPath, "resolve %q: index %d out of range, %s.%s has %d items", walked, seg.Index, cur.Kind(), seg.Name, len(v.Nodes))
		case v.IsList:
			cur = v.Nodes[seg.Index]
		case seg.HasIndex():
			return nil, errs.Newf(errs.ErrUnresolvedPath, "resolve %q: field %q of %s is not a list", walked, seg.Name, cur.Kind())
		case v.Node == nil:
			return nil, errs.Newf(errs.ErrUnresolvedPath, "resolve %q: field %q of %s is not set", walked, seg.Name, cur.Kind())
		default:
			cur = v.Node
		}
	}
	return cur, nil
}

// ResolvePath parses raw and resolves it from root.
func (r *Registry) ResolvePath(root syntax.Node, raw string) (syntax.Node, error) {
	addr, err := nodeid.Parse(raw)
	if err != nil {
		return nil, errs.Wrapf(errs.ErrUnresolvedPath, err, "parse path")
	}
	return r.Resolve(root, addr)
}
