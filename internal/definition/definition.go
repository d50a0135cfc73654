package definition

import (
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Definition is a declarative description of a node.
type Definition struct {
	Kind          syntax.Kind
	Fields        []Field
	Policy        *Policy
	LeadingTrivia *Trivia
}

// Field is one declared field of a Definition.
type Field struct {
	Name string
	// Value is a string, bool, float64, *Definition or []*Definition.
	Value any
}

// Trivia describes a comment to attach in front of a built node.
type Trivia struct {
	Kind syntax.Kind
	Text string
}

// Policy controls how a definition is matched against existing nodes and
// which instructions its rules produce.
type Policy struct {
	// ID is a match predicate. When it holds for an existing node the
	// definition is reconciled against that node instead of being added.
	ID    string
	Rules []Rule
}

// Rule emits one instruction when Condition matches an existing node.
type Rule struct {
	Instruction string
	Condition   string
	Field       string
	Index       Index
}

// Index is the position of a positional rule: either a literal integer or an
// expression evaluated against the current list. The zero value is unset.
type Index struct {
	Literal *int
	Expr    string
}

// LiteralIndex returns an Index holding i.
func LiteralIndex(i int) Index { return Index{Literal: &i} }

// ExprIndex returns an Index computed by expr.
func ExprIndex(expr string) Index { return Index{Expr: expr} }

// IsSet reports whether the index was declared.
func (i Index) IsSet() bool { return i.Literal != nil || i.Expr != "" }

// New creates an empty definition of kind.
func New(kind syntax.Kind) *Definition {
	return &Definition{Kind: kind}
}

// With sets field name to value and returns d. Ints are stored as float64.
func (d *Definition) With(name string, value any) *Definition {
	d.Set(name, value)
	return d
}

// WithPolicy sets the reconciliation policy and returns d.
func (d *Definition) WithPolicy(p *Policy) *Definition {
	d.Policy = p
	return d
}

// WithComment attaches leading comment metadata and returns d.
func (d *Definition) WithComment(kind syntax.Kind, text string) *Definition {
	d.LeadingTrivia = &Trivia{Kind: kind, Text: text}
	return d
}

// Set declares or overwrites a field, keeping the original position of an
// existing field.
func (d *Definition) Set(name string, value any) {
	if n, ok := value.(int); ok {
		value = float64(n)
	}
	for i := range d.Fields {
		if d.Fields[i].Name == name {
			d.Fields[i].Value = value
			return
		}
	}
	d.Fields = append(d.Fields, Field{Name: name, Value: value})
}

// Get returns the value of a declared field.
func (d *Definition) Get(name string) (any, bool) {
	if d == nil {
		return nil, false
	}
	for _, f := range d.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// String returns the string value of a field, or "" when it is absent or
// not a string.
func (d *Definition) String(name string) string {
	v, _ := d.Get(name)
	s, _ := v.(string)
	return s
}

// Bool returns the bool value of a field.
func (d *Definition) Bool(name string) bool {
	v, _ := d.Get(name)
	b, _ := v.(bool)
	return b
}

// Child returns the nested definition stored in a field.
func (d *Definition) Child(name string) *Definition {
	v, _ := d.Get(name)
	c, _ := v.(*Definition)
	return c
}

// List returns the list of definitions stored in a field.
func (d *Definition) List(name string) []*Definition {
	v, _ := d.Get(name)
	l, _ := v.([]*Definition)
	return l
}

// HasPolicy reports whether d carries a policy block at all.
func (d *Definition) HasPolicy() bool {
	return d != nil && d.Policy != nil
}

// Stripped returns a shallow copy of d without its policy. Nested
// definitions keep theirs.
func (d *Definition) Stripped() *Definition {
	if d == nil {
		return nil
	}
	out := *d
	out.Policy = nil
	return &out
}

// IsScalar reports whether v is a scalar field value.
func IsScalar(v any) bool {
	switch v.(type) {
	case string, bool, float64:
		return true
	}
	return false
}
