// Package instruction defines the edit operations produced by the engine and
// consumed by the executor.
package instruction

import (
	"strconv"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/nodeid"
)

// Type is the kind of edit an Instruction performs.
type Type int

const (
	Add Type = iota + 1
	Set
	Insert
	Replace
	Remove
	Unset
)

var typeNames = map[Type]string{
	Add:     "ADD",
	Set:     "SET",
	Insert:  "INSERT",
	Replace: "REPLACE",
	Remove:  "REMOVE",
	Unset:   "UNSET",
}

// Types lists every instruction type in declaration order.
var Types = []Type{Add, Set, Insert, Replace, Remove, Unset}

func (t Type) String() string {
	if name, ok := typeNames[t]; ok {
		return name
	}
	return "INVALID"
}

// ParseType looks a type up by its wire name.
func ParseType(name string) (Type, error) {
	for t, n := range typeNames {
		if n == name {
			return t, nil
		}
	}
	return 0, errors.Newf("unknown instruction type %q", name)
}

// MarshalText implements encoding.TextMarshaler.
func (t Type) MarshalText() ([]byte, error) {
	if _, ok := typeNames[t]; !ok {
		return nil, errors.Newf("cannot marshal instruction type %d", int(t))
	}
	return []byte(t.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (t *Type) UnmarshalText(text []byte) error {
	parsed, err := ParseType(string(text))
	if err != nil {
		return err
	}
	*t = parsed
	return nil
}

// HasDefinition reports whether instructions of this type carry a payload.
func (t Type) HasDefinition() bool {
	return t == Add || t == Set || t == Insert || t == Replace
}

// HasIndex reports whether instructions of this type carry an index.
func (t Type) HasIndex() bool {
	return t == Insert || t == Replace || t == Remove
}

// Instruction is a single edit: Path addresses the node that owns Field.
type Instruction struct {
	Type       Type                   `json:"type"`
	Path       nodeid.Address         `json:"path,omitzero"`
	Field      string                 `json:"field"`
	Index      *int                   `json:"index,omitempty"`
	Definition *definition.Definition `json:"definition,omitempty"`
}

// Validate checks that the instruction carries exactly the members its type
// requires.
func (i Instruction) Validate() error {
	if _, ok := typeNames[i.Type]; !ok {
		return errs.Newf(errs.ErrInvalidInstruction, "invalid instruction type %d", int(i.Type))
	}
	if i.Field == "" {
		return errs.Newf(errs.ErrInvalidInstruction, "%s instruction requires a field", i.Type)
	}
	switch {
	case i.Type.HasDefinition() && i.Definition == nil:
		return errs.Newf(errs.ErrInvalidInstruction, "%s instruction requires a definition", i.Type)
	case !i.Type.HasDefinition() && i.Definition != nil:
		return errs.Newf(errs.ErrInvalidInstruction, "%s instruction must not carry a definition", i.Type)
	case i.Type.HasIndex() && i.Index == nil:
		return errs.Newf(errs.ErrInvalidInstruction, "%s instruction requires an index", i.Type)
	case !i.Type.HasIndex() && i.Index != nil:
		return errs.Newf(errs.ErrInvalidInstruction, "%s instruction must not carry an index", i.Type)
	}
	return nil
}

// String renders a short human readable form, e.g. INSERT statements[0].body.statements@2.
func (i Instruction) String() string {
	target := i.Field
	if !i.Path.IsRoot() {
		target = i.Path.String() + "." + i.Field
	}
	if i.Index != nil {
		return i.Type.String() + " " + target + "@" + strconv.Itoa(*i.Index)
	}
	return i.Type.String() + " " + target
}

// New creates an instruction. index is ignored for types that carry none,
// and def is stripped of its policy.
func New(t Type, path nodeid.Address, field string, index int, def *definition.Definition) Instruction {
	in := Instruction{Type: t, Path: path, Field: field}
	if t.HasIndex() {
		in.Index = lo.ToPtr(index)
	}
	if t.HasDefinition() {
		in.Definition = def.Stripped()
	}
	return in
}
