package instruction

import (
	"encoding/json"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/samber/lo"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/nodeid"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

func TestParseType(t *testing.T) {
	for _, typ := range Types {
		t.Run(typ.String(), func(t *testing.T) {
			parsed, err := ParseType(typ.String())
			require.NoError(t, err)
			assert.Equal(t, typ, parsed)
		})
	}

	_, err := ParseType("MOVE")
	require.Error(t, err)
	assert.Equal(t, "INVALID", Type(0).String())
}

func TestValidate(t *testing.T) {
	def := definition.New(syntax.VoidKeyword)
	testCases := []struct {
		name      string
		in        Instruction
		expectErr bool
	}{
		{name: "add", in: Instruction{Type: Add, Field: "statements", Definition: def}},
		{name: "set", in: Instruction{Type: Set, Field: "type", Definition: def}},
		{name: "insert", in: Instruction{Type: Insert, Field: "statements", Index: lo.ToPtr(0), Definition: def}},
		{name: "replace", in: Instruction{Type: Replace, Field: "statements", Index: lo.ToPtr(1), Definition: def}},
		{name: "remove", in: Instruction{Type: Remove, Field: "statements", Index: lo.ToPtr(0)}},
		{name: "unset", in: Instruction{Type: Unset, Field: "type"}},
		{name: "zero type", in: Instruction{Field: "statements"}, expectErr: true},
		{name: "missing field", in: Instruction{Type: Unset}, expectErr: true},
		{name: "add without definition", in: Instruction{Type: Add, Field: "statements"}, expectErr: true},
		{name: "insert without index", in: Instruction{Type: Insert, Field: "statements", Definition: def}, expectErr: true},
		{name: "remove with definition", in: Instruction{Type: Remove, Field: "statements", Index: lo.ToPtr(0), Definition: def}, expectErr: true},
		{name: "set with index", in: Instruction{Type: Set, Field: "type", Index: lo.ToPtr(0), Definition: def}, expectErr: true},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := tc.in.Validate()
			if tc.expectErr {
				require.Error(t, err)
				assert.True(t, errors.Is(err, errs.ErrInvalidInstruction))
				return
			}
			require.NoError(t, err)
		})
	}
}

func TestNew_StripsPolicyAndIgnoresIndex(t *testing.T) {
	def := definition.New(syntax.FunctionDeclaration).With("name", "a").WithPolicy(&definition.Policy{ID: "true"})

	add := New(Add, nodeid.Root(), "statements", 3, def)
	assert.Nil(t, add.Index)
	require.NotNil(t, add.Definition)
	assert.Nil(t, add.Definition.Policy)
	assert.NotNil(t, def.Policy, "source definition must keep its policy")

	remove := New(Remove, nodeid.MustParse("statements[0]"), "modifiers", 0, def)
	assert.Nil(t, remove.Definition)
	assert.Equal(t, 0, *remove.Index)
	require.NoError(t, remove.Validate())
}

func TestInstruction_JSON(t *testing.T) {
	in := []Instruction{
		New(Insert, nodeid.MustParse("statements[0].body"), "statements", 1, definition.New(syntax.ReturnStatement)),
		New(Unset, nodeid.Root(), "type", 0, nil),
	}

	raw, err := json.Marshal(in)
	require.NoError(t, err)
	assert.JSONEq(t, `[
		{"type":"INSERT","path":"statements[0].body","field":"statements","index":1,"definition":{"kind":"ReturnStatement"}},
		{"type":"UNSET","field":"type"}
	]`, string(raw))

	var back []Instruction
	require.NoError(t, json.Unmarshal(raw, &back))
	if diff := cmp.Diff(in, back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestInstruction_String(t *testing.T) {
	assert.Equal(t, "ADD statements", New(Add, nodeid.Root(), "statements", 0, definition.New(syntax.Block)).String())
	assert.Equal(t, "REMOVE statements[0].modifiers@1", New(Remove, nodeid.MustParse("statements[0]"), "modifiers", 1, nil).String())
}
