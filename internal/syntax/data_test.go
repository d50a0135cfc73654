package syntax

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
)

func TestData_Function(t *testing.T) {
	fn := &Function{
		Exported:   true,
		Name:       NewIdent("hello"),
		Parameters: []*Param{{Name: NewIdent("x")}},
		Body:       &BlockStmt{},
	}

	expected := map[string]any{
		"kind": "FunctionDeclaration",
		"name": map[string]any{"kind": "Identifier", "text": "hello"},
		"parameters": []any{
			map[string]any{
				"kind":          "Parameter",
				"name":          map[string]any{"kind": "Identifier", "text": "x"},
				"type":          nil,
				"questionToken": nil,
			},
		},
		"type":          nil,
		"modifiers":     []any{map[string]any{"kind": "ExportKeyword"}},
		"body":          map[string]any{"kind": "Block", "statements": []any{}, "multiline": false},
		"asteriskToken": nil,
	}

	if diff := cmp.Diff(expected, Data(fn)); diff != "" {
		t.Errorf("Data() mismatch (-want +got):\n%s", diff)
	}
}

func TestData_NilAndTokens(t *testing.T) {
	assert.Nil(t, Data(nil))
	var ident *Ident
	assert.Nil(t, Data(ident))
	assert.Equal(t, map[string]any{"kind": "VoidKeyword"}, Data(NewToken(VoidKeyword)))
	assert.Equal(t, map[string]any{"kind": "StringLiteral", "text": "a"}, Data(NewString("a")))
}

func TestData_ListsAreNeverNil(t *testing.T) {
	d := Data(&Interface{Name: NewIdent("I")})
	assert.NotNil(t, d["members"])
	assert.Empty(t, d["members"])
	assert.NotNil(t, d["modifiers"])
}

func TestModifiers_Order(t *testing.T) {
	fn := &Function{Async: true, Default: true, Exported: true}
	kinds := []Kind{}
	for _, m := range fn.Modifiers() {
		kinds = append(kinds, m.Kind())
	}
	assert.Equal(t, []Kind{ExportKeyword, DefaultKeyword, AsyncKeyword}, kinds)
	assert.Empty(t, (&Property{}).Modifiers())
}
