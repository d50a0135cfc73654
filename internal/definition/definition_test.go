package definition

import (
	"encoding/json"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/codeshape/internal/syntax"
)

const functionJSON = `{
  "kind": "SourceFile",
  "statements": [
    {
      "kind": "FunctionDeclaration",
      "name": "hello",
      "modifiers": [{"kind": "ExportKeyword"}],
      "type": {"kind": "VoidKeyword"},
      "__instructions": {
        "id": "name.text == \"hello\"",
        "rules": [
          {"instruction": "INSERT", "condition": "true", "index": "length(nodes)"},
          {"instruction": "REMOVE", "condition": "true", "field": "modifiers", "index": 0}
        ]
      },
      "leadingTrivia": {"kind": "SingleLineCommentTrivia", "text": " greets"}
    }
  ]
}`

func expectedFunction() *Definition {
	return New(syntax.SourceFile).With("statements", []*Definition{
		New(syntax.FunctionDeclaration).
			With("name", "hello").
			With("modifiers", []*Definition{New(syntax.ExportKeyword)}).
			With("type", New(syntax.VoidKeyword)).
			WithPolicy(&Policy{
				ID: `name.text == "hello"`,
				Rules: []Rule{
					{Instruction: "INSERT", Condition: "true", Index: ExprIndex("length(nodes)")},
					{Instruction: "REMOVE", Condition: "true", Field: "modifiers", Index: LiteralIndex(0)},
				},
			}).
			WithComment(syntax.SingleLineCommentTrivia, " greets"),
	})
}

func TestUnmarshalJSON(t *testing.T) {
	d, err := Unmarshal([]byte(functionJSON), FormatJSON)
	require.NoError(t, err)

	if diff := cmp.Diff(expectedFunction(), d); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestJSON_PreservesFieldOrder(t *testing.T) {
	d, err := Unmarshal([]byte(`{"kind":"FunctionDeclaration","type":{"kind":"VoidKeyword"},"name":"a","body":{"kind":"Block"}}`), FormatJSON)
	require.NoError(t, err)

	names := []string{}
	for _, f := range d.Fields {
		names = append(names, f.Name)
	}
	assert.Equal(t, []string{"type", "name", "body"}, names)

	raw, err := Marshal(d, FormatJSON)
	require.NoError(t, err)
	assert.JSONEq(t, `{"kind":"FunctionDeclaration","type":{"kind":"VoidKeyword"},"name":"a","body":{"kind":"Block"}}`, string(raw))

	back, err := Unmarshal(raw, FormatJSON)
	require.NoError(t, err)
	assert.Equal(t, d.Fields, back.Fields)
}

func TestJSON_RoundTrip(t *testing.T) {
	raw, err := json.Marshal(expectedFunction())
	require.NoError(t, err)

	var back Definition
	require.NoError(t, json.Unmarshal(raw, &back))
	if diff := cmp.Diff(expectedFunction(), &back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestUnmarshalJSON_Errors(t *testing.T) {
	testCases := []struct {
		name string
		raw  string
	}{
		{name: "not json", raw: `{`},
		{name: "not an object", raw: `[]`},
		{name: "missing kind", raw: `{"name":"a"}`},
		{name: "unknown kind", raw: `{"kind":"ClassDeclaration"}`},
		{name: "null field", raw: `{"kind":"Block","statements":null}`},
		{name: "list of scalars", raw: `{"kind":"Block","statements":[1]}`},
		{name: "rule without instruction", raw: `{"kind":"Block","__policy":{"rules":[{"condition":"true"}]}}`},
		{name: "fractional index", raw: `{"kind":"Block","__policy":{"rules":[{"instruction":"INSERT","condition":"true","index":1.5}]}}`},
		{name: "bad trivia", raw: `{"kind":"Block","leadingTrivia":{"kind":"Identifier","text":"x"}}`},
		{name: "duplicate policy", raw: `{"kind":"Block","__policy":{},"__instructions":{}}`},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := Unmarshal([]byte(tc.raw), FormatJSON)
			require.Error(t, err)
		})
	}
}

const functionYAML = `
kind: SourceFile
statements:
  - kind: FunctionDeclaration
    name: hello
    modifiers:
      - kind: ExportKeyword
    type:
      kind: VoidKeyword
    __policy:
      id: name.text == "hello"
      rules:
        - instruction: INSERT
          condition: "true"
          index: length(nodes)
        - instruction: REMOVE
          condition: "true"
          field: modifiers
          index: 0
    leadingTrivia:
      kind: SingleLineCommentTrivia
      text: " greets"
`

func TestUnmarshalYAML(t *testing.T) {
	d, err := Unmarshal([]byte(functionYAML), FormatYAML)
	require.NoError(t, err)

	if diff := cmp.Diff(expectedFunction(), d); diff != "" {
		t.Errorf("Unmarshal() mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML_RoundTrip(t *testing.T) {
	raw, err := Marshal(expectedFunction(), FormatYAML)
	require.NoError(t, err)

	back, err := Unmarshal(raw, FormatYAML)
	require.NoError(t, err)
	if diff := cmp.Diff(expectedFunction(), back); diff != "" {
		t.Errorf("round trip mismatch (-want +got):\n%s", diff)
	}
}

func TestYAML_ScalarTypes(t *testing.T) {
	d, err := Unmarshal([]byte("kind: Block\nmultiline: true\ncount: 3\nlabel: \"3\"\n"), FormatYAML)
	require.NoError(t, err)
	assert.Equal(t, true, d.Bool("multiline"))
	v, _ := d.Get("count")
	assert.Equal(t, float64(3), v)
	assert.Equal(t, "3", d.String("label"))
}

func TestFormatForPath(t *testing.T) {
	assert.Equal(t, FormatYAML, FormatForPath("shape.yaml"))
	assert.Equal(t, FormatYAML, FormatForPath("shape.YML"))
	assert.Equal(t, FormatJSON, FormatForPath("shape.json"))
	assert.Equal(t, FormatJSON, FormatForPath("shape"))
}

func TestDefinition_Accessors(t *testing.T) {
	d := New(syntax.FunctionDeclaration).With("name", "a").With("body", New(syntax.Block)).With("name", "b")
	require.Len(t, d.Fields, 2)
	assert.Equal(t, "b", d.String("name"))
	assert.Equal(t, syntax.Block, d.Child("body").Kind)
	assert.Nil(t, d.List("parameters"))

	d.Policy = &Policy{ID: "true"}
	stripped := d.Stripped()
	assert.Nil(t, stripped.Policy)
	assert.NotNil(t, d.Policy)
	assert.True(t, d.HasPolicy())
	assert.False(t, stripped.HasPolicy())
}
