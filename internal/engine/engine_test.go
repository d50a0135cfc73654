package engine

import (
	"context"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/nodeid"
	"github.com/specialistvlad/codeshape/internal/query"
	"github.com/specialistvlad/codeshape/internal/syntax"
	"github.com/specialistvlad/codeshape/internal/testutil"
)

func newEngine(t *testing.T) *Engine {
	t.Helper()
	return New(testutil.NewRegistry(t), query.NewHCL())
}

func fileDef(stmts ...*definition.Definition) *definition.Definition {
	return definition.New(syntax.SourceFile).With("statements", stmts)
}

func funcDef(name string) *definition.Definition {
	return definition.New(syntax.FunctionDeclaration).
		With("name", name).
		WithPolicy(&definition.Policy{ID: `name.text == "` + name + `"`})
}

func rulesOnly(kind syntax.Kind, rules ...definition.Rule) *definition.Definition {
	return definition.New(kind).WithPolicy(&definition.Policy{Rules: rules})
}

func summaries(instrs []instruction.Instruction) []string {
	out := make([]string, len(instrs))
	for i, in := range instrs {
		out[i] = in.String()
	}
	return out
}

func TestGenerate_EmptyDocument(t *testing.T) {
	e := newEngine(t)
	ctx, logs := testutil.Context(t)
	hello := funcDef("hello").With("modifiers", []*definition.Definition{definition.New(syntax.ExportKeyword)})

	instrs, err := e.Generate(ctx, testutil.File(), fileDef(hello))
	require.NoError(t, err)

	expected := []instruction.Instruction{{
		Type:       instruction.Add,
		Path:       nodeid.Root(),
		Field:      "statements",
		Definition: hello.Stripped(),
	}}
	if diff := cmp.Diff(expected, instrs); diff != "" {
		t.Errorf("instructions mismatch (-want +got):\n%s", diff)
	}
	assert.Nil(t, instrs[0].Definition.Policy, "payload must not carry the policy")
	assert.NotNil(t, hello.Policy, "the caller's definition is left untouched")
	assert.Contains(t, logs.String(), "Instruction generated.")
}

func TestGenerate_SchemaMismatch(t *testing.T) {
	e := newEngine(t)

	t.Run("root", func(t *testing.T) {
		_, err := e.Generate(context.Background(), testutil.File(), funcDef("hello"))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrSchemaMismatch))
		assert.Contains(t, err.Error(), "FunctionDeclaration")
		assert.Contains(t, err.Error(), "SourceFile")
	})

	t.Run("matched node of another kind", func(t *testing.T) {
		root := testutil.File(testutil.Iface("hello"))
		_, err := e.Generate(context.Background(), root, fileDef(funcDef("hello")))
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrSchemaMismatch))
		assert.Contains(t, err.Error(), "statements[0]")
	})

	t.Run("list declared for a single field", func(t *testing.T) {
		root := testutil.File(testutil.Func("hello"))
		def := fileDef(funcDef("hello").With("type", []*definition.Definition{definition.New(syntax.VoidKeyword)}))
		_, err := e.Generate(context.Background(), root, def)
		require.Error(t, err)
		assert.True(t, errors.Is(err, errs.ErrSchemaMismatch))
	})
}

func TestGenerate_UnknownField(t *testing.T) {
	e := newEngine(t)
	root := testutil.File(testutil.Func("hello"))

	testCases := []struct {
		name string
		def  *definition.Definition
	}{
		{name: "node field", def: fileDef(funcDef("hello").With("decorators", []*definition.Definition{}))},
		{name: "scalar field", def: fileDef(funcDef("hello").With("colour", "red"))},
		{name: "root field", def: definition.New(syntax.SourceFile).With("imports", []*definition.Definition{})},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Generate(context.Background(), root, tc.def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrUnknownField))
		})
	}
}

func TestGenerate_Matching(t *testing.T) {
	e := newEngine(t)
	existing := testutil.Func("hello")
	existing.ReturnType = syntax.NewToken(syntax.StringKeyword)

	testCases := []struct {
		name     string
		root     func() syntax.Node
		def      *definition.Definition
		expected []string
	}{
		{
			name:     "matched item recurses",
			root:     func() syntax.Node { return testutil.File(testutil.Func("hello")) },
			def:      fileDef(funcDef("hello").With("type", definition.New(syntax.VoidKeyword))),
			expected: []string{"SET statements[0].type"},
		},
		{
			name:     "unmatched item is added",
			root:     func() syntax.Node { return testutil.File(testutil.Func("hello")) },
			def:      fileDef(funcDef("bye")),
			expected: []string{"ADD statements"},
		},
		{
			name:     "item without policy is always added",
			root:     func() syntax.Node { return testutil.File(testutil.Func("hello")) },
			def:      fileDef(definition.New(syntax.FunctionDeclaration).With("name", "hello")),
			expected: []string{"ADD statements"},
		},
		{
			name:     "first match wins",
			root:     func() syntax.Node { return testutil.File(testutil.Func("a"), testutil.Func("b"), testutil.Func("b")) },
			def:      fileDef(funcDef("b").With("type", definition.New(syntax.VoidKeyword))),
			expected: []string{"SET statements[1].type"},
		},
		{
			name: "nested lists",
			root: func() syntax.Node {
				return testutil.File(testutil.Iface("User", testutil.Prop("id", syntax.NumberKeyword)))
			},
			def: fileDef(definition.New(syntax.InterfaceDeclaration).
				With("name", "User").
				WithPolicy(&definition.Policy{ID: `name.text == "User"`}).
				With("members", []*definition.Definition{
					definition.New(syntax.PropertySignature).
						With("name", "id").
						WithPolicy(&definition.Policy{ID: `name.text == "id"`}).
						With("modifiers", []*definition.Definition{definition.New(syntax.ReadonlyKeyword)}),
					definition.New(syntax.PropertySignature).With("name", "email").With("type", definition.New(syntax.StringKeyword)),
				})),
			expected: []string{"ADD statements[0].members[0].modifiers", "ADD statements[0].members"},
		},
		{
			name:     "single field predicate without match sets",
			root:     func() syntax.Node { return testutil.File(existing) },
			def:      fileDef(funcDef("hello").With("type", definition.New(syntax.VoidKeyword).WithPolicy(&definition.Policy{ID: `kind == "VoidKeyword"`}))),
			expected: []string{"SET statements[0].type"},
		},
		{
			name:     "single field predicate with match recurses",
			root:     func() syntax.Node { return testutil.File(existing) },
			def:      fileDef(funcDef("hello").With("type", definition.New(syntax.StringKeyword).WithPolicy(&definition.Policy{ID: `kind == "StringKeyword"`}))),
			expected: []string{},
		},
		{
			name:     "present single field without predicate is kept",
			root:     func() syntax.Node { return testutil.File(existing) },
			def:      fileDef(funcDef("hello").With("type", definition.New(syntax.VoidKeyword))),
			expected: []string{},
		},
		{
			name:     "predicate hitting a null attribute does not match",
			root:     func() syntax.Node { return testutil.File(testutil.Func("hello")) },
			def:      fileDef(definition.New(syntax.FunctionDeclaration).With("name", "x").WithPolicy(&definition.Policy{ID: `type.kind == "VoidKeyword"`})),
			expected: []string{"ADD statements"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			instrs, err := e.Generate(context.Background(), tc.root(), tc.def)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, summaries(instrs))
		})
	}
}

func TestGenerate_Rules(t *testing.T) {
	e := newEngine(t)
	root := func() syntax.Node { return testutil.File(testutil.Func("a"), testutil.Func("b")) }

	testCases := []struct {
		name     string
		def      *definition.Definition
		expected []string
	}{
		{
			name:     "REMOVE defaults to the matched index",
			def:      fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{Instruction: "REMOVE", Condition: `name.text == "b"`})),
			expected: []string{"REMOVE statements@1"},
		},
		{
			name: "INSERT at the list length appends",
			def: fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{
				Instruction: "INSERT", Condition: `name.text == "a"`, Index: definition.ExprIndex("length(nodes)"),
			}).With("name", "c")),
			expected: []string{"INSERT statements@2"},
		},
		{
			name: "REPLACE defaults to the matched index",
			def: fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{
				Instruction: "REPLACE", Condition: `name.text == "b"`,
			}).With("name", "c")),
			expected: []string{"REPLACE statements@1"},
		},
		{
			name: "REMOVE at the last index",
			def: fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{
				Instruction: "REMOVE", Condition: `true`, Index: definition.ExprIndex("length(nodes) - 1"),
			})),
			expected: []string{"REMOVE statements@1"},
		},
		{
			name: "literal index is passed through",
			def: fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{
				Instruction: "INSERT", Condition: `true`, Index: definition.LiteralIndex(7),
			}).With("name", "c")),
			expected: []string{"INSERT statements@7"},
		},
		{
			name:     "unmatched condition emits nothing",
			def:      fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{Instruction: "REMOVE", Condition: `name.text == "z"`})),
			expected: []string{},
		},
		{
			name: "UNSET with a field acts on the matched node",
			def: fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{
				Instruction: "UNSET", Condition: `name.text == "b"`, Field: "body",
			})),
			expected: []string{"UNSET statements[1].body"},
		},
		{
			name: "REMOVE with a field indexes into the matched node",
			def: fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{
				Instruction: "REMOVE", Condition: `name.text == "a"`, Field: "parameters", Index: definition.LiteralIndex(0),
			})),
			expected: []string{"REMOVE statements[0].parameters@0"},
		},
		{
			name: "matched item and its rules in declaration order",
			def: fileDef(funcDef("a").With("type", definition.New(syntax.VoidKeyword)).WithPolicy(&definition.Policy{
				ID:    `name.text == "a"`,
				Rules: []definition.Rule{{Instruction: "REMOVE", Condition: `name.text == "b"`}},
			})),
			expected: []string{"SET statements[0].type", "REMOVE statements@1"},
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			instrs, err := e.Generate(context.Background(), root(), tc.def)
			require.NoError(t, err)
			assert.Equal(t, tc.expected, summaries(instrs))
			for _, in := range instrs {
				require.NoError(t, in.Validate())
			}
		})
	}
}

func TestGenerate_InvalidIndex(t *testing.T) {
	e := newEngine(t)
	root := testutil.File(testutil.Func("a"), testutil.Func("b"))

	testCases := []struct {
		name          string
		instruction   string
		index         string
		expectedBound int
		expectedValue any
	}{
		{name: "REPLACE at length", instruction: "REPLACE", index: "length(nodes)", expectedBound: 1, expectedValue: 2},
		{name: "REMOVE at length", instruction: "REMOVE", index: "length(nodes)", expectedBound: 1, expectedValue: 2},
		{name: "INSERT past length", instruction: "INSERT", index: "length(nodes) + 1", expectedBound: 2, expectedValue: 3},
		{name: "negative", instruction: "INSERT", index: "-1", expectedBound: 2, expectedValue: -1},
		{name: "fraction", instruction: "INSERT", index: "0.5", expectedBound: 2, expectedValue: 0.5},
		{name: "not a number", instruction: "REMOVE", index: `"first"`, expectedBound: 1, expectedValue: "first"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			def := fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{
				Instruction: tc.instruction, Condition: `true`, Index: definition.ExprIndex(tc.index),
			}).With("name", "c"))

			_, err := e.Generate(context.Background(), root, def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidIndex))

			var indexErr *errs.IndexError
			require.True(t, errors.As(err, &indexErr))
			assert.Equal(t, tc.instruction, indexErr.Instruction)
			assert.Equal(t, tc.expectedBound, indexErr.Bound)
			assert.Equal(t, tc.expectedValue, indexErr.Value)
		})
	}
}

func TestGenerate_InvalidRule(t *testing.T) {
	e := newEngine(t)
	root := testutil.File(testutil.Func("a"))

	testCases := []struct {
		name string
		def  *definition.Definition
	}{
		{
			name: "unknown instruction",
			def:  fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{Instruction: "MOVE", Condition: `true`})),
		},
		{
			name: "missing condition",
			def:  fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{Instruction: "REMOVE"})),
		},
		{
			name: "positional rule on another field without index",
			def: fileDef(rulesOnly(syntax.FunctionDeclaration, definition.Rule{
				Instruction: "REMOVE", Condition: `true`, Field: "parameters",
			})),
		},
		{
			name: "root rule without field",
			def:  fileDef().WithPolicy(&definition.Policy{Rules: []definition.Rule{{Instruction: "UNSET", Condition: `true`}}}),
		},
	}
	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			_, err := e.Generate(context.Background(), root, tc.def)
			require.Error(t, err)
			assert.True(t, errors.Is(err, errs.ErrInvalidRule), "got %v", err)
		})
	}
}

func TestGenerate_RootRulesRunFirst(t *testing.T) {
	e := newEngine(t)
	root := testutil.File(testutil.Func("a"), testutil.Func("b"))
	def := fileDef(definition.New(syntax.FunctionDeclaration).With("name", "c")).WithPolicy(&definition.Policy{
		Rules: []definition.Rule{{
			Instruction: "REMOVE",
			Condition:   `length(statements) > 1`,
			Field:       "statements",
			Index:       definition.ExprIndex("length(nodes) - 1"),
		}},
	})

	instrs, err := e.Generate(context.Background(), root, def)
	require.NoError(t, err)
	assert.Equal(t, []string{"REMOVE statements@1", "ADD statements"}, summaries(instrs))
	assert.True(t, instrs[0].Path.IsRoot())
}

func TestGenerate_Dialects(t *testing.T) {
	testCases := []struct {
		dialect string
		id      string
		index   string
	}{
		{dialect: query.DialectHCL, id: `name.text == "b"`, index: `length(nodes)`},
		{dialect: query.DialectExpr, id: `name.text == "b"`, index: `len(nodes)`},
		{dialect: query.DialectJQ, id: `.name.text == "b"`, index: `length`},
	}

	for _, tc := range testCases {
		t.Run(tc.dialect, func(t *testing.T) {
			eval, err := query.New(tc.dialect)
			require.NoError(t, err)
			e := New(testutil.NewRegistry(t), eval)

			root := testutil.File(testutil.Func("a"), testutil.Func("b"))
			def := fileDef(
				definition.New(syntax.FunctionDeclaration).With("name", "b").
					With("type", definition.New(syntax.VoidKeyword)).
					WithPolicy(&definition.Policy{
						ID:    tc.id,
						Rules: []definition.Rule{{Instruction: "INSERT", Condition: tc.id, Index: definition.ExprIndex(tc.index)}},
					}),
			)

			instrs, err := e.Generate(context.Background(), root, def)
			require.NoError(t, err)
			assert.Equal(t, []string{"SET statements[1].type", "INSERT statements@2"}, summaries(instrs))
		})
	}
}

func TestGenerate_MalformedPredicate(t *testing.T) {
	e := newEngine(t)
	root := testutil.File(testutil.Func("a"))
	def := fileDef(definition.New(syntax.FunctionDeclaration).WithPolicy(&definition.Policy{ID: `name.text ==`}))

	_, err := e.Generate(context.Background(), root, def)
	require.Error(t, err)
	assert.True(t, errors.Is(err, errs.ErrQuery))
}
