package syntax

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestPrint(t *testing.T) {
	testCases := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			name:     "empty file",
			node:     &File{},
			expected: "",
		},
		{
			name:     "empty function",
			node:     &Function{Name: NewIdent("hello"), Body: &BlockStmt{}},
			expected: "function hello() {}",
		},
		{
			name:     "function with return type",
			node:     &Function{Name: NewIdent("hello"), ReturnType: NewToken(VoidKeyword), Body: &BlockStmt{}},
			expected: "function hello(): void {}",
		},
		{
			name: "modifiers and generator",
			node: &Function{
				Exported: true, Default: true, Async: true, Generator: true,
				Name: NewIdent("run"),
				Body: &BlockStmt{},
			},
			expected: "export default async function* run() {}",
		},
		{
			name: "parameters",
			node: &Function{
				Name: NewIdent("greet"),
				Parameters: []*Param{
					{Name: NewIdent("name"), Type: NewToken(StringKeyword)},
					{Name: NewIdent("times"), Optional: true, Type: NewToken(NumberKeyword)},
				},
				Body: &BlockStmt{},
			},
			expected: "function greet(name: string, times?: number) {}",
		},
		{
			name: "body statements",
			node: &Function{
				Name: NewIdent("main"),
				Body: &BlockStmt{Statements: []Node{
					&ExprStmt{Expression: &Call{
						Expression: &PropertyAccess{Expression: NewIdent("console"), Name: NewIdent("log")},
						Arguments:  []Node{NewString("hi"), NewNumber("1")},
					}},
					&ReturnStmt{},
				}},
			},
			expected: "function main() {\n    console.log(\"hi\", 1);\n    return;\n}",
		},
		{
			name: "interface",
			node: &Interface{
				Exported: true,
				Name:     NewIdent("User"),
				Members: []Node{
					&Property{Name: NewIdent("id"), Type: NewToken(NumberKeyword)},
					&Property{Readonly: true, Name: NewIdent("email"), Optional: true, Type: NewToken(StringKeyword)},
				},
			},
			expected: "export interface User {\n    id: number;\n    readonly email?: string;\n}",
		},
		{
			name:     "empty interface",
			node:     &Interface{Declare: true, Name: NewIdent("Empty")},
			expected: "declare interface Empty {\n}",
		},
		{
			name: "statements joined by newline",
			node: &File{Statements: []Node{
				&Function{Name: NewIdent("a"), Body: &BlockStmt{}},
				&Function{Name: NewIdent("b"), Body: &BlockStmt{}},
			}},
			expected: "function a() {}\nfunction b() {}",
		},
		{
			name:     "multiline empty block",
			node:     &BlockStmt{Multiline: true},
			expected: "{\n}",
		},
		{
			name:     "return with value",
			node:     &ReturnStmt{Expression: NewNumber("42")},
			expected: "return 42;",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Print(tc.node))
		})
	}
}

func TestPrint_LeadingComments(t *testing.T) {
	fn := &Function{Name: NewIdent("hello"), Body: &BlockStmt{}}
	fn.AddLeadingComment(Comment{Kind: SingleLineCommentTrivia, Text: " greets"})
	fn.AddLeadingComment(Comment{Kind: MultiLineCommentTrivia, Text: "* @public "})

	file := &File{Statements: []Node{fn}}
	assert.Equal(t, "// greets\n/** @public */\nfunction hello() {}", Print(file))
}

func TestPrint_TrailingComments(t *testing.T) {
	line := func(text string) Comment { return Comment{Kind: SingleLineCommentTrivia, Text: text} }

	testCases := []struct {
		name     string
		node     Node
		expected string
	}{
		{
			name:     "file",
			node:     &File{Statements: []Node{&Function{Name: NewIdent("a"), Body: &BlockStmt{}}}, TrailingComments: []Comment{line(" x"), line(" y")}},
			expected: "function a() {}\n// x\n// y",
		},
		{
			name:     "file without statements",
			node:     &File{TrailingComments: []Comment{line(" only")}},
			expected: "// only",
		},
		{
			name:     "block",
			node:     &BlockStmt{Statements: []Node{&ReturnStmt{}}, TrailingComments: []Comment{line(" done")}},
			expected: "{\n    return;\n    // done\n}",
		},
		{
			name:     "block holding only a comment",
			node:     &BlockStmt{TrailingComments: []Comment{{Kind: MultiLineCommentTrivia, Text: " later "}}},
			expected: "{\n    /* later */\n}",
		},
		{
			name:     "interface",
			node:     &Interface{Name: NewIdent("A"), TrailingComments: []Comment{line(" todo")}},
			expected: "interface A {\n    // todo\n}",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, Print(tc.node))
		})
	}
}

func TestPrint_NestedIndent(t *testing.T) {
	fn := &Function{
		Name: NewIdent("outer"),
		Body: &BlockStmt{Statements: []Node{
			&BlockStmt{Statements: []Node{&ReturnStmt{}}},
		}},
	}
	assert.Equal(t, "function outer() {\n    {\n        return;\n    }\n}", Print(fn))
}
