package syntax

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

// Kind tags every node of the tree. The set is closed: nodes of any other
// kind cannot be represented.
type Kind int

const (
	Unknown Kind = iota

	SourceFile
	FunctionDeclaration
	InterfaceDeclaration
	PropertySignature
	Parameter
	Block
	ExpressionStatement
	ReturnStatement
	CallExpression
	PropertyAccessExpression
	Identifier
	StringLiteral
	NumericLiteral

	// Keyword type nodes.
	VoidKeyword
	StringKeyword
	NumberKeyword
	BooleanKeyword
	AnyKeyword
	UnknownKeyword
	NeverKeyword
	UndefinedKeyword
	ObjectKeyword

	// Modifiers.
	ExportKeyword
	DefaultKeyword
	AsyncKeyword
	DeclareKeyword
	ReadonlyKeyword

	// Punctuation.
	QuestionToken
	AsteriskToken

	// Trivia.
	SingleLineCommentTrivia
	MultiLineCommentTrivia
)

var kindNames = map[Kind]string{
	Unknown:                  "Unknown",
	SourceFile:               "SourceFile",
	FunctionDeclaration:      "FunctionDeclaration",
	InterfaceDeclaration:     "InterfaceDeclaration",
	PropertySignature:        "PropertySignature",
	Parameter:                "Parameter",
	Block:                    "Block",
	ExpressionStatement:      "ExpressionStatement",
	ReturnStatement:          "ReturnStatement",
	CallExpression:           "CallExpression",
	PropertyAccessExpression: "PropertyAccessExpression",
	Identifier:               "Identifier",
	StringLiteral:            "StringLiteral",
	NumericLiteral:           "NumericLiteral",
	VoidKeyword:              "VoidKeyword",
	StringKeyword:            "StringKeyword",
	NumberKeyword:            "NumberKeyword",
	BooleanKeyword:           "BooleanKeyword",
	AnyKeyword:               "AnyKeyword",
	UnknownKeyword:           "UnknownKeyword",
	NeverKeyword:             "NeverKeyword",
	UndefinedKeyword:         "UndefinedKeyword",
	ObjectKeyword:            "ObjectKeyword",
	ExportKeyword:            "ExportKeyword",
	DefaultKeyword:           "DefaultKeyword",
	AsyncKeyword:             "AsyncKeyword",
	DeclareKeyword:           "DeclareKeyword",
	ReadonlyKeyword:          "ReadonlyKeyword",
	QuestionToken:            "QuestionToken",
	AsteriskToken:            "AsteriskToken",
	SingleLineCommentTrivia:  "SingleLineCommentTrivia",
	MultiLineCommentTrivia:   "MultiLineCommentTrivia",
}

var kindsByName = func() map[string]Kind {
	m := make(map[string]Kind, len(kindNames))
	for k, name := range kindNames {
		m[name] = k
	}
	return m
}()

// keywordText is the source spelling of token-like kinds.
var keywordText = map[Kind]string{
	VoidKeyword:      "void",
	StringKeyword:    "string",
	NumberKeyword:    "number",
	BooleanKeyword:   "boolean",
	AnyKeyword:       "any",
	UnknownKeyword:   "unknown",
	NeverKeyword:     "never",
	UndefinedKeyword: "undefined",
	ObjectKeyword:    "object",
	ExportKeyword:    "export",
	DefaultKeyword:   "default",
	AsyncKeyword:     "async",
	DeclareKeyword:   "declare",
	ReadonlyKeyword:  "readonly",
	QuestionToken:    "?",
	AsteriskToken:    "*",
}

// String returns the canonical name of the kind.
func (k Kind) String() string {
	if name, ok := kindNames[k]; ok {
		return name
	}
	return fmt.Sprintf("Kind(%d)", int(k))
}

// ParseKind looks a kind up by its canonical name.
func ParseKind(name string) (Kind, error) {
	if k, ok := kindsByName[name]; ok && k != Unknown {
		return k, nil
	}
	return Unknown, errors.Newf("unknown syntax kind %q", name)
}

// KindForKeyword returns the kind spelled by a keyword or punctuation token.
func KindForKeyword(text string) (Kind, bool) {
	for k, t := range keywordText {
		if t == text {
			return k, true
		}
	}
	return Unknown, false
}

// Text returns the source spelling of a token-like kind, or "" when the kind
// has no fixed spelling.
func (k Kind) Text() string {
	return keywordText[k]
}

// MarshalText implements encoding.TextMarshaler.
func (k Kind) MarshalText() ([]byte, error) {
	if _, ok := kindNames[k]; !ok {
		return nil, errors.Newf("cannot marshal %s", k)
	}
	return []byte(k.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (k *Kind) UnmarshalText(text []byte) error {
	parsed, err := ParseKind(string(text))
	if err != nil {
		return err
	}
	*k = parsed
	return nil
}

// IsKeywordType reports whether k is a keyword type node such as void.
func (k Kind) IsKeywordType() bool {
	return k >= VoidKeyword && k <= ObjectKeyword
}

// IsModifier reports whether k is a declaration modifier.
func (k Kind) IsModifier() bool {
	return k >= ExportKeyword && k <= ReadonlyKeyword
}

// IsToken reports whether k is a node without children of its own.
func (k Kind) IsToken() bool {
	return k >= VoidKeyword && k <= AsteriskToken
}

// IsComment reports whether k is a comment trivia kind.
func (k Kind) IsComment() bool {
	return k == SingleLineCommentTrivia || k == MultiLineCommentTrivia
}
