package syntax

// Comment is a comment attached in front of a node.
type Comment struct {
	Kind Kind // SingleLineCommentTrivia or MultiLineCommentTrivia
	Text string
}

// Node is a single element of the tree.
type Node interface {
	Kind() Kind
	LeadingComments() []Comment
	AddLeadingComment(c Comment)
}

type trivia struct {
	comments []Comment
}

func (t *trivia) LeadingComments() []Comment  { return t.comments }
func (t *trivia) AddLeadingComment(c Comment) { t.comments = append(t.comments, c) }

// File is the root of a parsed document.
type File struct {
	trivia
	Statements []Node
	// TrailingComments follow the last statement.
	TrailingComments []Comment
}

func (*File) Kind() Kind { return SourceFile }

// Function is a function declaration. Its modifiers are stored as flags.
type Function struct {
	trivia
	Exported   bool
	Default    bool
	Async      bool
	Generator  bool
	Name       *Ident
	Parameters []*Param
	ReturnType Node
	Body       *BlockStmt
}

func (*Function) Kind() Kind { return FunctionDeclaration }

// Interface is an interface declaration.
type Interface struct {
	trivia
	Exported bool
	Declare  bool
	Name     *Ident
	Members  []Node
	// TrailingComments follow the last member, inside the braces.
	TrailingComments []Comment
}

func (*Interface) Kind() Kind { return InterfaceDeclaration }

// Property is a property signature inside an interface body.
type Property struct {
	trivia
	Readonly bool
	Name     *Ident
	Optional bool
	Type     Node
}

func (*Property) Kind() Kind { return PropertySignature }

// Param is a function parameter.
type Param struct {
	trivia
	Name     *Ident
	Optional bool
	Type     Node
}

func (*Param) Kind() Kind { return Parameter }

// BlockStmt is a braced statement list.
type BlockStmt struct {
	trivia
	Statements []Node
	// TrailingComments follow the last statement, inside the braces.
	TrailingComments []Comment
	Multiline        bool
}

func (*BlockStmt) Kind() Kind { return Block }

// ExprStmt is an expression used as a statement.
type ExprStmt struct {
	trivia
	Expression Node
}

func (*ExprStmt) Kind() Kind { return ExpressionStatement }

// ReturnStmt is a return statement with an optional expression.
type ReturnStmt struct {
	trivia
	Expression Node
}

func (*ReturnStmt) Kind() Kind { return ReturnStatement }

// Call is a call expression.
type Call struct {
	trivia
	Expression Node
	Arguments  []Node
}

func (*Call) Kind() Kind { return CallExpression }

// PropertyAccess is a dotted member access such as console.log.
type PropertyAccess struct {
	trivia
	Expression Node
	Name       *Ident
}

func (*PropertyAccess) Kind() Kind { return PropertyAccessExpression }

// Ident is an identifier.
type Ident struct {
	trivia
	Text string
}

func (*Ident) Kind() Kind { return Identifier }

// Literal is a string or numeric literal. Text holds the unquoted value.
type Literal struct {
	trivia
	LiteralKind Kind
	Text        string
}

func (l *Literal) Kind() Kind { return l.LiteralKind }

// Token is a node without children: keyword types, modifiers and
// punctuation.
type Token struct {
	trivia
	TokenKind Kind
}

func (t *Token) Kind() Kind { return t.TokenKind }

// NewIdent creates an identifier.
func NewIdent(text string) *Ident { return &Ident{Text: text} }

// NewToken creates a token node of the given kind.
func NewToken(kind Kind) *Token { return &Token{TokenKind: kind} }

// NewString creates a string literal.
func NewString(text string) *Literal { return &Literal{LiteralKind: StringLiteral, Text: text} }

// NewNumber creates a numeric literal.
func NewNumber(text string) *Literal { return &Literal{LiteralKind: NumericLiteral, Text: text} }

// IsStatement reports whether n may appear in a statement list.
func IsStatement(n Node) bool {
	switch n.(type) {
	case *Function, *Interface, *BlockStmt, *ExprStmt, *ReturnStmt:
		return true
	}
	return false
}

// IsExpression reports whether n is an expression.
func IsExpression(n Node) bool {
	switch n.(type) {
	case *Call, *PropertyAccess, *Ident, *Literal:
		return true
	}
	return false
}

// IsTypeNode reports whether n may be used as a type annotation.
func IsTypeNode(n Node) bool {
	return n != nil && n.Kind().IsKeywordType()
}

// IsTypeElement reports whether n may appear in an interface body.
func IsTypeElement(n Node) bool {
	_, ok := n.(*Property)
	return ok
}
