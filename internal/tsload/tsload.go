// Package tsload reads TypeScript source into a syntax tree using tree-sitter.
//
// Only the subset of the language the syntax package models is accepted:
// function and interface declarations with their modifiers, parameters,
// property signatures and keyword types, blocks, expression and return
// statements, calls, member accesses, identifiers, and string and numeric
// literals. Anything else is rejected with errs.ErrUnsupportedNodeKind so a
// file is never silently truncated.
package tsload

import (
	"context"
	"strings"
	"unicode/utf8"

	"github.com/cockroachdb/errors"
	sitter "github.com/smacker/go-tree-sitter"
	"github.com/smacker/go-tree-sitter/typescript/tsx"
	"github.com/smacker/go-tree-sitter/typescript/typescript"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Parse parses content and converts it into a source file. filePath selects
// the grammar (.tsx files use the TSX grammar) and is used in errors.
func Parse(ctx context.Context, content []byte, filePath string) (*syntax.File, error) {
	if err := ctx.Err(); err != nil {
		return nil, errors.Wrap(err, "parse canceled before start")
	}
	if !utf8.Valid(content) {
		return nil, errs.Newf(errs.ErrInvalidNode, "%s: content is not valid UTF-8", filePath)
	}

	parser := sitter.NewParser()
	if strings.HasSuffix(filePath, ".tsx") {
		parser.SetLanguage(tsx.GetLanguage())
	} else {
		parser.SetLanguage(typescript.GetLanguage())
	}

	tree, err := parser.ParseCtx(ctx, nil, content)
	if err != nil {
		return nil, errors.Wrapf(err, "tree-sitter parse of %s failed", filePath)
	}
	defer tree.Close()

	root := tree.RootNode()
	if root == nil {
		return nil, errs.Newf(errs.ErrInvalidNode, "%s: tree-sitter returned no root node", filePath)
	}
	if root.HasError() {
		return nil, errs.Newf(errs.ErrInvalidNode, "%s: source contains syntax errors", filePath)
	}

	c := &converter{src: content, path: filePath}
	stmts, trailing, err := c.statements(root)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Parsed TypeScript source.", "path", filePath, "statements", len(stmts), "trailing_comments", len(trailing))
	return &syntax.File{Statements: stmts, TrailingComments: trailing}, nil
}

type converter struct {
	src  []byte
	path string
}

func (c *converter) text(n *sitter.Node) string {
	return n.Content(c.src)
}

func (c *converter) unsupported(n *sitter.Node) error {
	p := n.StartPoint()
	return errs.Newf(errs.ErrUnsupportedNodeKind, "%s:%d:%d: %s is not supported", c.path, p.Row+1, p.Column+1, n.Type())
}

// comment converts a comment node into leading trivia.
func (c *converter) comment(n *sitter.Node) syntax.Comment {
	text := c.text(n)
	if strings.HasPrefix(text, "/*") {
		return syntax.Comment{Kind: syntax.MultiLineCommentTrivia, Text: strings.TrimSuffix(strings.TrimPrefix(text, "/*"), "*/")}
	}
	return syntax.Comment{Kind: syntax.SingleLineCommentTrivia, Text: strings.TrimPrefix(text, "//")}
}

// children converts the named children of n with convert, attaching any
// comments in between to the node that follows them. Comments after the last
// child are returned separately.
func children[T syntax.Node](c *converter, n *sitter.Node, convert func(*sitter.Node) (T, error)) ([]T, []syntax.Comment, error) {
	var (
		out     []T
		pending []syntax.Comment
	)
	for i := 0; i < int(n.NamedChildCount()); i++ {
		child := n.NamedChild(i)
		if child.Type() == "comment" {
			pending = append(pending, c.comment(child))
			continue
		}
		node, err := convert(child)
		if err != nil {
			return nil, nil, err
		}
		for _, cm := range pending {
			node.AddLeadingComment(cm)
		}
		pending = nil
		out = append(out, node)
	}
	return out, pending, nil
}

// inline converts children that sit inside a single line construct, such as
// parameters or arguments, where a trailing comment has nowhere to go.
func inline[T syntax.Node](c *converter, n *sitter.Node, convert func(*sitter.Node) (T, error)) ([]T, error) {
	out, trailing, err := children(c, n, convert)
	if err != nil {
		return nil, err
	}
	if len(trailing) > 0 {
		return nil, c.unsupported(n.NamedChild(int(n.NamedChildCount()) - 1))
	}
	return out, nil
}

func (c *converter) statements(n *sitter.Node) ([]syntax.Node, []syntax.Comment, error) {
	return children(c, n, c.statement)
}

func (c *converter) statement(n *sitter.Node) (syntax.Node, error) {
	switch n.Type() {
	case "export_statement":
		return c.export(n)
	case "function_declaration", "generator_function_declaration", "interface_declaration", "ambient_declaration":
		return c.declaration(n, modifiers{})
	case "statement_block":
		return c.block(n)
	case "expression_statement":
		if n.NamedChildCount() != 1 {
			return nil, c.unsupported(n)
		}
		expr, err := c.expression(n.NamedChild(0))
		if err != nil {
			return nil, err
		}
		return &syntax.ExprStmt{Expression: expr}, nil
	case "return_statement":
		ret := &syntax.ReturnStmt{}
		if n.NamedChildCount() > 0 {
			expr, err := c.expression(n.NamedChild(0))
			if err != nil {
				return nil, err
			}
			ret.Expression = expr
		}
		return ret, nil
	}
	return nil, c.unsupported(n)
}

// modifiers collects the keywords written in front of a declaration.
type modifiers struct {
	exported, isDefault, declare bool
}

func (c *converter) export(n *sitter.Node) (syntax.Node, error) {
	mods := modifiers{exported: true}
	var decl *sitter.Node
	for i := 0; i < int(n.ChildCount()); i++ {
		child := n.Child(i)
		switch {
		case child.Type() == "default":
			mods.isDefault = true
		case child.IsNamed() && child.Type() != "comment":
			if decl != nil {
				return nil, c.unsupported(n)
			}
			decl = child
		}
	}
	if decl == nil {
		return nil, c.unsupported(n)
	}
	return c.declaration(decl, mods)
}

func (c *converter) declaration(n *sitter.Node, mods modifiers) (syntax.Node, error) {
	switch n.Type() {
	case "function_declaration", "generator_function_declaration":
		if mods.declare {
			return nil, c.unsupported(n)
		}
		return c.function(n, mods)
	case "interface_declaration":
		if mods.isDefault {
			return nil, c.unsupported(n)
		}
		return c.iface(n, mods)
	case "ambient_declaration":
		mods.declare = true
		for i := 0; i < int(n.NamedChildCount()); i++ {
			if child := n.NamedChild(i); child.Type() != "comment" {
				return c.declaration(child, mods)
			}
		}
	}
	return nil, c.unsupported(n)
}

func (c *converter) function(n *sitter.Node, mods modifiers) (*syntax.Function, error) {
	fn := &syntax.Function{Exported: mods.exported, Default: mods.isDefault}
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "async":
			fn.Async = true
		case "*":
			fn.Generator = true
		}
	}
	if name := n.ChildByFieldName("name"); name != nil {
		fn.Name = syntax.NewIdent(c.text(name))
	}
	if params := n.ChildByFieldName("parameters"); params != nil {
		ps, err := inline(c, params, c.param)
		if err != nil {
			return nil, err
		}
		fn.Parameters = ps
	}
	if ret := n.ChildByFieldName("return_type"); ret != nil {
		t, err := c.annotation(ret)
		if err != nil {
			return nil, err
		}
		fn.ReturnType = t
	}
	if body := n.ChildByFieldName("body"); body != nil {
		blk, err := c.block(body)
		if err != nil {
			return nil, err
		}
		fn.Body = blk
	}
	return fn, nil
}

func (c *converter) param(n *sitter.Node) (*syntax.Param, error) {
	if n.Type() != "required_parameter" && n.Type() != "optional_parameter" {
		return nil, c.unsupported(n)
	}
	p := &syntax.Param{Optional: n.Type() == "optional_parameter"}
	pattern := n.ChildByFieldName("pattern")
	if pattern == nil || pattern.Type() != "identifier" {
		return nil, c.unsupported(n)
	}
	p.Name = syntax.NewIdent(c.text(pattern))
	if typ := n.ChildByFieldName("type"); typ != nil {
		t, err := c.annotation(typ)
		if err != nil {
			return nil, err
		}
		p.Type = t
	}
	return p, nil
}

func (c *converter) iface(n *sitter.Node, mods modifiers) (*syntax.Interface, error) {
	it := &syntax.Interface{Exported: mods.exported, Declare: mods.declare}
	if name := n.ChildByFieldName("name"); name != nil {
		it.Name = syntax.NewIdent(c.text(name))
	}
	body := n.ChildByFieldName("body")
	if body == nil {
		return it, nil
	}
	switch body.Type() {
	case "interface_body", "object_type":
	default:
		return nil, c.unsupported(body)
	}
	members, trailing, err := children(c, body, c.property)
	if err != nil {
		return nil, err
	}
	it.TrailingComments = trailing
	it.Members = make([]syntax.Node, len(members))
	for i, m := range members {
		it.Members[i] = m
	}
	return it, nil
}

func (c *converter) property(n *sitter.Node) (*syntax.Property, error) {
	if n.Type() != "property_signature" {
		return nil, c.unsupported(n)
	}
	p := &syntax.Property{}
	for i := 0; i < int(n.ChildCount()); i++ {
		switch n.Child(i).Type() {
		case "readonly":
			p.Readonly = true
		case "?":
			p.Optional = true
		}
	}
	name := n.ChildByFieldName("name")
	if name == nil || name.Type() != "property_identifier" {
		return nil, c.unsupported(n)
	}
	p.Name = syntax.NewIdent(c.text(name))
	if typ := n.ChildByFieldName("type"); typ != nil {
		t, err := c.annotation(typ)
		if err != nil {
			return nil, err
		}
		p.Type = t
	}
	return p, nil
}

// annotation converts a type_annotation into a keyword type token.
func (c *converter) annotation(n *sitter.Node) (syntax.Node, error) {
	if n.Type() != "type_annotation" || n.NamedChildCount() != 1 {
		return nil, c.unsupported(n)
	}
	t := n.NamedChild(0)
	kind, ok := syntax.KindForKeyword(c.text(t))
	if !ok || !kind.IsKeywordType() {
		return nil, c.unsupported(t)
	}
	return syntax.NewToken(kind), nil
}

func (c *converter) block(n *sitter.Node) (*syntax.BlockStmt, error) {
	if n.Type() != "statement_block" {
		return nil, c.unsupported(n)
	}
	stmts, trailing, err := c.statements(n)
	if err != nil {
		return nil, err
	}
	return &syntax.BlockStmt{
		Statements:       stmts,
		TrailingComments: trailing,
		Multiline:        n.StartPoint().Row != n.EndPoint().Row,
	}, nil
}

func (c *converter) expression(n *sitter.Node) (syntax.Node, error) {
	switch n.Type() {
	case "call_expression":
		fn := n.ChildByFieldName("function")
		args := n.ChildByFieldName("arguments")
		if fn == nil || args == nil || args.Type() != "arguments" {
			return nil, c.unsupported(n)
		}
		callee, err := c.expression(fn)
		if err != nil {
			return nil, err
		}
		list, err := inline(c, args, c.expression)
		if err != nil {
			return nil, err
		}
		return &syntax.Call{Expression: callee, Arguments: list}, nil
	case "member_expression":
		obj := n.ChildByFieldName("object")
		prop := n.ChildByFieldName("property")
		if obj == nil || prop == nil || prop.Type() != "property_identifier" {
			return nil, c.unsupported(n)
		}
		target, err := c.expression(obj)
		if err != nil {
			return nil, err
		}
		return &syntax.PropertyAccess{Expression: target, Name: syntax.NewIdent(c.text(prop))}, nil
	case "identifier":
		return syntax.NewIdent(c.text(n)), nil
	case "string":
		return syntax.NewString(unquote(c.text(n))), nil
	case "number":
		return syntax.NewNumber(c.text(n)), nil
	case "parenthesized_expression":
		if n.NamedChildCount() == 1 {
			return c.expression(n.NamedChild(0))
		}
	}
	return nil, c.unsupported(n)
}
