package syntax

import (
	"strconv"
	"strings"
)

const indentUnit = "    "

// Print renders n as TypeScript source using a fixed canonical layout.
func Print(n Node) string {
	p := &printer{}
	p.node(n)
	return p.sb.String()
}

type printer struct {
	sb    strings.Builder
	depth int
}

func (p *printer) write(parts ...string) {
	for _, s := range parts {
		p.sb.WriteString(s)
	}
}

func (p *printer) newline() {
	p.sb.WriteByte('\n')
	p.sb.WriteString(strings.Repeat(indentUnit, p.depth))
}

func (p *printer) comment(c Comment) {
	if c.Kind == MultiLineCommentTrivia {
		p.write("/*", c.Text, "*/")
	} else {
		p.write("//", c.Text)
	}
}

func (p *printer) comments(n Node) {
	for _, c := range n.LeadingComments() {
		p.comment(c)
		p.newline()
	}
}

// trailing writes comments that close a list, each on its own line.
func (p *printer) trailing(cs []Comment) {
	for _, c := range cs {
		p.newline()
		p.comment(c)
	}
}

func (p *printer) modifiers(mods []Node) {
	for _, m := range mods {
		p.write(m.Kind().Text(), " ")
	}
}

func (p *printer) node(n Node) {
	if isNil(n) {
		return
	}
	p.comments(n)
	switch n := n.(type) {
	case *File:
		for i, s := range n.Statements {
			if i > 0 {
				p.newline()
			}
			p.node(s)
		}
		for i, c := range n.TrailingComments {
			if i > 0 || len(n.Statements) > 0 {
				p.newline()
			}
			p.comment(c)
		}
	case *Function:
		p.modifiers(n.Modifiers())
		p.write("function")
		if n.Generator {
			p.write("*")
		}
		if n.Name != nil {
			p.write(" ", n.Name.Text)
		}
		p.write("(")
		for i, param := range n.Parameters {
			if i > 0 {
				p.write(", ")
			}
			p.node(param)
		}
		p.write(")")
		p.annotation(n.ReturnType)
		if n.Body == nil {
			p.write(";")
			return
		}
		p.write(" ")
		p.node(n.Body)
	case *Interface:
		p.modifiers(n.Modifiers())
		p.write("interface ")
		if n.Name != nil {
			p.write(n.Name.Text)
		}
		p.write(" {")
		p.depth++
		for _, m := range n.Members {
			p.newline()
			p.node(m)
		}
		p.trailing(n.TrailingComments)
		p.depth--
		p.newline()
		p.write("}")
	case *Property:
		p.modifiers(n.Modifiers())
		if n.Name != nil {
			p.write(n.Name.Text)
		}
		if n.Optional {
			p.write("?")
		}
		p.annotation(n.Type)
		p.write(";")
	case *Param:
		if n.Name != nil {
			p.write(n.Name.Text)
		}
		if n.Optional {
			p.write("?")
		}
		p.annotation(n.Type)
	case *BlockStmt:
		if len(n.Statements) == 0 && len(n.TrailingComments) == 0 && !n.Multiline {
			p.write("{}")
			return
		}
		p.write("{")
		p.depth++
		for _, s := range n.Statements {
			p.newline()
			p.node(s)
		}
		p.trailing(n.TrailingComments)
		p.depth--
		p.newline()
		p.write("}")
	case *ExprStmt:
		p.node(n.Expression)
		p.write(";")
	case *ReturnStmt:
		p.write("return")
		if !isNil(n.Expression) {
			p.write(" ")
			p.node(n.Expression)
		}
		p.write(";")
	case *Call:
		p.node(n.Expression)
		p.write("(")
		for i, a := range n.Arguments {
			if i > 0 {
				p.write(", ")
			}
			p.node(a)
		}
		p.write(")")
	case *PropertyAccess:
		p.node(n.Expression)
		p.write(".")
		p.node(n.Name)
	case *Ident:
		p.write(n.Text)
	case *Literal:
		if n.LiteralKind == StringLiteral {
			p.write(strconv.Quote(n.Text))
		} else {
			p.write(n.Text)
		}
	case *Token:
		p.write(n.TokenKind.Text())
	}
}

func (p *printer) annotation(t Node) {
	if isNil(t) {
		return
	}
	p.write(": ")
	p.node(t)
}
