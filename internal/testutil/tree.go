package testutil

import (
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// File returns a source file holding stmts.
func File(stmts ...syntax.Node) *syntax.File {
	return &syntax.File{Statements: stmts}
}

// Func returns `function name() {}`.
func Func(name string) *syntax.Function {
	return &syntax.Function{Name: syntax.NewIdent(name), Body: &syntax.BlockStmt{}}
}

// Iface returns `interface name {}` with the given properties.
func Iface(name string, members ...syntax.Node) *syntax.Interface {
	return &syntax.Interface{Name: syntax.NewIdent(name), Members: members}
}

// Prop returns `name: type;`.
func Prop(name string, typ syntax.Kind) *syntax.Property {
	return &syntax.Property{Name: syntax.NewIdent(name), Type: syntax.NewToken(typ)}
}

// Log returns the statement `console.log(args...)` with string arguments.
func Log(args ...string) *syntax.ExprStmt {
	call := &syntax.Call{Expression: &syntax.PropertyAccess{
		Expression: syntax.NewIdent("console"),
		Name:       syntax.NewIdent("log"),
	}}
	for _, a := range args {
		call.Arguments = append(call.Arguments, syntax.NewString(a))
	}
	return &syntax.ExprStmt{Expression: call}
}
