package syntax

// Data returns the plain-data view of n that query expressions run against.
// Every field known for the kind is present: absent children are nil and
// lists are never nil.
func Data(n Node) map[string]any {
	if isNil(n) {
		return nil
	}
	d := map[string]any{"kind": n.Kind().String()}
	switch n := n.(type) {
	case *File:
		d["statements"] = DataList(n.Statements)
	case *Function:
		d["name"] = nodeData(n.Name)
		d["parameters"] = DataList(params(n.Parameters))
		d["type"] = nodeData(n.ReturnType)
		d["modifiers"] = DataList(n.Modifiers())
		d["body"] = nodeData(n.Body)
		d["asteriskToken"] = tokenData(n.Generator, AsteriskToken)
	case *Interface:
		d["name"] = nodeData(n.Name)
		d["members"] = DataList(n.Members)
		d["modifiers"] = DataList(n.Modifiers())
	case *Property:
		d["name"] = nodeData(n.Name)
		d["type"] = nodeData(n.Type)
		d["modifiers"] = DataList(n.Modifiers())
		d["questionToken"] = tokenData(n.Optional, QuestionToken)
	case *Param:
		d["name"] = nodeData(n.Name)
		d["type"] = nodeData(n.Type)
		d["questionToken"] = tokenData(n.Optional, QuestionToken)
	case *BlockStmt:
		d["statements"] = DataList(n.Statements)
		d["multiline"] = n.Multiline
	case *ExprStmt:
		d["expression"] = nodeData(n.Expression)
	case *ReturnStmt:
		d["expression"] = nodeData(n.Expression)
	case *Call:
		d["expression"] = nodeData(n.Expression)
		d["arguments"] = DataList(n.Arguments)
	case *PropertyAccess:
		d["expression"] = nodeData(n.Expression)
		d["name"] = nodeData(n.Name)
	case *Ident:
		d["text"] = n.Text
	case *Literal:
		d["text"] = n.Text
	}
	return d
}

// DataList returns the plain-data view of every node in list.
func DataList[T Node](list []T) []any {
	out := make([]any, 0, len(list))
	for _, n := range list {
		out = append(out, Data(n))
	}
	return out
}

func nodeData(n Node) any {
	if isNil(n) {
		return nil
	}
	return Data(n)
}

func tokenData(set bool, kind Kind) any {
	if !set {
		return nil
	}
	return Data(NewToken(kind))
}

func params(ps []*Param) []Node {
	out := make([]Node, len(ps))
	for i, p := range ps {
		out[i] = p
	}
	return out
}

// isNil reports whether n is nil or a typed nil pointer.
func isNil(n Node) bool {
	switch n := n.(type) {
	case nil:
		return true
	case *Ident:
		return n == nil
	case *BlockStmt:
		return n == nil
	case *Param:
		return n == nil
	}
	return false
}

// IsNil reports whether n holds no node. Typed nil pointers stored in
// optional fields count as nil.
func IsNil(n Node) bool { return isNil(n) }
