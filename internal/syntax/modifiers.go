package syntax

// Modifiers returns the derived modifier list in source order.
func (f *Function) Modifiers() []Node {
	return flags(
		flag{f.Exported, ExportKeyword},
		flag{f.Default, DefaultKeyword},
		flag{f.Async, AsyncKeyword},
	)
}

// Modifiers returns the derived modifier list in source order.
func (i *Interface) Modifiers() []Node {
	return flags(
		flag{i.Exported, ExportKeyword},
		flag{i.Declare, DeclareKeyword},
	)
}

// Modifiers returns the derived modifier list in source order.
func (p *Property) Modifiers() []Node {
	return flags(flag{p.Readonly, ReadonlyKeyword})
}

type flag struct {
	set  bool
	kind Kind
}

func flags(fs ...flag) []Node {
	var out []Node
	for _, f := range fs {
		if f.set {
			out = append(out, NewToken(f.kind))
		}
	}
	return out
}
