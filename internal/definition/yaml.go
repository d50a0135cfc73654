package definition

import (
	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"

	"github.com/specialistvlad/codeshape/internal/syntax"
)

// UnmarshalYAML implements yaml.Unmarshaler, preserving the declaration
// order of mapping keys.
func (d *Definition) UnmarshalYAML(node *yaml.Node) error {
	parsed, err := decodeYAML(node)
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// MarshalYAML implements yaml.Marshaler.
func (d *Definition) MarshalYAML() (any, error) {
	return encodeYAML(d)
}

func decodeYAML(node *yaml.Node) (*Definition, error) {
	if node.Kind == yaml.DocumentNode && len(node.Content) == 1 {
		node = node.Content[0]
	}
	if node.Kind != yaml.MappingNode {
		return nil, errors.Newf("line %d: definition must be a mapping", node.Line)
	}

	var kindName string
	for i := 0; i+1 < len(node.Content); i += 2 {
		if node.Content[i].Value == keyKind {
			kindName = node.Content[i+1].Value
		}
	}
	kind, err := syntax.ParseKind(kindName)
	if err != nil {
		return nil, errors.Wrapf(err, "line %d", node.Line)
	}

	d := New(kind)
	for i := 0; i+1 < len(node.Content); i += 2 {
		key, value := node.Content[i], node.Content[i+1]
		switch key.Value {
		case keyKind:
		case keyPolicy, keyPolicyAlias:
			if d.Policy != nil {
				return nil, errors.Newf("line %d: policy declared twice", key.Line)
			}
			var p policyYAML
			if err := value.Decode(&p); err != nil {
				return nil, errors.Wrapf(err, "line %d: policy", key.Line)
			}
			if d.Policy, err = p.policy(); err != nil {
				return nil, errors.Wrapf(err, "line %d", key.Line)
			}
		case keyLeadingTrivia:
			var t struct {
				Kind string `yaml:"kind"`
				Text string `yaml:"text"`
			}
			if err := value.Decode(&t); err != nil {
				return nil, errors.Wrapf(err, "line %d: %s", key.Line, keyLeadingTrivia)
			}
			tk, err := syntax.ParseKind(t.Kind)
			if err != nil || !tk.IsComment() {
				return nil, errors.Newf("line %d: %s kind must be a comment trivia kind", key.Line, keyLeadingTrivia)
			}
			d.LeadingTrivia = &Trivia{Kind: tk, Text: t.Text}
		default:
			v, err := decodeValueYAML(value)
			if err != nil {
				return nil, errors.Wrapf(err, "field %q", key.Value)
			}
			d.Fields = append(d.Fields, Field{Name: key.Value, Value: v})
		}
	}
	return d, nil
}

func decodeValueYAML(node *yaml.Node) (any, error) {
	switch node.Kind {
	case yaml.MappingNode:
		return decodeYAML(node)
	case yaml.SequenceNode:
		items := make([]*Definition, 0, len(node.Content))
		for _, item := range node.Content {
			child, err := decodeYAML(item)
			if err != nil {
				return nil, err
			}
			items = append(items, child)
		}
		return items, nil
	case yaml.ScalarNode:
		switch node.ShortTag() {
		case "!!str":
			return node.Value, nil
		case "!!bool":
			var b bool
			err := node.Decode(&b)
			return b, err
		case "!!int", "!!float":
			var f float64
			err := node.Decode(&f)
			return f, err
		}
	}
	return nil, errors.Newf("line %d: unsupported value %q", node.Line, node.Value)
}

// policyYAML mirrors the wire shape of a Policy. Index stays a raw node so
// literal integers and expression strings can be told apart by tag.
type policyYAML struct {
	ID    string `yaml:"id"`
	Rules []struct {
		Instruction string    `yaml:"instruction"`
		Condition   string    `yaml:"condition"`
		Field       string    `yaml:"field"`
		Index       yaml.Node `yaml:"index"`
	} `yaml:"rules"`
}

func (p policyYAML) policy() (*Policy, error) {
	out := &Policy{ID: p.ID}
	for i, r := range p.Rules {
		if r.Instruction == "" {
			return nil, errors.Newf("rule %d requires an instruction", i)
		}
		rule := Rule{Instruction: r.Instruction, Condition: r.Condition, Field: r.Field}
		if r.Index.Kind == 0 {
			out.Rules = append(out.Rules, rule)
			continue
		}
		switch r.Index.ShortTag() {
		case "!!int":
			var n int
			if err := r.Index.Decode(&n); err != nil {
				return nil, errors.Wrapf(err, "rule %d index", i)
			}
			rule.Index = LiteralIndex(n)
		case "!!str":
			rule.Index = ExprIndex(r.Index.Value)
		default:
			return nil, errors.Newf("rule %d: index must be an integer or an expression", i)
		}
		out.Rules = append(out.Rules, rule)
	}
	return out, nil
}

func encodeYAML(d *Definition) (*yaml.Node, error) {
	m := &yaml.Node{Kind: yaml.MappingNode}
	add := func(key string, value *yaml.Node) {
		m.Content = append(m.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: key}, value)
	}
	scalar := func(v any) (*yaml.Node, error) {
		n := &yaml.Node{}
		return n, n.Encode(v)
	}

	kindNode, err := scalar(d.Kind.String())
	if err != nil {
		return nil, err
	}
	add(keyKind, kindNode)

	for _, f := range d.Fields {
		var n *yaml.Node
		switch v := f.Value.(type) {
		case *Definition:
			n, err = encodeYAML(v)
		case []*Definition:
			n = &yaml.Node{Kind: yaml.SequenceNode}
			for _, item := range v {
				child, err := encodeYAML(item)
				if err != nil {
					return nil, err
				}
				n.Content = append(n.Content, child)
			}
		default:
			if !IsScalar(v) {
				return nil, errors.Newf("field %q: unsupported value of type %T", f.Name, v)
			}
			n, err = scalar(v)
		}
		if err != nil {
			return nil, errors.Wrapf(err, "field %q", f.Name)
		}
		add(f.Name, n)
	}

	if p := d.Policy; p != nil {
		n, err := encodePolicyYAML(p)
		if err != nil {
			return nil, err
		}
		add(keyPolicy, n)
	}
	if t := d.LeadingTrivia; t != nil {
		n, err := scalar(map[string]string{"kind": t.Kind.String(), "text": t.Text})
		if err != nil {
			return nil, err
		}
		add(keyLeadingTrivia, n)
	}
	return m, nil
}

func encodePolicyYAML(p *Policy) (*yaml.Node, error) {
	type ruleYAML struct {
		Instruction string `yaml:"instruction"`
		Condition   string `yaml:"condition"`
		Field       string `yaml:"field,omitempty"`
		Index       any    `yaml:"index,omitempty"`
	}
	type out struct {
		ID    string     `yaml:"id,omitempty"`
		Rules []ruleYAML `yaml:"rules,omitempty"`
	}

	o := out{ID: p.ID}
	for _, r := range p.Rules {
		ry := ruleYAML{Instruction: r.Instruction, Condition: r.Condition, Field: r.Field}
		switch {
		case r.Index.Literal != nil:
			ry.Index = *r.Index.Literal
		case r.Index.Expr != "":
			ry.Index = r.Index.Expr
		}
		o.Rules = append(o.Rules, ry)
	}
	n := &yaml.Node{}
	return n, n.Encode(o)
}
