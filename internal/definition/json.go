package definition

import (
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/tidwall/gjson"
	"github.com/tidwall/sjson"

	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Reserved keys of the wire format. Every other key is a declared field.
const (
	keyKind          = "kind"
	keyPolicy        = "__policy"
	keyPolicyAlias   = "__instructions"
	keyLeadingTrivia = "leadingTrivia"
)

// UnmarshalJSON implements json.Unmarshaler, preserving the declaration
// order of fields.
func (d *Definition) UnmarshalJSON(data []byte) error {
	if !gjson.ValidBytes(data) {
		return errors.New("definition: invalid JSON")
	}
	parsed, err := decodeJSON(gjson.ParseBytes(data), "$")
	if err != nil {
		return err
	}
	*d = *parsed
	return nil
}

// MarshalJSON implements json.Marshaler. Fields are written in declaration
// order, after the kind.
func (d *Definition) MarshalJSON() ([]byte, error) {
	raw, err := encodeJSON(d)
	if err != nil {
		return nil, err
	}
	return []byte(raw), nil
}

func decodeJSON(obj gjson.Result, where string) (*Definition, error) {
	if !obj.IsObject() {
		return nil, errors.Newf("%s: definition must be an object", where)
	}

	kindRes := obj.Get(keyKind)
	if kindRes.Type != gjson.String {
		return nil, errors.Newf("%s: definition requires a string %q", where, keyKind)
	}
	kind, err := syntax.ParseKind(kindRes.Str)
	if err != nil {
		return nil, errors.Wrapf(err, "%s", where)
	}

	d := New(kind)
	obj.ForEach(func(key, value gjson.Result) bool {
		name := key.String()
		at := where + "." + name
		switch name {
		case keyKind:
		case keyPolicy, keyPolicyAlias:
			if d.Policy != nil {
				err = errors.Newf("%s: policy declared twice", at)
				break
			}
			d.Policy, err = decodePolicyJSON(value, at)
		case keyLeadingTrivia:
			d.LeadingTrivia, err = decodeTriviaJSON(value, at)
		default:
			var v any
			v, err = decodeValueJSON(value, at)
			if err == nil {
				d.Fields = append(d.Fields, Field{Name: name, Value: v})
			}
		}
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return d, nil
}

func decodeValueJSON(value gjson.Result, where string) (any, error) {
	switch {
	case value.IsObject():
		return decodeJSON(value, where)
	case value.IsArray():
		items := []*Definition{}
		var err error
		value.ForEach(func(key, item gjson.Result) bool {
			var child *Definition
			child, err = decodeJSON(item, where+"["+key.String()+"]")
			items = append(items, child)
			return err == nil
		})
		if err != nil {
			return nil, err
		}
		return items, nil
	}

	switch value.Type {
	case gjson.String:
		return value.Str, nil
	case gjson.Number:
		return value.Num, nil
	case gjson.True, gjson.False:
		return value.Bool(), nil
	}
	return nil, errors.Newf("%s: null is not a valid field value", where)
}

func decodePolicyJSON(value gjson.Result, where string) (*Policy, error) {
	if !value.IsObject() {
		return nil, errors.Newf("%s: policy must be an object", where)
	}
	p := &Policy{ID: value.Get("id").String()}

	rules := value.Get("rules")
	if !rules.Exists() {
		return p, nil
	}
	if !rules.IsArray() {
		return nil, errors.Newf("%s.rules: must be a list", where)
	}
	var err error
	rules.ForEach(func(key, item gjson.Result) bool {
		at := where + ".rules[" + key.String() + "]"
		r := Rule{
			Instruction: item.Get("instruction").String(),
			Condition:   item.Get("condition").String(),
			Field:       item.Get("field").String(),
		}
		if r.Instruction == "" {
			err = errors.Newf("%s: rule requires an instruction", at)
			return false
		}
		if idx := item.Get("index"); idx.Exists() {
			r.Index, err = decodeIndexJSON(idx, at+".index")
		}
		p.Rules = append(p.Rules, r)
		return err == nil
	})
	if err != nil {
		return nil, err
	}
	return p, nil
}

func decodeIndexJSON(value gjson.Result, where string) (Index, error) {
	switch value.Type {
	case gjson.String:
		return ExprIndex(value.Str), nil
	case gjson.Number:
		if value.Num != float64(int(value.Num)) {
			return Index{}, errors.Newf("%s: literal index must be an integer, got %v", where, value.Num)
		}
		return LiteralIndex(int(value.Num)), nil
	}
	return Index{}, errors.Newf("%s: index must be an integer or an expression", where)
}

func decodeTriviaJSON(value gjson.Result, where string) (*Trivia, error) {
	kind, err := syntax.ParseKind(value.Get("kind").String())
	if err != nil || !kind.IsComment() {
		return nil, errors.Newf("%s: kind must be a comment trivia kind", where)
	}
	return &Trivia{Kind: kind, Text: value.Get("text").String()}, nil
}

func encodeJSON(d *Definition) (string, error) {
	if d == nil {
		return "null", nil
	}
	out, err := sjson.Set("{}", keyKind, d.Kind.String())
	if err != nil {
		return "", err
	}
	for _, f := range d.Fields {
		raw, err := encodeValueJSON(f.Value)
		if err != nil {
			return "", errors.Wrapf(err, "field %q", f.Name)
		}
		if out, err = sjson.SetRaw(out, escapeKey(f.Name), raw); err != nil {
			return "", err
		}
	}
	if d.Policy != nil {
		raw, err := encodePolicyJSON(d.Policy)
		if err != nil {
			return "", err
		}
		if out, err = sjson.SetRaw(out, keyPolicy, raw); err != nil {
			return "", err
		}
	}
	if t := d.LeadingTrivia; t != nil {
		if out, err = sjson.Set(out, keyLeadingTrivia+".kind", t.Kind.String()); err != nil {
			return "", err
		}
		if out, err = sjson.Set(out, keyLeadingTrivia+".text", t.Text); err != nil {
			return "", err
		}
	}
	return out, nil
}

func encodeValueJSON(v any) (string, error) {
	switch v := v.(type) {
	case *Definition:
		return encodeJSON(v)
	case []*Definition:
		items := make([]string, 0, len(v))
		for _, item := range v {
			raw, err := encodeJSON(item)
			if err != nil {
				return "", err
			}
			items = append(items, raw)
		}
		return "[" + strings.Join(items, ",") + "]", nil
	case string:
		return strconv.Quote(v), nil
	case bool:
		return strconv.FormatBool(v), nil
	case float64:
		return strconv.FormatFloat(v, 'f', -1, 64), nil
	}
	return "", errors.Newf("unsupported field value of type %T", v)
}

func encodePolicyJSON(p *Policy) (string, error) {
	out := "{}"
	var err error
	if p.ID != "" {
		if out, err = sjson.Set(out, "id", p.ID); err != nil {
			return "", err
		}
	}
	if len(p.Rules) == 0 {
		return out, nil
	}
	if out, err = sjson.SetRaw(out, "rules", "[]"); err != nil {
		return "", err
	}
	for _, r := range p.Rules {
		raw, err := encodeRuleJSON(r)
		if err != nil {
			return "", err
		}
		if out, err = sjson.SetRaw(out, "rules.-1", raw); err != nil {
			return "", err
		}
	}
	return out, nil
}

func encodeRuleJSON(r Rule) (string, error) {
	out, err := sjson.Set("{}", "instruction", r.Instruction)
	if err != nil {
		return "", err
	}
	if out, err = sjson.Set(out, "condition", r.Condition); err != nil {
		return "", err
	}
	if r.Field != "" {
		if out, err = sjson.Set(out, "field", r.Field); err != nil {
			return "", err
		}
	}
	switch {
	case r.Index.Literal != nil:
		out, err = sjson.Set(out, "index", *r.Index.Literal)
	case r.Index.Expr != "":
		out, err = sjson.Set(out, "index", r.Index.Expr)
	}
	return out, err
}

var keyEscaper = strings.NewReplacer(".", `\.`, "*", `\*`, "?", `\?`, "|", `\|`, "#", `\#`, "@", `\@`)

func escapeKey(key string) string {
	return keyEscaper.Replace(key)
}
