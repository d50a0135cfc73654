package engine

import (
	"github.com/cockroachdb/errors"

	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/errs"
	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/nodeid"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// scope is the place a definition is reconciled at: field of owner, which
// lives at path. nodes holds the current value of the field. For the root
// definition the scope is the root node itself.
type scope struct {
	owner syntax.Node
	path  nodeid.Address
	field string
	nodes []syntax.Node
	list  bool
	root  bool
}

// at returns the address of the i-th node of the scope.
func (s scope) at(i int) nodeid.Address {
	switch {
	case s.root:
		return s.path
	case s.list:
		return s.path.Index(s.field, i)
	}
	return s.path.Field(s.field)
}

// target is where a rule instruction lands.
type target struct {
	owner syntax.Node
	path  nodeid.Address
	field string
	// matched reports that field is the list the rule condition matched in.
	matched bool
}

// rules compiles the rules declared on item. Each rule emits at most one
// instruction, for the first node of s its condition holds for.
func (g *generator) rules(s scope, item *definition.Definition) error {
	for i, rule := range item.Policy.Rules {
		if err := g.rule(s, item, rule); err != nil {
			return errors.Wrapf(err, "rule %d (%s)", i, rule.Instruction)
		}
	}
	return nil
}

func (g *generator) rule(s scope, item *definition.Definition, rule definition.Rule) error {
	typ, err := instruction.ParseType(rule.Instruction)
	if err != nil {
		return errs.Wrapf(errs.ErrInvalidRule, err, "parse rule")
	}
	if rule.Condition == "" {
		return errs.Newf(errs.ErrInvalidRule, "%s rule has no condition", typ)
	}
	if s.root && rule.Field == "" {
		return errs.Newf(errs.ErrInvalidRule, "%s rule on the root definition must name a field", typ)
	}

	found, err := g.match(s, rule.Condition)
	if err != nil {
		return err
	}
	if found < 0 {
		g.logger.Debug("Rule condition did not match.", "instruction", typ.String(), "condition", rule.Condition)
		return nil
	}

	t := ruleTarget(s, found, typ, rule)
	index := 0
	if typ.HasIndex() {
		if index, err = g.index(t, found, typ, rule.Index); err != nil {
			return err
		}
	}
	g.emit(instruction.New(typ, t.path, t.field, index, item))
	return nil
}

// ruleTarget resolves the owner of a rule's instruction. REMOVE and UNSET
// with a field act on that field of the matched node; without one they act
// on the field the rule was declared in. Every other rule targets the field
// it names, or its own field, on the owner of the scope.
func ruleTarget(s scope, found int, typ instruction.Type, rule definition.Rule) target {
	if typ == instruction.Remove || typ == instruction.Unset {
		if rule.Field != "" {
			return target{owner: s.nodes[found], path: s.at(found), field: rule.Field}
		}
		return target{owner: s.owner, path: s.path, field: s.field, matched: true}
	}
	if rule.Field != "" && rule.Field != s.field {
		return target{owner: s.owner, path: s.path, field: rule.Field}
	}
	return target{owner: s.owner, path: s.path, field: s.field, matched: true}
}
