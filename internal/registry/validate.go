package registry

import (
	"context"
	"fmt"
	"slices"
	"strings"

	"github.com/cockroachdb/errors"
	"github.com/samber/lo"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// ValidateRegistry performs a parity check between the tables registered by
// the modules: every mutated field must be readable, every readable kind must
// be buildable, and no field may be both a child field and an attribute.
func (r *Registry) ValidateRegistry(ctx context.Context) error {
	var problems []string
	logger := ctxlog.FromContext(ctx)

	for key := range r.mutators {
		if _, ok := r.fields[key.kind][key.field]; !ok {
			problems = append(problems, fmt.Sprintf("kind '%s': %s mutator registered for field '%s' which has no accessor", key.kind, key.typ, key.field))
		}
	}

	for kind, table := range r.fields {
		if _, ok := r.builders[kind]; !ok {
			problems = append(problems, fmt.Sprintf("kind '%s': fields are registered but no builder is", kind))
		}
		for name := range table {
			if _, clash := r.attributes[kind][name]; clash {
				problems = append(problems, fmt.Sprintf("kind '%s': '%s' is registered both as a field and as an attribute", kind, name))
			}
		}
	}

	for kind := range r.attributes {
		if _, ok := r.builders[kind]; !ok {
			problems = append(problems, fmt.Sprintf("kind '%s': attributes are registered but no builder is", kind))
		}
	}

	leaves := lo.Filter(lo.Keys(r.builders), func(k syntax.Kind, _ int) bool {
		return len(r.fields[k]) == 0
	})
	logger.Debug("Registry validated.", "builders", len(r.builders), "mutators", len(r.mutators), "leaf_kinds", len(leaves))

	if len(problems) > 0 {
		slices.Sort(problems)
		return errors.Newf("registry validation failed:\n- %s", strings.Join(problems, "\n- "))
	}
	return nil
}
