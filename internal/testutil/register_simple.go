package testutil

import (
	"github.com/specialistvlad/codeshape/internal/registry"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// SimpleModule is a test helper for registering a single kind's field
// readers, builder and mutators without writing a full module.
type SimpleModule struct {
	Kind     syntax.Kind
	Fields   map[string]registry.FieldReader
	Builder  registry.BuildFunc
	Mutators map[string]registry.Mutators
}

// Register implements the registry.Module interface.
func (m *SimpleModule) Register(r *registry.Registry) {
	if len(m.Fields) > 0 {
		r.RegisterFields(m.Kind, m.Fields)
	}
	if m.Builder != nil {
		r.RegisterBuilder(m.Kind, m.Builder)
	}
	for field, fns := range m.Mutators {
		r.RegisterMutators(m.Kind, field, fns)
	}
}
