package registry

import (
	"fmt"
	"log/slog"

	"github.com/specialistvlad/codeshape/internal/instruction"
	"github.com/specialistvlad/codeshape/internal/syntax"
)

// Module is the interface that all core modules must implement to be registered.
type Module interface {
	Register(r *Registry)
}

// mutationKey identifies a single in-place edit procedure.
type mutationKey struct {
	kind  syntax.Kind
	field string
	typ   instruction.Type
}

// Registry holds the accessors, builders and mutators of a single
// application instance. It is populated once and read-only afterwards.
type Registry struct {
	fields     map[syntax.Kind]map[string]FieldReader
	attributes map[syntax.Kind]map[string]struct{}
	builders   map[syntax.Kind]BuildFunc
	mutators   map[mutationKey]MutateFunc
}

// New creates and initializes a new Registry instance.
func New() *Registry {
	return &Registry{
		fields:     make(map[syntax.Kind]map[string]FieldReader),
		attributes: make(map[syntax.Kind]map[string]struct{}),
		builders:   make(map[syntax.Kind]BuildFunc),
		mutators:   make(map[mutationKey]MutateFunc),
	}
}

// NewWithModules creates a Registry and lets every module register itself.
func NewWithModules(modules ...Module) *Registry {
	r := New()
	for _, m := range modules {
		m.Register(r)
	}
	return r
}

// RegisterFields registers the readable child fields of a kind.
func (r *Registry) RegisterFields(kind syntax.Kind, readers map[string]FieldReader) {
	table, ok := r.fields[kind]
	if !ok {
		table = make(map[string]FieldReader, len(readers))
		r.fields[kind] = table
	}
	for name, fn := range readers {
		if _, exists := table[name]; exists {
			panic(fmt.Sprintf("field '%s' of kind '%s' already registered", name, kind))
		}
		slog.Debug("Registering field accessor.", "kind", kind, "field", name)
		table[name] = fn
	}
}

// RegisterAttributes registers scalar fields that a builder understands but
// that have no child node to read or reconcile, such as Block.multiline.
func (r *Registry) RegisterAttributes(kind syntax.Kind, names ...string) {
	set, ok := r.attributes[kind]
	if !ok {
		set = make(map[string]struct{}, len(names))
		r.attributes[kind] = set
	}
	for _, name := range names {
		if _, exists := set[name]; exists {
			panic(fmt.Sprintf("attribute '%s' of kind '%s' already registered", name, kind))
		}
		slog.Debug("Registering attribute.", "kind", kind, "attribute", name)
		set[name] = struct{}{}
	}
}

// RegisterBuilder registers the function that constructs nodes of a kind.
func (r *Registry) RegisterBuilder(kind syntax.Kind, fn BuildFunc) {
	if _, exists := r.builders[kind]; exists {
		panic(fmt.Sprintf("builder for kind '%s' already registered", kind))
	}
	slog.Debug("Registering node builder.", "kind", kind)
	r.builders[kind] = fn
}

// RegisterMutator registers the edit procedure for one (kind, field, type).
func (r *Registry) RegisterMutator(kind syntax.Kind, field string, typ instruction.Type, fn MutateFunc) {
	key := mutationKey{kind: kind, field: field, typ: typ}
	if _, exists := r.mutators[key]; exists {
		panic(fmt.Sprintf("mutator %s for '%s.%s' already registered", typ, kind, field))
	}
	slog.Debug("Registering field mutator.", "kind", kind, "field", field, "type", typ)
	r.mutators[key] = fn
}

// RegisterMutators registers several edit procedures of one field at once.
func (r *Registry) RegisterMutators(kind syntax.Kind, field string, fns Mutators) {
	for _, typ := range instruction.Types {
		if fn, ok := fns[typ]; ok {
			r.RegisterMutator(kind, field, typ, fn)
		}
	}
}
