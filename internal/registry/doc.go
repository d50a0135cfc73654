// Package registry provides the central "glue" for the module system.
//
// The Registry stores, per syntax kind, the Go functions that know how to
// read a node's fields, how to build a fresh node from a Definition, and how
// to edit a field in place for each instruction type. Modules under modules/
// populate it at startup; the engine and the executor only ever talk to the
// tree through it, so supporting a new kind is a matter of registering it.
//
// Lookups of anything that was never registered fail with the matching error
// kind from internal/errs (UnknownField, UnsupportedNodeKind,
// UnsupportedMutation) rather than silently doing nothing.
package registry
