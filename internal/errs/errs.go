// Package errs declares the error kinds raised while generating and applying
// instructions.
//
// Every error returned by the engine, the executor and the registries is
// marked with exactly one of the sentinels below, so callers can classify a
// failure with errors.Is from github.com/cockroachdb/errors regardless of how
// much context has been wrapped around it.
package errs

import (
	"fmt"

	"github.com/cockroachdb/errors"
)

var (
	// ErrSchemaMismatch is raised when a Definition's kind differs from the
	// kind of the node it is reconciled against.
	ErrSchemaMismatch = errors.New("schema mismatch")
	// ErrUnknownField is raised when a field name is not supported for a kind.
	ErrUnknownField = errors.New("unknown field")
	// ErrUnsupportedMutation is raised when no procedure is registered for a
	// (kind, field, instruction type) combination.
	ErrUnsupportedMutation = errors.New("unsupported mutation")
	// ErrInvalidIndex is raised when a computed or declared index is not an
	// integer or falls outside the permitted bound.
	ErrInvalidIndex = errors.New("invalid index")
	// ErrUnresolvedPath is raised when a path segment cannot be resolved
	// against the live tree.
	ErrUnresolvedPath = errors.New("unresolved path")
	// ErrUnsupportedNodeKind is raised when no builder exists for a kind.
	ErrUnsupportedNodeKind = errors.New("unsupported node kind")
	// ErrInvalidNode is raised when a built node is not allowed where it is used.
	ErrInvalidNode = errors.New("invalid node")
	// ErrInvalidRule is raised for rules that cannot be compiled.
	ErrInvalidRule = errors.New("invalid rule")
	// ErrInvalidInstruction is raised for instructions missing a required member.
	ErrInvalidInstruction = errors.New("invalid instruction")
	// ErrQuery is raised when a query expression cannot be compiled or evaluated.
	ErrQuery = errors.New("query error")
)

// Newf creates an error marked with the given kind.
func Newf(kind error, format string, args ...any) error {
	return errors.Mark(errors.NewWithDepthf(1, format, args...), kind)
}

// Wrapf wraps err with a message and marks the result with the given kind.
func Wrapf(kind error, err error, format string, args ...any) error {
	return errors.Mark(errors.WrapWithDepthf(1, err, format, args...), kind)
}

// IndexError reports an index that violates the bound of its instruction.
type IndexError struct {
	// Instruction is the instruction type the index was computed for.
	Instruction string
	// Bound is the largest permitted index.
	Bound int
	// Value is the offending value, as computed.
	Value any
}

// Error implements the error interface.
func (e *IndexError) Error() string {
	return fmt.Sprintf("invalid index for %s: must be an integer in [0, %d]; got %v", e.Instruction, e.Bound, e.Value)
}

// NewIndexError creates an IndexError marked with ErrInvalidIndex.
func NewIndexError(instruction string, bound int, value any) error {
	return errors.Mark(&IndexError{Instruction: instruction, Bound: bound, Value: value}, ErrInvalidIndex)
}
