// Package engine diffs a Definition against an existing tree and produces the
// ordered list of instructions that reconcile the tree toward it.
//
// Generation is a read-only walk. Fields are visited in declaration order;
// absent fields compile to default ADD or SET instructions, and definitions
// carrying a match predicate are reconciled against the first existing node
// the predicate selects. Rules attached to a definition add instructions of
// their own, with positional indexes computed against the list as it is at
// generation time.
//
// The instructions are meant to be applied in the order they are returned by
// the executor package; they are not commutative.
package engine
