/*
Package definition models the declarative target shape that a syntax tree is
reconciled toward.

A Definition carries a kind tag, an ordered list of declared fields and an
optional reconciliation Policy. Field values are scalars (string, bool,
float64), nested definitions or lists of definitions. Declaration order is
significant: the engine walks fields in the order they were declared, so both
codecs in this package (JSON and YAML) preserve it.
*/
package definition
