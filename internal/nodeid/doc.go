// internal/nodeid/doc.go

/*
Package nodeid provides a structured representation of the paths used to
address nodes inside a syntax tree, based on the canonical format `path`.

The format is a dot-separated sequence of field segments, each optionally
qualified with a list index, e.g. `statements[0].members[1].type`. The empty
string addresses the root node itself.

This package centralizes all formatting and parsing of paths so the engine
that emits them and the executor that resolves them agree on one form.
*/
package nodeid
