// internal/nodeid/address.go
package nodeid

import (
	"fmt"
	"slices"
	"strconv"
	"strings"
)

// String serializes the Address into its canonical path string representation.
func (a Address) String() string {
	var sb strings.Builder
	for i, segment := range a.Path {
		if i > 0 {
			sb.WriteRune('.')
		}
		sb.WriteString(segment.Name)
		if segment.HasIndex() {
			sb.WriteString(fmt.Sprintf("[%d]", segment.Index))
		}
	}

	return sb.String()
}

// IsRoot reports whether the address has no segments.
func (a Address) IsRoot() bool {
	return len(a.Path) == 0
}

// Equal checks for deep equality between two addresses.
func (a Address) Equal(other Address) bool {
	return slices.Equal(a.Path, other.Path)
}

// Append returns a new address extended by segments. A segment that parses
// as an integer qualifies the preceding field with an index; any other
// segment adds a field. The receiver is never modified.
//
// Append panics when an index is negative, has no field to qualify, or
// qualifies a field that is already indexed.
func (a Address) Append(segments ...string) Address {
	path := slices.Clone(a.Path)
	for _, s := range segments {
		if index, err := strconv.Atoi(s); err == nil {
			if index < 0 {
				panic(fmt.Sprintf("nodeid: negative index %d in %q", index, Address{Path: path}))
			}
			if len(path) == 0 || path[len(path)-1].HasIndex() {
				panic(fmt.Sprintf("nodeid: index %d has no field to qualify in %q", index, Address{Path: path}))
			}
			path[len(path)-1].Index = index
			continue
		}
		path = append(path, NewPathSegment(s))
	}
	return Address{Path: path}
}

// Field returns a new address extended by a single un-indexed field.
func (a Address) Field(name string) Address {
	return a.Append(name)
}

// Index returns a new address extended by field qualified with index.
func (a Address) Index(field string, index int) Address {
	path := slices.Clone(a.Path)
	return Address{Path: append(path, NewPathSegmentWithIndex(field, index))}
}

// MarshalText implements encoding.TextMarshaler.
func (a Address) MarshalText() ([]byte, error) {
	return []byte(a.String()), nil
}

// UnmarshalText implements encoding.TextUnmarshaler.
func (a *Address) UnmarshalText(text []byte) error {
	parsed, err := Parse(string(text))
	if err != nil {
		return err
	}
	*a = parsed
	return nil
}
