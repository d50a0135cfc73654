// internal/nodeid/parser.go
package nodeid

import (
	"regexp"
	"strconv"
	"strings"

	"github.com/cockroachdb/errors"
)

// segmentRegex is used to parse a single segment of a path, e.g., `name` or `name[1]`.
var segmentRegex = regexp.MustCompile(`^([a-zA-Z_$][a-zA-Z0-9_$]*)(?:\[(\d+)\])?$`)

// Parse creates a new Address by parsing its canonical string representation.
// The empty string is the root address.
func Parse(raw string) (Address, error) {
	if raw == "" {
		return Root(), nil
	}

	var addr Address
	for _, segmentStr := range strings.Split(raw, ".") {
		if segmentStr == "" {
			return Address{}, errors.Newf("path %q contains an empty segment", raw)
		}

		matches := segmentRegex.FindStringSubmatch(segmentStr)
		if matches == nil {
			return Address{}, errors.Newf("invalid path segment format: %q", segmentStr)
		}

		segment := NewPathSegment(matches[1])
		if matches[2] != "" {
			index, err := strconv.Atoi(matches[2])
			if err != nil {
				return Address{}, errors.Wrapf(err, "index of segment %q", segmentStr)
			}
			segment.Index = index
		}
		addr.Path = append(addr.Path, segment)
	}

	return addr, nil
}

// MustParse is like Parse but panics on malformed input. It is meant for
// literals in tests and tables.
func MustParse(raw string) Address {
	addr, err := Parse(raw)
	if err != nil {
		panic(err)
	}
	return addr
}
