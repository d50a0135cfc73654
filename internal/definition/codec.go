package definition

import (
	"path/filepath"
	"strings"

	"github.com/cockroachdb/errors"
	"gopkg.in/yaml.v3"
)

// Format is a serialization format for definitions.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatForPath picks a format from a file extension. Anything that is not
// .yaml or .yml is read as JSON.
func FormatForPath(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML
	}
	return FormatJSON
}

// Unmarshal decodes a definition in the given format.
func Unmarshal(data []byte, format Format) (*Definition, error) {
	d := &Definition{}
	var err error
	switch format {
	case FormatJSON:
		err = d.UnmarshalJSON(data)
	case FormatYAML:
		err = yaml.Unmarshal(data, d)
	default:
		return nil, errors.Newf("unsupported definition format %q", format)
	}
	if err != nil {
		return nil, errors.Wrapf(err, "decode %s definition", format)
	}
	return d, nil
}

// Marshal encodes a definition in the given format.
func Marshal(d *Definition, format Format) ([]byte, error) {
	switch format {
	case FormatJSON:
		return d.MarshalJSON()
	case FormatYAML:
		return yaml.Marshal(d)
	}
	return nil, errors.Newf("unsupported definition format %q", format)
}
