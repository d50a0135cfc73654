package app

import (
	"context"
	"os"

	"github.com/cockroachdb/errors"

	"github.com/specialistvlad/codeshape/internal/ctxlog"
	"github.com/specialistvlad/codeshape/internal/definition"
	"github.com/specialistvlad/codeshape/internal/fsutil"
	"github.com/specialistvlad/codeshape/internal/syntax"
	"github.com/specialistvlad/codeshape/internal/tsload"
)

var definitionExts = []string{".json", ".yaml", ".yml"}

// ResolveDefinitionPath takes a path and returns every definition file it
// names. A file is returned as is; a directory is scanned recursively for
// .json, .yaml and .yml files, returned in lexical order so that the order
// in which definitions are applied is stable.
func ResolveDefinitionPath(ctx context.Context, path string) ([]string, error) {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Resolving definition path.", "path", path)
	info, err := os.Stat(path)
	if os.IsNotExist(err) {
		return nil, errors.WithHint(errors.Newf("definition path not found: %s", path), "pass a definition file or a directory of definition files")
	}
	if err != nil {
		return nil, errors.Wrapf(err, "error accessing path %s", path)
	}

	if !info.IsDir() {
		logger.Debug("Path is a single file.", "file", path)
		return []string{path}, nil
	}

	logger.Debug("Path is a directory, scanning for definition files.", "directory", path)
	files, err := fsutil.FindFilesByExtension(path, definitionExts...)
	if err != nil {
		return nil, errors.Wrapf(err, "scan %s", path)
	}
	return files, nil
}

// LoadDefinition reads and decodes a definition file. The format follows the
// file extension.
func LoadDefinition(ctx context.Context, path string) (*definition.Definition, error) {
	ctxlog.FromContext(ctx).Debug("Decoding definition file.", "path", path)
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, errors.Wrapf(err, "read definition %s", path)
	}
	def, err := definition.Unmarshal(data, definition.FormatForPath(path))
	if err != nil {
		return nil, errors.Wrapf(err, "load definition %s", path)
	}
	return def, nil
}

// LoadSource parses a TypeScript file. A missing file is an empty document,
// so definitions can create files from scratch.
func LoadSource(ctx context.Context, path string) (*syntax.File, error) {
	logger := ctxlog.FromContext(ctx)
	data, err := os.ReadFile(path)
	if os.IsNotExist(err) {
		logger.Debug("Source file does not exist, starting from an empty document.", "path", path)
		return &syntax.File{}, nil
	}
	if err != nil {
		return nil, errors.Wrapf(err, "read source %s", path)
	}
	return tsload.Parse(ctx, data, path)
}
