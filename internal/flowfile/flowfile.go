package flowfile

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/specialistvlad/flowgraph/internal/ctxlog"
	"github.com/specialistvlad/flowgraph/internal/fsutil"
	"github.com/specialistvlad/flowgraph/internal/payload"
)

// ErrUnsupportedFormat is returned for files whose extension names no codec.
var ErrUnsupportedFormat = errors.New("unsupported flow file format")

// Format names a flow file encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatHCL  Format = "hcl"
)

// Codec decodes one flow file format.
type Codec interface {
	Format() Format
	Decode(filename string, src []byte) (payload.Flow, error)
}

var codecs = map[Format]Codec{
	FormatJSON: jsonCodec{},
	FormatYAML: yamlCodec{},
	FormatHCL:  hclCodec{},
}

var extensions = map[string]Format{
	".json": FormatJSON,
	".yaml": FormatYAML,
	".yml":  FormatYAML,
	".hcl":  FormatHCL,
}

// FormatOf returns the format of a file, judged by its extension.
func FormatOf(path string) (Format, bool) {
	f, ok := extensions[strings.ToLower(filepath.Ext(path))]
	return f, ok
}

// Decode decodes src in the given format.
func Decode(format Format, filename string, src []byte) (payload.Flow, error) {
	c, ok := codecs[format]
	if !ok {
		return payload.Flow{}, fmt.Errorf("%w: %q", ErrUnsupportedFormat, format)
	}
	return c.Decode(filename, src)
}

// File is a flow loaded from disk.
type File struct {
	Path string
	Flow payload.Flow
}

// Load reads and decodes a single flow file.
func Load(ctx context.Context, path string) (payload.Flow, error) {
	format, ok := FormatOf(path)
	if !ok {
		return payload.Flow{}, fmt.Errorf("%w: %s", ErrUnsupportedFormat, path)
	}
	src, err := os.ReadFile(path)
	if err != nil {
		return payload.Flow{}, err
	}
	flow, err := Decode(format, path, src)
	if err != nil {
		return payload.Flow{}, fmt.Errorf("failed to load flow file %s: %w", path, err)
	}
	ctxlog.FromContext(ctx).Debug("Loaded flow file.", "path", path, "format", format, "nodes", len(flow.Nodes), "edges", len(flow.Edges))
	return flow, nil
}

// LoadDir loads every flow file below dir, in lexical path order.
func LoadDir(ctx context.Context, dir string) ([]File, error) {
	paths, err := fsutil.FindFilesByExtension(dir, ".json", ".yaml", ".yml", ".hcl")
	if err != nil {
		return nil, err
	}
	if len(paths) == 0 {
		ctxlog.FromContext(ctx).Warn("No flow files found in path", "path", dir)
	}

	files := make([]File, 0, len(paths))
	for _, p := range paths {
		flow, err := Load(ctx, p)
		if err != nil {
			return nil, err
		}
		files = append(files, File{Path: p, Flow: flow})
	}
	return files, nil
}

// LoadPath loads a single file, or every flow file of a directory.
func LoadPath(ctx context.Context, path string) ([]File, error) {
	info, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("error accessing path %s: %w", path, err)
	}
	if info.IsDir() {
		return LoadDir(ctx, path)
	}
	flow, err := Load(ctx, path)
	if err != nil {
		return nil, err
	}
	return []File{{Path: path, Flow: flow}}, nil
}
