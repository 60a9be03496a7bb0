package requests

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"slices"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fakefs"
	"github.com/brettbedarf/fakefs/filesystem"
	"github.com/brettbedarf/fakefs/internal/util"
	"github.com/brettbedarf/fakefs/sources"
)

// Format is a manifest serialization.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// FormatFromPath picks the manifest format from a file extension.
func FormatFromPath(p string) (Format, error) {
	switch strings.ToLower(filepath.Ext(p)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported manifest extension: %s (use .json, .yaml or .yml)", filepath.Ext(p))
	}
}

// LoadOption configures a manifest load.
type LoadOption func(o *loadOptions)

type loadOptions struct {
	sources *sources.Registry
}

// WithSources resolves file entry sources with reg instead of [sources.Builtins].
func WithSources(reg *sources.Registry) LoadOption {
	return func(o *loadOptions) {
		o.sources = reg
	}
}

// LoadManifest declares every entry of a manifest into fs. A manifest is a
// list of node entries:
//
//	- {type: dir, path: /home, mtime: 100}
//	- {type: file, path: /home/note.txt, content: hi}
//	- {type: file, path: /bin/tool, content: f0VMRg==, encoding: base64}
//	- {type: file, path: /data.bin, source: {type: file, path: testdata/data.bin}}
//
// Directories are declared before files, shallowest first, so a directory
// entry never wipes entries listed before it. Otherwise entries keep manifest
// order. Declarations follow the builder's rules: missing ancestors are
// created and parents' timestamps are left alone. Entries are parsed, and
// sources fetched, before any is declared. A manifest that fails at any
// stage leaves fs unchanged.
func LoadManifest(ctx context.Context, fs *filesystem.FileSystem, data []byte, format Format, opts ...LoadOption) error {
	logger := util.GetLeveledLogger("LoadManifest", fs.Config().LogLvl)

	o := loadOptions{}
	for _, opt := range opts {
		opt(&o)
	}
	if o.sources == nil {
		o.sources = sources.Builtins()
	}

	entries, err := splitEntries(data, format)
	if err != nil {
		return fmt.Errorf("failed to parse %s manifest: %w", format, err)
	}

	var (
		dirs  []*fakefs.DirRequest
		files []*fileEntry
	)
	for i, decode := range entries {
		var meta struct {
			Type fakefs.NodeType `json:"type" yaml:"type"`
		}
		if err := decode(&meta); err != nil {
			return fmt.Errorf("manifest entry %d: %w", i, err)
		}

		switch meta.Type {
		case fakefs.DirNodeType:
			req, err := unmarshalDir(decode)
			if err != nil {
				return fmt.Errorf("manifest entry %d: %w", i, err)
			}
			dirs = append(dirs, req)
		case fakefs.FileNodeType:
			entry, err := unmarshalFile(decode, fs.Config().DefaultEncoding, o.sources)
			if err != nil {
				return fmt.Errorf("manifest entry %d: %w", i, err)
			}
			files = append(files, entry)
		default:
			return fmt.Errorf("manifest entry %d: %w: %q", i, ErrUnknownNodeType, string(meta.Type))
		}
	}

	fetched := 0
	for _, entry := range files {
		if entry.source == nil {
			continue
		}
		content, err := entry.source.Fetch(ctx)
		if err != nil {
			return fmt.Errorf("failed to fetch content for %s: %w", entry.req.Path, err)
		}
		entry.req.Content = content
		fetched++
		logger.Debug().Str("path", entry.req.Path).Int("size", len(content)).Msg("Fetched file source")
	}

	// parents first, so declaring a directory never replaces one holding
	// entries declared before it
	cwd := fs.Config().Cwd
	slices.SortStableFunc(dirs, func(a, b *fakefs.DirRequest) int {
		return len(filesystem.Segments(cwd, a.Path)) - len(filesystem.Segments(cwd, b.Path))
	})
	fileReqs := make([]*fakefs.FileRequest, len(files))
	for i, entry := range files {
		fileReqs[i] = entry.req
	}
	if err := fs.Declare(dirs, fileReqs); err != nil {
		return err
	}

	logger.Info().Int("dirs", len(dirs)).Int("files", len(files)).Int("fetched", fetched).Msg("Loaded manifest")
	return nil
}

// LoadManifestFile reads a .json, .yaml or .yml manifest and declares it into fs.
func LoadManifestFile(ctx context.Context, fs *filesystem.FileSystem, p string, opts ...LoadOption) error {
	format, err := FormatFromPath(p)
	if err != nil {
		return err
	}
	data, err := os.ReadFile(p)
	if err != nil {
		return fmt.Errorf("failed to read manifest: %w", err)
	}
	return LoadManifest(ctx, fs, data, format, opts...)
}

// splitEntries breaks a manifest into per-entry decoders.
func splitEntries(data []byte, format Format) ([]decodeFunc, error) {
	switch format {
	case FormatJSON:
		var raw []json.RawMessage
		if err := json.Unmarshal(data, &raw); err != nil {
			return nil, err
		}
		out := make([]decodeFunc, len(raw))
		for i, msg := range raw {
			out[i] = jsonDecoder(msg)
		}
		return out, nil
	case FormatYAML:
		var nodes []yaml.Node
		if err := yaml.Unmarshal(data, &nodes); err != nil {
			return nil, err
		}
		out := make([]decodeFunc, len(nodes))
		for i := range nodes {
			out[i] = yamlDecoder(&nodes[i])
		}
		return out, nil
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", string(format))
	}
}
