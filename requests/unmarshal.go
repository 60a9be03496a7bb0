package requests

import (
	"encoding/json"
	"errors"
	"fmt"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fakefs"
	"github.com/brettbedarf/fakefs/internal/codec"
	"github.com/brettbedarf/fakefs/sources"
)

var (
	// ErrUnknownNodeType is returned for manifest entries whose type is neither "dir" nor "file".
	ErrUnknownNodeType = errors.New("unknown node type")
	// ErrMissingPath is returned for manifest entries without a path.
	ErrMissingPath = errors.New("missing path")
	// ErrUnresolvedSource is returned when a file entry names a source but no
	// registry is available to fetch it.
	ErrUnresolvedSource = errors.New("file source cannot be resolved here")
)

// decodeFunc decodes one manifest entry into v, whatever the source format.
type decodeFunc func(v any) error

// fileEntry is a parsed file declaration whose content may still have to be
// fetched from source.
type fileEntry struct {
	req    *fakefs.FileRequest
	source sources.Provider
}

// GetNodeType extracts the node type from JSON without full unmarshaling
func GetNodeType(data []byte) (fakefs.NodeType, error) {
	var meta struct {
		Type fakefs.NodeType `json:"type"`
	}
	if err := json.Unmarshal(data, &meta); err != nil {
		return "", err
	}
	return meta.Type, nil
}

// UnmarshalFileRequest decodes a JSON file entry with inline content. Content
// is converted with the entry's encoding, or with defaultEnc when the entry
// names none. Entries with a source need [LoadManifest].
func UnmarshalFileRequest(data []byte, defaultEnc fakefs.Encoding) (*fakefs.FileRequest, error) {
	entry, err := unmarshalFile(jsonDecoder(data), defaultEnc, nil)
	if err != nil {
		return nil, err
	}
	return entry.req, nil
}

// UnmarshalDirRequest decodes a JSON directory entry.
func UnmarshalDirRequest(data []byte) (*fakefs.DirRequest, error) {
	return unmarshalDir(jsonDecoder(data))
}

func jsonDecoder(data []byte) decodeFunc {
	return func(v any) error { return json.Unmarshal(data, v) }
}

func yamlDecoder(node *yaml.Node) decodeFunc {
	return func(v any) error { return node.Decode(v) }
}

func unmarshalFile(decode decodeFunc, defaultEnc fakefs.Encoding, reg *sources.Registry) (*fileEntry, error) {
	var dto FileRequestDTO
	if err := decode(&dto); err != nil {
		return nil, err
	}
	node, err := convertNodeDTO(dto.NodeRequestDTO)
	if err != nil {
		return nil, err
	}

	var enc fakefs.Encoding
	if dto.Encoding != nil {
		if enc, err = codec.Canonical(fakefs.Encoding(*dto.Encoding)); err != nil {
			return nil, fmt.Errorf("%s: %w", dto.Path, err)
		}
	}
	entry := &fileEntry{req: &fakefs.FileRequest{NodeRequest: node, Encoding: enc}}

	if dto.Source != nil {
		if dto.Content != nil {
			return nil, fmt.Errorf("%s: content and source are mutually exclusive", dto.Path)
		}
		if reg == nil {
			return nil, fmt.Errorf("%s: %w", dto.Path, ErrUnresolvedSource)
		}
		raw, err := json.Marshal(dto.Source)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", dto.Path, err)
		}
		if entry.source, err = reg.Provider(raw); err != nil {
			return nil, fmt.Errorf("%s: %w", dto.Path, err)
		}
		return entry, nil
	}

	if dto.Content != nil {
		conv := enc
		if conv == "" {
			conv = defaultEnc
		}
		if entry.req.Content, err = codec.Encode(conv, *dto.Content); err != nil {
			return nil, fmt.Errorf("%s: %w", dto.Path, err)
		}
	}
	return entry, nil
}

func unmarshalDir(decode decodeFunc) (*fakefs.DirRequest, error) {
	var dto DirRequestDTO
	if err := decode(&dto); err != nil {
		return nil, err
	}
	node, err := convertNodeDTO(dto.NodeRequestDTO)
	if err != nil {
		return nil, err
	}
	return &fakefs.DirRequest{NodeRequest: node}, nil
}

// convertNodeDTO validates the common fields. Unset timestamps and identity
// stay empty so the engine fills them from its own clock and generator.
func convertNodeDTO(dto NodeRequestDTO) (fakefs.NodeRequest, error) {
	if dto.Path == "" {
		return fakefs.NodeRequest{}, ErrMissingPath
	}
	return fakefs.NodeRequest{
		Path: dto.Path,
		UUID: valueOrDefault(dto.UUID, ""),
		Attr: fakefs.Attr{
			Atime: timeOf(dto.Atime),
			Mtime: timeOf(dto.Mtime),
			Ctime: timeOf(dto.Ctime),
		},
	}, nil
}

func timeOf(ts *Timestamp) *time.Time {
	if ts == nil {
		return nil
	}
	t := ts.Time
	return &t
}

func valueOrDefault[T any](ptr *T, defaultVal T) T {
	if ptr != nil {
		return *ptr
	}
	return defaultVal
}
