package sources

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"os"
)

// FileSource reads content from the host filesystem, typically a testdata
// fixture. Relative paths resolve against the process working directory.
type FileSource struct {
	Path string `json:"path"`
}

func newFileSource(raw []byte) (Provider, error) {
	var src FileSource
	if err := json.Unmarshal(raw, &src); err != nil {
		return nil, err
	}
	if src.Path == "" {
		return nil, errors.New("file source requires a path")
	}
	return &src, nil
}

func (f *FileSource) Fetch(ctx context.Context) ([]byte, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	data, err := os.ReadFile(f.Path)
	if err != nil {
		return nil, fmt.Errorf("failed to read file source: %w", err)
	}
	return data, nil
}
