// Package sources fetches file content for manifest entries that point at
// external data instead of carrying it inline.
package sources

import (
	"context"
	"encoding/json"
	"fmt"

	"github.com/puzpuzpuz/xsync/v4"
)

// Provider produces the complete content of one file.
type Provider interface {
	Fetch(ctx context.Context) ([]byte, error)
}

// Factory builds a Provider from the raw JSON of a source object,
// e.g. {"type": "http", "url": "..."}.
type Factory func(raw []byte) (Provider, error)

// Registry maps source types to factories.
type Registry struct {
	factories *xsync.Map[string, Factory]
}

func NewRegistry() *Registry {
	return &Registry{factories: xsync.NewMap[string, Factory]()}
}

// Register ties a factory to a "type" key. The first registration of a type
// wins; Register reports whether factory was stored.
func (r *Registry) Register(sourceType string, factory Factory) bool {
	_, loaded := r.factories.LoadOrStore(sourceType, factory)
	return !loaded
}

// Provider picks the factory named by the "type" field of raw and builds a
// Provider with it.
func (r *Registry) Provider(raw []byte) (Provider, error) {
	var meta struct {
		Type string `json:"type"`
	}
	if err := json.Unmarshal(raw, &meta); err != nil {
		return nil, err
	}
	factory, ok := r.factories.Load(meta.Type)
	if !ok {
		return nil, fmt.Errorf("no source factory for %q", meta.Type)
	}
	return factory(raw)
}

// Source types every [Builtins] registry knows.
const (
	FileSourceType = "file"
	HTTPSourceType = "http"
)

// Builtins returns a registry with the built-in source types, or only the
// ones named in types.
func Builtins(types ...string) *Registry {
	if len(types) == 0 {
		types = []string{FileSourceType, HTTPSourceType}
	}
	r := NewRegistry()
	for _, typ := range types {
		switch typ {
		case FileSourceType:
			r.Register(FileSourceType, newFileSource)
		case HTTPSourceType:
			r.Register(HTTPSourceType, newHTTPSource)
		}
	}
	return r
}
