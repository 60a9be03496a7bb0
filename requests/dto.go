package requests

import (
	"bytes"
	"encoding/json"
	"fmt"
	"strconv"
	"time"

	"gopkg.in/yaml.v3"

	"github.com/brettbedarf/fakefs"
)

// NodeRequestDTO is the manifest representation of [fakefs.NodeRequest]
type NodeRequestDTO struct {
	Path  string          `json:"path" yaml:"path"`
	Type  fakefs.NodeType `json:"type" yaml:"type"`
	UUID  *string         `json:"uuid,omitempty" yaml:"uuid,omitempty"`   // Optional fixed identity
	Atime *Timestamp      `json:"atime,omitempty" yaml:"atime,omitempty"` // Last accessed at (Default engine clock)
	Mtime *Timestamp      `json:"mtime,omitempty" yaml:"mtime,omitempty"` // Last modified at (Default engine clock)
	Ctime *Timestamp      `json:"ctime,omitempty" yaml:"ctime,omitempty"` // Last status change at (Default engine clock)
}

// FileRequestDTO is the manifest representation of [fakefs.FileRequest]
//
// Content is text; it is converted to bytes with Encoding, or with the
// engine's default encoding when Encoding is unset. Binary content is written
// with encoding "base64" or "hex". Source replaces Content with raw bytes
// fetched from elsewhere; see package sources for the object's fields.
type FileRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
	Content        *string        `json:"content,omitempty" yaml:"content,omitempty"`
	Encoding       *string        `json:"encoding,omitempty" yaml:"encoding,omitempty"`
	Source         map[string]any `json:"source,omitempty" yaml:"source,omitempty"`
}

type DirRequestDTO struct {
	NodeRequestDTO `yaml:",inline"`
}

// Timestamp is a manifest time value. It accepts an RFC 3339 string, a plain
// date, or a number of seconds since the Unix epoch (fractions allowed).
type Timestamp struct {
	time.Time
}

func (ts *Timestamp) UnmarshalJSON(data []byte) error {
	dec := json.NewDecoder(bytes.NewReader(data))
	dec.UseNumber()
	var v any
	if err := dec.Decode(&v); err != nil {
		return err
	}

	var err error
	switch val := v.(type) {
	case string:
		ts.Time, err = parseTime(val)
	case json.Number:
		ts.Time, err = parseEpoch(val.String())
	default:
		err = fmt.Errorf("invalid timestamp %s", string(data))
	}
	return err
}

func (ts *Timestamp) UnmarshalYAML(node *yaml.Node) error {
	if node.Kind != yaml.ScalarNode {
		return fmt.Errorf("line %d: timestamp must be a scalar", node.Line)
	}

	var err error
	switch node.ShortTag() {
	case "!!int", "!!float":
		ts.Time, err = parseEpoch(node.Value)
	default:
		ts.Time, err = parseTime(node.Value)
	}
	return err
}

func parseTime(s string) (time.Time, error) {
	if t, err := time.Parse(time.RFC3339Nano, s); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, s)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid timestamp %q: want RFC 3339, date or epoch seconds", s)
	}
	return t, nil
}

func parseEpoch(s string) (time.Time, error) {
	if sec, err := strconv.ParseInt(s, 10, 64); err == nil {
		return time.Unix(sec, 0), nil
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return time.Time{}, fmt.Errorf("invalid epoch timestamp %q: %w", s, err)
	}
	sec := int64(f)
	return time.Unix(sec, int64((f-float64(sec))*1e9)), nil
}
