// Package export encodes game snapshots for automation, observers and files
package export

import (
	"bytes"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path/filepath"
	"strings"

	"github.com/vmihailenco/msgpack/v5"
	"gopkg.in/yaml.v3"

	"github.com/lixenwraith/gem-drift/engine"
)

// ErrUnknownFormat is returned for an unsupported format name or extension
var ErrUnknownFormat = errors.New("unknown snapshot format")

// Format selects a snapshot encoding
type Format uint8

const (
	FormatJSON Format = iota
	FormatYAML
	FormatMsgpack
)

var formatNames = [...]string{
	FormatJSON:    "json",
	FormatYAML:    "yaml",
	FormatMsgpack: "msgpack",
}

func (f Format) String() string {
	if int(f) >= len(formatNames) {
		return fmt.Sprintf("format(%d)", uint8(f))
	}
	return formatNames[f]
}

// ParseFormat resolves a format name, case-insensitive
func ParseFormat(name string) (Format, error) {
	switch strings.ToLower(strings.TrimSpace(name)) {
	case "json", "":
		return FormatJSON, nil
	case "yaml", "yml":
		return FormatYAML, nil
	case "msgpack", "mp", "mpk":
		return FormatMsgpack, nil
	}
	return FormatJSON, fmt.Errorf("%w: %q", ErrUnknownFormat, name)
}

// FormatForPath picks a format from a file extension
func FormatForPath(path string) (Format, error) {
	ext := strings.TrimPrefix(filepath.Ext(path), ".")
	if ext == "" {
		return FormatJSON, fmt.Errorf("%w: no extension on %q", ErrUnknownFormat, path)
	}
	return ParseFormat(ext)
}

// Encode serializes a snapshot
// MessagePack reuses the json field names so all formats share one schema
func Encode(snap engine.Snapshot, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(snap, "", "  ")
		if err != nil {
			return nil, fmt.Errorf("encode json: %w", err)
		}
		return data, nil
	case FormatYAML:
		data, err := yaml.Marshal(&snap)
		if err != nil {
			return nil, fmt.Errorf("encode yaml: %w", err)
		}
		return data, nil
	case FormatMsgpack:
		var buf bytes.Buffer
		enc := msgpack.NewEncoder(&buf)
		enc.SetCustomStructTag("json")
		if err := enc.Encode(&snap); err != nil {
			return nil, fmt.Errorf("encode msgpack: %w", err)
		}
		return buf.Bytes(), nil
	}
	return nil, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
}

// Decode parses a snapshot
func Decode(data []byte, f Format) (engine.Snapshot, error) {
	var snap engine.Snapshot
	switch f {
	case FormatJSON:
		if err := json.Unmarshal(data, &snap); err != nil {
			return snap, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.Unmarshal(data, &snap); err != nil {
			return snap, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatMsgpack:
		dec := msgpack.NewDecoder(bytes.NewReader(data))
		dec.SetCustomStructTag("json")
		if err := dec.Decode(&snap); err != nil {
			return snap, fmt.Errorf("decode msgpack: %w", err)
		}
	default:
		return snap, fmt.Errorf("%w: %s", ErrUnknownFormat, f)
	}
	return snap, nil
}

// Write encodes a snapshot to w
func Write(w io.Writer, snap engine.Snapshot, f Format) error {
	data, err := Encode(snap, f)
	if err != nil {
		return err
	}
	if _, err := w.Write(data); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// Read decodes a snapshot from r
func Read(r io.Reader, f Format) (engine.Snapshot, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return engine.Snapshot{}, fmt.Errorf("read snapshot: %w", err)
	}
	return Decode(data, f)
}
