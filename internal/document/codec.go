package document

import (
	"encoding/json"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/inamate/drawtools/internal/engine"
)

// Format selects the on-disk encoding of a record.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ErrUnknownFormat is returned for file names without a supported extension.
var ErrUnknownFormat = errors.New("unknown document format")

// FormatFromPath picks the format from the file extension.
func FormatFromPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".json":
		return FormatJSON, nil
	case ".yaml", ".yml":
		return FormatYAML, nil
	}
	return "", fmt.Errorf("%w: %q", ErrUnknownFormat, path)
}

// Encode serializes rec in format f.
func Encode(rec *Record, f Format) ([]byte, error) {
	switch f {
	case FormatJSON:
		data, err := json.MarshalIndent(rec, "", "  ")
		if err != nil {
			return nil, err
		}
		return append(data, '\n'), nil
	case FormatYAML:
		return yaml.Marshal(rec)
	}
	return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
}

// Decode parses data written by Encode.
func Decode(data []byte, f Format) (*Record, error) {
	rec := NewRecord()
	var err error
	switch f {
	case FormatJSON:
		err = json.Unmarshal(data, rec)
	case FormatYAML:
		err = yaml.Unmarshal(data, rec)
	default:
		return nil, fmt.Errorf("%w: %q", ErrUnknownFormat, f)
	}
	if err != nil {
		return nil, fmt.Errorf("decode %s: %w", f, err)
	}
	return rec, nil
}

// FromScene writes s into a new record.
func FromScene(s *engine.Scene) (*Record, error) {
	rec := NewRecord()
	if err := s.WriteFields(rec); err != nil {
		return nil, err
	}
	return rec, nil
}

// ReadFile loads a record, choosing the format by extension.
func ReadFile(path string) (*Record, error) {
	f, err := FormatFromPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(data, f)
}

// WriteFile stores rec, choosing the format by extension.
func WriteFile(path string, rec *Record) error {
	f, err := FormatFromPath(path)
	if err != nil {
		return err
	}
	data, err := Encode(rec, f)
	if err != nil {
		return err
	}
	return os.WriteFile(path, data, 0o644)
}

// LoadScene reads a drawing file into a new scene.
func LoadScene(path string) (*engine.Scene, error) {
	rec, err := ReadFile(path)
	if err != nil {
		return nil, err
	}
	s, err := engine.ReadScene(rec)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return s, nil
}

// SaveScene writes s to a drawing file.
func SaveScene(path string, s *engine.Scene) error {
	rec, err := FromScene(s)
	if err != nil {
		return err
	}
	return WriteFile(path, rec)
}
