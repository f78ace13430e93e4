package catalog

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/rshade/wattfocus/internal/logging"
)

// Format is a catalog serialization.
type Format string

const (
	FormatYAML Format = "yaml"
	FormatJSON Format = "json"
)

// FormatForPath picks the format from a file extension.
func FormatForPath(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("%w: %s", ErrUnknownFormat, path)
	}
}

// Decode parses a catalog document.
func Decode(data []byte, format Format) (Document, error) {
	var doc Document
	switch format {
	case FormatYAML:
		if err := yaml.Unmarshal(data, &doc); err != nil {
			return Document{}, fmt.Errorf("decoding YAML catalog: %w", err)
		}
	case FormatJSON:
		dec := json.NewDecoder(bytes.NewReader(data))
		if err := dec.Decode(&doc); err != nil {
			return Document{}, fmt.Errorf("decoding JSON catalog: %w", err)
		}
	default:
		return Document{}, fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}
	return doc, nil
}

// LoadFile reads and indexes a YAML or JSON catalog file.
func LoadFile(path string) (*Catalog, error) {
	format, err := FormatForPath(path)
	if err != nil {
		return nil, err
	}
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("reading catalog %s: %w", path, err)
	}
	doc, err := Decode(data, format)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	c, err := New(doc)
	if err != nil {
		return nil, fmt.Errorf("%s: %w", path, err)
	}
	return c, nil
}

// FileSource loads a catalog file on every call.
type FileSource struct {
	Path string
}

// Load implements Source.
func (s FileSource) Load(ctx context.Context) (*Catalog, error) {
	log := logging.FromContext(ctx)
	c, err := LoadFile(s.Path)
	if err != nil {
		return nil, err
	}
	log.Debug().
		Str("component", "catalog").
		Str("path", s.Path).
		Int("offers", len(c.Offers)).
		Int("providers", len(c.Providers)).
		Int("skipped", len(c.Skipped)).
		Msg("catalog file loaded")
	return c, nil
}

// String identifies the source in logs and cache keys.
func (s FileSource) String() string {
	return "file:" + s.Path
}
