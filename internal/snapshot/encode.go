package snapshot

import (
	"encoding/json"
	"fmt"
	"io"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is an export encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
)

// ParseFormat validates a user-supplied format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(strings.ToLower(s)); f {
	case FormatJSON, FormatYAML, FormatTOML:
		return f, nil
	case "yml":
		return FormatYAML, nil
	default:
		return "", fmt.Errorf("unsupported export format %q (want json, yaml or toml)", s)
	}
}

// Export is the document written by Encode.
type Export struct {
	Schema  int               `json:"schema" yaml:"schema" toml:"schema"`
	Sources []*SourceSnapshot `json:"sources" yaml:"sources" toml:"sources"`
}

// Encode writes snapshots to w in the given format.
func Encode(w io.Writer, format Format, sources []*SourceSnapshot) error {
	doc := Export{Schema: SchemaVersion, Sources: sources}
	if doc.Sources == nil {
		doc.Sources = []*SourceSnapshot{}
	}

	switch format {
	case FormatJSON:
		enc := json.NewEncoder(w)
		enc.SetIndent("", "  ")
		return enc.Encode(doc)
	case FormatYAML:
		enc := yaml.NewEncoder(w)
		enc.SetIndent(2)
		if err := enc.Encode(doc); err != nil {
			return fmt.Errorf("encode yaml: %w", err)
		}
		return enc.Close()
	case FormatTOML:
		if err := toml.NewEncoder(w).Encode(doc); err != nil {
			return fmt.Errorf("encode toml: %w", err)
		}
		return nil
	default:
		return fmt.Errorf("unsupported export format %q", format)
	}
}

// Decode reads a document written by Encode.
func Decode(r io.Reader, format Format) (*Export, error) {
	var doc Export
	switch format {
	case FormatJSON:
		if err := json.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode json: %w", err)
		}
	case FormatYAML:
		if err := yaml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode yaml: %w", err)
		}
	case FormatTOML:
		if _, err := toml.NewDecoder(r).Decode(&doc); err != nil {
			return nil, fmt.Errorf("decode toml: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported export format %q", format)
	}
	if doc.Schema != SchemaVersion {
		return nil, fmt.Errorf("export schema %d, want %d", doc.Schema, SchemaVersion)
	}
	return &doc, nil
}
