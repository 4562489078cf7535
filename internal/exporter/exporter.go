package exporter

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"

	"github.com/hogwarts-cloud/profilectl/internal/models"
	"gopkg.in/yaml.v3"
)

type Format string

const (
	FormatRSpec Format = "rspec"
	FormatYAML  Format = "yaml"
	FormatJSON  Format = "json"
)

var ErrUnknownFormat = errors.New("unknown format")

var Formats = []Format{FormatRSpec, FormatYAML, FormatJSON}

func ParseFormat(format string) (Format, error) {
	for _, f := range Formats {
		if string(f) == format {
			return f, nil
		}
	}

	return "", fmt.Errorf("%w: %s", ErrUnknownFormat, format)
}

// Extension is the file extension used when writing a document to disk.
func (f Format) Extension() string {
	switch f {
	case FormatRSpec:
		return ".xml"
	case FormatYAML:
		return ".yaml"
	case FormatJSON:
		return ".json"
	}
	return ""
}

func Export(w io.Writer, topology models.Topology, format Format) error {
	switch format {
	case FormatRSpec:
		if err := writeRSpec(w, topology); err != nil {
			return fmt.Errorf("failed to write rspec: %w", err)
		}
	case FormatYAML:
		encoder := yaml.NewEncoder(w)
		encoder.SetIndent(2)
		if err := encoder.Encode(topology); err != nil {
			return fmt.Errorf("failed to encode yaml: %w", err)
		}
		if err := encoder.Close(); err != nil {
			return fmt.Errorf("failed to close yaml encoder: %w", err)
		}
	case FormatJSON:
		encoder := json.NewEncoder(w)
		encoder.SetIndent("", "  ")
		if err := encoder.Encode(topology); err != nil {
			return fmt.Errorf("failed to encode json: %w", err)
		}
	default:
		return fmt.Errorf("%w: %s", ErrUnknownFormat, format)
	}

	return nil
}
