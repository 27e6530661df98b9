// Package output encodes CLI results as JSON, JSONL or YAML.
package output

import (
	"encoding/json"
	"fmt"
	"io"

	"gopkg.in/yaml.v3"
)

// Format is a structured output encoding.
type Format string

const (
	FormatJSON  Format = "json"
	FormatJSONL Format = "jsonl"
	FormatYAML  Format = "yaml"
)

// ParseFormat reports whether s names a structured format.
func ParseFormat(s string) (Format, bool) {
	switch f := Format(s); f {
	case FormatJSON, FormatJSONL, FormatYAML:
		return f, true
	}
	return "", false
}

// Encoder writes values one at a time in a fixed format.
type Encoder struct {
	w      io.Writer
	format Format
	pretty bool
}

// NewEncoder returns an encoder for format. Pretty only affects JSON.
func NewEncoder(w io.Writer, format Format, pretty bool) (*Encoder, error) {
	if _, ok := ParseFormat(string(format)); !ok {
		return nil, fmt.Errorf("unsupported output format: %s", format)
	}
	return &Encoder{w: w, format: format, pretty: pretty}, nil
}

// Encode writes v followed by a newline (or a YAML document separator).
func (e *Encoder) Encode(v any) error {
	switch e.format {
	case FormatYAML:
		enc := yaml.NewEncoder(e.w)
		enc.SetIndent(2)
		if err := enc.Encode(v); err != nil {
			return fmt.Errorf("encoding yaml: %w", err)
		}
		return enc.Close()
	case FormatJSONL:
		return json.NewEncoder(e.w).Encode(v)
	default:
		enc := json.NewEncoder(e.w)
		enc.SetEscapeHTML(false)
		if e.pretty {
			enc.SetIndent("", "  ")
		}
		return enc.Encode(v)
	}
}

// Write is a one-shot helper around NewEncoder and Encode.
func Write(w io.Writer, format Format, v any) error {
	enc, err := NewEncoder(w, format, true)
	if err != nil {
		return err
	}
	return enc.Encode(v)
}
