package export

import (
	"encoding/hex"
	"encoding/json"
	"fmt"
	"io"

	"github.com/zeebo/blake3"
	"gopkg.in/yaml.v3"
)

// Format selects an output encoding.
type Format string

const (
	FormatJSON Format = "json"
	FormatYAML Format = "yaml"
)

// ParseFormat validates a format name.
func ParseFormat(s string) (Format, error) {
	switch f := Format(s); f {
	case FormatJSON, FormatYAML:
		return f, nil
	default:
		return "", fmt.Errorf("unknown format %q (want json or yaml)", s)
	}
}

// Encode writes v to w in format f.
func Encode(w io.Writer, f Format, v any) error {
	switch f {
	case FormatYAML:
		return EncodeYAML(w, v)
	default:
		return EncodeJSON(w, v)
	}
}

// EncodeJSON writes v as indented JSON.
func EncodeJSON(w io.Writer, v any) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode json: %w", err)
	}
	return nil
}

// EncodeYAML writes v as YAML.
func EncodeYAML(w io.Writer, v any) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(v); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	if err := enc.Close(); err != nil {
		return fmt.Errorf("encode yaml: %w", err)
	}
	return nil
}

// DecodeRaw reads a raw document encoded as JSON.
func DecodeRaw(r io.Reader) (Raw, error) {
	var raw Raw
	if err := json.NewDecoder(r).Decode(&raw); err != nil {
		return Raw{}, fmt.Errorf("%w: %v", ErrInvalidRaw, err)
	}
	return raw, nil
}

// Digest returns the hex BLAKE3-256 hash of the compact JSON encoding of
// raw. Map keys are sorted by encoding/json, so equal documents hash equal.
func Digest(raw Raw) (string, error) {
	data, err := json.Marshal(raw)
	if err != nil {
		return "", fmt.Errorf("digest: %w", err)
	}
	sum := blake3.Sum256(data)
	return hex.EncodeToString(sum[:]), nil
}
