package facts

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
)

// Format is the encoding of a fact file.
type Format uint8

const (
	FormatUnknown Format = iota
	FormatTOML
	FormatYAML
	FormatSnapshot
)

// DetectFormat picks the format from the file extension.
func DetectFormat(path string) Format {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".toml":
		return FormatTOML
	case ".yaml", ".yml":
		return FormatYAML
	case ".mp", ".msgpack":
		return FormatSnapshot
	}
	return FormatUnknown
}

// Load reads path and decodes it. Snapshots may hold several documents.
func Load(path string) ([]*Document, error) {
	// #nosec G304 -- path is provided by the caller
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, err
	}
	return Decode(path, data)
}

// Decode decodes data according to the extension of path.
func Decode(path string, data []byte) ([]*Document, error) {
	switch DetectFormat(path) {
	case FormatTOML:
		doc, err := DecodeTOML(path, data)
		if err != nil {
			return nil, err
		}
		return []*Document{doc}, nil
	case FormatYAML:
		doc, err := DecodeYAML(path, data)
		if err != nil {
			return nil, err
		}
		return []*Document{doc}, nil
	case FormatSnapshot:
		snap, err := ReadSnapshot(bytes.NewReader(data))
		if err != nil {
			return nil, fmt.Errorf("%s: %w", path, err)
		}
		// ranges resolve relative to where the snapshot is now
		for _, doc := range snap.Documents {
			doc.Path = path
		}
		return snap.Documents, nil
	}
	return nil, fmt.Errorf("%s: %w (expected .toml, .yaml, .yml or .mp)", path, ErrUnknownFormat)
}

// DecodeTOML decodes a TOML document. Keys the schema does not know are
// rejected.
func DecodeTOML(path string, data []byte) (*Document, error) {
	doc := &Document{Path: path}
	meta, err := toml.Decode(string(data), doc)
	if err != nil {
		return nil, fmt.Errorf("%s: failed to parse TOML: %w", path, err)
	}
	if undecoded := meta.Undecoded(); len(undecoded) > 0 {
		keys := make([]string, len(undecoded))
		for i, k := range undecoded {
			keys[i] = k.String()
		}
		return nil, fmt.Errorf("%s: %w: unknown keys %s", path, ErrInvalidFact, strings.Join(keys, ", "))
	}
	return doc, nil
}

// DecodeYAML decodes a YAML document. Unknown fields are rejected; an
// empty document is valid.
func DecodeYAML(path string, data []byte) (*Document, error) {
	doc := &Document{Path: path}
	dec := yaml.NewDecoder(bytes.NewReader(data))
	dec.KnownFields(true)
	if err := dec.Decode(doc); err != nil && !errors.Is(err, io.EOF) {
		return nil, fmt.Errorf("%s: failed to parse YAML: %w", path, err)
	}
	doc.Path = path
	return doc, nil
}

// EncodeTOML writes doc as TOML.
func EncodeTOML(w io.Writer, doc *Document) error {
	return toml.NewEncoder(w).Encode(doc)
}

// EncodeYAML writes doc as YAML.
func EncodeYAML(w io.Writer, doc *Document) error {
	enc := yaml.NewEncoder(w)
	enc.SetIndent(2)
	if err := enc.Encode(doc); err != nil {
		return err
	}
	return enc.Close()
}
