package manifest

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/BurntSushi/toml"
	"gopkg.in/yaml.v3"
	sigsyaml "sigs.k8s.io/yaml"
)

// Format is a manifest encoding.
type Format string

// Supported formats.
const (
	FormatYAML Format = "yaml"
	FormatTOML Format = "toml"
	FormatJSON Format = "json"
)

// DetectFormat picks a format from the file extension.
func DetectFormat(path string) (Format, error) {
	switch strings.ToLower(filepath.Ext(path)) {
	case ".yaml", ".yml":
		return FormatYAML, nil
	case ".toml":
		return FormatTOML, nil
	case ".json":
		return FormatJSON, nil
	default:
		return "", fmt.Errorf("unsupported manifest extension %q (want .yaml, .yml, .toml or .json)", filepath.Ext(path))
	}
}

// Load reads and decodes the manifest at path. Defaults are not applied.
func Load(path string) (*Manifest, error) {
	format, err := DetectFormat(path)
	if err != nil {
		return nil, err
	}

	data, err := os.ReadFile(path) //nolint:gosec // user-supplied manifest path
	if err != nil {
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	m, err := Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("parsing %s: %w", path, err)
	}

	return m, nil
}

// Parse decodes manifest bytes in the given format. Unknown fields are
// rejected in every format.
func Parse(data []byte, format Format) (*Manifest, error) {
	var m Manifest

	switch format {
	case FormatYAML:
		dec := yaml.NewDecoder(bytes.NewReader(data))
		dec.KnownFields(true)

		if err := dec.Decode(&m); err != nil {
			if errors.Is(err, io.EOF) {
				return nil, errors.New("manifest is empty")
			}

			return nil, fmt.Errorf("decoding YAML: %w", err)
		}
	case FormatTOML:
		md, err := toml.Decode(string(data), &m)
		if err != nil {
			return nil, fmt.Errorf("decoding TOML: %w", err)
		}

		if undecoded := md.Undecoded(); len(undecoded) > 0 {
			keys := make([]string, 0, len(undecoded))
			for _, k := range undecoded {
				keys = append(keys, k.String())
			}

			sort.Strings(keys)

			return nil, fmt.Errorf("decoding TOML: unknown fields: %s", strings.Join(keys, ", "))
		}
	case FormatJSON:
		if err := sigsyaml.UnmarshalStrict(data, &m); err != nil {
			return nil, fmt.Errorf("decoding JSON: %w", err)
		}
	default:
		return nil, fmt.Errorf("unsupported manifest format %q", format)
	}

	return &m, nil
}
