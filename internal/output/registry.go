package output

import (
	"fmt"
	"sort"
	"strings"
	"sync"

	"github.com/hupe1980/pbxgen/internal/document"
)

// Built-in format names.
const (
	FormatPBXProj = "pbxproj"
	FormatJSON    = "json"
	FormatYAML    = "yaml"
	FormatDOT     = "dot"
)

// Encoder turns a built document into bytes.
type Encoder func(doc *document.Result) ([]byte, error)

// Registry maps format names to Encoder functions, enabling pluggable
// output formats for the generate and graph commands.
type Registry struct {
	mu       sync.RWMutex
	encoders map[string]Encoder
}

// NewRegistry creates an empty encoder registry.
func NewRegistry() *Registry {
	return &Registry{
		encoders: make(map[string]Encoder),
	}
}

// Register adds an encoder under the given format name.
// Existing entries for the same name are overwritten.
func (r *Registry) Register(name string, enc Encoder) {
	r.mu.Lock()
	defer r.mu.Unlock()

	r.encoders[name] = enc
}

// Encoder returns the encoder for the given format, or an error if not found.
func (r *Registry) Encoder(name string) (Encoder, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	enc, ok := r.encoders[name]
	if !ok {
		return nil, fmt.Errorf("unknown output format %q (available: %s)", name, r.availableLocked())
	}

	return enc, nil
}

// Encode looks up the encoder for format and applies it to doc.
func (r *Registry) Encode(format string, doc *document.Result) ([]byte, error) {
	enc, err := r.Encoder(format)
	if err != nil {
		return nil, err
	}

	return enc(doc)
}

// Formats returns the sorted list of registered format names.
func (r *Registry) Formats() []string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.formatsLocked()
}

// AvailableFormats returns a comma-separated string of registered format names.
func (r *Registry) AvailableFormats() string {
	r.mu.RLock()
	defer r.mu.RUnlock()

	return r.availableLocked()
}

func (r *Registry) formatsLocked() []string {
	names := make([]string, 0, len(r.encoders))
	for name := range r.encoders {
		names = append(names, name)
	}

	sort.Strings(names)

	return names
}

func (r *Registry) availableLocked() string {
	formats := r.formatsLocked()
	if len(formats) == 0 {
		return "none"
	}

	return strings.Join(formats, ", ")
}

// DefaultRegistry returns a registry pre-populated with the built-in
// formats: pbxproj, json, yaml, dot.
func DefaultRegistry() *Registry {
	r := NewRegistry()

	r.Register(FormatPBXProj, func(doc *document.Result) ([]byte, error) {
		return document.Render(doc.Root)
	})

	r.Register(FormatJSON, func(doc *document.Result) ([]byte, error) {
		return EncodeJSON(doc.Root, "  ")
	})

	r.Register(FormatYAML, func(doc *document.Result) ([]byte, error) {
		return EncodeYAML(doc.Root)
	})

	r.Register(FormatDOT, func(doc *document.Result) ([]byte, error) {
		return []byte(ToDOT(doc.Serializer, doc.RootID)), nil
	})

	return r
}
