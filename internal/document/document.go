// Package document assembles the top-level property-list envelope around an
// object table and is the boundary at which serializer contract violations
// become errors.
package document

import (
	"fmt"

	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

const (
	// ArchiveVersion is the property-list archive format marker.
	ArchiveVersion = "1"
	// DefaultObjectVersion is the object format understood by every Xcode
	// release since 3.2.
	DefaultObjectVersion = "46"
)

// Options controls envelope assembly.
type Options struct {
	// ObjectVersion overrides the objectVersion field. Empty means
	// DefaultObjectVersion.
	ObjectVersion string

	// CheckReferences fails the build when an object was referenced but never
	// serialized.
	CheckReferences bool
}

// Result is a built document.
type Result struct {
	// Root is the envelope mapping, ready for rendering.
	Root plist.Mapping
	// RootID is the id assigned to the root object.
	RootID string
	// Serializer holds the ids, records and edges of the walk.
	Serializer *objgraph.Serializer
}

// Envelope wraps an object table into the top-level document mapping.
func Envelope(rootID string, objects plist.Mapping, opts Options) plist.Mapping {
	objectVersion := opts.ObjectVersion
	if objectVersion == "" {
		objectVersion = DefaultObjectVersion
	}

	return plist.Mapping{
		"archiveVersion": plist.String(ArchiveVersion),
		"classes":        plist.Mapping{},
		"objectVersion":  plist.String(objectVersion),
		"objects":        objects,
		"rootObject":     plist.Identifier(rootID),
	}
}

// Build serializes root with a fresh serializer and wraps the resulting table.
// A contract violation anywhere in the walk aborts the build and is returned
// as the error; no partial document is produced.
func Build(root objgraph.Object, opts Options) (res *Result, err error) {
	defer catch(&err)

	s := objgraph.New()
	rootID := s.Serialize(root)

	if opts.CheckReferences {
		if err := s.CheckIntegrity(); err != nil {
			return nil, fmt.Errorf("checking references: %w", err)
		}
	}

	return &Result{
		Root:       Envelope(rootID, s.Objects(), opts),
		RootID:     rootID,
		Serializer: s,
	}, nil
}

// Generate builds the document for root and renders it as text.
func Generate(root objgraph.Object, opts Options) ([]byte, error) {
	res, err := Build(root, opts)
	if err != nil {
		return nil, err
	}

	return Render(res.Root)
}

// Render renders a document mapping, converting renderer contract violations
// into errors.
func Render(doc plist.Mapping) (out []byte, err error) {
	defer catch(&err)

	return []byte(plist.Render(doc, 0)), nil
}

// catch converts the panics raised for contract violations into an error.
// Any other panic keeps unwinding.
func catch(errp *error) {
	r := recover()
	if r == nil {
		return
	}

	switch v := r.(type) {
	case *objgraph.ContractViolation:
		*errp = v
	case *plist.IndentError:
		*errp = v
	default:
		panic(r)
	}
}
