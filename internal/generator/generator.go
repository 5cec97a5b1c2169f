// Package generator runs the manifest-to-document pipeline shared by the
// CLI commands and the public API.
package generator

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/hupe1980/pbxgen/internal/document"
	"github.com/hupe1980/pbxgen/internal/logging"
	"github.com/hupe1980/pbxgen/internal/manifest"
	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/project"
	"github.com/hupe1980/pbxgen/internal/version"
)

// ErrInvalidManifest is wrapped by every error caused by the manifest itself:
// it could not be read, decoded or validated.
var ErrInvalidManifest = errors.New("invalid manifest")

// Options configures a generator run. Exactly one of ManifestPath and
// Manifest must be set.
type Options struct {
	// ManifestPath is read and decoded according to its extension.
	ManifestPath string
	// Manifest is used as-is when set. Defaults are applied in place.
	Manifest *manifest.Manifest

	// ObjectVersion is used when the manifest does not select one through
	// its compatibility setting. Empty means document.DefaultObjectVersion.
	ObjectVersion string

	// CheckReferences fails the run on dangling references. When false they
	// are reported in the result and logged.
	CheckReferences bool

	// GeneratorVersion is matched against the manifest's requires
	// constraint. Empty means the running binary's version.
	GeneratorVersion string
}

// Result is the outcome of a successful run.
type Result struct {
	Manifest *manifest.Manifest
	Project  *project.Project
	Document *document.Result

	// Output is the rendered document text.
	Output []byte
	// ObjectVersion is the objectVersion written to the document.
	ObjectVersion string
	// Objects is the number of records in the object table.
	Objects int
	// Dangling lists ids that were referenced but never serialized.
	Dangling []string
	// Duration is the wall time of the run.
	Duration time.Duration
}

// Run loads, validates, builds, serializes and renders a manifest.
func Run(ctx context.Context, opts Options) (*Result, error) {
	logger := logging.FromContext(ctx)
	start := time.Now()

	m, err := resolveManifest(opts)
	if err != nil {
		return nil, err
	}

	if err := ctx.Err(); err != nil {
		return nil, err
	}

	m.ApplyDefaults()

	gv := opts.GeneratorVersion
	if gv == "" {
		gv = version.GetInfo().Version
	}

	if err := m.Validate(gv); err != nil {
		return nil, fmt.Errorf("%w: validating manifest: %w", ErrInvalidManifest, err)
	}

	logger.Debug("manifest loaded", "name", m.Name, "targets", len(m.Targets))

	proj, err := project.Build(m)
	if err != nil {
		return nil, fmt.Errorf("building project: %w", err)
	}

	objectVersion := ObjectVersion(m, opts.ObjectVersion)

	doc, err := document.Build(proj, document.Options{
		ObjectVersion:   objectVersion,
		CheckReferences: opts.CheckReferences,
	})
	if err != nil {
		return nil, fmt.Errorf("serializing project: %w", err)
	}

	dangling := doc.Serializer.Dangling()
	if len(dangling) > 0 {
		logger.Warn("document contains dangling references", "ids", dangling)
	}

	out, err := document.Render(doc.Root)
	if err != nil {
		return nil, fmt.Errorf("rendering document: %w", err)
	}

	res := &Result{
		Manifest:      m,
		Project:       proj,
		Document:      doc,
		Output:        out,
		ObjectVersion: objectVersion,
		Objects:       doc.Serializer.Len(),
		Dangling:      dangling,
		Duration:      time.Since(start),
	}

	logger.Info("document generated",
		"project", m.Name,
		"objects", res.Objects,
		"objectVersion", objectVersion,
		"bytes", len(out),
		"duration", res.Duration.Round(time.Millisecond),
	)

	return res, nil
}

// ObjectVersion picks the objectVersion for m: the one implied by its
// compatibility setting, else fallback, else the document default.
func ObjectVersion(m *manifest.Manifest, fallback string) string {
	if ov := m.ObjectVersion(); ov != "" {
		return ov
	}

	if fallback != "" {
		return fallback
	}

	return document.DefaultObjectVersion
}

func resolveManifest(opts Options) (*manifest.Manifest, error) {
	switch {
	case opts.Manifest != nil && opts.ManifestPath != "":
		return nil, errors.New("manifest and manifest path are mutually exclusive")
	case opts.Manifest != nil:
		return opts.Manifest, nil
	case opts.ManifestPath != "":
		m, err := manifest.Load(opts.ManifestPath)
		if err != nil {
			return nil, fmt.Errorf("%w: loading manifest: %w", ErrInvalidManifest, err)
		}

		return m, nil
	default:
		return nil, errors.New("no manifest given")
	}
}

// IsContractViolation reports whether err stems from a serializer contract
// violation or a dangling reference.
func IsContractViolation(err error) bool {
	var cv *objgraph.ContractViolation
	if errors.As(err, &cv) {
		return true
	}

	return errors.Is(err, objgraph.ErrDanglingReference)
}
