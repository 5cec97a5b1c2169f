// Package pbxgen provides a public Go API for generating Xcode project
// documents (project.pbxproj) from manifests.
//
// This package exposes the pbxgen generation pipeline as a library,
// allowing programmatic use without the CLI.
//
// Basic usage:
//
//	result, err := pbxgen.Generate(ctx, "project.yaml")
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fmt.Println(string(result.Document))
//
// With options:
//
//	result, err := pbxgen.GenerateFromManifest(ctx, data, pbxgen.FormatTOML,
//	    pbxgen.WithObjectVersion("56"),
//	    pbxgen.WithLogger(logger),
//	)
package pbxgen

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/hupe1980/pbxgen/internal/document"
	"github.com/hupe1980/pbxgen/internal/generator"
	"github.com/hupe1980/pbxgen/internal/logging"
	"github.com/hupe1980/pbxgen/internal/manifest"
	"github.com/hupe1980/pbxgen/internal/output"
)

// ManifestFormat is the encoding of manifest data passed to
// GenerateFromManifest.
type ManifestFormat = manifest.Format

// Supported manifest encodings.
const (
	FormatYAML = manifest.FormatYAML
	FormatTOML = manifest.FormatTOML
	FormatJSON = manifest.FormatJSON
)

// ErrInvalidManifest is wrapped by errors caused by the manifest itself.
var ErrInvalidManifest = generator.ErrInvalidManifest

// Option configures the generation pipeline.
// Use the With* functions to create Options.
type Option func(*options)

type options struct {
	objectVersion    string
	checkReferences  bool
	generatorVersion string
	logger           *slog.Logger
}

// WithObjectVersion sets the objectVersion used when the manifest does not
// select one through its compatibility setting.
func WithObjectVersion(v string) Option {
	return func(o *options) { o.objectVersion = v }
}

// WithCheckReferences controls whether identifiers naming objects that were
// never written fail the generation. Enabled by default.
func WithCheckReferences(check bool) Option {
	return func(o *options) { o.checkReferences = check }
}

// WithGeneratorVersion overrides the version matched against a manifest's
// requires constraint.
func WithGeneratorVersion(v string) Option {
	return func(o *options) { o.generatorVersion = v }
}

// WithLogger sets the logger. By default nothing is logged.
func WithLogger(logger *slog.Logger) Option {
	return func(o *options) { o.logger = logger }
}

// Result holds the output of a generation.
type Result struct {
	// Document is the rendered project.pbxproj text.
	Document []byte

	// ProjectName is the manifest's project name.
	ProjectName string

	// ObjectVersion is the objectVersion written to the document.
	ObjectVersion string

	// RootObject is the identifier of the project record.
	RootObject string

	// ObjectCount is the number of records in the object table.
	ObjectCount int

	// TargetCount is the number of native targets.
	TargetCount int

	// Dangling lists identifiers that were referenced but never written.
	// Always empty when reference checking is enabled.
	Dangling []string

	// Duration is the wall time of the generation.
	Duration time.Duration

	doc *document.Result
}

// JSON returns the document encoded as JSON.
func (r *Result) JSON() ([]byte, error) {
	return output.EncodeJSON(r.doc.Root, "  ")
}

// DOT returns the object graph of the document in Graphviz DOT syntax.
func (r *Result) DOT() string {
	return output.ToDOT(r.doc.Serializer, r.doc.RootID)
}

// Validate runs the integrity check over the document and returns an error
// listing every finding of error severity.
func (r *Result) Validate() error {
	res := output.Validate(r.doc.Root)
	if !res.HasErrors() {
		return nil
	}

	errs := make([]error, 0, len(res.Errors()))
	for _, f := range res.Errors() {
		errs = append(errs, &f)
	}

	return errors.Join(errs...)
}

// Generate reads the manifest at path and generates its document. The
// manifest encoding is chosen by file extension.
func Generate(ctx context.Context, path string, opts ...Option) (*Result, error) {
	if path == "" {
		return nil, errors.New("manifest path must not be empty")
	}

	return run(ctx, generator.Options{ManifestPath: path}, opts)
}

// GenerateFromManifest generates the document for manifest data in the given
// encoding.
func GenerateFromManifest(ctx context.Context, data []byte, format ManifestFormat, opts ...Option) (*Result, error) {
	m, err := manifest.Parse(data, format)
	if err != nil {
		return nil, fmt.Errorf("%w: %w", ErrInvalidManifest, err)
	}

	return run(ctx, generator.Options{Manifest: m}, opts)
}

func run(ctx context.Context, gopts generator.Options, opts []Option) (*Result, error) {
	o := &options{
		checkReferences: true,
		logger:          logging.Discard(),
	}

	for _, opt := range opts {
		opt(o)
	}

	gopts.ObjectVersion = o.objectVersion
	gopts.CheckReferences = o.checkReferences
	gopts.GeneratorVersion = o.generatorVersion

	res, err := generator.Run(logging.NewContext(ctx, o.logger), gopts)
	if err != nil {
		return nil, err
	}

	return &Result{
		Document:      res.Output,
		ProjectName:   res.Manifest.Name,
		ObjectVersion: res.ObjectVersion,
		RootObject:    res.Document.RootID,
		ObjectCount:   res.Objects,
		TargetCount:   len(res.Project.Targets),
		Dangling:      res.Dangling,
		Duration:      res.Duration,
		doc:           res.Document,
	}, nil
}
