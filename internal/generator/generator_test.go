package generator

import (
	"bytes"
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pbxgen/internal/document"
	"github.com/hupe1980/pbxgen/internal/logging"
	"github.com/hupe1980/pbxgen/internal/manifest"
	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

const sampleManifest = `name: Demo
compatibility: "14.0"
targets:
  - name: Core
    type: framework
    sources: [Sources/Core/Core.swift]
  - name: App
    type: application
    sources: [Sources/App/main.swift]
    dependencies: [Core]
`

func writeManifest(t *testing.T, content string) string {
	t.Helper()

	p := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(p, []byte(content), 0o600))

	return p
}

func TestRun_FromPath(t *testing.T) {
	var logs bytes.Buffer
	ctx := logging.NewContext(context.Background(), slog.New(slog.NewTextHandler(&logs, nil)))

	res, err := Run(ctx, Options{ManifestPath: writeManifest(t, sampleManifest), CheckReferences: true})
	require.NoError(t, err)

	assert.Equal(t, "56", res.ObjectVersion)
	assert.Empty(t, res.Dangling)
	assert.Equal(t, res.Document.Serializer.Len(), res.Objects)
	assert.Contains(t, string(res.Output), "objectVersion = \"56\";")
	assert.Contains(t, string(res.Output), "rootObject = "+res.Document.RootID+";")
	assert.Contains(t, logs.String(), "document generated")
	assert.Contains(t, logs.String(), "project=Demo")
}

func TestRun_Deterministic(t *testing.T) {
	path := writeManifest(t, sampleManifest)
	ctx := logging.NewContext(context.Background(), logging.Discard())

	first, err := Run(ctx, Options{ManifestPath: path})
	require.NoError(t, err)

	second, err := Run(ctx, Options{ManifestPath: path})
	require.NoError(t, err)

	assert.Equal(t, string(first.Output), string(second.Output))
}

func TestRun_InMemoryManifest(t *testing.T) {
	m := &manifest.Manifest{
		Name:    "Tool",
		Targets: []manifest.Target{{Name: "cli", Type: manifest.TypeTool, Sources: []string{"main.c"}}},
	}

	res, err := Run(context.Background(), Options{Manifest: m, ObjectVersion: "50"})
	require.NoError(t, err)

	assert.Equal(t, "50", res.ObjectVersion)
	assert.Equal(t, "cli", m.Targets[0].ProductName, "defaults are applied in place")
}

func TestRun_ManifestErrors(t *testing.T) {
	tests := []struct {
		name string
		opts Options
		want string
	}{
		{"none", Options{}, "no manifest given"},
		{"both", Options{ManifestPath: "x.yaml", Manifest: &manifest.Manifest{}}, "mutually exclusive"},
		{"missing file", Options{ManifestPath: "/nonexistent/pbxgen.yaml"}, "loading manifest"},
		{"invalid", Options{Manifest: &manifest.Manifest{}}, "validating manifest"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := Run(context.Background(), tt.opts)
			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.want)
			assert.False(t, IsContractViolation(err))
		})
	}
}

func TestRun_ValidationErrorIsTyped(t *testing.T) {
	_, err := Run(context.Background(), Options{Manifest: &manifest.Manifest{}})

	var ve *manifest.ValidationError
	assert.ErrorAs(t, err, &ve)
	assert.ErrorIs(t, err, ErrInvalidManifest)
}

func TestRun_RequiresConstraint(t *testing.T) {
	path := writeManifest(t, "requires: \">= 2.0.0\"\n"+sampleManifest)

	_, err := Run(context.Background(), Options{ManifestPath: path, GeneratorVersion: "1.4.0"})
	require.Error(t, err)
	assert.Contains(t, err.Error(), "requires")

	_, err = Run(context.Background(), Options{ManifestPath: path, GeneratorVersion: "2.1.0"})
	assert.NoError(t, err)
}

func TestRun_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Run(ctx, Options{ManifestPath: writeManifest(t, sampleManifest)})
	assert.ErrorIs(t, err, context.Canceled)
}

func TestObjectVersion(t *testing.T) {
	assert.Equal(t, "60", ObjectVersion(&manifest.Manifest{Compatibility: "15.1"}, "50"))
	assert.Equal(t, "50", ObjectVersion(&manifest.Manifest{}, "50"))
	assert.Equal(t, document.DefaultObjectVersion, ObjectVersion(&manifest.Manifest{}, ""))
}

type orphan struct{ ref *orphan }

func (o *orphan) PBXFields(s *objgraph.Serializer) plist.Mapping {
	m := plist.Mapping{"isa": plist.String("Orphan")}
	if o.ref != nil {
		m["ref"] = plist.Identifier(s.IDOf(o.ref))
	}

	return m
}

func TestIsContractViolation(t *testing.T) {
	_, err := document.Build(&orphan{ref: &orphan{}}, document.Options{CheckReferences: true})
	require.Error(t, err)
	assert.True(t, IsContractViolation(err))

	a := &orphan{}
	a.ref = a

	_, err = document.Build(a, document.Options{})
	assert.NoError(t, err, "a reference to itself is not an ownership cycle")
}
