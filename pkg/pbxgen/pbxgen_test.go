package pbxgen_test

import (
	"bytes"
	"context"
	"encoding/json"
	"log/slog"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pbxgen/pkg/pbxgen"
)

const yamlManifest = `name: Demo
targets:
  - name: Core
    type: framework
    sources: [Sources/Core/Core.swift]
  - name: App
    type: application
    sources: [Sources/App/main.swift]
    dependencies: [Core]
`

const tomlManifest = `name = "Tool"
compatibility = "15.0"

[[targets]]
name = "tool"
type = "tool"
sources = ["main.swift"]
`

func TestGenerate_EmptyPath(t *testing.T) {
	_, err := pbxgen.Generate(context.Background(), "")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "manifest path must not be empty")
}

func TestGenerate_MissingFile(t *testing.T) {
	_, err := pbxgen.Generate(context.Background(), filepath.Join(t.TempDir(), "missing.yaml"))
	require.Error(t, err)
	assert.ErrorIs(t, err, pbxgen.ErrInvalidManifest)
}

func TestGenerate_FromFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "project.yaml")
	require.NoError(t, os.WriteFile(path, []byte(yamlManifest), 0o600))

	result, err := pbxgen.Generate(context.Background(), path)
	require.NoError(t, err)

	assert.Equal(t, "Demo", result.ProjectName)
	assert.Equal(t, "46", result.ObjectVersion)
	assert.Equal(t, "OBJ_1", result.RootObject)
	assert.Equal(t, 2, result.TargetCount)
	assert.Positive(t, result.ObjectCount)
	assert.Empty(t, result.Dangling)
	assert.True(t, strings.HasPrefix(string(result.Document), "{\n"))
	assert.NoError(t, result.Validate())
}

func TestGenerateFromManifest_TOML(t *testing.T) {
	result, err := pbxgen.GenerateFromManifest(context.Background(), []byte(tomlManifest), pbxgen.FormatTOML)
	require.NoError(t, err)

	assert.Equal(t, "Tool", result.ProjectName)
	assert.Equal(t, "60", result.ObjectVersion)
	assert.Equal(t, 1, result.TargetCount)
}

func TestGenerateFromManifest_ObjectVersionOption(t *testing.T) {
	result, err := pbxgen.GenerateFromManifest(context.Background(), []byte(yamlManifest), pbxgen.FormatYAML,
		pbxgen.WithObjectVersion("54"),
	)
	require.NoError(t, err)

	assert.Equal(t, "54", result.ObjectVersion)
	assert.Contains(t, string(result.Document), `objectVersion = "54";`)
}

func TestGenerateFromManifest_Invalid(t *testing.T) {
	tests := []struct {
		name string
		data string
	}{
		{"empty", ""},
		{"unknown field", "name: Demo\nbogus: true\n"},
		{"no targets", "name: Demo\n"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := pbxgen.GenerateFromManifest(context.Background(), []byte(tt.data), pbxgen.FormatYAML)
			require.Error(t, err)
			assert.ErrorIs(t, err, pbxgen.ErrInvalidManifest)
		})
	}
}

func TestGenerateFromManifest_RequiresConstraint(t *testing.T) {
	data := []byte("requires: \">= 2.0\"\n" + yamlManifest)

	_, err := pbxgen.GenerateFromManifest(context.Background(), data, pbxgen.FormatYAML,
		pbxgen.WithGeneratorVersion("1.4.0"),
	)
	require.Error(t, err)
	assert.ErrorIs(t, err, pbxgen.ErrInvalidManifest)

	_, err = pbxgen.GenerateFromManifest(context.Background(), data, pbxgen.FormatYAML,
		pbxgen.WithGeneratorVersion("2.1.0"),
	)
	require.NoError(t, err)
}

func TestGenerateFromManifest_Logger(t *testing.T) {
	var logs bytes.Buffer

	_, err := pbxgen.GenerateFromManifest(context.Background(), []byte(yamlManifest), pbxgen.FormatYAML,
		pbxgen.WithLogger(slog.New(slog.NewTextHandler(&logs, nil))),
		pbxgen.WithCheckReferences(false),
	)
	require.NoError(t, err)
	assert.Contains(t, logs.String(), "document generated")
}

func TestResult_Encodings(t *testing.T) {
	result, err := pbxgen.GenerateFromManifest(context.Background(), []byte(yamlManifest), pbxgen.FormatYAML)
	require.NoError(t, err)

	data, err := result.JSON()
	require.NoError(t, err)

	var doc map[string]any
	require.NoError(t, json.Unmarshal(data, &doc))
	assert.Equal(t, result.RootObject, doc["rootObject"])

	objects, ok := doc["objects"].(map[string]any)
	require.True(t, ok)
	assert.Len(t, objects, result.ObjectCount)

	assert.Contains(t, result.DOT(), "digraph objects {")
}

func TestGenerate_CanceledContext(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := pbxgen.GenerateFromManifest(ctx, []byte(yamlManifest), pbxgen.FormatYAML)
	require.ErrorIs(t, err, context.Canceled)
}
