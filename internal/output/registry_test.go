package output

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pbxgen/internal/document"
)

// ---------------------------------------------------------------------------
// Registry
// ---------------------------------------------------------------------------

func constEncoder(out string) Encoder {
	return func(*document.Result) ([]byte, error) { return []byte(out), nil }
}

func TestRegistry_Register_And_Lookup(t *testing.T) {
	r := NewRegistry()
	r.Register("test", constEncoder("hello"))

	out, err := r.Encode("test", &document.Result{})
	require.NoError(t, err)
	assert.Equal(t, "hello", string(out))
}

func TestRegistry_UnknownFormat(t *testing.T) {
	r := NewRegistry()

	_, err := r.Encoder("xml")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "unknown output format")
	assert.Contains(t, err.Error(), "xml")
	assert.Contains(t, err.Error(), "none")
}

func TestRegistry_Formats(t *testing.T) {
	r := NewRegistry()
	r.Register("json", constEncoder(""))
	r.Register("yaml", constEncoder(""))
	r.Register("csv", constEncoder(""))

	assert.Equal(t, []string{"csv", "json", "yaml"}, r.Formats())
	assert.Equal(t, "csv, json, yaml", r.AvailableFormats())
}

func TestRegistry_Overwrite(t *testing.T) {
	r := NewRegistry()
	r.Register("fmt", constEncoder("old"))
	r.Register("fmt", constEncoder("new"))

	out, err := r.Encode("fmt", nil)
	require.NoError(t, err)
	assert.Equal(t, "new", string(out))
}

func TestRegistry_EncoderError(t *testing.T) {
	r := NewRegistry()
	boom := errors.New("boom")
	r.Register("bad", func(*document.Result) ([]byte, error) { return nil, boom })

	_, err := r.Encode("bad", nil)
	assert.ErrorIs(t, err, boom)
}

func TestDefaultRegistry(t *testing.T) {
	assert.Equal(t, []string{"dot", "json", "pbxproj", "yaml"}, DefaultRegistry().Formats())
}

func TestDefaultRegistry_Encoders(t *testing.T) {
	doc := sampleDocument(t)
	r := DefaultRegistry()

	pbx, err := r.Encode(FormatPBXProj, doc)
	require.NoError(t, err)
	assert.Contains(t, string(pbx), "rootObject = OBJ_1;")

	js, err := r.Encode(FormatJSON, doc)
	require.NoError(t, err)
	assert.Contains(t, string(js), `"rootObject": "OBJ_1"`)

	y, err := r.Encode(FormatYAML, doc)
	require.NoError(t, err)
	assert.Contains(t, string(y), "rootObject: OBJ_1")

	dot, err := r.Encode(FormatDOT, doc)
	require.NoError(t, err)
	assert.Contains(t, string(dot), "digraph objects {")
}
