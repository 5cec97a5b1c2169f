package output

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pbxgen/internal/plist"
)

func TestEncodeJSON_Shape(t *testing.T) {
	v := plist.Mapping{
		"z":   plist.Array{plist.Identifier("OBJ_2"), plist.String("x")},
		"isa": plist.String("PBXGroup"),
		"a":   plist.Mapping{},
		"b":   plist.Array{},
	}

	out, err := EncodeJSON(v, "  ")
	require.NoError(t, err)

	want := "{\n" +
		"  \"isa\": \"PBXGroup\",\n" +
		"  \"a\": {},\n" +
		"  \"b\": [],\n" +
		"  \"z\": [\n" +
		"    \"OBJ_2\",\n" +
		"    \"x\"\n" +
		"  ]\n" +
		"}\n"
	assert.Equal(t, want, string(out))
}

func TestEncodeJSON_ValidJSON(t *testing.T) {
	doc := sampleDocument(t)

	out, err := EncodeJSON(doc.Root, "")
	require.NoError(t, err)

	var parsed map[string]any
	require.NoError(t, json.Unmarshal(out, &parsed))

	objects := parsed["objects"].(map[string]any)
	assert.Len(t, objects, 3)
	assert.Equal(t, "OBJ_1", parsed["rootObject"])
}

func TestEncodeJSON_Escaping(t *testing.T) {
	out, err := EncodeJSON(plist.String("say \"hi\"\n\tback\\slash"), "  ")
	require.NoError(t, err)

	var s string
	require.NoError(t, json.Unmarshal(out, &s))
	assert.Equal(t, "say \"hi\"\n\tback\\slash", s)
}

func TestEncodeJSON_ControlCharacters(t *testing.T) {
	script := "echo \x1b[31mred\x00\x7f\u00e9"

	out, err := EncodeJSON(plist.Mapping{"shellScript": plist.String(script)}, "  ")
	require.NoError(t, err)
	assert.Contains(t, string(out), `\u001b[31mred\u0000`)

	var decoded map[string]string
	require.NoError(t, json.Unmarshal(out, &decoded))
	assert.Equal(t, script, decoded["shellScript"])
}

func TestJSONQuote_AllControlBytes(t *testing.T) {
	for c := 0; c < 0x20; c++ {
		s := string(rune(c))

		var got string
		require.NoError(t, json.Unmarshal([]byte(jsonQuote(s)), &got), "byte %#x", c)
		assert.Equal(t, s, got)
	}
}

func TestEncodeJSON_Unsupported(t *testing.T) {
	_, err := EncodeJSON(nil, "  ")
	assert.ErrorContains(t, err, "unsupported value")
}

func TestEncodeYAML(t *testing.T) {
	out, err := EncodeYAML(plist.Mapping{
		"isa":   plist.String("PBXProject"),
		"items": plist.Identifiers("OBJ_1", "OBJ_2"),
	})
	require.NoError(t, err)
	assert.Equal(t, "isa: PBXProject\nitems:\n- OBJ_1\n- OBJ_2\n", string(out))
}

func TestToNative(t *testing.T) {
	got := ToNative(plist.Mapping{
		"a": plist.Identifier("OBJ_1"),
		"b": plist.Strings("x"),
	})

	assert.Equal(t, map[string]any{"a": "OBJ_1", "b": []any{"x"}}, got)
	assert.Nil(t, ToNative(nil))
}
