package diff

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

const existing = "{\n   archiveVersion = \"1\";\n   objectVersion = \"46\";\n}"

func TestCompute_Identical(t *testing.T) {
	result, err := Compute(existing, existing, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, result.HasDifferences)
	assert.Empty(t, result.Hunks)
}

func TestCompute_TrailingNewlineIgnored(t *testing.T) {
	result, err := Compute(existing+"\n", existing, DefaultOptions())
	require.NoError(t, err)
	assert.False(t, result.HasDifferences)
}

func TestCompute_Different(t *testing.T) {
	generated := "{\n   archiveVersion = \"1\";\n   objectVersion = \"56\";\n}"

	result, err := Compute(existing, generated, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
	require.Len(t, result.Hunks, 1)
	assert.Contains(t, result.Unified, "-   objectVersion = \"46\";")
	assert.Contains(t, result.Unified, "+   objectVersion = \"56\";")
	assert.Contains(t, result.Hunks[0], "@@")
	assert.Equal(t, 1, result.Added)
	assert.Equal(t, 1, result.Removed)
}

func TestCompute_Labels(t *testing.T) {
	opts := DefaultOptions()
	opts.OldLabel = "Demo.xcodeproj/project.pbxproj"
	opts.NewLabel = "project.yaml"

	result, err := Compute("a\n", "b\n", opts)
	require.NoError(t, err)
	assert.Contains(t, result.Unified, "--- Demo.xcodeproj/project.pbxproj")
	assert.Contains(t, result.Unified, "+++ project.yaml")
}

func TestCompute_EmptyOld(t *testing.T) {
	result, err := Compute("", existing, DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
	assert.Equal(t, 4, result.Added)
	assert.Zero(t, result.Removed)
}

func TestCompute_EmptyNew(t *testing.T) {
	result, err := Compute(existing, "", DefaultOptions())
	require.NoError(t, err)
	assert.True(t, result.HasDifferences)
	assert.Equal(t, 4, result.Removed)
}

func TestWrite_Plain(t *testing.T) {
	result, err := Compute("line1\nline2\n", "line1\nline3\n", DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	Write(&buf, result, false)

	out := buf.String()
	assert.NotContains(t, out, "\033[")
	assert.Contains(t, out, "-line2\n")
	assert.Contains(t, out, "+line3\n")
	assert.Contains(t, out, "1 line(s) added, 1 line(s) removed")
}

func TestWrite_NoDifferences(t *testing.T) {
	result, err := Compute("same\n", "same\n", DefaultOptions())
	require.NoError(t, err)

	var buf bytes.Buffer
	Write(&buf, result, true)
	assert.Equal(t, "No differences found.\n", buf.String())
}

func TestStyleLine_KeepsText(t *testing.T) {
	for _, line := range []string{"--- a", "+++ b", "@@ -1 +1 @@", "-x", "+y", " z"} {
		assert.Contains(t, styleLine(line), line)
	}
}

func TestSplitLines(t *testing.T) {
	assert.Equal(t, []string{"a\n", "b\n", "c\n"}, splitLines("a\nb\nc"))
	assert.Equal(t, []string{"a\n", "b\n", "c\n"}, splitLines("a\nb\nc\n"))
	assert.Empty(t, splitLines(""))
}
