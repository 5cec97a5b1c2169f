package output

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pbxgen/internal/document"
	"github.com/hupe1980/pbxgen/internal/plist"
)

func envelope(objects plist.Mapping, root string) plist.Mapping {
	return document.Envelope(root, objects, document.Options{})
}

func TestValidate_BuiltDocumentIsClean(t *testing.T) {
	result := Validate(sampleDocument(t).Root)

	assert.Empty(t, result.Findings)
	assert.False(t, result.HasErrors())
	assert.False(t, result.HasWarnings())
	assert.Equal(t, "Validation passed: no issues found.", FormatValidationResult(result))
}

func TestValidate_MissingFields(t *testing.T) {
	result := Validate(plist.Mapping{})

	require.True(t, result.HasErrors())

	var fields []string
	for _, f := range result.Errors() {
		fields = append(fields, f.Field)
	}

	assert.Equal(t, []string{"archiveVersion", "objectVersion", "classes", "objects"}, fields)
}

func TestValidate_Root(t *testing.T) {
	doc := envelope(plist.Mapping{}, "OBJ_1")

	result := Validate(doc)
	require.Len(t, result.Errors(), 1)
	assert.Equal(t, "rootObject", result.Errors()[0].Field)
	assert.Contains(t, result.Errors()[0].Message, "OBJ_1 has no record")

	doc["rootObject"] = plist.String("OBJ_1")
	result = Validate(doc)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0].Message, "must be an identifier")

	delete(doc, "rootObject")
	result = Validate(doc)
	require.Len(t, result.Errors(), 1)
	assert.Contains(t, result.Errors()[0].Message, "required field is missing")
}

func TestValidate_DanglingReference(t *testing.T) {
	doc := envelope(plist.Mapping{
		"OBJ_1": plist.Mapping{
			"isa":      plist.String("PBXGroup"),
			"children": plist.Identifiers("OBJ_2", "OBJ_9"),
		},
		"OBJ_2": plist.Mapping{"isa": plist.String("PBXFileReference")},
	}, "OBJ_1")

	result := Validate(doc)
	require.Len(t, result.Errors(), 1)

	f := result.Errors()[0]
	assert.Equal(t, "objects.OBJ_1.children[1]", f.Field)
	assert.Equal(t, "dangling reference to OBJ_9", f.Message)
	assert.Equal(t, "[error] objects.OBJ_1.children[1]: dangling reference to OBJ_9", f.Error())
}

func TestValidate_RecordShape(t *testing.T) {
	doc := envelope(plist.Mapping{
		"OBJ_1": plist.Mapping{"isa": plist.String("PBXProject"), "a": plist.Identifier("OBJ_2"), "b": plist.Identifier("OBJ_3")},
		"OBJ_2": plist.Mapping{"name": plist.String("no isa")},
		"OBJ_3": plist.String("not a record"),
	}, "OBJ_1")

	result := Validate(doc)
	require.Len(t, result.Errors(), 2)
	assert.Equal(t, "record has no isa", result.Errors()[0].Message)
	assert.Contains(t, result.Errors()[1].Message, "record must be a mapping")
}

func TestValidate_UnreferencedRecordWarns(t *testing.T) {
	doc := envelope(plist.Mapping{
		"OBJ_1":  plist.Mapping{"isa": plist.String("PBXProject"), "self": plist.Identifier("OBJ_1")},
		"OBJ_2":  plist.Mapping{"isa": plist.String("PBXGroup")},
		"OBJ_10": plist.Mapping{"isa": plist.String("PBXGroup")},
	}, "OBJ_1")

	result := Validate(doc)
	assert.False(t, result.HasErrors())
	require.Len(t, result.Warnings(), 2)
	assert.Equal(t, "objects.OBJ_2", result.Warnings()[0].Field)
	assert.Equal(t, "objects.OBJ_10", result.Warnings()[1].Field)

	text := FormatValidationResult(result)
	assert.Contains(t, text, "Warnings (2):")
	assert.Contains(t, text, "  - objects.OBJ_2: record is never referenced")
}

func TestFormatValidationResult_ErrorsAndWarnings(t *testing.T) {
	result := &ValidationResult{Findings: []ValidationFinding{
		{Severity: SeverityError, Field: "objects", Message: "broken"},
		{Severity: SeverityWarning, Field: "objects.OBJ_2", Message: "unused"},
	}}

	assert.Equal(t,
		"Errors (1):\n  - objects: broken\n\nWarnings (1):\n  - objects.OBJ_2: unused\n",
		FormatValidationResult(result))
}

func TestSeverityString(t *testing.T) {
	assert.Equal(t, "error", SeverityError.String())
	assert.Equal(t, "warning", SeverityWarning.String())
}
