package output

import (
	"fmt"
	"sort"
	"strings"

	"github.com/hupe1980/pbxgen/internal/plist"
)

// ValidationSeverity indicates the severity of a validation finding.
type ValidationSeverity int

const (
	// SeverityError means the document is broken.
	SeverityError ValidationSeverity = iota
	// SeverityWarning means the document is well-formed but suspicious.
	SeverityWarning
)

// String returns the severity name.
func (s ValidationSeverity) String() string {
	if s == SeverityError {
		return "error"
	}

	return "warning"
}

// ValidationFinding is a single validation issue.
type ValidationFinding struct {
	Severity ValidationSeverity
	Field    string
	Message  string
}

// Error implements the error interface.
func (f *ValidationFinding) Error() string {
	return fmt.Sprintf("[%s] %s: %s", f.Severity, f.Field, f.Message)
}

// ValidationResult holds all findings from a validation run.
type ValidationResult struct {
	Findings []ValidationFinding
}

// Errors returns only error-severity findings.
func (r *ValidationResult) Errors() []ValidationFinding {
	return r.filter(SeverityError)
}

// Warnings returns only warning-severity findings.
func (r *ValidationResult) Warnings() []ValidationFinding {
	return r.filter(SeverityWarning)
}

// HasErrors returns true if any error-severity findings exist.
func (r *ValidationResult) HasErrors() bool {
	return len(r.Errors()) > 0
}

// HasWarnings returns true if any warning-severity findings exist.
func (r *ValidationResult) HasWarnings() bool {
	return len(r.Warnings()) > 0
}

func (r *ValidationResult) filter(sev ValidationSeverity) []ValidationFinding {
	var result []ValidationFinding

	for _, f := range r.Findings {
		if f.Severity == sev {
			result = append(result, f)
		}
	}

	return result
}

// Validate checks the integrity of a document envelope: required fields,
// the root object, record shape, and that every identifier inside the object
// table resolves to a record.
func Validate(doc plist.Mapping) *ValidationResult {
	v := &validator{doc: doc}
	v.validate()

	return &v.result
}

type validator struct {
	doc     plist.Mapping
	objects plist.Mapping
	result  ValidationResult
}

func (v *validator) addError(field, format string, args ...any) {
	v.result.Findings = append(v.result.Findings, ValidationFinding{
		Severity: SeverityError,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) addWarning(field, format string, args ...any) {
	v.result.Findings = append(v.result.Findings, ValidationFinding{
		Severity: SeverityWarning,
		Field:    field,
		Message:  fmt.Sprintf(format, args...),
	})
}

func (v *validator) validate() {
	v.validateRequiredFields()

	if v.objects == nil {
		return
	}

	rootID := v.validateRoot()
	referenced := v.validateRecords()

	for _, id := range sortedIDs(v.objects) {
		if id != rootID && !referenced[id] {
			v.addWarning("objects."+id, "record is never referenced")
		}
	}
}

// validateRequiredFields checks the envelope's top-level fields.
func (v *validator) validateRequiredFields() {
	for _, key := range []string{"archiveVersion", "objectVersion"} {
		s, ok := v.doc[key].(plist.String)
		if !ok || s == "" {
			v.addError(key, "required string field is missing")
		}
	}

	if _, ok := v.doc["classes"].(plist.Mapping); !ok {
		v.addError("classes", "required mapping field is missing")
	}

	objects, ok := v.doc["objects"].(plist.Mapping)
	if !ok {
		v.addError("objects", "required mapping field is missing")

		return
	}

	v.objects = objects
}

// validateRoot checks that rootObject names a record and returns its id.
func (v *validator) validateRoot() string {
	raw, present := v.doc["rootObject"]
	if !present {
		v.addError("rootObject", "required field is missing")

		return ""
	}

	id, ok := raw.(plist.Identifier)
	if !ok {
		v.addError("rootObject", "must be an identifier, got %T", raw)

		return ""
	}

	if _, ok := v.objects[string(id)]; !ok {
		v.addError("rootObject", "%s has no record", id)
	}

	return string(id)
}

// validateRecords checks every record and returns the set of ids referenced
// from inside the table.
func (v *validator) validateRecords() map[string]bool {
	referenced := make(map[string]bool)

	for _, id := range sortedIDs(v.objects) {
		field := "objects." + id

		rec, ok := v.objects[id].(plist.Mapping)
		if !ok {
			v.addError(field, "record must be a mapping, got %T", v.objects[id])

			continue
		}

		if isa, ok := rec["isa"].(plist.String); !ok || isa == "" {
			v.addError(field, "record has no isa")
		}

		walkIdentifiers(field, rec, func(path string, ref plist.Identifier) {
			if string(ref) == id {
				return
			}

			referenced[string(ref)] = true

			if _, ok := v.objects[string(ref)]; !ok {
				v.addError(path, "dangling reference to %s", ref)
			}
		})
	}

	return referenced
}

// walkIdentifiers calls fn for every identifier below v with its dotted
// path. Array elements are addressed as path[i].
func walkIdentifiers(path string, v plist.Value, fn func(string, plist.Identifier)) {
	switch val := v.(type) {
	case plist.Identifier:
		fn(path, val)
	case plist.Array:
		for i, item := range val {
			walkIdentifiers(fmt.Sprintf("%s[%d]", path, i), item, fn)
		}
	case plist.Mapping:
		for _, k := range plist.SortedKeys(val) {
			walkIdentifiers(path+"."+k, val[k], fn)
		}
	}
}

// sortedIDs returns the keys of objects in numeric-aware order, so OBJ_2
// precedes OBJ_10.
func sortedIDs(objects plist.Mapping) []string {
	ids := make([]string, 0, len(objects))
	for id := range objects {
		ids = append(ids, id)
	}

	sort.Slice(ids, func(i, j int) bool {
		if len(ids[i]) != len(ids[j]) {
			return len(ids[i]) < len(ids[j])
		}

		return ids[i] < ids[j]
	})

	return ids
}

// FormatValidationResult returns a human-readable string of all findings.
func FormatValidationResult(result *ValidationResult) string {
	if len(result.Findings) == 0 {
		return "Validation passed: no issues found."
	}

	var sb strings.Builder

	errors := result.Errors()
	warnings := result.Warnings()

	if len(errors) > 0 {
		_, _ = fmt.Fprintf(&sb, "Errors (%d):\n", len(errors))

		for _, f := range errors {
			_, _ = fmt.Fprintf(&sb, "  - %s: %s\n", f.Field, f.Message)
		}
	}

	if len(warnings) > 0 {
		if sb.Len() > 0 {
			sb.WriteString("\n")
		}

		_, _ = fmt.Fprintf(&sb, "Warnings (%d):\n", len(warnings))

		for _, f := range warnings {
			_, _ = fmt.Fprintf(&sb, "  - %s: %s\n", f.Field, f.Message)
		}
	}

	return sb.String()
}
