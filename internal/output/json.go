package output

import (
	"bytes"
	"fmt"
	"strings"

	sigsyaml "sigs.k8s.io/yaml"

	"github.com/hupe1980/pbxgen/internal/plist"
)

// EncodeJSON renders v as indented JSON. Identifiers and strings both become
// JSON strings; mapping keys keep the property-list order ("isa" first).
func EncodeJSON(v plist.Value, indent string) ([]byte, error) {
	if indent == "" {
		indent = "  "
	}

	var buf bytes.Buffer
	if err := jsonWriteValue(&buf, v, indent, 0); err != nil {
		return nil, err
	}

	buf.WriteByte('\n')

	return buf.Bytes(), nil
}

// EncodeYAML renders v as YAML with alphabetically sorted keys.
func EncodeYAML(v plist.Value) ([]byte, error) {
	out, err := sigsyaml.Marshal(ToNative(v))
	if err != nil {
		return nil, fmt.Errorf("serializing YAML: %w", err)
	}

	return out, nil
}

// ToNative converts a value to plain Go maps, slices and strings.
func ToNative(v plist.Value) any {
	switch val := v.(type) {
	case plist.String:
		return string(val)
	case plist.Identifier:
		return string(val)
	case plist.Array:
		out := make([]any, 0, len(val))
		for _, item := range val {
			out = append(out, ToNative(item))
		}

		return out
	case plist.Mapping:
		out := make(map[string]any, len(val))
		for k, item := range val {
			out[k] = ToNative(item)
		}

		return out
	default:
		return nil
	}
}

// jsonWriteValue recursively writes a JSON value with indentation.
func jsonWriteValue(buf *bytes.Buffer, v plist.Value, indent string, level int) error {
	switch val := v.(type) {
	case plist.String:
		buf.WriteString(jsonQuote(string(val)))
	case plist.Identifier:
		buf.WriteString(jsonQuote(string(val)))
	case plist.Mapping:
		if len(val) == 0 {
			buf.WriteString("{}")

			return nil
		}

		keys := plist.SortedKeys(val)

		buf.WriteString("{\n")

		for i, k := range keys {
			writeIndent(buf, indent, level+1)
			buf.WriteString(jsonQuote(k))
			buf.WriteString(": ")

			if err := jsonWriteValue(buf, val[k], indent, level+1); err != nil {
				return err
			}

			if i < len(keys)-1 {
				buf.WriteByte(',')
			}

			buf.WriteByte('\n')
		}

		writeIndent(buf, indent, level)
		buf.WriteByte('}')
	case plist.Array:
		if len(val) == 0 {
			buf.WriteString("[]")

			return nil
		}

		buf.WriteString("[\n")

		for i, item := range val {
			writeIndent(buf, indent, level+1)

			if err := jsonWriteValue(buf, item, indent, level+1); err != nil {
				return err
			}

			if i < len(val)-1 {
				buf.WriteByte(',')
			}

			buf.WriteByte('\n')
		}

		writeIndent(buf, indent, level)
		buf.WriteByte(']')
	default:
		return fmt.Errorf("encoding JSON: unsupported value %T", v)
	}

	return nil
}

func writeIndent(buf *bytes.Buffer, indent string, level int) {
	for range level {
		buf.WriteString(indent)
	}
}

// jsonQuote quotes s as a JSON string. Every control character is escaped,
// so script and setting values carrying ESC or NUL stay valid JSON.
func jsonQuote(s string) string {
	var sb strings.Builder

	sb.Grow(len(s) + 2)
	sb.WriteByte('"')

	for i := 0; i < len(s); i++ {
		c := s[i]

		switch c {
		case '\\':
			sb.WriteString(`\\`)
		case '"':
			sb.WriteString(`\"`)
		case '\n':
			sb.WriteString(`\n`)
		case '\r':
			sb.WriteString(`\r`)
		case '\t':
			sb.WriteString(`\t`)
		case '\b':
			sb.WriteString(`\b`)
		case '\f':
			sb.WriteString(`\f`)
		default:
			if c < 0x20 {
				fmt.Fprintf(&sb, `\u%04x`, c)
				continue
			}

			sb.WriteByte(c)
		}
	}

	sb.WriteByte('"')

	return sb.String()
}
