package plist

import (
	"fmt"
	"sort"
	"strings"
)

// IndentUnit is the whitespace emitted once per nesting level.
const IndentUnit = "   "

// isaKey names a record's type and is always rendered first.
const isaKey = "isa"

// IndentError reports an attempt to render at a negative indentation level.
// Render panics with it; the caller has violated the renderer's contract.
type IndentError struct {
	Level int
}

func (e *IndentError) Error() string {
	return fmt.Sprintf("plist: negative indentation level %d", e.Level)
}

// Render returns the text form of v, with nested lines indented relative to
// the given level. The opening token is not indented; the closing token of a
// container is indented by level.
func Render(v Value, indent int) string {
	var sb strings.Builder

	writeValue(&sb, v, indent)

	return sb.String()
}

func writeValue(sb *strings.Builder, v Value, level int) {
	if level < 0 {
		panic(&IndentError{Level: level})
	}

	switch val := v.(type) {
	case Identifier:
		sb.WriteString(string(val))
	case String:
		sb.WriteByte('"')
		sb.WriteString(Escape(string(val)))
		sb.WriteByte('"')
	case Array:
		sb.WriteString("(\n")

		for _, item := range val {
			writeIndent(sb, level+1)
			writeValue(sb, item, level+1)
			sb.WriteString(",\n")
		}

		writeIndent(sb, level)
		sb.WriteByte(')')
	case Mapping:
		sb.WriteString("{\n")

		for _, k := range SortedKeys(val) {
			writeIndent(sb, level+1)
			sb.WriteString(k)
			sb.WriteString(" = ")
			writeValue(sb, val[k], level+1)
			sb.WriteString(";\n")
		}

		writeIndent(sb, level)
		sb.WriteByte('}')
	default:
		panic(fmt.Sprintf("plist: unsupported value type %T", v))
	}
}

func writeIndent(sb *strings.Builder, level int) {
	for range level {
		sb.WriteString(IndentUnit)
	}
}

// SortedKeys returns the keys of m in rendering order: "isa" first, the rest
// in ascending byte order.
func SortedKeys(m Mapping) []string {
	keys := make([]string, 0, len(m))
	for k := range m {
		keys = append(keys, k)
	}

	sort.Slice(keys, func(i, j int) bool {
		if keys[i] == isaKey || keys[j] == isaKey {
			return keys[i] == isaKey && keys[j] != isaKey
		}

		return keys[i] < keys[j]
	})

	return keys
}

// Escape inserts a backslash before every backslash and double quote in s.
// All other bytes are left unchanged.
func Escape(s string) string {
	if !strings.ContainsAny(s, `\"`) {
		return s
	}

	var sb strings.Builder

	sb.Grow(len(s) + 4)

	for i := 0; i < len(s); i++ {
		if s[i] == '\\' || s[i] == '"' {
			sb.WriteByte('\\')
		}

		sb.WriteByte(s[i])
	}

	return sb.String()
}
