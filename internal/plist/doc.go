// Package plist defines the value model of OPENSTEP-style property lists and
// renders it as text.
//
// The model is a closed set of four node kinds:
//
//   - [Identifier]: a bare token, typically the id of another object record.
//   - [String]: quoted text with backslash escaping.
//   - [Array]: an ordered list of values.
//   - [Mapping]: a set of keyed values rendered in sorted key order, with the
//     "isa" key always first.
//
// [Render] is a pure function of its input: the same value always produces the
// same text.
package plist
