// Package output encodes built documents and sends them to their
// destination.
//
// The package is organized around four concerns:
//
//   - Encoding (json.go, dot.go): the document as property-list text, as
//     indented JSON or YAML for tooling, or as a Graphviz ownership graph.
//
//   - Writers (writer.go): Pluggable output destinations via the [Writer]
//     interface, with [StdoutWriter] and [FileWriter] implementations.
//
//   - Registry (registry.go): format names mapped to [Encoder] functions.
//
//   - Validation (validator.go): an integrity pass over a document envelope
//     that reports missing fields, dangling identifiers and unreferenced
//     records.
package output
