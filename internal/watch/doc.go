// Package watch regenerates a document whenever its manifest changes. It
// monitors the manifest and related files, debounces rapid events, and
// triggers the generator automatically.
package watch
