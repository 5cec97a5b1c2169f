// Package diff compares a generated document with one already on disk.
package diff

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/pmezard/go-difflib/difflib"
)

// Result holds the result of a unified diff computation.
type Result struct {
	Unified        string
	HasDifferences bool
	Hunks          []string
	OldLabel       string
	NewLabel       string
	Added          int
	Removed        int
}

// Options configures diff computation.
type Options struct {
	OldLabel string
	NewLabel string
	Context  int
}

// DefaultOptions returns sensible default diff options.
func DefaultOptions() Options {
	return Options{
		OldLabel: "existing",
		NewLabel: "generated",
		Context:  3,
	}
}

// Compute computes a unified diff between two documents. A single missing
// trailing newline is not treated as a difference.
func Compute(oldDoc, newDoc string, opts Options) (*Result, error) {
	diff := difflib.UnifiedDiff{
		A:        splitLines(oldDoc),
		B:        splitLines(newDoc),
		FromFile: opts.OldLabel,
		ToFile:   opts.NewLabel,
		Context:  opts.Context,
	}

	unified, err := difflib.GetUnifiedDiffString(diff)
	if err != nil {
		return nil, fmt.Errorf("computing diff: %w", err)
	}

	res := &Result{
		Unified:        unified,
		HasDifferences: unified != "",
		OldLabel:       opts.OldLabel,
		NewLabel:       opts.NewLabel,
	}

	if res.HasDifferences {
		res.Hunks = extractHunks(unified)
		res.Added, res.Removed = countChanges(unified)
	}

	return res, nil
}

// extractHunks splits unified diff output into individual hunks. The file
// header is not part of any hunk.
func extractHunks(unified string) []string {
	var hunks []string

	var current strings.Builder

	for _, line := range strings.Split(strings.TrimSuffix(unified, "\n"), "\n") {
		if strings.HasPrefix(line, "@@") && current.Len() > 0 {
			hunks = append(hunks, current.String())
			current.Reset()
		}

		if current.Len() == 0 && !strings.HasPrefix(line, "@@") {
			continue
		}

		current.WriteString(line)
		current.WriteString("\n")
	}

	if current.Len() > 0 {
		hunks = append(hunks, current.String())
	}

	return hunks
}

func countChanges(unified string) (added, removed int) {
	for _, line := range strings.Split(unified, "\n") {
		switch {
		case strings.HasPrefix(line, "+++"), strings.HasPrefix(line, "---"):
		case strings.HasPrefix(line, "+"):
			added++
		case strings.HasPrefix(line, "-"):
			removed++
		}
	}

	return added, removed
}

var (
	styleHeader  = lipgloss.NewStyle().Bold(true)
	styleHunk    = lipgloss.NewStyle().Foreground(lipgloss.Color("36"))
	styleAdded   = lipgloss.NewStyle().Foreground(lipgloss.Color("35"))
	styleRemoved = lipgloss.NewStyle().Foreground(lipgloss.Color("167"))
)

// Write writes a formatted diff to w, styled when color is set.
func Write(w io.Writer, result *Result, color bool) {
	if !result.HasDifferences {
		_, _ = fmt.Fprintln(w, "No differences found.")
		return
	}

	for _, line := range strings.Split(strings.TrimSuffix(result.Unified, "\n"), "\n") {
		if color {
			line = styleLine(line)
		}

		_, _ = fmt.Fprintln(w, line)
	}

	_, _ = fmt.Fprintf(w, "%d line(s) added, %d line(s) removed\n", result.Added, result.Removed)
}

func styleLine(line string) string {
	switch {
	case strings.HasPrefix(line, "---"), strings.HasPrefix(line, "+++"):
		return styleHeader.Render(line)
	case strings.HasPrefix(line, "@@"):
		return styleHunk.Render(line)
	case strings.HasPrefix(line, "-"):
		return styleRemoved.Render(line)
	case strings.HasPrefix(line, "+"):
		return styleAdded.Render(line)
	default:
		return line
	}
}

// splitLines splits a string into lines for diff processing.
// Each element includes a trailing newline for difflib compatibility.
func splitLines(s string) []string {
	if s == "" {
		return nil
	}

	if !strings.HasSuffix(s, "\n") {
		s += "\n"
	}

	lines := strings.SplitAfter(s, "\n")

	return lines[:len(lines)-1]
}
