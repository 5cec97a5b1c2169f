package output

import (
	"bytes"
	"context"
	"fmt"
	"strings"

	"github.com/goccy/go-graphviz"

	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

// ToDOT converts the object graph recorded by s into Graphviz DOT. Owning
// edges are solid, references are dashed. Ids that were referenced but never
// serialized are drawn in red.
func ToDOT(s *objgraph.Serializer, rootID string) string {
	objects := s.Objects()

	var buf bytes.Buffer
	buf.WriteString("digraph objects {\n")
	buf.WriteString("  rankdir=LR;\n")
	buf.WriteString("  node [shape=box, style=\"rounded,filled\", fillcolor=white, fontname=\"Helvetica\"];\n")
	buf.WriteString("\n")

	for _, id := range s.IDs() {
		attrs := []string{fmt.Sprintf("label=%q", nodeLabel(id, objects[id]))}

		switch {
		case !s.Serialized(id):
			attrs = append(attrs, "color=red", "fontcolor=red")
		case id == rootID:
			attrs = append(attrs, "penwidth=2")
		}

		fmt.Fprintf(&buf, "  %q [%s];\n", id, strings.Join(attrs, ", "))
	}

	buf.WriteString("\n")

	for _, e := range s.Edges() {
		if e.Owned {
			fmt.Fprintf(&buf, "  %q -> %q;\n", e.From, e.To)
		} else {
			fmt.Fprintf(&buf, "  %q -> %q [style=dashed];\n", e.From, e.To)
		}
	}

	buf.WriteString("}\n")

	return buf.String()
}

func nodeLabel(id string, rec plist.Value) string {
	m, ok := rec.(plist.Mapping)
	if !ok {
		return id
	}

	isa, _ := m["isa"].(plist.String)
	label := string(isa) + "\n" + id

	for _, key := range []string{"name", "path"} {
		if v, ok := m[key].(plist.String); ok && v != "" {
			return label + "\n" + string(v)
		}
	}

	return label
}

// RenderSVG renders a DOT graph to SVG using Graphviz.
func RenderSVG(ctx context.Context, dot string) ([]byte, error) {
	gv, err := graphviz.New(ctx)
	if err != nil {
		return nil, fmt.Errorf("init graphviz: %w", err)
	}
	defer gv.Close()

	g, err := graphviz.ParseBytes([]byte(dot))
	if err != nil {
		return nil, fmt.Errorf("parse DOT: %w", err)
	}
	defer g.Close()

	var buf bytes.Buffer
	if err := gv.Render(ctx, g, graphviz.SVG, &buf); err != nil {
		return nil, fmt.Errorf("render: %w", err)
	}

	return buf.Bytes(), nil
}
