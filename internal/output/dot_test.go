package output

import (
	"context"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pbxgen/internal/objgraph"
)

func TestToDOT(t *testing.T) {
	doc := sampleDocument(t)
	dot := ToDOT(doc.Serializer, doc.RootID)

	assert.True(t, strings.HasPrefix(dot, "digraph objects {\n"))
	assert.Contains(t, dot, `"OBJ_1" [label="Folder\nOBJ_1\nroot", penwidth=2];`)
	assert.Contains(t, dot, `"OBJ_1" -> "OBJ_2";`)
	assert.Contains(t, dot, `"OBJ_2" -> "OBJ_3" [style=dashed];`)
	assert.Contains(t, dot, `"OBJ_1" -> "OBJ_3";`)
	assert.NotContains(t, dot, "color=red")
}

func TestToDOT_MarksDangling(t *testing.T) {
	s := objgraph.New()
	root := &folder{name: "root", sibling: &folder{name: "lost"}}
	id := s.Serialize(root)

	dot := ToDOT(s, id)
	assert.Contains(t, dot, `"OBJ_2" [label="OBJ_2", color=red, fontcolor=red];`)
}

func TestRenderSVG(t *testing.T) {
	doc := sampleDocument(t)

	svg, err := RenderSVG(context.Background(), ToDOT(doc.Serializer, doc.RootID))
	require.NoError(t, err)
	assert.Contains(t, string(svg), "<svg")
}
