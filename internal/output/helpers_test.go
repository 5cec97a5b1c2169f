package output

import (
	"io"
	"log/slog"
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/hupe1980/pbxgen/internal/document"
	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

// folder owns its children and refers to its sibling.
type folder struct {
	name     string
	children []*folder
	sibling  *folder
}

func (f *folder) PBXFields(s *objgraph.Serializer) plist.Mapping {
	children := plist.Array{}
	for _, c := range f.children {
		children = append(children, plist.Identifier(s.Serialize(c)))
	}

	m := plist.Mapping{
		"isa":      plist.String("Folder"),
		"name":     plist.String(f.name),
		"children": children,
	}

	if f.sibling != nil {
		m["sibling"] = plist.Identifier(s.IDOf(f.sibling))
	}

	return m
}

// sampleDocument builds root(a, b) where a refers to b.
func sampleDocument(t *testing.T) *document.Result {
	t.Helper()

	b := &folder{name: "b"}
	a := &folder{name: "a", sibling: b}
	root := &folder{name: "root", children: []*folder{a, b}}

	res, err := document.Build(root, document.Options{CheckReferences: true})
	require.NoError(t, err)

	return res
}

func newTestLogger(w io.Writer) *slog.Logger {
	return slog.New(slog.NewTextHandler(w, nil))
}
