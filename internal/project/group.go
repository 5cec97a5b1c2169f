package project

import (
	"path"
	"strings"

	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

// Source trees.
const (
	SourceTreeGroup    = "<group>"
	SourceTreeProducts = "BUILT_PRODUCTS_DIR"
	SourceTreeSDK      = "SDKROOT"
)

// GroupChild is a member of a group: a nested Group or a FileReference.
type GroupChild interface {
	objgraph.Object
	childName() string
}

// Group is a folder in the project navigator.
type Group struct {
	// Name is shown in the navigator when set.
	Name string
	// Path is relative to the parent group.
	Path       string
	SourceTree string
	Children   []GroupChild
}

// NewGroup returns an empty group relative to its parent.
func NewGroup(name, p string) *Group {
	return &Group{Name: name, Path: p, SourceTree: SourceTreeGroup}
}

// PBXFields implements objgraph.Object.
func (g *Group) PBXFields(s *objgraph.Serializer) plist.Mapping {
	children := make(plist.Array, 0, len(g.Children))
	for _, c := range g.Children {
		children = append(children, plist.Identifier(s.Serialize(c)))
	}

	m := plist.Mapping{
		"isa":        plist.String("PBXGroup"),
		"children":   children,
		"sourceTree": plist.String(g.SourceTree),
	}

	if g.Name != "" {
		m["name"] = plist.String(g.Name)
	}

	if g.Path != "" {
		m["path"] = plist.String(g.Path)
	}

	return m
}

func (g *Group) childName() string {
	if g.Path != "" {
		return g.Path
	}

	return g.Name
}

// Add appends a child to the group.
func (g *Group) Add(c GroupChild) {
	g.Children = append(g.Children, c)
}

// Subgroup returns the direct child group with the given path, creating it
// when missing.
func (g *Group) Subgroup(p string) *Group {
	for _, c := range g.Children {
		if sub, ok := c.(*Group); ok && sub.childName() == p {
			return sub
		}
	}

	sub := NewGroup("", p)
	g.Add(sub)

	return sub
}

// GroupFor walks dir ("a/b/c") below g, creating groups as needed, and
// returns the innermost one. An empty dir returns g.
func (g *Group) GroupFor(dir string) *Group {
	cur := g

	if dir == "" || dir == "." {
		return cur
	}

	for _, part := range strings.Split(path.Clean(dir), "/") {
		cur = cur.Subgroup(part)
	}

	return cur
}

// FileReference points at a file on disk or a build product.
type FileReference struct {
	Name       string
	Path       string
	SourceTree string

	// LastKnownFileType is set for source files.
	LastKnownFileType string
	// ExplicitFileType is set for build products, which are not indexed.
	ExplicitFileType string
}

// NewFileReference returns a reference to a source file at p relative to its
// group, typed by extension.
func NewFileReference(p string) *FileReference {
	return &FileReference{
		Path:              path.Base(p),
		SourceTree:        SourceTreeGroup,
		LastKnownFileType: FileTypeFor(p),
	}
}

// PBXFields implements objgraph.Object.
func (f *FileReference) PBXFields(*objgraph.Serializer) plist.Mapping {
	m := plist.Mapping{
		"isa":        plist.String("PBXFileReference"),
		"path":       plist.String(f.Path),
		"sourceTree": plist.String(f.SourceTree),
	}

	if f.Name != "" {
		m["name"] = plist.String(f.Name)
	}

	if f.ExplicitFileType != "" {
		m["explicitFileType"] = plist.String(f.ExplicitFileType)
		m["includeInIndex"] = plist.String("0")
	} else if f.LastKnownFileType != "" {
		m["lastKnownFileType"] = plist.String(f.LastKnownFileType)
	}

	return m
}

func (f *FileReference) childName() string {
	return f.Path
}
