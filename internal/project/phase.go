package project

import (
	"github.com/hupe1980/pbxgen/internal/objgraph"
	"github.com/hupe1980/pbxgen/internal/plist"
)

// PhaseKind selects the record type of a build phase.
type PhaseKind string

// Build phase kinds.
const (
	PhaseSources     PhaseKind = "PBXSourcesBuildPhase"
	PhaseHeaders     PhaseKind = "PBXHeadersBuildPhase"
	PhaseFrameworks  PhaseKind = "PBXFrameworksBuildPhase"
	PhaseResources   PhaseKind = "PBXResourcesBuildPhase"
	PhaseShellScript PhaseKind = "PBXShellScriptBuildPhase"
)

// buildActionMask lets a phase run for every build action.
const buildActionMask = "2147483647"

// BuildPhase is one step of a target's build.
type BuildPhase struct {
	Kind  PhaseKind
	Files []*BuildFile

	// Shell script phases only.
	Name        string
	ShellPath   string
	ShellScript string
	InputPaths  []string
	OutputPaths []string
}

// PBXFields implements objgraph.Object.
func (b *BuildPhase) PBXFields(s *objgraph.Serializer) plist.Mapping {
	files := make(plist.Array, 0, len(b.Files))
	for _, f := range b.Files {
		files = append(files, plist.Identifier(s.Serialize(f)))
	}

	m := plist.Mapping{
		"isa":                                plist.String(string(b.Kind)),
		"buildActionMask":                    plist.String(buildActionMask),
		"files":                              files,
		"runOnlyForDeploymentPostprocessing": plist.String("0"),
	}

	if b.Kind == PhaseShellScript {
		m["name"] = plist.String(b.Name)
		m["inputPaths"] = plist.Strings(b.InputPaths...)
		m["outputPaths"] = plist.Strings(b.OutputPaths...)
		m["shellPath"] = plist.String(b.ShellPath)
		m["shellScript"] = plist.String(b.ShellScript)
	}

	return m
}

// AddFile appends a build file for ref.
func (b *BuildPhase) AddFile(ref *FileReference) *BuildFile {
	bf := &BuildFile{Ref: ref}
	b.Files = append(b.Files, bf)

	return bf
}

// BuildFile is the membership of a file in a build phase.
type BuildFile struct {
	// Ref is owned by a group.
	Ref      *FileReference
	Settings plist.Mapping
}

// PBXFields implements objgraph.Object.
func (f *BuildFile) PBXFields(s *objgraph.Serializer) plist.Mapping {
	m := plist.Mapping{
		"isa":     plist.String("PBXBuildFile"),
		"fileRef": plist.Identifier(s.IDOf(f.Ref)),
	}

	if len(f.Settings) > 0 {
		m["settings"] = f.Settings
	}

	return m
}
