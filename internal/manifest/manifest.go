// Package manifest defines the declarative project description that pbxgen
// turns into a project document, and loads it from YAML, TOML or JSON.
package manifest

import (
	"sort"
)

// Target types understood by the generator.
const (
	TypeApplication    = "application"
	TypeFramework      = "framework"
	TypeStaticLibrary  = "static-library"
	TypeDynamicLibrary = "dynamic-library"
	TypeUnitTest       = "unit-test"
	TypeUITest         = "ui-test"
	TypeTool           = "tool"
	TypeBundle         = "bundle"
)

// Script phases.
const (
	PhasePre  = "pre"
	PhasePost = "post"
)

// Default configuration names.
const (
	ConfigDebug   = "Debug"
	ConfigRelease = "Release"
)

// TargetTypes returns the supported target types in sorted order.
func TargetTypes() []string {
	types := []string{
		TypeApplication, TypeFramework, TypeStaticLibrary, TypeDynamicLibrary,
		TypeUnitTest, TypeUITest, TypeTool, TypeBundle,
	}

	sort.Strings(types)

	return types
}

// Settings holds build settings. Values are scalars or lists of scalars.
type Settings map[string]any

// Manifest describes one project.
type Manifest struct {
	// Name is the project name.
	Name string `yaml:"name" json:"name" toml:"name"`

	// Requires is an optional semver constraint the generator version must
	// satisfy, e.g. ">= 0.4".
	Requires string `yaml:"requires,omitempty" json:"requires,omitempty" toml:"requires"`

	// Compatibility is the oldest Xcode version the document must open in.
	// It selects the document's objectVersion.
	Compatibility string `yaml:"compatibility,omitempty" json:"compatibility,omitempty" toml:"compatibility"`

	// Organization is written to the project attributes.
	Organization string `yaml:"organization,omitempty" json:"organization,omitempty" toml:"organization"`

	// DevelopmentRegion defaults to "en".
	DevelopmentRegion string `yaml:"developmentRegion,omitempty" json:"developmentRegion,omitempty" toml:"developmentRegion"`

	// KnownRegions defaults to the development region plus "Base".
	KnownRegions []string `yaml:"knownRegions,omitempty" json:"knownRegions,omitempty" toml:"knownRegions"`

	// Configurations lists the build configuration names. The first one is
	// the default. Defaults to Debug and Release.
	Configurations []string `yaml:"configurations,omitempty" json:"configurations,omitempty" toml:"configurations"`

	// Settings apply to every configuration of the project.
	Settings Settings `yaml:"settings,omitempty" json:"settings,omitempty" toml:"settings"`

	// ConfigSettings apply to a single named configuration of the project.
	ConfigSettings map[string]Settings `yaml:"configSettings,omitempty" json:"configSettings,omitempty" toml:"configSettings"`

	// Targets in declaration order.
	Targets []Target `yaml:"targets" json:"targets" toml:"targets"`
}

// Target describes one build target.
type Target struct {
	Name string `yaml:"name" json:"name" toml:"name"`

	// Type is one of TargetTypes().
	Type string `yaml:"type" json:"type" toml:"type"`

	// ProductName defaults to Name.
	ProductName string `yaml:"productName,omitempty" json:"productName,omitempty" toml:"productName"`

	Sources    []string `yaml:"sources,omitempty" json:"sources,omitempty" toml:"sources"`
	Headers    []string `yaml:"headers,omitempty" json:"headers,omitempty" toml:"headers"`
	Resources  []string `yaml:"resources,omitempty" json:"resources,omitempty" toml:"resources"`
	Frameworks []string `yaml:"frameworks,omitempty" json:"frameworks,omitempty" toml:"frameworks"`

	// Dependencies name other targets of the same manifest.
	Dependencies []string `yaml:"dependencies,omitempty" json:"dependencies,omitempty" toml:"dependencies"`

	Settings       Settings            `yaml:"settings,omitempty" json:"settings,omitempty" toml:"settings"`
	ConfigSettings map[string]Settings `yaml:"configSettings,omitempty" json:"configSettings,omitempty" toml:"configSettings"`

	Scripts []Script `yaml:"scripts,omitempty" json:"scripts,omitempty" toml:"scripts"`
}

// Script describes a shell script build phase.
type Script struct {
	Name    string   `yaml:"name" json:"name" toml:"name"`
	Script  string   `yaml:"script" json:"script" toml:"script"`
	Shell   string   `yaml:"shell,omitempty" json:"shell,omitempty" toml:"shell"`
	Inputs  []string `yaml:"inputs,omitempty" json:"inputs,omitempty" toml:"inputs"`
	Outputs []string `yaml:"outputs,omitempty" json:"outputs,omitempty" toml:"outputs"`

	// Phase is "pre" (before headers and sources) or "post" (after
	// resources). Defaults to "pre".
	Phase string `yaml:"phase,omitempty" json:"phase,omitempty" toml:"phase"`
}

// ApplyDefaults fills unset optional fields in place.
func (m *Manifest) ApplyDefaults() {
	if m.DevelopmentRegion == "" {
		m.DevelopmentRegion = "en"
	}

	if len(m.KnownRegions) == 0 {
		m.KnownRegions = []string{m.DevelopmentRegion, "Base"}
	}

	if len(m.Configurations) == 0 {
		m.Configurations = []string{ConfigDebug, ConfigRelease}
	}

	for i := range m.Targets {
		t := &m.Targets[i]

		if t.ProductName == "" {
			t.ProductName = t.Name
		}

		for j := range t.Scripts {
			s := &t.Scripts[j]

			if s.Phase == "" {
				s.Phase = PhasePre
			}

			if s.Shell == "" {
				s.Shell = "/bin/sh"
			}

			if s.Name == "" {
				s.Name = "Run Script"
			}
		}
	}
}

// Target returns the target with the given name, or nil.
func (m *Manifest) Target(name string) *Target {
	for i := range m.Targets {
		if m.Targets[i].Name == name {
			return &m.Targets[i]
		}
	}

	return nil
}

// Files returns every file path mentioned by any target, deduplicated, in
// first-mention order.
func (m *Manifest) Files() []string {
	seen := make(map[string]bool)

	var files []string

	for _, t := range m.Targets {
		for _, list := range [][]string{t.Headers, t.Sources, t.Resources} {
			for _, f := range list {
				if !seen[f] {
					seen[f] = true
					files = append(files, f)
				}
			}
		}
	}

	return files
}
