// Package version provides build-time metadata for the pbxgen binary.
// Version, GitCommit, and BuildDate are injected at compile time via -ldflags.
package version

import (
	"encoding/json"
	"fmt"
	"runtime"

	"github.com/Masterminds/semver/v3"

	"github.com/hupe1980/pbxgen/internal/document"
)

// Build-time values injected via -ldflags.
var (
	version   = "dev"
	gitCommit = "none"
	buildDate = "unknown"
)

// Info holds the build metadata for the binary and the document format it
// writes by default.
type Info struct {
	Version        string `json:"version"`
	GitCommit      string `json:"gitCommit"`
	BuildDate      string `json:"buildDate"`
	GoVersion      string `json:"goVersion"`
	Platform       string `json:"platform"`
	ArchiveVersion string `json:"archiveVersion"`
	ObjectVersion  string `json:"objectVersion"`
}

// GetInfo returns the current build information.
func GetInfo() Info {
	return Info{
		Version:        version,
		GitCommit:      shortCommit(gitCommit),
		BuildDate:      buildDate,
		GoVersion:      runtime.Version(),
		Platform:       fmt.Sprintf("%s/%s", runtime.GOOS, runtime.GOARCH),
		ArchiveVersion: document.ArchiveVersion,
		ObjectVersion:  document.DefaultObjectVersion,
	}
}

// Semver parses Version. It returns false for development builds, whose
// version is not a release number.
func (i Info) Semver() (*semver.Version, bool) {
	v, err := semver.NewVersion(i.Version)
	if err != nil {
		return nil, false
	}

	return v, true
}

// String returns a human-readable single-line version string.
func (i Info) String() string {
	release := i.Version
	if _, ok := i.Semver(); !ok {
		release += " (development build)"
	}

	return fmt.Sprintf("pbxgen %s (commit: %s, built: %s, %s %s, objectVersion %s)",
		release, i.GitCommit, i.BuildDate, i.GoVersion, i.Platform, i.ObjectVersion)
}

// JSON returns the version info as indented JSON.
func (i Info) JSON() (string, error) {
	data, err := json.MarshalIndent(i, "", "  ")
	if err != nil {
		return "", fmt.Errorf("marshaling version info: %w", err)
	}

	return string(data), nil
}

// shortCommit truncates a commit SHA to 7 characters.
func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}

	return commit
}
