package manifest

import (
	"github.com/Masterminds/semver/v3"
)

// objectVersions maps the first Xcode release that introduced each document
// object version, newest first.
var objectVersions = []struct {
	xcode         string
	objectVersion string
}{
	{"15.0", "60"},
	{"14.0", "56"},
	{"13.0", "55"},
	{"12.0", "54"},
	{"11.4", "53"},
	{"11.0", "52"},
	{"10.0", "51"},
	{"9.3", "50"},
	{"8.0", "48"},
	{"6.3", "47"},
}

// ObjectVersion returns the document object version for the manifest's
// Compatibility setting. It returns "" when Compatibility is unset or is not
// a valid version, leaving the choice to the document defaults.
func (m *Manifest) ObjectVersion() string {
	if m.Compatibility == "" {
		return ""
	}

	return ObjectVersionFor(m.Compatibility)
}

// ObjectVersionFor maps an Xcode version to the newest object version it
// understands. Versions older than every entry map to "46".
func ObjectVersionFor(xcode string) string {
	v, err := semver.NewVersion(xcode)
	if err != nil {
		return ""
	}

	for _, ov := range objectVersions {
		if !v.LessThan(semver.MustParse(ov.xcode)) {
			return ov.objectVersion
		}
	}

	return "46"
}
