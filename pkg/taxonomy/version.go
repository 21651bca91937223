package taxonomy

import (
	"fmt"
	"regexp"
	"strconv"
)

// Version identifies a taxonomy release line (major) and revision (minor),
// extracted from an upstream file name.
type Version struct {
	Major int
	Minor int
}

// String returns the version in "major.minor" form.
func (v Version) String() string {
	return fmt.Sprintf("%d.%d", v.Major, v.Minor)
}

// versionRe matches the upstream naming convention: the phrase
// "Content Taxonomy" (any case, irregular internal whitespace tolerated)
// followed by a major.minor pair, e.g. "Content Taxonomy 3.1.tsv".
var versionRe = regexp.MustCompile(`(?i)content\s*taxonomy\s*(\d+)\.(\d+)`)

// ParseVersion extracts a Version from an upstream file name. The second
// return value is false when the name does not follow the naming convention;
// that is a valid outcome, never an error.
func ParseVersion(name string) (Version, bool) {
	m := versionRe.FindStringSubmatch(name)
	if m == nil {
		return Version{}, false
	}
	major, err := strconv.Atoi(m[1])
	if err != nil {
		return Version{}, false
	}
	minor, err := strconv.Atoi(m[2])
	if err != nil {
		return Version{}, false
	}
	return Version{Major: major, Minor: minor}, true
}
