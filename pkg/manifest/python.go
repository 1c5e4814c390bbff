package manifest

import (
	"fmt"
	"regexp"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// PythonVersionFileName pins the interpreter for uv
const PythonVersionFileName = ".python-version"

// RequiresPython derives the requires-python specifier from the chosen
// interpreter version: "3.13.2" gives ">=3.13". Values that already carry
// an operator, or do not parse as a version, are kept as they are.
func RequiresPython(version string) string {
	v := strings.TrimSpace(version)
	if v == "" {
		return ""
	}
	if strings.ContainsAny(v[:1], "<>=~!") {
		return v
	}
	parsed, err := ParseVersion(v)
	if err != nil {
		return v
	}
	return fmt.Sprintf(">=%d.%d", parsed.Major(), parsed.Minor())
}

// PythonVersionFile renders .python-version
func PythonVersionFile(version string) []byte {
	return []byte(strings.TrimSpace(version) + "\n")
}

var preRelease = regexp.MustCompile(`^(\d+\.\d+(?:\.\d+)?)((?:a|b|rc)\d+)$`)

// ParseVersion parses a Python version, accepting pre-release spellings
// such as 3.14.0a4.
func ParseVersion(v string) (*semver.Version, error) {
	return semver.NewVersion(preRelease.ReplaceAllString(v, "$1-$2"))
}
