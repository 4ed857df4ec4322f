// Package version compares the installer version stamped into generated
// files against the running binary.
package version

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// A leading "v" is accepted on either side.
func CompareVersions(a, b string) (int, error) {
	av, err := parseSemver(a)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", a, err)
	}
	bv, err := parseSemver(b)
	if err != nil {
		return 0, fmt.Errorf("parsing version %q: %w", b, err)
	}
	return av.Compare(bv), nil
}

// IsOutdated returns true if installed is older than running.
func IsOutdated(installed, running string) (bool, error) {
	cmp, err := CompareVersions(installed, running)
	if err != nil {
		return false, err
	}
	return cmp == -1, nil
}

// IsRelease reports whether v is a parseable semantic version. Development
// builds ("dev") are not.
func IsRelease(v string) bool {
	_, err := parseSemver(v)
	return err == nil
}

func parseSemver(v string) (*semver.Version, error) {
	return semver.NewVersion(strings.TrimPrefix(v, "v"))
}
