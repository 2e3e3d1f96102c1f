// Package version parses and compares the version strings the bootstrapper
// handles: release tags, pip versions and interpreter versions.
package version

import (
	"fmt"
	"strings"

	goversion "github.com/hashicorp/go-version"

	"github.com/thoughtspot/cs-tools-bootstrap/internal/messages"
)

// Normalize validates raw and returns it without surrounding whitespace or
// a leading "v".
func Normalize(raw string) (string, error) {
	trimmed := strings.TrimPrefix(strings.TrimSpace(raw), "v")
	if trimmed == "" {
		return "", fmt.Errorf(messages.VersionEmpty)
	}
	if _, err := goversion.NewVersion(trimmed); err != nil {
		return "", fmt.Errorf(messages.VersionInvalidFmt, raw, err)
	}
	return trimmed, nil
}

// IsDev reports whether raw is a development build marker.
func IsDev(raw string) bool {
	trimmed := strings.TrimSpace(raw)
	return trimmed == "" || trimmed == "dev" || strings.HasSuffix(trimmed, "-dev")
}

// IsPrerelease reports whether raw carries a prerelease segment such as
// "b1" or "-rc.2".
func IsPrerelease(raw string) bool {
	v, err := goversion.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return false
	}
	return v.Prerelease() != ""
}

// Compare returns -1, 0 or 1 as a is older, equal to or newer than b.
func Compare(a string, b string) (int, error) {
	av, err := parse(a)
	if err != nil {
		return 0, err
	}
	bv, err := parse(b)
	if err != nil {
		return 0, err
	}
	return av.Compare(bv), nil
}

// AtLeast reports whether current is greater than or equal to minimum.
func AtLeast(current string, minimum string) (bool, error) {
	constraint, err := goversion.NewConstraint(">= " + strings.TrimSpace(minimum))
	if err != nil {
		return false, fmt.Errorf(messages.VersionInvalidFmt, minimum, err)
	}
	v, err := parse(current)
	if err != nil {
		return false, err
	}
	// go-version constraints reject prereleases of the same core version;
	// a beta interpreter still satisfies a minimum on its core.
	core := v.Core()
	return constraint.Check(core), nil
}

func parse(raw string) (*goversion.Version, error) {
	v, err := goversion.NewVersion(strings.TrimSpace(raw))
	if err != nil {
		return nil, fmt.Errorf(messages.VersionInvalidFmt, raw, err)
	}
	return v, nil
}
