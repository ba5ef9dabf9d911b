package plugin

import (
	"errors"
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

// DevVersion is the version reported by untagged builds. It satisfies every
// constraint.
const DevVersion = "dev"

// ErrIncompatible is returned when a plugin's requires constraint rejects the
// host version.
var ErrIncompatible = errors.New("plugin is incompatible with this host")

// CheckCompatible reports whether hostVersion satisfies constraint. An empty
// constraint or a dev host always passes.
func CheckCompatible(hostVersion, constraint string) error {
	constraint = strings.TrimSpace(constraint)
	if constraint == "" || hostVersion == DevVersion || hostVersion == "" {
		return nil
	}

	c, err := semver.NewConstraint(constraint)
	if err != nil {
		return fmt.Errorf("parsing constraint %q: %w", constraint, err)
	}
	v, err := parseSemver(hostVersion)
	if err != nil {
		return fmt.Errorf("parsing host version %q: %w", hostVersion, err)
	}
	if !c.Check(v) {
		return fmt.Errorf("%w: host %s does not satisfy %q", ErrIncompatible, v, constraint)
	}
	return nil
}

// CompareVersions compares two version strings using semver.
// Returns -1 if a < b, 0 if equal, 1 if a > b.
// Handles "v" prefix tolerance (strips leading "v" before parsing).
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

// parseSemver strips a leading "v" and parses the version string.
func parseSemver(version string) (*semver.Version, error) {
	version = strings.TrimPrefix(version, "v")
	return semver.NewVersion(version)
}
