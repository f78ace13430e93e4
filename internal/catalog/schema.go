package catalog

import (
	"fmt"
	"strings"

	"github.com/Masterminds/semver/v3"
)

const (
	// DefaultSchemaVersion is assumed when a document does not declare one.
	DefaultSchemaVersion = "1.0.0"

	// SupportedSchema is the range of schema versions this build reads.
	SupportedSchema = ">=1.0.0, <2.0.0"
)

//nolint:gochecknoglobals // Parsed once from a constant.
var supportedConstraint = mustConstraint(SupportedSchema)

func mustConstraint(s string) *semver.Constraints {
	c, err := semver.NewConstraint(s)
	if err != nil {
		panic(err)
	}
	return c
}

// CheckSchema validates a declared schema version and returns it normalized.
// An empty version is treated as DefaultSchemaVersion.
func CheckSchema(version string) (string, error) {
	version = strings.TrimSpace(version)
	if version == "" {
		version = DefaultSchemaVersion
	}
	v, err := semver.NewVersion(version)
	if err != nil {
		return "", fmt.Errorf("%w: %q: %w", ErrUnsupportedSchema, version, err)
	}
	if !supportedConstraint.Check(v) {
		return "", fmt.Errorf("%w: %s (supported %s)", ErrUnsupportedSchema, v, SupportedSchema)
	}
	return v.String(), nil
}
