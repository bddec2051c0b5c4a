// Package buildmeta holds the release information stamped into r2g2 at build time:
//
//	go build -ldflags="-X github.com/devantler-tech/r2g2/internal/buildmeta.Version=v0.1.0 ..."
//
//nolint:gochecknoglobals
package buildmeta

import (
	"fmt"

	"github.com/Masterminds/semver/v3"
)

var (
	// Version is the release tag.
	Version = "dev"
	// Commit is the Git SHA.
	Commit = "none"
	// Date is the build timestamp.
	Date = "unknown"
)

// Format renders the --version line. Release tags are normalized to
// vMAJOR.MINOR.PATCH; anything else, such as "dev", is printed as is.
func Format(version, commit, date string) string {
	parsed, err := semver.NewVersion(version)
	if err == nil {
		version = "v" + parsed.String()
	}

	return fmt.Sprintf("%s (Built on %s from Git SHA %s)", version, date, commit)
}
