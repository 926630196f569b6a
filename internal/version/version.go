// Package version contains build version information set via ldflags:
//
//	-X github.com/bissquit/newsletter/internal/version.Version=...
package version

import "fmt"

var (
	Version   = "0.1.0"
	GitCommit = "unknown"
	BuildDate = "unknown"
)

// String formats the build information for the version command.
func String() string {
	return fmt.Sprintf("%s (commit %s, built %s)", Version, GitCommit, BuildDate)
}
