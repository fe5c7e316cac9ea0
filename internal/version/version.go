// Package version provides build-time version information.
package version

import "fmt"

// AppName is the display name used in window titles and CLI output.
const AppName = "Algorithm Visualizer"

// These variables are set at build time using -ldflags
var (
	// Version is the semantic version
	Version = "0.1.0"

	// BuildTime is the UTC time when the binary was built
	BuildTime = "unknown"

	// GitCommit is the git commit hash
	GitCommit = "unknown"
)

// String returns a one-line version banner.
func String() string {
	return fmt.Sprintf("%s v%s (built %s, commit %s)", AppName, Version, BuildTime, GitCommit)
}
