// Package version carries build metadata injected through -ldflags.
package version

import (
	"fmt"
	"runtime"
)

// Info holds version information for the acs binary
type Info struct {
	// Version is the semantic version (e.g. "1.2.0")
	Version string

	// BuildDate is the ISO 8601 build timestamp
	BuildDate string

	// GitCommit is the short git commit hash
	GitCommit string
}

// Default values for unset version info
var (
	DefaultVersion   = "0.0.0-dev"
	DefaultBuildDate = "unknown"
	DefaultGitCommit = "unknown"
)

// New creates a new Info, substituting defaults for empty values
func New(v, buildDate, commit string) *Info {
	info := &Info{Version: v, BuildDate: buildDate, GitCommit: commit}
	if info.Version == "" {
		info.Version = DefaultVersion
	}
	if info.BuildDate == "" {
		info.BuildDate = DefaultBuildDate
	}
	if info.GitCommit == "" {
		info.GitCommit = DefaultGitCommit
	}
	return info
}

// GoVersion returns the Go runtime version
func GoVersion() string {
	return runtime.Version()
}

// Short returns "v<version>-<commit>"
func (i *Info) Short() string {
	return fmt.Sprintf("v%s-%s", i.Version, i.GitCommit)
}

// Full returns a detailed multi-line version string
func (i *Info) Full() string {
	return fmt.Sprintf(`acs %s
  Build Date: %s
  Git Commit: %s
  Go Version: %s`,
		i.Short(),
		i.BuildDate,
		i.GitCommit,
		GoVersion(),
	)
}

// Map returns version info as a map for JSON/YAML output
func (i *Info) Map() map[string]string {
	return map[string]string{
		"version":    i.Version,
		"build_date": i.BuildDate,
		"git_commit": i.GitCommit,
		"go_version": GoVersion(),
	}
}
