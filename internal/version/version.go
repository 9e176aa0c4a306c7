// Package version provides version information for the fyg CLI.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"

	"github.com/blang/semver/v4"
)

// Build-time variables set via ldflags.
var (
	// Version is the CLI version.
	Version = "v0.0.0-dev"

	// GitCommit is the git commit hash.
	GitCommit = "unknown"

	// BuildDate is the build timestamp.
	BuildDate = "unknown"
)

// Info contains version information.
type Info struct {
	// Version is the CLI version.
	Version string `json:"version" yaml:"version"`

	// GitCommit is the git commit hash.
	GitCommit string `json:"gitCommit" yaml:"gitCommit"`

	// BuildDate is the build timestamp.
	BuildDate string `json:"buildDate" yaml:"buildDate"`

	// GoVersion is the Go version used to build.
	GoVersion string `json:"goVersion" yaml:"goVersion"`

	// Platform is GOOS/GOARCH.
	Platform string `json:"platform" yaml:"platform"`
}

// Get returns the current version information. When the binary was built
// without ldflags, the VCS revision recorded by the Go toolchain is used.
func Get() Info {
	info := Info{
		Version:   Version,
		GitCommit: GitCommit,
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, s := range bi.Settings {
			switch s.Key {
			case "vcs.revision":
				if info.GitCommit == "unknown" && len(s.Value) >= 7 {
					info.GitCommit = s.Value[:7]
				}
			case "vcs.time":
				if info.BuildDate == "unknown" {
					info.BuildDate = s.Value
				}
			}
		}
	}
	return info
}

// IsRelease reports whether the version is a valid semantic version without
// a pre-release suffix.
func (i Info) IsRelease() bool {
	v, err := semver.ParseTolerant(i.Version)
	if err != nil {
		return false
	}
	return len(v.Pre) == 0
}

// String returns a human-readable version string.
func (i Info) String() string {
	s := fmt.Sprintf("fyg:\n  Version:  %s\n  Build ID: %s/%s\n  Go:       %s\n  Platform: %s",
		i.Version, i.BuildDate, i.GitCommit, i.GoVersion, i.Platform)
	if !i.IsRelease() {
		s += "\n  (development build)"
	}
	return s
}
