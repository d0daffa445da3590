// Package version reports the build version of the binary.
package version

import (
	"runtime"
	"runtime/debug"
	"strings"

	"golang.org/x/mod/semver"
)

// Set at build time:
//
//	go build -ldflags "-X github.com/cloudcare/helpdesk/internal/shared/version.Version=1.2.0"
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"buildTime,omitempty"`
	GoVersion string `json:"goVersion"`
	// Release is false for dev builds and prereleases.
	Release bool `json:"release"`
}

// Get returns the build info. Without ldflags it falls back to the module
// version and VCS revision recorded by the Go toolchain.
func Get() Info {
	info := Info{
		Version:   Normalize(Version),
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		if info.Version == "dev" && semver.IsValid(bi.Main.Version) {
			info.Version = bi.Main.Version
		}
		for _, s := range bi.Settings {
			switch {
			case s.Key == "vcs.revision" && info.Commit == "":
				info.Commit = s.Value
			case s.Key == "vcs.time" && info.BuildTime == "":
				info.BuildTime = s.Value
			}
		}
	}
	info.Release = IsRelease(info.Version)
	return info
}

// Normalize adds the "v" prefix to semantic versions and returns anything
// else unchanged. Examples: "1.2.3" -> "v1.2.3", "dev" -> "dev".
func Normalize(version string) string {
	version = strings.TrimSpace(version)
	if version == "" {
		return "dev"
	}
	if !strings.HasPrefix(version, "v") && semver.IsValid("v"+version) {
		return "v" + version
	}
	return version
}

// IsRelease reports whether the version is a tagged release without a
// prerelease suffix.
func IsRelease(version string) bool {
	v := Normalize(version)
	return semver.IsValid(v) && semver.Prerelease(v) == ""
}
