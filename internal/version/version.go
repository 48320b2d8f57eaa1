// Package version holds the javadox build identity.
package version

import (
	"runtime"
	"runtime/debug"
)

// Overridable at build time:
// go build -ldflags "-X javadox/internal/version.Version=0.2.0 -X javadox/internal/version.Commit=abc123"
var (
	Version   = "0.1.0"
	Commit    = "unknown"
	BuildDate = "unknown"
)

// readBuildInfo is replaced in tests.
var readBuildInfo = debug.ReadBuildInfo

// revision returns Commit, or the VCS revision stamped by the go command
// when Commit was not set through ldflags.
func revision() string {
	if Commit != "unknown" {
		return Commit
	}
	info, ok := readBuildInfo()
	if !ok {
		return Commit
	}
	for _, s := range info.Settings {
		if s.Key == "vcs.revision" && s.Value != "" {
			return s.Value
		}
	}
	return Commit
}

// Info returns "VERSION" or "VERSION (SHORTSHA)".
func Info() string {
	if rev := revision(); rev != "unknown" && len(rev) > 7 {
		return Version + " (" + rev[:7] + ")"
	}
	return Version
}

// Full returns the multi-line version report printed by --version.
func Full() string {
	return "javadox " + Version + "\n" +
		"Commit: " + revision() + "\n" +
		"Built: " + BuildDate + "\n" +
		"Go: " + runtime.Version()
}
