// Package version reports which isxgen build is running. Release builds set
// the variables below with -ldflags; binaries built with go install fall back
// to the module version and VCS stamps in their build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"

	"github.com/Masterminds/semver/v3"
)

var (
	// Version is the semantic version without a leading "v". Untagged builds
	// report a pre-release so required_version constraints stay checkable.
	Version = "0.1.0-dev"

	// CommitHash is the git commit the binary was built from.
	CommitHash = ""

	// BuildTime is when the binary was built, RFC 3339.
	BuildTime = ""
)

// Info describes the running binary.
type Info struct {
	Version    string `json:"version"`
	CommitHash string `json:"commit_hash,omitempty"`
	BuildTime  string `json:"build_time,omitempty"`
	Modified   bool   `json:"modified,omitempty"`
	GoVersion  string `json:"go_version"`
	Platform   string `json:"platform"`
}

// Get returns the build information, preferring ldflags over build info.
func Get() Info {
	info := Info{
		Version:    Version,
		CommitHash: CommitHash,
		BuildTime:  BuildTime,
		GoVersion:  runtime.Version(),
		Platform:   runtime.GOOS + "/" + runtime.GOARCH,
	}
	if bi, ok := debug.ReadBuildInfo(); ok {
		fromBuildInfo(&info, bi)
	}
	return info
}

// fromBuildInfo fills what ldflags left unset.
func fromBuildInfo(info *Info, bi *debug.BuildInfo) {
	if info.Version == Version && isRelease(bi.Main.Version) {
		info.Version = strings.TrimPrefix(bi.Main.Version, "v")
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.CommitHash == "" {
				info.CommitHash = s.Value
			}
		case "vcs.time":
			if info.BuildTime == "" {
				info.BuildTime = s.Value
			}
		case "vcs.modified":
			info.Modified = s.Value == "true"
		}
	}
}

// isRelease accepts tagged module versions. "(devel)" and pseudo-versions
// such as v0.0.0-20250101000000-abcdef123456 are not releases.
func isRelease(v string) bool {
	sv, err := semver.StrictNewVersion(strings.TrimPrefix(v, "v"))
	return err == nil && sv.Prerelease() == "" && sv.Metadata() == ""
}

// String returns a human-readable version line.
func (i Info) String() string {
	s := "isxgen " + i.Version
	if i.CommitHash != "" {
		s += fmt.Sprintf(" (commit %s", i.Short())
		if i.Modified {
			s += ", modified"
		}
		if i.BuildTime != "" {
			s += ", built " + i.BuildTime
		}
		s += ")"
	}
	return s
}

// Short returns the abbreviated commit hash.
func (i Info) Short() string {
	if len(i.CommitHash) > 12 {
		return i.CommitHash[:12]
	}
	return i.CommitHash
}
