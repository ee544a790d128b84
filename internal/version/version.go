// Package version provides build information for nescore.
package version

import (
	"fmt"
	"io"
	"runtime"
	"runtime/debug"
	"time"
)

const unknown = "unknown"

// Set at build time with -ldflags "-X nescore/internal/version.Version=..."
var (
	Version   = "dev"
	GitCommit = unknown
	BuildTime = unknown
)

// BuildInfo contains detailed build information.
type BuildInfo struct {
	Version   string
	GitCommit string
	BuildTime string
	GoVersion string
	Platform  string
	Arch      string
	Modified  bool
}

// GetBuildInfo returns build information, filling in from the module build
// info whatever was not set with ldflags.
func GetBuildInfo() BuildInfo {
	info := BuildInfo{
		Version:   Version,
		GitCommit: GitCommit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS,
		Arch:      runtime.GOARCH,
	}

	if bi, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range bi.Settings {
			switch setting.Key {
			case "vcs.revision":
				if GitCommit == unknown {
					info.GitCommit = setting.Value
				}
			case "vcs.time":
				if BuildTime == unknown {
					info.BuildTime = setting.Value
				}
			case "vcs.modified":
				info.Modified = setting.Value == "true"
			}
		}
	}

	return info
}

func shortCommit(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}

// GetVersion returns a short version string. Development builds carry the
// commit they were built from when it is known.
func GetVersion() string {
	if Version != "dev" {
		return Version
	}
	info := GetBuildInfo()
	if info.GitCommit == unknown {
		return Version
	}
	v := "dev-" + shortCommit(info.GitCommit)
	if info.Modified {
		v += "+dirty"
	}
	return v
}

// GetDetailedVersion returns a one line description of the build.
func GetDetailedVersion() string {
	info := GetBuildInfo()

	s := fmt.Sprintf("nescore version %s", GetVersion())
	if info.BuildTime != unknown {
		if t, err := time.Parse(time.RFC3339, info.BuildTime); err == nil {
			s += fmt.Sprintf(" built on %s", t.Format(time.DateTime))
		} else {
			s += fmt.Sprintf(" built on %s", info.BuildTime)
		}
	}
	return s + fmt.Sprintf(" with %s for %s/%s", info.GoVersion, info.Platform, info.Arch)
}

// PrintBuildInfo writes the build information as a table.
func PrintBuildInfo(w io.Writer) {
	info := GetBuildInfo()
	fmt.Fprintf(w, "Version:     %s\n", info.Version)
	fmt.Fprintf(w, "Git Commit:  %s\n", info.GitCommit)
	fmt.Fprintf(w, "Build Time:  %s\n", info.BuildTime)
	fmt.Fprintf(w, "Go Version:  %s\n", info.GoVersion)
	fmt.Fprintf(w, "Platform:    %s/%s\n", info.Platform, info.Arch)
}
