// Package version reports which assetrev build is running. Release builds
// stamp the variables below with
//
//	-ldflags "-X github.com/quantmind-br/assetrev/pkg/version.Version=v1.0.0"
//
// Builds made with `go install` fall back to the module build info.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
	"strings"
)

// Name is the program name used in version strings
const Name = "assetrev"

// Stamped at link time. Empty values are filled from the build info.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// Build describes the running binary
type Build struct {
	Version   string `json:"version"`
	Commit    string `json:"commit,omitempty"`
	BuildTime string `json:"build_time,omitempty"`
	GoVersion string `json:"go_version"`
	Platform  string `json:"platform"`
}

// Current returns the running build, preferring link-time values.
func Current() Build {
	b := Build{
		Version:   Version,
		Commit:    Commit,
		BuildTime: BuildTime,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}

	info, ok := debug.ReadBuildInfo()
	if !ok {
		return b
	}
	if b.Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		b.Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			if b.Commit == "" {
				b.Commit = s.Value
			}
		case "vcs.time":
			if b.BuildTime == "" {
				b.BuildTime = s.Value
			}
		}
	}
	return b
}

// String formats the build as "assetrev v1.0.0 (commit abc, built ..., go1.24 linux/amd64)".
func (b Build) String() string {
	var meta []string
	if b.Commit != "" {
		meta = append(meta, "commit "+shortCommit(b.Commit))
	}
	if b.BuildTime != "" {
		meta = append(meta, "built "+b.BuildTime)
	}
	meta = append(meta, b.GoVersion+" "+b.Platform)
	return fmt.Sprintf("%s %s (%s)", Name, b.Version, strings.Join(meta, ", "))
}

func shortCommit(rev string) string {
	if len(rev) > 12 {
		return rev[:12]
	}
	return rev
}

// Short returns the bare version
func Short() string {
	return Current().Version
}

// Full returns the version line printed by `assetrev version`
func Full() string {
	return Current().String()
}
