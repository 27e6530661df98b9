// Package version holds build metadata for the cleanread binary.
//
// Values are injected with ldflags:
//
//	go build -ldflags "-X github.com/jmylchreest/cleanread/internal/version.Version=1.0.0"
package version

import (
	"fmt"
	"runtime"
	"strings"
)

var (
	// Version is the semantic version.
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "unknown"

	// Dirty is "true" when the tree had uncommitted changes.
	Dirty = "false"

	// BuildDate is the UTC build timestamp.
	BuildDate = "unknown"
)

// Info is the version payload served on /health and printed by `version -o json`.
type Info struct {
	Version   string `json:"version" yaml:"version"`
	Commit    string `json:"commit" yaml:"commit"`
	Dirty     bool   `json:"dirty" yaml:"dirty"`
	BuildDate string `json:"build_date" yaml:"build_date"`
	GoVersion string `json:"go_version" yaml:"go_version"`
	Platform  string `json:"platform" yaml:"platform"`
}

// Get returns the current build metadata.
func Get() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Dirty:     Dirty == "true",
		BuildDate: BuildDate,
		GoVersion: runtime.Version(),
		Platform:  runtime.GOOS + "/" + runtime.GOARCH,
	}
}

// String returns the short version, suffixed with -dirty when applicable.
func String() string {
	if Dirty == "true" {
		return Version + "-dirty"
	}
	return Version
}

// Full returns the multi-line form printed by `cleanread version`.
func Full() string {
	info := Get()
	var sb strings.Builder
	fmt.Fprintf(&sb, "cleanread %s\n", String())
	fmt.Fprintf(&sb, "  commit:   %s\n", info.Commit)
	fmt.Fprintf(&sb, "  built:    %s\n", info.BuildDate)
	fmt.Fprintf(&sb, "  go:       %s\n", info.GoVersion)
	fmt.Fprintf(&sb, "  platform: %s", info.Platform)
	return sb.String()
}
