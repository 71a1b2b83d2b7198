// Package config holds analyzeme's user configuration and build metadata.
package config

import (
	"fmt"
	"runtime"
	"strings"
)

// Set with -ldflags "-X github.com/good-yellow-bee/analyzeme/pkg/config.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// InputFormat names the export layout the loader understands: the
// message.json of a GroupMe conversation export, newest message first.
const InputFormat = "groupme-message-json"

// BuildInfo describes the binary and the exports it reads.
type BuildInfo struct {
	Version     string `json:"version"`
	Commit      string `json:"commit"`
	BuildTime   string `json:"build_time"`
	GoVersion   string `json:"go_version"`
	Platform    string `json:"platform"`
	InputFormat string `json:"input_format"`
}

// GetBuildInfo returns the current build information.
func GetBuildInfo() BuildInfo {
	return BuildInfo{
		Version:     Version,
		Commit:      Commit,
		BuildTime:   BuildTime,
		GoVersion:   runtime.Version(),
		Platform:    runtime.GOOS + "/" + runtime.GOARCH,
		InputFormat: InputFormat,
	}
}

// IsDevBuild reports whether the binary was built without release ldflags.
func (b BuildInfo) IsDevBuild() bool {
	return b.Version == "dev"
}

// VersionString returns the two-line text shown by "analyzeme version":
//
//	analyzeme v1.2.0 (commit abc1234, built 2024-03-07, go1.24.7 linux/amd64)
//	reads groupme-message-json exports
func VersionString() string {
	b := GetBuildInfo()

	var sb strings.Builder
	fmt.Fprintf(&sb, "analyzeme %s (commit %s", b.Version, shortCommit(b.Commit))
	if !b.IsDevBuild() {
		fmt.Fprintf(&sb, ", built %s", b.BuildTime)
	}
	fmt.Fprintf(&sb, ", %s %s)\nreads %s exports", b.GoVersion, b.Platform, b.InputFormat)
	return sb.String()
}

func shortCommit(c string) string {
	if len(c) > 7 {
		return c[:7]
	}
	return c
}
