// Package version exposes the build version of demolabel.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at link time:
//
//	go build -ldflags="-X github.com/clinlab/demolabel/internal/version.Version=v0.4.0 \
//	                   -X github.com/clinlab/demolabel/internal/version.Commit=1a2b3c4"
var (
	Version = ""
	Commit  = ""
)

func init() {
	if Version == "" || Commit == "" {
		fillFromBuildInfo(debug.ReadBuildInfo)
	}
	if Version == "" {
		Version = "dev"
	}
	if Commit == "" {
		Commit = "unknown"
	}
}

// fillFromBuildInfo reads the VCS stamp the go tool embeds when building
// inside a git checkout.
func fillFromBuildInfo(read func() (*debug.BuildInfo, bool)) {
	info, ok := read()
	if !ok {
		return
	}

	if Version == "" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}

	var revision string
	var dirty bool
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.modified":
			dirty = s.Value == "true"
		}
	}
	if Commit != "" || revision == "" {
		return
	}
	if len(revision) > 7 {
		revision = revision[:7]
	}
	if dirty {
		revision += "-dirty"
	}
	Commit = revision
}

// Full returns the version and commit, e.g. "v0.4.0 (commit: 1a2b3c4)".
func Full() string {
	return fmt.Sprintf("%s (commit: %s)", Version, Commit)
}

// UserAgent is sent with HTTP print jobs.
func UserAgent() string {
	return "demolabel/" + Version
}
