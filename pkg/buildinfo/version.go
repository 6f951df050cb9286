// Package buildinfo holds the version stamped into apollon binaries.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/apollon/pkg/buildinfo.Version=v0.3.0 \
//	    -X github.com/matzehuels/apollon/pkg/buildinfo.Commit=$(git rev-parse --short HEAD)"
//
// Without ldflags, `go install` builds fall back to the module version and
// VCS revision recorded by the toolchain.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

func init() {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return
	}
	if Version == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
		Version = info.Main.Version
	}
	for _, s := range info.Settings {
		switch {
		case s.Key == "vcs.revision" && Commit == "none":
			Commit = s.Value
		case s.Key == "vcs.time" && Date == "unknown":
			Date = s.Value
		}
	}
}

// Template is the cobra version template.
func Template() string {
	return fmt.Sprintf("{{.Name}} %s (commit %s, built %s)\n", Version, Commit, Date)
}

// UserAgent identifies the server in response headers.
func UserAgent() string {
	return "apollon/" + Version
}
