// Package buildinfo provides build-time version information.
//
// Release builds set the variables via ldflags:
//
//	go build -ldflags "-X github.com/matzehuels/nbkernel/pkg/buildinfo.Version=v1.0.0 \
//	    -X github.com/matzehuels/nbkernel/pkg/buildinfo.Commit=$(git rev-parse HEAD) \
//	    -X github.com/matzehuels/nbkernel/pkg/buildinfo.Date=$(date -u +%Y-%m-%dT%H:%M:%SZ)"
//
// Binaries built with `go install module@version` have no ldflags; for those
// the module version and VCS settings recorded by the toolchain are used.
package buildinfo

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version (e.g., "v1.2.3").
	Version = "dev"

	// Commit is the git commit SHA.
	Commit = "none"

	// Date is the build timestamp.
	Date = "unknown"
)

// readBuildInfo is swapped out in tests.
var readBuildInfo = debug.ReadBuildInfo

// Info is a resolved set of build values.
type Info struct {
	Version string
	Commit  string
	Date    string
}

// Resolve returns the ldflags values, filling defaults from the toolchain's
// embedded build information where available.
func Resolve() Info {
	info := Info{Version: Version, Commit: Commit, Date: Date}

	bi, ok := readBuildInfo()
	if !ok {
		return info
	}
	if info.Version == "dev" && bi.Main.Version != "" && bi.Main.Version != "(devel)" {
		info.Version = bi.Main.Version
	}
	for _, s := range bi.Settings {
		switch s.Key {
		case "vcs.revision":
			if info.Commit == "none" {
				info.Commit = s.Value
			}
		case "vcs.time":
			if info.Date == "unknown" {
				info.Date = s.Value
			}
		}
	}
	return info
}

// String returns the formatted build information.
func String() string {
	info := Resolve()
	return fmt.Sprintf("version: %s\ncommit: %s\nbuilt: %s", info.Version, info.Commit, info.Date)
}

// Template returns the version template string for cobra.
func Template() string {
	info := Resolve()
	return fmt.Sprintf("{{.Name}} version %s\ncommit: %s\nbuilt: %s\n", info.Version, info.Commit, info.Date)
}
