// Package version carries build metadata injected with -ldflags -X.
package version

import (
	"fmt"
	"runtime"
	"runtime/debug"
)

// Build metadata. Release builds override these, e.g.
// -X github.com/Sumatoshi-tech/obofang/pkg/version.Version=v1.0.0.
var (
	Version = "dev"
	Commit  = "none"
	Date    = "unknown"
)

// Resolved returns Version, falling back to the module version recorded by
// `go install` when no ldflags were given.
func Resolved() string {
	if Version != "dev" {
		return Version
	}

	info, ok := debug.ReadBuildInfo()
	if ok && info.Main.Version != "" && info.Main.Version != "(devel)" {
		return info.Main.Version
	}

	return Version
}

// String returns a one-line description of the build.
func String() string {
	return fmt.Sprintf("obofang %s (commit %s, built %s, %s/%s)",
		Resolved(), Commit, Date, runtime.GOOS, runtime.GOARCH)
}
