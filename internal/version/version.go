// Package version holds build metadata injected with ldflags:
//
//	go build -ldflags "-X git.home.luguber.info/inful/docpress/internal/version.Version=v0.3.0"
package version

// Version is the release version.
var Version = "unknown"

// Build metadata.
var (
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String formats the version line printed by --version.
func String() string {
	return "docpress " + Version + " (commit " + GitCommit + ", built " + BuildTime + ")"
}
