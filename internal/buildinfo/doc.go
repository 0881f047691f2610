// Package buildinfo exposes the version, commit, and build date stamped into
// the gtadapter binary with -ldflags -X.
package buildinfo

// Overridden at build time:
//
//	-X github.com/AbdelazizMoustafa10m/gtadapter/internal/buildinfo.Version=...
var (
	Version = "dev"
	Commit  = "unknown"
	Date    = "unknown"
)
