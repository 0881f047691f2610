package buildinfo

import (
	"fmt"
	"runtime"
)

// Info is the JSON shape printed by `gtadapter version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	GoVersion string `json:"go_version"`
}

// GetInfo snapshots the package variables.
func GetInfo() Info {
	return Info{
		Version:   Version,
		Commit:    Commit,
		Date:      Date,
		GoVersion: runtime.Version(),
	}
}

// String renders e.g. "gtadapter v1.2.0 (commit: a1b2c3d, built: 2026-10-01T10:00:00Z)".
func (i Info) String() string {
	return fmt.Sprintf("gtadapter v%s (commit: %s, built: %s)", i.Version, i.Commit, i.Date)
}
