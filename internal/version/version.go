// Package version reports the docstats build.
package version

import "runtime/debug"

// Set with -ldflags "-X git.home.luguber.info/inful/docstats/internal/version.Version=v1.0.0".
var (
	Version   = "unknown"
	BuildTime = "unknown"
	GitCommit = "unknown"
)

// String renders the line printed by --version. Without ldflags the module
// version and VCS revision embedded by the go tool are used.
func String() string {
	v, commit, built := Version, GitCommit, BuildTime
	if info, ok := debug.ReadBuildInfo(); ok {
		if v == "unknown" && info.Main.Version != "" {
			v = info.Main.Version
		}
		for _, s := range info.Settings {
			switch {
			case s.Key == "vcs.revision" && commit == "unknown":
				commit = s.Value
			case s.Key == "vcs.time" && built == "unknown":
				built = s.Value
			}
		}
	}
	return v + " (commit " + commit + ", built " + built + ")"
}
