// Package version reports the express-ts-gen build.
package version

import (
	"fmt"
	"runtime/debug"
)

// Set at build time via -ldflags "-X .../internal/version.Version=...".
var (
	Version   = "dev"
	Commit    = "unknown"
	BuildTime = "unknown"
)

// String returns the version line printed by `version` and `--version`.
func String() string {
	v, commit, built := resolve()
	return fmt.Sprintf("express-ts-gen %s (commit: %s, built: %s)", v, short(commit), built)
}

// resolve falls back to the module build info for binaries built with `go install`.
func resolve() (string, string, string) {
	v, commit, built := Version, Commit, BuildTime
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return v, commit, built
	}
	if v == "dev" && info.Main.Version != "" && info.Main.Version != "(devel)" {
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
	return v, commit, built
}

func short(commit string) string {
	if len(commit) > 7 {
		return commit[:7]
	}
	return commit
}
