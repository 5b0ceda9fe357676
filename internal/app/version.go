package app

import (
	"fmt"
	"runtime/debug"
)

// Release stamps, set with
// -ldflags "-X github.com/heartmarshall/parla-dictionary/internal/app.Version=1.2.0".
// Commit and BuildTime fall back to the VCS stamp embedded by the toolchain.
var (
	Version   = "dev"
	Commit    = ""
	BuildTime = ""
)

// BuildVersion reports the version for startup logs and the /health payload.
func BuildVersion() string {
	commit, built := Commit, BuildTime
	if commit == "" || built == "" {
		rev, at := vcsStamp()
		if commit == "" {
			commit = rev
		}
		if built == "" {
			built = at
		}
	}
	return formatVersion(Version, commit, built)
}

// formatVersion renders "1.2.0+abc123def456 (2026-05-04T10:00:00Z)",
// dropping the parts that are unknown.
func formatVersion(version, commit, built string) string {
	if commit == "" {
		return version
	}
	if len(commit) > 12 {
		commit = commit[:12]
	}
	if built == "" {
		return version + "+" + commit
	}
	return fmt.Sprintf("%s+%s (%s)", version, commit, built)
}

func vcsStamp() (revision, at string) {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return "", ""
	}
	for _, s := range info.Settings {
		switch s.Key {
		case "vcs.revision":
			revision = s.Value
		case "vcs.time":
			at = s.Value
		}
	}
	return revision, at
}
