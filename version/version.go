package version

import (
	"fmt"
	"runtime/debug"
)

const unavailable = "unavailable"

// FromBuildInfo describes the running binary for --version.
func FromBuildInfo() string {
	info, ok := debug.ReadBuildInfo()
	if !ok {
		return unavailable
	}

	return describe(info)
}

func describe(info *debug.BuildInfo) string {
	var vcs, revision, ts string

	modified := false

	for i := range info.Settings {
		switch info.Settings[i].Key {
		case "vcs":
			vcs = info.Settings[i].Value
		case "vcs.revision":
			revision = info.Settings[i].Value
		case "vcs.time":
			ts = info.Settings[i].Value
		case "vcs.modified":
			modified = info.Settings[i].Value == "true"
		default:
			continue
		}
	}

	// Set when installed with "go install module@version".
	if v := info.Main.Version; v != "" && v != "(devel)" {
		return v
	}

	if revision == "" {
		return unavailable
	}

	if modified {
		revision += "-dirty"
	}

	if ts == "" {
		return fmt.Sprintf("built from %s revision %s", vcs, revision)
	}

	return fmt.Sprintf("built from %s revision %s at %s", vcs, revision, ts)
}
