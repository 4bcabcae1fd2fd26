package version

import (
	"os"
	"runtime"
	"runtime/debug"
	"strings"
)

// Commit can be set with -ldflags "-X github.com/phenixrizen/asciiflow/internal/version.Commit=<sha>".
var Commit = ""

func ResolveCommit() string {
	if c := strings.TrimSpace(Commit); c != "" {
		return c
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, setting := range info.Settings {
			if setting.Key == "vcs.revision" {
				if c := strings.TrimSpace(setting.Value); c != "" {
					return c
				}
			}
		}
	}
	if c := strings.TrimSpace(os.Getenv("ASCIIFLOW_COMMIT")); c != "" {
		return c
	}
	return "v0.0.1"
}

func ShortCommit() string {
	commit := ResolveCommit()
	if len(commit) > 12 {
		return commit[:12]
	}
	return commit
}

// Info describes the running build.
type Info struct {
	Commit    string `json:"commit"`
	Short     string `json:"short"`
	GoVersion string `json:"go_version"`
}

func Current() Info {
	return Info{
		Commit:    ResolveCommit(),
		Short:     ShortCommit(),
		GoVersion: runtime.Version(),
	}
}
