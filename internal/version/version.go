package version

import (
	"fmt"
	"runtime/debug"
)

var (
	// Version is the semantic version of the binary. Overridden via -ldflags "-X".
	Version = "0.5.0"
	// Commit is the git commit hash injected at build time.
	Commit = ""
)

// Full returns a human-friendly version string.
func Full() string {
	return fmt.Sprintf("%s (commit:%s)", Version, commit())
}

// commit falls back to the VCS revision stamped by the Go toolchain.
func commit() string {
	if Commit != "" {
		return Commit
	}
	if info, ok := debug.ReadBuildInfo(); ok {
		for _, s := range info.Settings {
			if s.Key == "vcs.revision" && s.Value != "" {
				if len(s.Value) > 12 {
					return s.Value[:12]
				}
				return s.Value
			}
		}
	}
	return "dev"
}
