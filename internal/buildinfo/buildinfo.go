// Package buildinfo exposes version metadata for the salute binary. Values are
// overridden at build time via -ldflags, e.g.:
//
//	-ldflags "-X 'github.com/flarebyte/salute/internal/buildinfo.Version=1.2.3' -X 'github.com/flarebyte/salute/internal/buildinfo.Date=2026-02-09'"
package buildinfo

import (
	"runtime"
	"strings"
	"time"
)

// Name is the program name reported by version output and the server index.
const Name = "salute"

var (
	// Version is the semantic version or custom string. Empty means "dev".
	Version = "dev"
	// Commit is the VCS commit hash (optional).
	Commit = ""
	// Date is the build date (optional).
	Date = ""
	// BuiltBy is an optional builder identifier.
	BuiltBy = ""
)

// Info is the detailed build description printed by `salute version --json`.
type Info struct {
	Version   string `json:"version"`
	Commit    string `json:"commit"`
	Date      string `json:"date"`
	BuiltBy   string `json:"built_by"`
	Go        string `json:"go"`
	GoOS      string `json:"go_os"`
	GoArch    string `json:"go_arch"`
	Timestamp string `json:"timestamp"`
}

// Current returns Info for the running binary, stamped with now.
func Current(now time.Time) Info {
	return Info{
		Version:   EffectiveVersion(),
		Commit:    Commit,
		Date:      Date,
		BuiltBy:   BuiltBy,
		Go:        runtime.Version(),
		GoOS:      runtime.GOOS,
		GoArch:    runtime.GOARCH,
		Timestamp: now.UTC().Format(time.RFC3339Nano),
	}
}

// EffectiveVersion returns Version, or "dev" when it was blanked.
func EffectiveVersion() string {
	if Version == "" {
		return "dev"
	}
	return Version
}

// Summary returns a concise single-line version string.
func Summary() string {
	v := EffectiveVersion()
	parts := make([]string, 0, 2)
	if Commit != "" {
		c := Commit
		if len(c) > 7 {
			c = c[:7]
		}
		parts = append(parts, "commit="+c)
	}
	if Date != "" {
		parts = append(parts, "date="+Date)
	}
	if len(parts) > 0 {
		v += " (" + strings.Join(parts, ", ") + ")"
	}
	return v
}
