package version

import (
	"bytes"
	"encoding/json"
	"testing"

	"github.com/flarebyte/salute/internal/buildinfo"
)

func withBuildInfo(t *testing.T, version, commit, date string, short, asJSON bool) {
	t.Helper()
	oldVersion, oldCommit, oldDate := buildinfo.Version, buildinfo.Commit, buildinfo.Date
	oldShort, oldJSON := flagShort, flagJSON
	t.Cleanup(func() {
		buildinfo.Version, buildinfo.Commit, buildinfo.Date = oldVersion, oldCommit, oldDate
		flagShort, flagJSON = oldShort, oldJSON
	})
	buildinfo.Version, buildinfo.Commit, buildinfo.Date = version, commit, date
	flagShort, flagJSON = short, asJSON
}

func run(t *testing.T) (string, string) {
	t.Helper()
	var stdout, stderr bytes.Buffer
	Cmd.SetOut(&stdout)
	Cmd.SetErr(&stderr)
	t.Cleanup(func() {
		Cmd.SetOut(nil)
		Cmd.SetErr(nil)
	})
	if err := Cmd.RunE(Cmd, nil); err != nil {
		t.Fatalf("run: %v", err)
	}
	return stdout.String(), stderr.String()
}

func TestVersionDefaultOutputStable(t *testing.T) {
	withBuildInfo(t, "", "", "", false, false)
	stdout, stderr := run(t)
	if stdout != "salute dev\n" {
		t.Fatalf("unexpected output: %q", stdout)
	}
	if stderr != "" {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}

func TestVersionShortWithCommitAndDate(t *testing.T) {
	withBuildInfo(t, "1.2.3", "0123456789abcdef", "2026-02-09", true, true)
	stdout, _ := run(t)
	if stdout != "salute 1.2.3 (commit=0123456, date=2026-02-09)\n" {
		t.Fatalf("unexpected output: %q", stdout)
	}
}

func TestVersionJSON(t *testing.T) {
	withBuildInfo(t, "1.2.3", "abc", "", false, true)
	stdout, stderr := run(t)
	var info buildinfo.Info
	if err := json.Unmarshal([]byte(stdout), &info); err != nil {
		t.Fatalf("decode: %v\n%s", err, stdout)
	}
	if info.Version != "1.2.3" || info.Commit != "abc" || info.Go == "" || info.Timestamp == "" {
		t.Fatalf("unexpected info: %+v", info)
	}
	if stderr != "salute version: 1.2.3 (commit=abc)\n" {
		t.Fatalf("unexpected stderr: %q", stderr)
	}
}
