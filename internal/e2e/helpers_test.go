package e2e

import (
	"bytes"
	"fmt"
	"os"
	"os/exec"
	"path/filepath"
	"runtime"
	"sync"
	"testing"
)

type runResult struct {
	code   int
	stdout []byte
	stderr []byte
}

var (
	buildOnce sync.Once
	builtBin  string
	buildErr  error
)

// repoRoot walks up from the test directory to the go.mod.
func repoRoot() string {
	dir, _ := os.Getwd()
	for {
		if _, err := os.Stat(filepath.Join(dir, "go.mod")); err == nil {
			return dir
		}
		parent := filepath.Dir(dir)
		if parent == dir {
			return "."
		}
		dir = parent
	}
}

func buildSalute(t *testing.T) string {
	t.Helper()
	if testing.Short() {
		t.Skip("e2e builds the binary")
	}
	buildOnce.Do(func() {
		binDir, err := os.MkdirTemp("", "salute-e2e-")
		if err != nil {
			buildErr = err
			return
		}
		bin := filepath.Join(binDir, "salute")
		if runtime.GOOS == "windows" {
			bin += ".exe"
		}
		cmd := exec.Command("go", "build", "-o", bin, "./cmd/salute")
		cmd.Dir = repoRoot()
		cmd.Env = append(os.Environ(), "CGO_ENABLED=0")
		if out, err := cmd.CombinedOutput(); err != nil {
			buildErr = fmt.Errorf("build failed: %v\n%s", err, out)
			return
		}
		builtBin = bin
	})
	if buildErr != nil {
		t.Fatal(buildErr)
	}
	return builtBin
}

func runCmd(t *testing.T, bin string, args ...string) runResult {
	t.Helper()
	cmd := exec.Command(bin, args...)
	var stdout, stderr bytes.Buffer
	cmd.Stdout = &stdout
	cmd.Stderr = &stderr
	err := cmd.Run()
	code := 0
	if err != nil {
		if ee, ok := err.(*exec.ExitError); ok {
			code = ee.ExitCode()
		} else {
			code = -1
		}
	}
	return runResult{code: code, stdout: stdout.Bytes(), stderr: stderr.Bytes()}
}

func writeConfig(t *testing.T, root string, body string) string {
	t.Helper()
	cfg := filepath.Join(t.TempDir(), "batch.cue")
	content := fmt.Sprintf("{\n  configVersion: \"1\"\n  discovery: { root: %q }\n%s}\n", filepath.ToSlash(root), body)
	if err := os.WriteFile(cfg, []byte(content), 0o644); err != nil {
		t.Fatalf("write cfg: %v", err)
	}
	return cfg
}

func assertStable(t *testing.T, runs []runResult) {
	t.Helper()
	if len(runs) < 2 {
		t.Fatalf("need >=2 runs")
	}
	a := runs[0]
	for i, r := range runs[1:] {
		if r.code != a.code {
			t.Fatalf("exit code drift at run %d: %d vs %d", i+1, r.code, a.code)
		}
		if !bytes.Equal(r.stdout, a.stdout) {
			t.Fatalf("stdout drift at run %d", i+1)
		}
		if !bytes.Equal(r.stderr, a.stderr) {
			t.Fatalf("stderr drift at run %d", i+1)
		}
	}
}
