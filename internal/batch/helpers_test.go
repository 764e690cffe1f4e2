package batch

import (
	"testing"

	"github.com/flarebyte/salute/internal/config"
	"github.com/flarebyte/salute/internal/testutil"
)

// writeTree creates files (slash paths relative to root) with the given content.
func writeTree(t *testing.T, files map[string]string) string {
	t.Helper()
	return testutil.WriteTree(t, files)
}

func testConfig(root string) config.Batch {
	cfg := config.DefaultBatch()
	cfg.Discovery.Root = root
	cfg.Workers = 2
	return cfg
}
