// Package testutil provides the shared harness for end-to-end tests that run
// plans through the full application.
package testutil

import (
	"context"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/forgego/internal/app"
	"github.com/specialistvlad/forgego/internal/hcl"
	"github.com/stretchr/testify/require"
)

// HarnessResult holds the outcomes of an integration test run.
type HarnessResult struct {
	Report      string
	LogOutput   string
	Err         error
	App         *app.App
	SnapshotDir string
}

// Options tweak the harness configuration.
type Options struct {
	Output      string
	WorkerCount int
}

// RunPlanTest writes files (relative path -> HCL) under a fresh plan
// directory, runs the app against it and returns everything observable. A
// startup panic is returned as Err.
func RunPlanTest(t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()
	return RunPlanTestWithContext(context.Background(), t, files, opts)
}

// RunPlanTestWithContext is RunPlanTest with a caller-provided context.
func RunPlanTestWithContext(ctx context.Context, t *testing.T, files map[string]string, opts Options) *HarnessResult {
	t.Helper()

	tmpDir := t.TempDir()
	planDir := filepath.Join(tmpDir, "plan")
	snapshotDir := filepath.Join(tmpDir, "snapshots")
	require.NoError(t, os.Mkdir(planDir, 0o755))

	for name, content := range files {
		filePath := filepath.Join(planDir, name)
		require.NoError(t, os.MkdirAll(filepath.Dir(filePath), 0o755))
		require.NoError(t, os.WriteFile(filePath, []byte(content), 0o644))
	}

	if opts.WorkerCount == 0 {
		opts.WorkerCount = 4
	}
	cfg, err := app.NewConfig(app.Config{
		PlanPath:    planDir,
		SnapshotDir: snapshotDir,
		LogLevel:    "debug",
		LogFormat:   "text",
		WorkerCount: opts.WorkerCount,
		Output:      opts.Output,
	})
	require.NoError(t, err)

	out := &app.SafeBuffer{}
	logs := &app.SafeBuffer{}
	result := &HarnessResult{SnapshotDir: snapshotDir}

	func() {
		defer func() {
			if r := recover(); r != nil {
				result.Err = fmt.Errorf("application startup panicked | %v", r)
			}
		}()
		result.App = app.NewApp(out, logs, cfg, hcl.NewLoader())
	}()

	if result.Err == nil {
		result.Err = result.App.Run(ctx)
	}
	result.Report = out.String()
	result.LogOutput = logs.String()

	if os.Getenv("FORGEGO_TEST_LOGS") == "true" {
		t.Logf("--- Full Log Output for %s ---\n%s", t.Name(), result.LogOutput)
	}
	return result
}
