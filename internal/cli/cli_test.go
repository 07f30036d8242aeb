package cli

import (
	"bytes"
	"path/filepath"
	"testing"

	"github.com/specialistvlad/forgego/internal/app"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseWithEnv_Defaults(t *testing.T) {
	t.Parallel()

	// --- Act ---
	cfg, exit, err := ParseWithEnv([]string{"plans/"}, &bytes.Buffer{}, map[string]string{})

	// --- Assert ---
	require.NoError(t, err)
	assert.False(t, exit)
	assert.Equal(t, "plans/", cfg.PlanPath)
	assert.Equal(t, "info", cfg.LogLevel)
	assert.Equal(t, "text", cfg.LogFormat)
	assert.Equal(t, 4, cfg.WorkerCount)
	assert.Equal(t, app.OutputText, cfg.Output)
	assert.Equal(t, "forgego", filepath.Base(cfg.SnapshotDir))
}

func TestParseWithEnv_EnvironmentThenFlags(t *testing.T) {
	t.Parallel()

	environ := map[string]string{
		"FORGEGO_LOG_LEVEL":    "debug",
		"FORGEGO_LOG_FORMAT":   "json",
		"FORGEGO_WORKERS":      "9",
		"FORGEGO_OUTPUT":       "yaml",
		"FORGEGO_SNAPSHOT_DIR": "/var/snap",
	}

	t.Run("environment only", func(t *testing.T) {
		cfg, _, err := ParseWithEnv([]string{"-demo"}, &bytes.Buffer{}, environ)

		require.NoError(t, err)
		assert.True(t, cfg.Demo)
		assert.Equal(t, "debug", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
		assert.Equal(t, 9, cfg.WorkerCount)
		assert.Equal(t, app.OutputYAML, cfg.Output)
		assert.Equal(t, "/var/snap", cfg.SnapshotDir)
	})

	t.Run("flags win", func(t *testing.T) {
		cfg, _, err := ParseWithEnv([]string{"-workers=2", "-output=JSON", "-log-level=warn", "-p", "plan.hcl"}, &bytes.Buffer{}, environ)

		require.NoError(t, err)
		assert.Equal(t, "plan.hcl", cfg.PlanPath)
		assert.Equal(t, 2, cfg.WorkerCount)
		assert.Equal(t, app.OutputJSON, cfg.Output)
		assert.Equal(t, "warn", cfg.LogLevel)
		assert.Equal(t, "json", cfg.LogFormat)
	})
}

func TestParseWithEnv_PathPrecedence(t *testing.T) {
	t.Parallel()

	cfg, _, err := ParseWithEnv([]string{"-plan", "a.hcl", "-p", "b.hcl", "c.hcl"}, &bytes.Buffer{}, nil)

	require.NoError(t, err)
	assert.Equal(t, "a.hcl", cfg.PlanPath)
}

func TestParseWithEnv_UsageAndHelp(t *testing.T) {
	t.Parallel()

	for _, args := range [][]string{nil, {"-h"}} {
		out := &bytes.Buffer{}

		cfg, exit, err := ParseWithEnv(args, out, nil)

		require.NoError(t, err)
		assert.True(t, exit)
		assert.Nil(t, cfg)
		assert.Contains(t, out.String(), "Usage:")
	}
}

func TestParseWithEnv_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		environ map[string]string
		wantMsg string
	}{
		{name: "unknown flag", args: []string{"-bogus"}, wantMsg: "flag provided but not defined"},
		{name: "log format", args: []string{"-log-format=xml", "p"}, wantMsg: "invalid log-format"},
		{name: "log level", args: []string{"-log-level=trace", "p"}, wantMsg: "invalid log-level"},
		{name: "output", args: []string{"-output=csv", "p"}, wantMsg: `unknown Output "csv"`},
		{name: "workers", args: []string{"-workers=0", "p"}, wantMsg: "WorkerCount"},
		{name: "plan and demo", args: []string{"-demo", "p"}, wantMsg: "mutually exclusive"},
		{name: "bad env", args: []string{"p"}, environ: map[string]string{"FORGEGO_WORKERS": "many"}, wantMsg: "invalid environment"},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			_, _, err := ParseWithEnv(tt.args, &bytes.Buffer{}, tt.environ)

			var exitErr *ExitError
			require.ErrorAs(t, err, &exitErr)
			assert.Equal(t, 2, exitErr.Code)
			assert.Contains(t, exitErr.Message, tt.wantMsg)
		})
	}
}
