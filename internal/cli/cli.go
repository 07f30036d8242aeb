package cli

import (
	"errors"
	"flag"
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/caarlos0/env/v11"
	"github.com/specialistvlad/forgego/internal/app"
)

// ExitError is a custom error type that includes a specific exit code.
type ExitError struct {
	Code    int
	Message string
}

// Error implements the error interface for ExitError.
func (e *ExitError) Error() string {
	return e.Message
}

// defaults are the option values taken from the environment before flags
// are applied.
type defaults struct {
	LogLevel    string `env:"FORGEGO_LOG_LEVEL" envDefault:"info"`
	LogFormat   string `env:"FORGEGO_LOG_FORMAT" envDefault:"text"`
	Workers     int    `env:"FORGEGO_WORKERS" envDefault:"4"`
	Output      string `env:"FORGEGO_OUTPUT" envDefault:"text"`
	SnapshotDir string `env:"FORGEGO_SNAPSHOT_DIR"`
}

// Parse processes command-line arguments against the process environment.
// It returns a populated Config, a boolean indicating if the program should
// exit cleanly, or an ExitError.
func Parse(args []string, output io.Writer) (*app.Config, bool, error) {
	return ParseWithEnv(args, output, env.ToMap(os.Environ()))
}

// ParseWithEnv is Parse with an explicit environment. A nil environ is
// treated as empty.
func ParseWithEnv(args []string, output io.Writer, environ map[string]string) (*app.Config, bool, error) {
	slog.Debug("CLI parser started.")

	if environ == nil {
		environ = map[string]string{}
	}
	var d defaults
	if err := env.ParseWithOptions(&d, env.Options{Environment: environ}); err != nil {
		return nil, false, &ExitError{Code: 2, Message: fmt.Sprintf("invalid environment: %v", err)}
	}
	if d.SnapshotDir == "" {
		d.SnapshotDir = filepath.Join(os.TempDir(), "forgego")
	}

	flagSet := flag.NewFlagSet("forgego", flag.ContinueOnError)
	flagSet.SetOutput(output)

	// Custom usage/help text function
	flagSet.Usage = func() {
		fmt.Fprint(output, `
forgego - builds person records through named construction strategies.

Usage:
  forgego [options] [PLAN_PATH]
  forgego -demo [options]

Arguments:
  PLAN_PATH
    Path to a single .hcl plan file or a directory containing .hcl files.

Environment:
  FORGEGO_LOG_LEVEL, FORGEGO_LOG_FORMAT, FORGEGO_WORKERS, FORGEGO_OUTPUT,
  FORGEGO_SNAPSHOT_DIR set the defaults of the matching options.

Options:
`)
		flagSet.PrintDefaults()
	}

	planFlag := flagSet.String("plan", "", "Path to the plan file or directory.")
	pFlag := flagSet.String("p", "", "Path to the plan file or directory (shorthand).")
	demoFlag := flagSet.Bool("demo", false, "Run the built-in demo plan, one record per strategy.")
	snapshotDirFlag := flagSet.String("snapshot-dir", d.SnapshotDir, "Directory that relative round-trip locations are resolved against.")
	logFormatFlag := flagSet.String("log-format", d.LogFormat, "Log output format. Options: 'text' or 'json'.")
	logLevelFlag := flagSet.String("log-level", d.LogLevel, "Set the logging level. Options: 'debug', 'info', 'warn', 'error'.")
	workersFlag := flagSet.Int("workers", d.Workers, "Number of concurrent workers for the executor.")
	outputFlag := flagSet.String("output", d.Output, "Report format. Options: 'text', 'json' or 'yaml'.")

	if err := flagSet.Parse(args); err != nil {
		if errors.Is(err, flag.ErrHelp) {
			return nil, true, nil
		}
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}
	slog.Debug("Arguments parsed successfully.")

	path := ""
	if *planFlag != "" {
		path = *planFlag
	} else if *pFlag != "" {
		path = *pFlag
	} else if flagSet.NArg() > 0 {
		path = flagSet.Arg(0)
	}
	slog.Debug("Plan path determined.", "path", path, "demo", *demoFlag)

	if path == "" && !*demoFlag {
		slog.Debug("No plan path provided, printing usage and exiting.")
		flagSet.Usage()
		return nil, true, nil
	}

	logFormat := strings.ToLower(*logFormatFlag)
	if logFormat != "text" && logFormat != "json" {
		return nil, false, &ExitError{Code: 2, Message: "invalid log-format: must be 'text' or 'json'"}
	}

	logLevel := strings.ToLower(*logLevelFlag)
	switch logLevel {
	case "debug", "info", "warn", "error":
		// valid
	default:
		return nil, false, &ExitError{Code: 2, Message: "invalid log-level: must be 'debug', 'info', 'warn', or 'error'"}
	}
	slog.Debug("CLI parameter validation complete.")

	config, err := app.NewConfig(app.Config{
		PlanPath:    path,
		Demo:        *demoFlag,
		SnapshotDir: *snapshotDirFlag,
		LogFormat:   logFormat,
		LogLevel:    logLevel,
		WorkerCount: *workersFlag,
		Output:      strings.ToLower(*outputFlag),
	})

	if err != nil {
		return nil, false, &ExitError{Code: 2, Message: err.Error()}
	}

	slog.Debug("CLI parser finished successfully.", "config", config)
	return config, false, nil
}
