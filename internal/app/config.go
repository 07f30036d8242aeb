package app

import (
	"errors"
	"fmt"
)

// Output formats for the run report.
const (
	OutputText = "text"
	OutputJSON = "json"
	OutputYAML = "yaml"
)

// Config holds all the necessary configuration for an App instance to run.
type Config struct {
	PlanPath    string // hcl file or directory
	Demo        bool   // run the built-in demo plan instead
	SnapshotDir string // base for relative round-trip locations

	LogFormat   string
	LogLevel    string
	WorkerCount int
	Output      string
}

func NewConfig(cfg Config) (*Config, error) {
	if cfg.PlanPath == "" && !cfg.Demo {
		return nil, errors.New("PlanPath is a required configuration field unless Demo is set")
	}
	if cfg.PlanPath != "" && cfg.Demo {
		return nil, errors.New("PlanPath and Demo are mutually exclusive")
	}
	if cfg.WorkerCount < 1 {
		return nil, fmt.Errorf("WorkerCount must be at least 1, got %d", cfg.WorkerCount)
	}

	switch cfg.Output {
	case "":
		cfg.Output = OutputText
	case OutputText, OutputJSON, OutputYAML:
	default:
		return nil, fmt.Errorf("unknown Output %q: must be 'text', 'json' or 'yaml'", cfg.Output)
	}

	return &cfg, nil
}
