package app

import (
	"context"
	"fmt"
	"io"
	"log/slog"

	"github.com/google/uuid"
	"github.com/specialistvlad/forgego/internal/config"
	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/registry"
)

// App encapsulates the application's dependencies, configuration, and lifecycle.
type App struct {
	outW     io.Writer
	logger   *slog.Logger
	registry *registry.Registry
	plan     *config.Plan
	config   *Config
	runID    string
}

// NewApp is the constructor for the main application. It returns a fully
// initialized App instance with its own isolated logger and registry. The
// report goes to outW and logs to logW.
//
// A plan that fails to load is a fatal startup error and panics.
func NewApp(outW, logW io.Writer, cfg *Config, loader config.Loader, modules ...registry.Module) *App {
	runID := uuid.NewString()
	logger := newLogger(cfg.LogLevel, cfg.LogFormat, logW).With("run_id", runID)
	ctx := ctxlog.WithLogger(context.Background(), logger)
	logger.Debug("Logger configured successfully.")

	var plan *config.Plan
	if cfg.Demo {
		plan = DemoPlan()
		logger.Debug("Using the built-in demo plan.")
	} else {
		var err error
		plan, err = loader.Load(ctx, cfg.PlanPath)
		if err != nil {
			panic(fmt.Errorf("failed to load plan: %w", err))
		}
		logger.Debug("Plan loaded.", "entries", len(plan.Entries), "names", plan.Names())
	}

	reg := registry.New()
	if len(modules) == 0 {
		modules = coreModules(cfg)
	}
	for _, mod := range modules {
		mod.Register(reg)
	}
	logger.Debug("All strategy modules registered.", "count", len(modules), "strategies", reg.Names())

	return &App{
		outW:     outW,
		logger:   logger,
		registry: reg,
		plan:     plan,
		config:   cfg,
		runID:    runID,
	}
}

// Registry returns the application's registry. This is primarily for testing.
func (a *App) Registry() *registry.Registry {
	return a.registry
}

// Plan returns the plan the app will run.
func (a *App) Plan() *config.Plan {
	return a.plan
}

// RunID identifies this run in logs.
func (a *App) RunID() string {
	return a.runID
}
