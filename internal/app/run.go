package app

import (
	"context"
	"fmt"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/executor"
	"github.com/specialistvlad/forgego/internal/inmemorystore"
	"github.com/specialistvlad/forgego/internal/state"
)

// Run executes the plan and writes the report. Entry failures do not stop the
// run; they are all reported and then returned together.
func (a *App) Run(ctx context.Context) error {
	ctx = ctxlog.WithLogger(ctx, a.logger)
	a.logger.Debug("App.Run method started.")

	if len(a.plan.Entries) == 0 {
		a.logger.Warn("Plan has no entries, nothing to construct.")
		return a.writeReport(ctx, nil, inmemorystore.New())
	}

	a.logger.Info("Starting construction run.", "entries", len(a.plan.Entries), "workers", a.config.WorkerCount)
	store := inmemorystore.New()
	outcomes, runErr := executor.New(a.registry, store, a.config.WorkerCount).Run(ctx, a.plan)
	counts := store.Counts()
	a.logger.Info("Construction run finished.", "completed", counts[state.Completed], "failed", counts[state.Failed])

	if err := a.writeReport(ctx, outcomes, store); err != nil {
		return fmt.Errorf("failed to write report: %w", err)
	}
	if runErr != nil {
		return fmt.Errorf("construction failed: %w", runErr)
	}

	a.logger.Debug("App.Run method finished.")
	return nil
}
