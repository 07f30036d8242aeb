package executor

import (
	"context"
	"time"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/specialistvlad/forgego/internal/state"
)

// worker is the processing loop for a single concurrent worker. Each index
// received is owned by this worker alone, so writing outcomes[i] needs no lock.
// It drains readyChan even after ctx is cancelled, failing the remaining
// entries, and then returns the cancellation cause. Entry failures are not
// worker errors.
func (e *Executor) worker(ctx context.Context, readyChan <-chan int, outcomes []Outcome, workerID int) error {
	logger := ctxlog.FromContext(ctx)
	logger.Debug("Worker started.", "workerID", workerID)

	var interrupted error
	for i := range readyChan {
		entry := outcomes[i].Entry
		entryCtx, workerLogger := ctxlog.With(ctx, "workerID", workerID, "entry", entry.Name, "strategy", entry.Strategy)

		if err := ctx.Err(); err != nil {
			interrupted = err
			outcomes[i].Err = err
			e.record(ctx, entry.Name, state.Failed, nil, err)
			continue
		}

		workerLogger.Info("Constructing entry.")
		e.record(ctx, entry.Name, state.Running, nil, nil)

		start := time.Now()
		res, err := e.constructor.Construct(entryCtx, entry.Strategy, entry.Params)
		outcomes[i].Duration = time.Since(start)

		if err != nil {
			workerLogger.Error("Entry failed.", "error", err)
			outcomes[i].Err = err
			e.record(ctx, entry.Name, state.Failed, nil, err)
			continue
		}

		workerLogger.Info("Entry constructed.", "record", res.Record.String(), "complete", res.Complete(), "duration", outcomes[i].Duration)
		outcomes[i].Result = res
		e.record(ctx, entry.Name, state.Completed, res, nil)
	}
	logger.Debug("Worker finished.", "workerID", workerID)
	return interrupted
}

// record mirrors an entry transition into the state store. Store failures
// are logged, never fatal; readers fall back to the outcome slice.
func (e *Executor) record(ctx context.Context, name string, status state.Status, res *registry.Result, err error) {
	logger := ctxlog.FromContext(ctx)
	if serr := e.store.SetStatus(ctx, name, status); serr != nil {
		logger.Warn("Failed to record entry status.", "entry", name, "error", serr)
	}
	if res != nil {
		if serr := e.store.SetResult(ctx, name, res); serr != nil {
			logger.Warn("Failed to record entry result.", "entry", name, "error", serr)
		}
	}
	if err != nil {
		if serr := e.store.SetError(ctx, name, err); serr != nil {
			logger.Warn("Failed to record entry error.", "entry", name, "error", serr)
		}
	}
}
