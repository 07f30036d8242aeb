// Package executor runs construction plans on a bounded pool of workers.
package executor

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/specialistvlad/forgego/internal/config"
	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/specialistvlad/forgego/internal/state"
	"golang.org/x/sync/errgroup"
)

// Constructor is the part of the registry the executor needs.
type Constructor interface {
	Construct(ctx context.Context, strategy string, p registry.Params) (*registry.Result, error)
}

// Outcome is the result of running one plan entry. Exactly one of Result
// and Err is set.
type Outcome struct {
	Entry    *config.Entry
	Result   *registry.Result
	Err      error
	Duration time.Duration
}

// Executor runs every entry of a plan; one failing entry never stops the
// others.
type Executor struct {
	constructor Constructor
	store       state.Store
	workerCount int
}

// New creates an executor. workerCount below one means one worker.
func New(c Constructor, store state.Store, workerCount int) *Executor {
	if workerCount < 1 {
		workerCount = 1
	}
	return &Executor{constructor: c, store: store, workerCount: workerCount}
}

// Run executes the plan and returns one outcome per entry, in plan order.
// The returned error joins every entry failure; it is nil when all entries
// succeeded. Entries not yet started when ctx is cancelled fail with the
// context's error.
func (e *Executor) Run(ctx context.Context, plan *config.Plan) ([]Outcome, error) {
	logger := ctxlog.FromContext(ctx)

	outcomes := make([]Outcome, len(plan.Entries))
	for i, entry := range plan.Entries {
		outcomes[i].Entry = entry
		if err := e.store.SetStatus(ctx, entry.Name, state.Pending); err != nil {
			return nil, fmt.Errorf("failed to initialise state for %s: %w", entry, err)
		}
	}

	workers := min(e.workerCount, len(plan.Entries))
	logger.Debug("Executor starting run.", "entries", len(plan.Entries), "workers", workers)

	readyChan := make(chan int)
	g := new(errgroup.Group)
	for id := 0; id < workers; id++ {
		g.Go(func() error {
			return e.worker(ctx, readyChan, outcomes, id)
		})
	}
	for i := range plan.Entries {
		readyChan <- i
	}
	close(readyChan)
	interrupted := g.Wait()

	var errs []error
	if interrupted != nil {
		logger.Warn("Run interrupted, remaining entries failed.", "error", interrupted)
		errs = append(errs, fmt.Errorf("run interrupted: %w", interrupted))
	}
	for _, o := range outcomes {
		if o.Err != nil {
			errs = append(errs, fmt.Errorf("%s: %w", o.Entry, o.Err))
		}
	}
	logger.Debug("Executor finished run.", "entries", len(outcomes), "failed", len(errs))
	return outcomes, errors.Join(errs...)
}
