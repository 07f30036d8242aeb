// Package state defines the interface for recording the mutable execution
// state of plan entries while a plan runs.
//
// Entries follow this lifecycle:
//
//	Pending → Running → Completed (with a result) OR Failed (with an error)
//
// The store is created once per run and discarded afterwards.
package state

import (
	"context"

	"github.com/specialistvlad/forgego/internal/registry"
)

// Status is the execution state of a single plan entry.
type Status int

const (
	Pending Status = iota
	Running
	Completed
	Failed
)

func (s Status) String() string {
	switch s {
	case Pending:
		return "pending"
	case Running:
		return "running"
	case Completed:
		return "completed"
	case Failed:
		return "failed"
	default:
		return "unknown"
	}
}

// Store records per-entry state keyed by entry name. Implementations must be
// safe for concurrent use by different entries.
type Store interface {
	// SetStatus records a lifecycle transition.
	SetStatus(ctx context.Context, entry string, status Status) error
	// GetStatus returns Pending for entries that never transitioned.
	GetStatus(ctx context.Context, entry string) (Status, error)
	// SetResult records the result of a completed entry.
	SetResult(ctx context.Context, entry string, res *registry.Result) error
	// GetResult returns nil if the entry has no result.
	GetResult(ctx context.Context, entry string) (*registry.Result, error)
	// SetError records why an entry failed.
	SetError(ctx context.Context, entry string, entryErr error) error
	// GetError returns nil if the entry did not fail.
	GetError(ctx context.Context, entry string) (error, error)
}
