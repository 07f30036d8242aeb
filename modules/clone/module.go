// Package clone implements the "copy" strategy.
package clone

import (
	"context"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
)

// Name is the strategy name this module registers.
const Name = "copy"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the strategy with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, registry.StrategyFunc(Construct))
}

// Construct returns a field-by-field copy of p.Source.
func Construct(ctx context.Context, p registry.Params) (*registry.Result, error) {
	if p.Source == nil {
		return nil, failure.InvalidParams(Name, "source is required")
	}
	rec := p.Source.Clone()
	ctxlog.FromContext(ctx).Debug("Copied record.", "record", rec.String())
	return registry.NewResult(rec, person.Fields...), nil
}
