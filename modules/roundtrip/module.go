// Package roundtrip implements the "round-trip" strategy: the source record
// is published as a snapshot and read back.
package roundtrip

import (
	"context"
	"path/filepath"

	"github.com/specialistvlad/forgego/internal/codec"
	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
)

// Name is the strategy name this module registers.
const Name = "round-trip"

// Module implements the registry.Module interface for this package.
type Module struct {
	// BaseDir anchors relative snapshot locations. Empty means the working
	// directory.
	BaseDir string
}

// Register registers the strategy with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, registry.StrategyFunc(m.Construct))
}

// Construct writes p.Source to p.Location and returns the decoded copy.
// Codec and file errors are returned unchanged.
func (m *Module) Construct(ctx context.Context, p registry.Params) (*registry.Result, error) {
	if p.Source == nil {
		return nil, failure.InvalidParams(Name, "source is required")
	}
	if p.Location == "" {
		return nil, failure.InvalidParams(Name, "location is required")
	}

	path := m.resolve(p.Location)
	if err := codec.WriteSnapshot(ctx, path, p.Source); err != nil {
		return nil, err
	}
	rec, err := codec.ReadSnapshot(ctx, path)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Record survived round trip.", "location", path, "record", rec.String())
	return registry.NewResult(rec, person.Fields...), nil
}

func (m *Module) resolve(location string) string {
	if filepath.IsAbs(location) || m.BaseDir == "" {
		return location
	}
	return filepath.Join(m.BaseDir, location)
}
