// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package rawpatch implements the "raw-allocate-and-patch" strategy: storage
// is allocated without a constructor and the listed fields are written at
// their offsets. Fields not listed stay unset and are reported as such.
package rawpatch

import (
	"context"
	"fmt"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/rawalloc"
	"github.com/specialistvlad/forgego/internal/registry"
)

// Name is the strategy name this module registers.
const Name = "raw-allocate-and-patch"

type patcher func(rec *person.Record, v any) error

var (
	layout   = rawalloc.Layout[person.Record]()
	patchers = map[string]patcher{
		person.FieldName: patcherFor[string](person.FieldName),
		person.FieldAge:  patcherFor[int](person.FieldAge),
	}
)

// Every field of the layout must be patchable, or a record could be left
// with a field no plan can reach.
func init() {
	for _, f := range layout.Fields() {
		if _, ok := patchers[f.Name]; !ok {
			panic(fmt.Sprintf("rawpatch: no patcher for field %q of type %s", f.Name, f.Type))
		}
	}
}

// patcherFor binds a typed offset once. A failure here means the record's
// layout changed without this table following it.
func patcherFor[F any](field string) patcher {
	off, err := rawalloc.FieldOffset[person.Record, F](field)
	if err != nil {
		panic(fmt.Sprintf("rawpatch: %v", err))
	}
	return func(rec *person.Record, v any) error {
		typed, ok := v.(F)
		if !ok {
			return &failure.TypeMismatchError{Field: field, Want: fmt.Sprintf("%T", *new(F)), Got: fmt.Sprintf("%T", v)}
		}
		rawalloc.WriteAt(rec, off, typed)
		return nil
	}
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the strategy with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, registry.StrategyFunc(Construct))
}

// Construct writes p.Fields in order into freshly allocated storage. A name
// the layout does not know fails with *failure.UnknownFieldError.
func Construct(ctx context.Context, p registry.Params) (*registry.Result, error) {
	rec := rawalloc.AllocateUninitialized[person.Record]()

	written := make([]string, 0, len(p.Fields))
	for _, f := range p.Fields {
		if _, err := layout.Field(f.Name); err != nil {
			return nil, err
		}
		patch := patchers[f.Name]
		if err := patch(rec, f.Value); err != nil {
			return nil, err
		}
		written = append(written, f.Name)
	}

	res := registry.NewResult(rec, written...)
	ctxlog.FromContext(ctx).Debug("Patched raw record.", "record", rec.String(), "initialized", res.Initialized, "unset", res.Unset())
	return res, nil
}
