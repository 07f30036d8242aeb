// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package direct implements the "direct" strategy: the plain two-argument
// constructor.
package direct

import (
	"context"
	"fmt"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
)

// Name is the strategy name this module registers.
const Name = "direct"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the strategy with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, registry.StrategyFunc(Construct))
}

// Construct requires exactly a string name and an int age.
func Construct(ctx context.Context, p registry.Params) (*registry.Result, error) {
	name, age, err := NameAndAge(p)
	if err != nil {
		return nil, failure.InvalidParams(Name, "%v", err)
	}

	rec := person.New(name, age)
	ctxlog.FromContext(ctx).Debug("Constructed record directly.", "record", rec.String())
	return registry.NewResult(rec, person.FieldName, person.FieldAge), nil
}

// NameAndAge extracts the exact field values of a full record from p.Fields.
// Both fields must appear exactly once and nothing else may appear.
func NameAndAge(p registry.Params) (string, int, error) {
	var (
		name string
		age  int
		ok   bool
	)
	seen := make(map[string]bool, len(p.Fields))
	for _, f := range p.Fields {
		if seen[f.Name] {
			return "", 0, fmt.Errorf("field %q given more than once", f.Name)
		}
		seen[f.Name] = true

		switch f.Name {
		case person.FieldName:
			if name, ok = f.Value.(string); !ok {
				return "", 0, fmt.Errorf("field %q must be a string, got %T", f.Name, f.Value)
			}
		case person.FieldAge:
			if age, ok = f.Value.(int); !ok {
				return "", 0, fmt.Errorf("field %q must be an int, got %T", f.Name, f.Value)
			}
		default:
			return "", 0, fmt.Errorf("unexpected field %q", f.Name)
		}
	}
	for _, f := range person.Fields {
		if !seen[f] {
			return "", 0, fmt.Errorf("missing field %q", f)
		}
	}
	return name, age, nil
}
