// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package handlebased implements the "handle-based" strategy on top of the
// registry's shared, cached handle resolver.
package handlebased

import (
	"context"
	"fmt"
	"reflect"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/handle"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
)

// Name is the strategy name this module registers.
const Name = "handle-based"

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers the strategy with the registry. The strategy resolves
// through r's resolver, so handles are shared with every other user of r.
func (m *Module) Register(r *registry.Registry) {
	r.Register(Name, &strategy{resolver: r.Resolver()})
}

type strategy struct {
	resolver *handle.Resolver[person.Record]
}

// Construct resolves the constructor for p.Signature (or the types of p.Args
// when no signature is given), invokes it with p.Args, then applies p.Fields
// through field-setter handles in order. Resolver errors surface unchanged.
func (s *strategy) Construct(ctx context.Context, p registry.Params) (*registry.Result, error) {
	logger := ctxlog.FromContext(ctx)

	sig := p.Signature
	if sig == nil {
		sig = handle.SignatureOf(p.Args...)
	}

	ctor, err := s.resolver.ResolveConstructor(sig)
	if err != nil {
		return nil, err
	}
	out, err := ctor.Invoke(p.Args...)
	if err != nil {
		return nil, err
	}
	rec, ok := out[0].(*person.Record)
	if !ok || rec == nil {
		return nil, fmt.Errorf("%s returned %T", ctor, out[0])
	}
	initialized := ctor.Initializes()
	logger.Debug("Invoked constructor handle.", "handle", ctor.String())

	for _, f := range p.Fields {
		setter, err := s.resolver.ResolveFieldSetter(f.Name, reflect.TypeOf(f.Value))
		if err != nil {
			return nil, err
		}
		if _, err := setter.Invoke(rec, f.Value); err != nil {
			return nil, err
		}
		initialized = append(initialized, setter.Initializes()...)
		logger.Debug("Invoked setter handle.", "handle", setter.String())
	}

	return registry.NewResult(rec, initialized...), nil
}
