// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
package registry

import (
	"context"
	"errors"
	"fmt"
	"sort"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/handle"
	"github.com/specialistvlad/forgego/internal/person"
)

// Strategy is one named way of producing a person.Record.
type Strategy interface {
	Construct(ctx context.Context, p Params) (*Result, error)
}

// StrategyFunc adapts a function to the Strategy interface.
type StrategyFunc func(ctx context.Context, p Params) (*Result, error)

func (f StrategyFunc) Construct(ctx context.Context, p Params) (*Result, error) {
	return f(ctx, p)
}

// Module is the interface that all strategy modules implement to be registered.
type Module interface {
	Register(r *Registry)
}

// Registry holds the registered strategies for a single application instance.
type Registry struct {
	strategies map[string]Strategy
	resolver   *handle.Resolver[person.Record]
}

// New creates an empty Registry whose resolver knows person.Record's
// constructors and static functions.
func New() *Registry {
	res := handle.NewResolver[person.Record]()
	res.RegisterConstructor(handle.Constructor{Fn: person.New, Initializes: []string{person.FieldName, person.FieldAge}})
	res.RegisterConstructor(handle.Constructor{Fn: person.NewEmpty})
	res.RegisterStatic("Describe", person.Describe)

	return &Registry{
		strategies: make(map[string]Strategy),
		resolver:   res,
	}
}

// Register adds a strategy under name. Registering the same name twice is a
// programming error and panics.
func (r *Registry) Register(name string, s Strategy) {
	if _, exists := r.strategies[name]; exists {
		panic(fmt.Sprintf("strategy with name '%s' already registered", name))
	}
	if s == nil {
		panic(fmt.Sprintf("strategy '%s' is nil", name))
	}
	r.strategies[name] = s
}

// Resolver returns the shared handle resolver for person.Record.
func (r *Registry) Resolver() *handle.Resolver[person.Record] {
	return r.resolver
}

// Names lists the registered strategies in lexical order.
func (r *Registry) Names() []string {
	names := make([]string, 0, len(r.strategies))
	for name := range r.strategies {
		names = append(names, name)
	}
	sort.Strings(names)
	return names
}

// Construct runs the named strategy. Every failure is a
// *failure.ConstructionError that unwraps to the component's own error.
func (r *Registry) Construct(ctx context.Context, name string, p Params) (*Result, error) {
	logger := ctxlog.FromContext(ctx).With("strategy", name)

	s, ok := r.strategies[name]
	if !ok {
		logger.Debug("Unknown strategy requested.", "known", r.Names())
		return nil, &failure.ConstructionError{Strategy: name, Err: failure.ErrUnknownStrategy}
	}

	res, err := s.Construct(ctx, p)
	if err != nil {
		logger.Debug("Strategy failed.", "error", err)
		var ce *failure.ConstructionError
		if errors.As(err, &ce) {
			return nil, err
		}
		return nil, &failure.ConstructionError{Strategy: name, Err: err}
	}
	if res == nil || res.Record == nil {
		return nil, &failure.ConstructionError{Strategy: name, Err: errors.New("strategy returned no record")}
	}

	res.Strategy = name
	logger.Debug("Strategy succeeded.", "record", res.Record.String(), "initialized", res.Initialized, "complete", res.Complete())
	return res, nil
}
