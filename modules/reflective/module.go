// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package reflective implements the two reflection-driven strategies. Both
// look constructors up by signature on every call; nothing is cached.
package reflective

import (
	"context"
	"fmt"
	"reflect"

	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/handle"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
)

const (
	// DefaultName builds through the zero-argument constructor.
	DefaultName = "reflective-default"
	// ParameterizedName builds through the constructor matching the argument types.
	ParameterizedName = "reflective-parameterized"
)

var recordType = reflect.TypeFor[person.Record]()

// constructors is the table reflective lookups search.
var constructors = []handle.Constructor{
	{Fn: person.New, Initializes: []string{person.FieldName, person.FieldAge}},
	{Fn: person.NewEmpty},
}

// Module implements the registry.Module interface for this package.
type Module struct{}

// Register registers both strategies with the registry.
func (m *Module) Register(r *registry.Registry) {
	r.Register(DefaultName, registry.StrategyFunc(ConstructDefault))
	r.Register(ParameterizedName, registry.StrategyFunc(ConstructParameterized))
}

// ConstructDefault calls the zero-argument constructor. No field counts as
// initialized.
func ConstructDefault(ctx context.Context, p registry.Params) (*registry.Result, error) {
	if len(p.Args) > 0 || len(p.Fields) > 0 {
		return nil, failure.InvalidParams(DefaultName, "takes no arguments")
	}
	rec, _, err := construct(nil)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Constructed record reflectively.", "signature", "()", "record", rec.String())
	return registry.NewResult(rec), nil
}

// ConstructParameterized finds the constructor whose parameters match the
// dynamic types of p.Args and calls it.
func ConstructParameterized(ctx context.Context, p registry.Params) (*registry.Result, error) {
	if len(p.Args) == 0 {
		return nil, failure.InvalidParams(ParameterizedName, "args are required")
	}
	if len(p.Fields) > 0 {
		return nil, failure.InvalidParams(ParameterizedName, "field assignments are not supported")
	}
	rec, initializes, err := construct(p.Args)
	if err != nil {
		return nil, err
	}
	ctxlog.FromContext(ctx).Debug("Constructed record reflectively.", "signature", handle.SignatureOf(p.Args...).String(), "record", rec.String())
	return registry.NewResult(rec, initializes...), nil
}

func construct(args []any) (*person.Record, []string, error) {
	sig := handle.SignatureOf(args...)
	fn, c, ok := lookup(sig)
	if !ok {
		return nil, nil, &failure.MemberNotFoundError{Kind: handle.KindConstructor.String(), Owner: recordType.String(), Signature: sig.String()}
	}

	in := make([]reflect.Value, len(args))
	for i, a := range args {
		in[i] = reflect.ValueOf(a)
	}
	out := fn.Call(in)
	rec, ok := out[0].Interface().(*person.Record)
	if !ok || rec == nil {
		return nil, nil, fmt.Errorf("constructor %s returned %v", sig, out[0])
	}
	return rec, c.Initializes, nil
}

func lookup(sig handle.Signature) (reflect.Value, handle.Constructor, bool) {
	for _, c := range constructors {
		fn := reflect.ValueOf(c.Fn)
		ft := fn.Type()
		params := make(handle.Signature, ft.NumIn())
		for i := range params {
			params[i] = ft.In(i)
		}
		if params.Equal(sig) {
			return fn, c, true
		}
	}
	return reflect.Value{}, handle.Constructor{}, false
}
