// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package registry provides the construction facade.
//
// The Registry maps strategy names (e.g., "direct", "round-trip") to the Go
// code that implements them. Strategies are contributed by modules, each of
// which registers itself at startup, the same way every caller sees one
// uniform surface: Construct(ctx, name, params) returns a Result or a
// *failure.ConstructionError.
//
// A Result always states which fields its strategy actually established.
// Strategies that bypass constructors (raw allocation in particular) report
// partial initialization instead of implying that the record is complete.
//
// The registry also owns the process-wide handle.Resolver for person.Record,
// so every strategy that resolves members shares one cache.
package registry
