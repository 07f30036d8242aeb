// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package handle resolves named members of a struct type (constructors,
// methods, package-level functions, and field setters) into directly
// invokable Handles.
//
// Resolution and invocation are separate steps. Resolve finds the member once
// and the Resolver keeps the result for the life of the process, keyed by
// (kind, name, signature); Invoke then calls the member through reflect
// without searching again.
//
// # Failure modes
//
//   - Resolving a member that does not exist yields *failure.MemberNotFoundError.
//   - Invoking a handle with arguments that disagree with its signature yields
//     *failure.SignatureMismatchError. This is always a caller bug.
//   - Field setters reject values of the wrong type with
//     *failure.TypeMismatchError, both at resolution and at invocation.
//
// # Concurrency
//
// Each cache key owns a write-once slot. When several goroutines resolve the
// same member for the first time, exactly one of them performs the lookup and
// all of them receive the same *Handle.
package handle
