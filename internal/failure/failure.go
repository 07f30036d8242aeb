// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package failure holds the typed errors shared by the construction
// components. Every error here is recoverable: callers inspect it with
// errors.As and either pick another strategy or fix their input.
package failure

import (
	"errors"
	"fmt"
)

var (
	// ErrUnknownStrategy is wrapped by ConstructionError when no strategy is
	// registered under the requested name.
	ErrUnknownStrategy = errors.New("unknown construction strategy")
	// ErrInvalidParams is wrapped by ConstructionError when the parameters do
	// not satisfy a strategy's precondition.
	ErrInvalidParams = errors.New("invalid construction parameters")
	// ErrUnknownKind is wrapped by DecodingError when a snapshot describes a
	// type the codec does not recognize.
	ErrUnknownKind = errors.New("unrecognized snapshot kind")
)

// MemberNotFoundError reports that no constructor, method, or field matches a
// resolution request.
type MemberNotFoundError struct {
	Kind      string
	Owner     string
	Name      string
	Signature string
}

func (e *MemberNotFoundError) Error() string {
	if e.Name == "" {
		return fmt.Sprintf("%s: no %s matching %s", e.Owner, e.Kind, e.Signature)
	}
	if e.Signature == "" {
		return fmt.Sprintf("%s: no %s named %q", e.Owner, e.Kind, e.Name)
	}
	return fmt.Sprintf("%s: no %s named %q matching %s", e.Owner, e.Kind, e.Name, e.Signature)
}

// SignatureMismatchError reports a call whose arguments disagree with the
// signature a handle was resolved with. It is a caller bug, never an
// environment fault.
type SignatureMismatchError struct {
	Member string
	Want   string
	Got    string
}

func (e *SignatureMismatchError) Error() string {
	return fmt.Sprintf("signature mismatch calling %s: want %s, got %s", e.Member, e.Want, e.Got)
}

// TypeMismatchError reports a value whose type differs from a field's declared
// type.
type TypeMismatchError struct {
	Field string
	Want  string
	Got   string
}

func (e *TypeMismatchError) Error() string {
	return fmt.Sprintf("field %q: declared type %s, got %s", e.Field, e.Want, e.Got)
}

// UnknownFieldError reports a field name the type does not declare.
type UnknownFieldError struct {
	Type  string
	Field string
}

func (e *UnknownFieldError) Error() string {
	return fmt.Sprintf("%s has no field %q", e.Type, e.Field)
}

// EncodingError wraps a failure to represent a record as a snapshot.
type EncodingError struct {
	Err error
}

func (e *EncodingError) Error() string {
	return fmt.Sprintf("encode snapshot: %v", e.Err)
}

func (e *EncodingError) Unwrap() error { return e.Err }

// DecodingError wraps a failure to rebuild a record from a snapshot.
type DecodingError struct {
	Reason string
	Err    error
}

func (e *DecodingError) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("decode snapshot: %s", e.Reason)
	}
	return fmt.Sprintf("decode snapshot: %s: %v", e.Reason, e.Err)
}

func (e *DecodingError) Unwrap() error { return e.Err }

// ConstructionError is what registry callers receive. It names the strategy
// and unwraps to the component error unchanged.
type ConstructionError struct {
	Strategy string
	Err      error
}

func (e *ConstructionError) Error() string {
	return fmt.Sprintf("construct %q: %v", e.Strategy, e.Err)
}

func (e *ConstructionError) Unwrap() error { return e.Err }

// InvalidParams builds a ConstructionError for a failed precondition.
func InvalidParams(strategy, format string, args ...any) *ConstructionError {
	return &ConstructionError{
		Strategy: strategy,
		Err:      fmt.Errorf("%w: %s", ErrInvalidParams, fmt.Sprintf(format, args...)),
	}
}
