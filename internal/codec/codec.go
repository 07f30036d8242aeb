// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package codec turns a person.Record into a durable, self-describing
// snapshot and back.
//
// A snapshot is a small JSON envelope carrying a kind tag, a format version,
// the cty type of the record body, and the body itself as a msgpack map.
// Because the type travels with the value, a snapshot can be decoded without
// any schema held outside of it. Strings are stored byte for byte; no Unicode
// normalization is applied.
package codec

import (
	"bytes"
	"encoding/json"
	"fmt"
	"io"

	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/vmihailenco/msgpack/v5"
	"github.com/zclconf/go-cty/cty"
	ctyjson "github.com/zclconf/go-cty/cty/json"
)

const (
	// Kind identifies snapshots produced by this package.
	Kind = "forgego.person.Record"
	// Version is the only envelope version this package reads or writes.
	Version = 1

	maxSnapshotSize = 1 << 20
)

// recordType is the cty shape of a record body.
var recordType = cty.Object(map[string]cty.Type{
	person.FieldName: cty.String,
	person.FieldAge:  cty.Number,
})

// body is the msgpack form of a record. Pointers tell a missing field apart
// from a zero value.
type body struct {
	Name *string `msgpack:"name"`
	Age  *int    `msgpack:"age"`
}

type envelope struct {
	Kind    string          `json:"kind"`
	Version int             `json:"version"`
	Type    json.RawMessage `json:"type"`
	Value   []byte          `json:"value"`
}

// Encode produces the snapshot bytes for r.
func Encode(r *person.Record) ([]byte, error) {
	if r == nil {
		return nil, &failure.EncodingError{Err: fmt.Errorf("nil record")}
	}

	typeJSON, err := ctyjson.MarshalType(recordType)
	if err != nil {
		return nil, &failure.EncodingError{Err: err}
	}
	name, age := r.Name(), r.Age()
	packed, err := msgpack.Marshal(body{Name: &name, Age: &age})
	if err != nil {
		return nil, &failure.EncodingError{Err: err}
	}

	out, err := json.Marshal(envelope{
		Kind:    Kind,
		Version: Version,
		Type:    typeJSON,
		Value:   packed,
	})
	if err != nil {
		return nil, &failure.EncodingError{Err: err}
	}
	return out, nil
}

// Decode rebuilds a record from snapshot bytes.
func Decode(b []byte) (*person.Record, error) {
	var env envelope
	dec := json.NewDecoder(bytes.NewReader(b))
	dec.DisallowUnknownFields()
	if err := dec.Decode(&env); err != nil {
		return nil, &failure.DecodingError{Reason: "malformed envelope", Err: err}
	}
	if dec.More() {
		return nil, &failure.DecodingError{Reason: "trailing data after envelope"}
	}

	if env.Kind != Kind {
		return nil, &failure.DecodingError{Reason: fmt.Sprintf("kind %q", env.Kind), Err: failure.ErrUnknownKind}
	}
	if env.Version != Version {
		return nil, &failure.DecodingError{Reason: fmt.Sprintf("unsupported version %d", env.Version)}
	}
	if len(env.Type) == 0 {
		return nil, &failure.DecodingError{Reason: "missing type description"}
	}

	ty, err := ctyjson.UnmarshalType(env.Type)
	if err != nil {
		return nil, &failure.DecodingError{Reason: "invalid type description", Err: err}
	}
	if !ty.Equals(recordType) {
		return nil, &failure.DecodingError{Reason: fmt.Sprintf("type %s", ty.FriendlyName()), Err: failure.ErrUnknownKind}
	}

	rd := bytes.NewReader(env.Value)
	vdec := msgpack.NewDecoder(rd)
	vdec.DisallowUnknownFields(true)
	var bd body
	if err := vdec.Decode(&bd); err != nil {
		return nil, &failure.DecodingError{Reason: "invalid value", Err: err}
	}
	if rd.Len() > 0 {
		return nil, &failure.DecodingError{Reason: "trailing data after value"}
	}
	if bd.Name == nil || bd.Age == nil {
		return nil, &failure.DecodingError{Reason: "value does not fit a record: missing field"}
	}
	return person.New(*bd.Name, *bd.Age), nil
}

// EncodeTo writes the snapshot of r to w. The caller owns w.
func EncodeTo(w io.Writer, r *person.Record) error {
	b, err := Encode(r)
	if err != nil {
		return err
	}
	if _, err := w.Write(b); err != nil {
		return fmt.Errorf("write snapshot: %w", err)
	}
	return nil
}

// DecodeFrom reads one snapshot from rd. The caller owns rd.
func DecodeFrom(rd io.Reader) (*person.Record, error) {
	b, err := io.ReadAll(io.LimitReader(rd, maxSnapshotSize+1))
	if err != nil {
		return nil, fmt.Errorf("read snapshot: %w", err)
	}
	if len(b) > maxSnapshotSize {
		return nil, &failure.DecodingError{Reason: fmt.Sprintf("snapshot exceeds %d bytes", maxSnapshotSize)}
	}
	return Decode(b)
}
