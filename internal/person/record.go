// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package person defines Record, the entity every construction strategy
// produces. Record holds only value fields, so copying the struct copies all
// of its state.
package person

import "fmt"

// Semantic field names, in declaration order.
const (
	FieldName = "name"
	FieldAge  = "age"
)

// Fields lists every semantically required field of a Record.
var Fields = []string{FieldName, FieldAge}

// Record is a person with a name and an age. Fields in their zero value are
// unset unless the construction result that produced the record says
// otherwise.
type Record struct {
	name string
	age  int
}

// New sets both fields at once; no caller ever sees a Record with only one of
// them assigned.
func New(name string, age int) *Record {
	return &Record{name: name, age: age}
}

// NewEmpty returns a Record with both fields unset, for strategies that
// populate fields after allocation.
func NewEmpty() *Record {
	return &Record{}
}

func (r *Record) Name() string { return r.name }

func (r *Record) Age() int { return r.age }

func (r *Record) SetName(name string) { r.name = name }

func (r *Record) SetAge(age int) { r.age = age }

// Clone returns a new Record with the same field values.
func (r *Record) Clone() *Record {
	if r == nil {
		return nil
	}
	c := *r
	return &c
}

// Equal reports structural equality. Two nil records are equal.
func (r *Record) Equal(other *Record) bool {
	if r == nil || other == nil {
		return r == other
	}
	return r.name == other.name && r.age == other.age
}

func (r *Record) String() string {
	if r == nil {
		return "Record(nil)"
	}
	return fmt.Sprintf("Record{name=%s, age=%d}", r.name, r.age)
}

// Greet is the record's hello method.
func (r *Record) Greet() string {
	if r.name == "" {
		return "Hello!"
	}
	return fmt.Sprintf("Hello, I am %s.", r.name)
}

// Describe is a package-level function with no receiver, exposed to handle
// resolution as a static member.
func Describe() string {
	return "person.Record: name (string), age (int)"
}
