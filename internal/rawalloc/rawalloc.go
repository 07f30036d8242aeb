// SPDX-License-Identifier: MIT
// Copyright (c) 2025 Vladyslav Kazantsev
//
// Package rawalloc allocates struct storage without running any constructor
// and writes individual fields by offset, bypassing setters and validation.
//
// This is the least safe way to build a value and it is fenced accordingly:
//
//   - An Offset is branded with both the struct type T and the field type F,
//     so the compiler rejects using an offset of one type on another, or
//     writing a value of the wrong type.
//   - Offsets can only be obtained from FieldOffset, which checks the field
//     name and type against T's layout. WriteAt panics on a zero Offset.
//   - An instance from AllocateUninitialized satisfies none of T's
//     invariants. Callers must track which fields they have written; nothing
//     in the instance records it.
package rawalloc

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/specialistvlad/forgego/internal/failure"
)

// FieldInfo describes one field of T's memory layout.
type FieldInfo struct {
	Name   string
	Type   reflect.Type
	Offset uintptr
}

// LayoutOf is the field layout of the struct type T.
type LayoutOf[T any] struct {
	typ    reflect.Type
	fields []FieldInfo
}

// Layout derives T's layout. It panics if T is not a struct.
func Layout[T any]() *LayoutOf[T] {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("rawalloc: %s is not a struct", typ))
	}
	fields := make([]FieldInfo, typ.NumField())
	for i := range fields {
		f := typ.Field(i)
		fields[i] = FieldInfo{Name: f.Name, Type: f.Type, Offset: f.Offset}
	}
	return &LayoutOf[T]{typ: typ, fields: fields}
}

// Field looks a field up by name.
func (l *LayoutOf[T]) Field(name string) (FieldInfo, error) {
	for _, f := range l.fields {
		if f.Name == name {
			return f, nil
		}
	}
	return FieldInfo{}, &failure.UnknownFieldError{Type: l.typ.String(), Field: name}
}

// Fields returns every field in declaration order.
func (l *LayoutOf[T]) Fields() []FieldInfo {
	return append([]FieldInfo(nil), l.fields...)
}

// Offset locates a field of type F inside a T.
type Offset[T, F any] struct {
	name  string
	off   uintptr
	valid bool
}

func (o Offset[T, F]) Field() string { return o.name }

// FieldOffset returns the typed offset of field name. It fails with
// *failure.UnknownFieldError when T has no such field and with
// *failure.TypeMismatchError when the field is not of type F.
func FieldOffset[T, F any](name string) (Offset[T, F], error) {
	info, err := Layout[T]().Field(name)
	if err != nil {
		return Offset[T, F]{}, err
	}
	if want := reflect.TypeFor[F](); info.Type != want {
		return Offset[T, F]{}, &failure.TypeMismatchError{Field: name, Want: info.Type.String(), Got: want.String()}
	}
	return Offset[T, F]{name: name, off: info.Offset, valid: true}, nil
}

// AllocateUninitialized returns storage for a T without calling any
// constructor. The field values carry no meaning for the caller.
func AllocateUninitialized[T any]() *T {
	return new(T)
}

// WriteAt stores v into inst at off. No setter runs and nothing is validated.
// inst must be non-nil and off must come from FieldOffset.
func WriteAt[T, F any](inst *T, off Offset[T, F], v F) {
	if inst == nil {
		panic("rawalloc: WriteAt on nil instance")
	}
	if !off.valid {
		panic("rawalloc: WriteAt with an offset not obtained from FieldOffset")
	}
	*(*F)(unsafe.Add(unsafe.Pointer(inst), off.off)) = v
}
