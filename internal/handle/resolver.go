package handle

import (
	"fmt"
	"reflect"
	"sync"
	"sync/atomic"

	"github.com/specialistvlad/forgego/internal/failure"
)

// Constructor registers a function that builds a *T.
type Constructor struct {
	Fn any
	// Initializes names the fields the constructor establishes.
	Initializes []string
}

type constructorEntry struct {
	fn          reflect.Value
	params      Signature
	initializes []string
}

type cacheKey struct {
	kind Kind
	name string
	sig  string
}

// slot is written exactly once; every caller asking for the same key gets
// the same handle or the same error.
type slot struct {
	once sync.Once
	h    *Handle
	err  error
}

// Resolver resolves members of T into Handles and caches them for the life
// of the process. Register members before sharing the resolver; resolution
// and invocation are safe for concurrent use.
type Resolver[T any] struct {
	typ     reflect.Type
	ctors   []constructorEntry
	statics map[string]reflect.Value

	cache   sync.Map // cacheKey -> *slot
	lookups atomic.Int64
}

// NewResolver creates a resolver for the struct type T.
func NewResolver[T any]() *Resolver[T] {
	typ := reflect.TypeFor[T]()
	if typ.Kind() != reflect.Struct {
		panic(fmt.Sprintf("handle: resolver target must be a struct, got %s", typ))
	}
	return &Resolver[T]{typ: typ, statics: make(map[string]reflect.Value)}
}

// RegisterConstructor adds a constructor. It panics when c.Fn is not a
// function returning *T or when its parameter list is already registered.
func (r *Resolver[T]) RegisterConstructor(c Constructor) {
	fn := reflect.ValueOf(c.Fn)
	if fn.Kind() != reflect.Func {
		panic(fmt.Sprintf("handle: constructor for %s must be a function, got %T", r.typ, c.Fn))
	}
	ft := fn.Type()
	if ft.NumOut() != 1 || ft.Out(0) != reflect.PointerTo(r.typ) || ft.IsVariadic() {
		panic(fmt.Sprintf("handle: constructor %s must return *%s", ft, r.typ))
	}
	params := make(Signature, ft.NumIn())
	for i := range params {
		params[i] = ft.In(i)
	}
	for _, existing := range r.ctors {
		if existing.params.Equal(params) {
			panic(fmt.Sprintf("handle: constructor %s%s already registered", r.typ, params))
		}
	}
	r.ctors = append(r.ctors, constructorEntry{fn: fn, params: params, initializes: append([]string(nil), c.Initializes...)})
}

// RegisterStatic adds a package-level function resolvable by name.
func (r *Resolver[T]) RegisterStatic(name string, fn any) {
	v := reflect.ValueOf(fn)
	if v.Kind() != reflect.Func {
		panic(fmt.Sprintf("handle: static %q must be a function, got %T", name, fn))
	}
	if _, exists := r.statics[name]; exists {
		panic(fmt.Sprintf("handle: static %q already registered", name))
	}
	r.statics[name] = v
}

// Lookups reports how many resolutions actually searched T's members, as
// opposed to being served from the cache.
func (r *Resolver[T]) Lookups() int64 {
	return r.lookups.Load()
}

// ResolveConstructor returns the constructor whose parameters are exactly sig.
func (r *Resolver[T]) ResolveConstructor(sig Signature) (*Handle, error) {
	return r.cached(cacheKey{kind: KindConstructor, sig: sig.key()}, func() (*Handle, error) {
		for _, c := range r.ctors {
			if c.params.Equal(sig) {
				return &Handle{
					kind:        KindConstructor,
					owner:       r.typ,
					sig:         sig,
					declared:    c.params,
					fn:          c.fn,
					initializes: c.initializes,
				}, nil
			}
		}
		return nil, &failure.MemberNotFoundError{Kind: KindConstructor.String(), Owner: r.typ.String(), Signature: sig.String()}
	})
}

// ResolveMethod finds the exported method name on *T. The handle remembers
// sig; if sig does not describe the method, invoking the handle fails with a
// signature mismatch.
func (r *Resolver[T]) ResolveMethod(name string, sig Signature) (*Handle, error) {
	return r.cached(cacheKey{kind: KindMethod, name: name, sig: sig.key()}, func() (*Handle, error) {
		m, ok := reflect.PointerTo(r.typ).MethodByName(name)
		if !ok {
			return nil, &failure.MemberNotFoundError{Kind: KindMethod.String(), Owner: r.typ.String(), Name: name}
		}
		// In(0) is the receiver.
		declared := make(Signature, m.Type.NumIn()-1)
		for i := range declared {
			declared[i] = m.Type.In(i + 1)
		}
		return &Handle{kind: KindMethod, owner: r.typ, name: name, sig: sig, declared: declared, fn: m.Func}, nil
	})
}

// ResolveStatic finds a registered package-level function by name.
func (r *Resolver[T]) ResolveStatic(name string, sig Signature) (*Handle, error) {
	return r.cached(cacheKey{kind: KindStatic, name: name, sig: sig.key()}, func() (*Handle, error) {
		fn, ok := r.statics[name]
		if !ok {
			return nil, &failure.MemberNotFoundError{Kind: KindStatic.String(), Owner: r.typ.String(), Name: name}
		}
		declared := make(Signature, fn.Type().NumIn())
		for i := range declared {
			declared[i] = fn.Type().In(i)
		}
		return &Handle{kind: KindStatic, owner: r.typ, name: name, sig: sig, declared: declared, fn: fn}, nil
	})
}

// ResolveFieldSetter returns a handle that writes field name of a *T, whether
// or not the field is exported. typ must be the field's declared type. An
// unknown name fails with *failure.UnknownFieldError, as it does in rawalloc.
func (r *Resolver[T]) ResolveFieldSetter(name string, typ reflect.Type) (*Handle, error) {
	sig := Sig(typ)
	return r.cached(cacheKey{kind: KindFieldSetter, name: name, sig: sig.key()}, func() (*Handle, error) {
		f, ok := r.typ.FieldByName(name)
		if !ok || len(f.Index) != 1 {
			return nil, &failure.UnknownFieldError{Type: r.typ.String(), Field: name}
		}
		if typ != f.Type {
			return nil, &failure.TypeMismatchError{Field: name, Want: f.Type.String(), Got: typeName(typ)}
		}
		return &Handle{
			kind:        KindFieldSetter,
			owner:       r.typ,
			name:        name,
			sig:         sig,
			declared:    sig,
			field:       f,
			initializes: []string{name},
		}, nil
	})
}

func (r *Resolver[T]) cached(key cacheKey, resolve func() (*Handle, error)) (*Handle, error) {
	v, _ := r.cache.LoadOrStore(key, &slot{})
	s := v.(*slot)
	s.once.Do(func() {
		r.lookups.Add(1)
		s.h, s.err = resolve()
	})
	return s.h, s.err
}

func typeName(t reflect.Type) string {
	if t == nil {
		return "nil"
	}
	return t.String()
}
