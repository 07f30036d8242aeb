package handle

import (
	"reflect"
	"strings"
)

// Signature is an ordered list of parameter types, receiver excluded.
type Signature []reflect.Type

// Sig builds a Signature from the given types.
func Sig(types ...reflect.Type) Signature {
	return Signature(types)
}

// SignatureOf derives the Signature callers would need to pass args. A nil
// argument yields a nil entry, which only matches nillable parameters.
func SignatureOf(args ...any) Signature {
	sig := make(Signature, len(args))
	for i, a := range args {
		sig[i] = reflect.TypeOf(a)
	}
	return sig
}

// Equal reports whether both signatures list identical types.
func (s Signature) Equal(other Signature) bool {
	if len(s) != len(other) {
		return false
	}
	for i := range s {
		if s[i] != other[i] {
			return false
		}
	}
	return true
}

func (s Signature) String() string {
	parts := make([]string, len(s))
	for i, t := range s {
		if t == nil {
			parts[i] = "nil"
			continue
		}
		parts[i] = t.String()
	}
	return "(" + strings.Join(parts, ", ") + ")"
}

// key is the cache form of a signature. Package paths keep same-named types
// from different packages apart.
func (s Signature) key() string {
	var b strings.Builder
	for i, t := range s {
		if i > 0 {
			b.WriteByte(',')
		}
		if t == nil {
			b.WriteString("nil")
			continue
		}
		b.WriteString(t.PkgPath())
		b.WriteByte(':')
		b.WriteString(t.String())
	}
	return b.String()
}

// accepts reports whether args can be passed to parameters of this signature.
func (s Signature) accepts(args []any) bool {
	if len(args) != len(s) {
		return false
	}
	for i, a := range args {
		if !assignable(a, s[i]) {
			return false
		}
	}
	return true
}

func assignable(arg any, param reflect.Type) bool {
	if param == nil {
		return arg == nil
	}
	if arg == nil {
		switch param.Kind() {
		case reflect.Interface, reflect.Pointer, reflect.Map, reflect.Slice, reflect.Func, reflect.Chan:
			return true
		}
		return false
	}
	return reflect.TypeOf(arg).AssignableTo(param)
}

// values converts args for reflect.Value.Call. Callers check accepts first.
func (s Signature) values(args []any) []reflect.Value {
	out := make([]reflect.Value, len(args))
	for i, a := range args {
		if a == nil {
			out[i] = reflect.Zero(s[i])
			continue
		}
		out[i] = reflect.ValueOf(a)
	}
	return out
}
