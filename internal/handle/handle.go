package handle

import (
	"fmt"
	"reflect"
	"unsafe"

	"github.com/specialistvlad/forgego/internal/failure"
)

// Kind classifies what a Handle invokes.
type Kind int

const (
	KindConstructor Kind = iota
	KindMethod
	KindStatic
	KindFieldSetter
)

func (k Kind) String() string {
	switch k {
	case KindConstructor:
		return "constructor"
	case KindMethod:
		return "method"
	case KindStatic:
		return "static function"
	case KindFieldSetter:
		return "field"
	default:
		return fmt.Sprintf("Kind(%d)", int(k))
	}
}

var errorType = reflect.TypeFor[error]()

// Handle is a resolved member. Invoking it never repeats the lookup that
// produced it.
type Handle struct {
	kind     Kind
	owner    reflect.Type // the struct type T
	name     string
	sig      Signature // as requested by the caller
	declared Signature // as the member declares it

	fn          reflect.Value
	field       reflect.StructField
	initializes []string
}

func (h *Handle) Kind() Kind { return h.kind }

func (h *Handle) Name() string { return h.name }

// Signature is the signature the handle was resolved with.
func (h *Handle) Signature() Signature { return h.sig }

// Initializes names the fields a constructor handle establishes, or the single
// field a setter handle writes.
func (h *Handle) Initializes() []string {
	return append([]string(nil), h.initializes...)
}

func (h *Handle) String() string {
	if h.name == "" {
		return fmt.Sprintf("%s %s%s", h.kind, h.owner, h.sig)
	}
	return fmt.Sprintf("%s %s.%s%s", h.kind, h.owner, h.name, h.sig)
}

// Invoke runs the member. Method and field-setter handles take a *T receiver
// as their first argument; a setter then takes exactly one value.
//
// Arguments that disagree with the resolved signature fail with
// *failure.SignatureMismatchError; a setter value of the wrong type fails with
// *failure.TypeMismatchError. A panic inside the member is returned as an
// ordinary error.
func (h *Handle) Invoke(args ...any) (out []any, err error) {
	switch h.kind {
	case KindFieldSetter:
		return nil, h.set(args)
	case KindMethod:
		if len(args) == 0 || !h.validReceiver(args[0]) {
			return nil, h.mismatch(args, true)
		}
	}

	params := args
	if h.kind == KindMethod {
		params = args[1:]
	}
	if !h.sig.accepts(params) || !h.sig.Equal(h.declared) {
		return nil, h.mismatch(args, h.kind == KindMethod)
	}

	callArgs := h.sig.values(params)
	if h.kind == KindMethod {
		callArgs = append([]reflect.Value{reflect.ValueOf(args[0])}, callArgs...)
	}

	defer func() {
		if p := recover(); p != nil {
			out, err = nil, fmt.Errorf("invoke %s: panic: %v", h, p)
		}
	}()
	results := h.fn.Call(callArgs)

	out = make([]any, 0, len(results))
	for i, r := range results {
		if i == len(results)-1 && r.Type() == errorType {
			if !r.IsNil() {
				return nil, fmt.Errorf("invoke %s: %w", h, r.Interface().(error))
			}
			continue
		}
		out = append(out, r.Interface())
	}
	return out, nil
}

func (h *Handle) set(args []any) error {
	if len(args) != 2 || !h.validReceiver(args[0]) {
		return h.mismatch(args, true)
	}
	value := args[1]
	if value == nil || reflect.TypeOf(value) != h.field.Type {
		got := "nil"
		if value != nil {
			got = reflect.TypeOf(value).String()
		}
		return &failure.TypeMismatchError{Field: h.name, Want: h.field.Type.String(), Got: got}
	}

	target := reflect.ValueOf(args[0]).Elem().FieldByIndex(h.field.Index)
	// Unexported fields are not settable through reflect; write through the
	// field's address instead.
	reflect.NewAt(h.field.Type, unsafe.Pointer(target.UnsafeAddr())).Elem().Set(reflect.ValueOf(value))
	return nil
}

func (h *Handle) validReceiver(arg any) bool {
	rv := reflect.ValueOf(arg)
	return arg != nil && rv.Type() == reflect.PointerTo(h.owner) && !rv.IsNil()
}

func (h *Handle) mismatch(args []any, withReceiver bool) *failure.SignatureMismatchError {
	want := h.declared.String()
	if withReceiver {
		want = fmt.Sprintf("(*%s) %s", h.owner, want)
	}
	return &failure.SignatureMismatchError{
		Member: h.String(),
		Want:   want,
		Got:    SignatureOf(args...).String(),
	}
}
