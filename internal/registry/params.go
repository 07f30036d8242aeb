package registry

import (
	"slices"

	"github.com/specialistvlad/forgego/internal/handle"
	"github.com/specialistvlad/forgego/internal/person"
)

// FieldValue is one (field name, value) pair.
type FieldValue struct {
	Name  string
	Value any
}

// Params carries the inputs of every strategy; each strategy reads only the
// parts its contract names.
type Params struct {
	// Fields are ordered field assignments (direct, handle-based setters,
	// raw-allocate-and-patch).
	Fields []FieldValue
	// Args are positional constructor arguments (reflective-parameterized,
	// handle-based).
	Args []any
	// Signature selects a constructor handle (handle-based).
	Signature handle.Signature
	// Source is the record to copy or round-trip.
	Source *person.Record
	// Location is where round-trip stores its snapshot.
	Location string
}

// Field returns the value of the first assignment to name.
func (p Params) Field(name string) (any, bool) {
	for _, f := range p.Fields {
		if f.Name == name {
			return f.Value, true
		}
	}
	return nil, false
}

// Result is a constructed record plus an account of which of its fields the
// strategy actually established.
type Result struct {
	Record      *person.Record
	Strategy    string
	Initialized []string
}

// NewResult builds a Result, listing initialized fields once each in record
// field order.
func NewResult(rec *person.Record, initialized ...string) *Result {
	fields := make([]string, 0, len(person.Fields))
	for _, f := range person.Fields {
		if slices.Contains(initialized, f) {
			fields = append(fields, f)
		}
	}
	return &Result{Record: rec, Initialized: fields}
}

// IsSet reports whether the strategy established field.
func (r *Result) IsSet(field string) bool {
	return slices.Contains(r.Initialized, field)
}

// Unset lists the record fields the strategy left in their default state.
func (r *Result) Unset() []string {
	var unset []string
	for _, f := range person.Fields {
		if !r.IsSet(f) {
			unset = append(unset, f)
		}
	}
	return unset
}

// Complete reports whether every record field was established.
func (r *Result) Complete() bool {
	return len(r.Unset()) == 0
}
