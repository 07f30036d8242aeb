package app

import (
	"reflect"

	"github.com/specialistvlad/forgego/internal/config"
	"github.com/specialistvlad/forgego/internal/handle"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
)

// DemoPlan builds one record per construction strategy. Its round-trip entry
// stores its snapshot at "zhao-laoliu.snap" relative to the snapshot
// directory.
func DemoPlan() *config.Plan {
	entry := func(strategy, name string, p registry.Params) *config.Entry {
		return &config.Entry{Strategy: strategy, Name: name, Params: p, Origin: "demo"}
	}
	fields := func(name string, age int) []registry.FieldValue {
		return []registry.FieldValue{{Name: person.FieldName, Value: name}, {Name: person.FieldAge, Value: age}}
	}

	return &config.Plan{Entries: []*config.Entry{
		entry("direct", "new", registry.Params{Fields: fields("Zhang San", 18)}),
		entry("reflective-default", "reflect-default", registry.Params{}),
		entry("reflective-parameterized", "reflect-args", registry.Params{Args: []any{"Li Si", 20}}),
		entry("copy", "clone", registry.Params{Source: person.New("Wang Wu", 22)}),
		entry("round-trip", "serialize", registry.Params{Source: person.New("Zhao Laoliu", 6), Location: "zhao-laoliu.snap"}),
		entry("handle-based", "handle", registry.Params{
			Signature: handle.Sig(),
			Fields:    []registry.FieldValue{{Name: person.FieldName, Value: "Zhang San"}},
		}),
		entry("handle-based", "handle-args", registry.Params{
			Signature: handle.Sig(reflect.TypeFor[string](), reflect.TypeFor[int]()),
			Args:      []any{"Li Si", 20},
		}),
		entry("raw-allocate-and-patch", "unsafe", registry.Params{Fields: []registry.FieldValue{{Name: person.FieldName, Value: "Zhang"}}}),
	}}
}
