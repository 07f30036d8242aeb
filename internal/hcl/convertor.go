package hcl

import (
	"fmt"

	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/zclconf/go-cty/cty"
	"github.com/zclconf/go-cty/cty/convert"
	"github.com/zclconf/go-cty/cty/gocty"
)

// sourceType is the shape a `source` object is converted to.
var sourceType = cty.Object(map[string]cty.Type{
	person.FieldName: cty.String,
	person.FieldAge:  cty.Number,
})

type sourceRecord struct {
	Name string `cty:"name"`
	Age  int    `cty:"age"`
}

// goValue converts a primitive cty value into the Go value a strategy
// expects: strings stay strings, whole numbers become int, other numbers
// float64, bools bool. Strategies do their own type checks, so a value of the
// wrong kind is passed through rather than coerced.
func goValue(v cty.Value) (any, error) {
	if v.IsNull() {
		return nil, fmt.Errorf("value must not be null")
	}
	if !v.IsWhollyKnown() {
		return nil, fmt.Errorf("value must be known")
	}

	switch ty := v.Type(); {
	case ty == cty.String:
		return v.AsString(), nil
	case ty == cty.Bool:
		return v.True(), nil
	case ty == cty.Number:
		if v.AsBigFloat().IsInt() {
			var i int
			if err := gocty.FromCtyValue(v, &i); err != nil {
				return nil, fmt.Errorf("number %s: %w", v.AsBigFloat().String(), err)
			}
			return i, nil
		}
		f, _ := v.AsBigFloat().Float64()
		return f, nil
	default:
		return nil, fmt.Errorf("unsupported value of type %s", ty.FriendlyName())
	}
}

// fieldValues converts an object or map into field assignments, in the
// attribute order cty iterates (lexical).
func fieldValues(v cty.Value) ([]registry.FieldValue, error) {
	if v.IsNull() || !(v.Type().IsObjectType() || v.Type().IsMapType()) {
		return nil, fmt.Errorf("expected an object of field assignments, got %s", v.Type().FriendlyName())
	}

	var fields []registry.FieldValue
	for it := v.ElementIterator(); it.Next(); {
		k, ev := it.Element()
		gv, err := goValue(ev)
		if err != nil {
			return nil, fmt.Errorf("field %q: %w", k.AsString(), err)
		}
		fields = append(fields, registry.FieldValue{Name: k.AsString(), Value: gv})
	}
	return fields, nil
}

// argValues converts a tuple or list into positional arguments.
func argValues(v cty.Value) ([]any, error) {
	ty := v.Type()
	if v.IsNull() || !(ty.IsTupleType() || ty.IsListType()) {
		return nil, fmt.Errorf("expected a list of arguments, got %s", ty.FriendlyName())
	}

	var args []any
	for it := v.ElementIterator(); it.Next(); {
		i, ev := it.Element()
		gv, err := goValue(ev)
		if err != nil {
			idx, _ := i.AsBigFloat().Int64()
			return nil, fmt.Errorf("argument %d: %w", idx, err)
		}
		args = append(args, gv)
	}
	return args, nil
}

// recordValue converts a `source` object into a record. Both fields are
// required; extra attributes are an error.
func recordValue(v cty.Value) (*person.Record, error) {
	if v.IsNull() || !v.Type().IsObjectType() {
		return nil, fmt.Errorf("source must be an object with name and age")
	}
	for name := range v.Type().AttributeTypes() {
		if !sourceType.HasAttribute(name) {
			return nil, fmt.Errorf("source has unknown field %q", name)
		}
	}

	converted, err := convert.Convert(v, sourceType)
	if err != nil {
		return nil, fmt.Errorf("cannot convert source to %s: %w", sourceType.FriendlyName(), err)
	}
	var src sourceRecord
	if err := gocty.FromCtyValue(converted, &src); err != nil {
		return nil, fmt.Errorf("source: %w", err)
	}
	return person.New(src.Name, src.Age), nil
}
