// This file contains the logic for translating construct blocks into the
// format-agnostic plan entries defined in the config package.

package hcl

import (
	"context"
	"fmt"
	"sort"

	"github.com/hashicorp/hcl/v2"
	"github.com/specialistvlad/forgego/internal/config"
	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/zclconf/go-cty/cty"
)

const (
	attrName      = "name"
	attrAge       = "age"
	attrSource    = "source"
	attrLocation  = "location"
	attrPatch     = "patch"
	attrSignature = "signature"
	attrArgs      = "args"
	attrSet       = "set"
)

var knownAttributes = map[string]bool{
	attrName: true, attrAge: true, attrSource: true, attrLocation: true,
	attrPatch: true, attrSignature: true, attrArgs: true, attrSet: true,
}

// translateConstruct converts one construct block into a plan entry. Field
// assignments are collected in this order: name, age, patch, set.
func translateConstruct(ctx context.Context, b *constructBlock) (*config.Entry, error) {
	logger := ctxlog.FromContext(ctx)
	origin := b.Body.MissingItemRange().String()

	attrs, diags := b.Body.JustAttributes()
	if diags.HasErrors() {
		return nil, fmt.Errorf("%s: %w", origin, diags)
	}
	for name, attr := range attrs {
		if !knownAttributes[name] {
			return nil, fmt.Errorf("%s: unsupported attribute %q", attr.NameRange, name)
		}
	}

	entry := &config.Entry{Strategy: b.Strategy, Name: b.Name, Origin: origin}
	p := &entry.Params

	for _, field := range []string{attrName, attrAge} {
		attr, ok := attrs[field]
		if !ok {
			continue
		}
		v, err := attributeValue(attr)
		if err != nil {
			return nil, err
		}
		gv, err := goValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attr.Range, err)
		}
		p.Fields = append(p.Fields, registry.FieldValue{Name: field, Value: gv})
	}

	for _, field := range []string{attrPatch, attrSet} {
		attr, ok := attrs[field]
		if !ok {
			continue
		}
		v, err := attributeValue(attr)
		if err != nil {
			return nil, err
		}
		fields, err := fieldValues(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attr.Range, err)
		}
		p.Fields = append(p.Fields, fields...)
	}

	if attr, ok := attrs[attrSource]; ok {
		v, err := attributeValue(attr)
		if err != nil {
			return nil, err
		}
		src, err := recordValue(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attr.Range, err)
		}
		p.Source = src
	}

	if attr, ok := attrs[attrLocation]; ok {
		v, err := attributeValue(attr)
		if err != nil {
			return nil, err
		}
		if v.IsNull() || v.Type() != cty.String {
			return nil, fmt.Errorf("%s: location must be a string", attr.Range)
		}
		p.Location = v.AsString()
	}

	if attr, ok := attrs[attrArgs]; ok {
		v, err := attributeValue(attr)
		if err != nil {
			return nil, err
		}
		args, err := argValues(v)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attr.Range, err)
		}
		p.Args = args
	}

	if attr, ok := attrs[attrSignature]; ok {
		sig, err := signatureExpr(ctx, attr.Expr)
		if err != nil {
			return nil, fmt.Errorf("%s: %w", attr.Range, err)
		}
		p.Signature = sig
	}

	logger.Debug("Translated construct block.", "strategy", entry.Strategy, "name", entry.Name, "attributes", attributeNames(attrs))
	return entry, nil
}

func attributeValue(attr *hcl.Attribute) (cty.Value, error) {
	v, diags := attr.Expr.Value(nil)
	if diags.HasErrors() {
		return cty.NilVal, fmt.Errorf("%s: %w", attr.Range, diags)
	}
	return v, nil
}

func attributeNames(attrs hcl.Attributes) []string {
	names := make([]string, 0, len(attrs))
	for n := range attrs {
		names = append(names, n)
	}
	sort.Strings(names)
	return names
}
