// This file contains the logic for parsing constructor signatures, written
// as a list of type keywords (e.g. `[string, int]`), into Go types.

package hcl

import (
	"context"
	"fmt"
	"reflect"

	"github.com/hashicorp/hcl/v2"
	"github.com/hashicorp/hcl/v2/hclsyntax"
	"github.com/specialistvlad/forgego/internal/ctxlog"
	"github.com/specialistvlad/forgego/internal/handle"
	"github.com/zclconf/go-cty/cty"
)

var typeKeywords = map[string]reflect.Type{
	"string": reflect.TypeFor[string](),
	"int":    reflect.TypeFor[int](),
	"number": reflect.TypeFor[float64](),
	"bool":   reflect.TypeFor[bool](),
}

// signatureExpr converts a list expression of type keywords into a Signature.
// An empty list is the zero-argument signature.
func signatureExpr(ctx context.Context, expr hcl.Expression) (handle.Signature, error) {
	elems, diags := hcl.ExprList(expr)
	if diags.HasErrors() {
		return nil, fmt.Errorf("signature must be a list of types: %w", diags)
	}

	sig := make(handle.Signature, 0, len(elems))
	for i, e := range elems {
		t, err := typeExprToGoType(ctx, e)
		if err != nil {
			return nil, fmt.Errorf("signature element %d: %w", i, err)
		}
		sig = append(sig, t)
	}
	return sig, nil
}

// typeExprToGoType accepts a bare keyword (`string`) or a quoted one
// (`"string"`).
func typeExprToGoType(ctx context.Context, expr hcl.Expression) (reflect.Type, error) {
	logger := ctxlog.FromContext(ctx)

	var keyword string
	switch v := expr.(type) {
	case *hclsyntax.ScopeTraversalExpr:
		if len(v.Traversal) != 1 {
			return nil, fmt.Errorf("invalid type keyword: traversal path is not a single identifier")
		}
		keyword = v.Traversal.RootName()
	default:
		val, diags := expr.Value(nil)
		if diags.HasErrors() {
			return nil, fmt.Errorf("unsupported expression for type: %w", diags)
		}
		if val.IsNull() || val.Type() != cty.String {
			return nil, fmt.Errorf("unsupported expression for type: %s", val.Type().FriendlyName())
		}
		keyword = val.AsString()
	}

	t, ok := typeKeywords[keyword]
	if !ok {
		return nil, fmt.Errorf("unknown type %q", keyword)
	}
	logger.Debug("Parsed signature type.", "keyword", keyword, "type", t.String())
	return t, nil
}
