package hcl

import (
	"context"
	"os"
	"path/filepath"
	"reflect"
	"testing"

	"github.com/specialistvlad/forgego/internal/handle"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writePlan(t *testing.T, dir, name, src string) string {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(src), 0o600))
	return path
}

func TestLoad_AllAttributes(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := writePlan(t, dir, "plan.hcl", `
construct "direct" "li" {
  name = "Li"
  age  = 20
}

construct "round-trip" "wang" {
  source   = { name = "Wang", age = 22 }
  location = "snapshots/wang.snap"
}

construct "raw-allocate-and-patch" "zhang" {
  patch = { name = "Zhang" }
}

construct "handle-based" "xu" {
  signature = [string, int]
  args      = ["Xu", 30]
  set       = { name = "Xu San" }
}

construct "reflective-default" "empty" {}
`)

	// --- Act ---
	plan, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	require.Equal(t, []string{"li", "wang", "zhang", "xu", "empty"}, plan.Names())

	li := plan.Entries[0]
	assert.Equal(t, "direct", li.Strategy)
	assert.Equal(t, []registry.FieldValue{{Name: "name", Value: "Li"}, {Name: "age", Value: 20}}, li.Params.Fields)
	assert.Contains(t, li.Origin, "plan.hcl")

	wang := plan.Entries[1].Params
	assert.True(t, person.New("Wang", 22).Equal(wang.Source))
	assert.Equal(t, "snapshots/wang.snap", wang.Location)

	assert.Equal(t, []registry.FieldValue{{Name: "name", Value: "Zhang"}}, plan.Entries[2].Params.Fields)

	xu := plan.Entries[3].Params
	assert.True(t, handle.Sig(reflect.TypeFor[string](), reflect.TypeFor[int]()).Equal(xu.Signature))
	assert.Equal(t, []any{"Xu", 30}, xu.Args)
	assert.Equal(t, []registry.FieldValue{{Name: "name", Value: "Xu San"}}, xu.Fields)

	assert.Equal(t, registry.Params{}, plan.Entries[4].Params)
}

func TestLoad_QuotedSignatureAndMixedValues(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	path := writePlan(t, dir, "plan.hcl", `
construct "reflective-parameterized" "p" {
  signature = ["string", "int"]
  args      = ["Li", 20.5, true]
}
`)

	plan, err := NewLoader().Load(context.Background(), path)

	require.NoError(t, err)
	p := plan.Entries[0].Params
	assert.Len(t, p.Signature, 2)
	assert.Equal(t, []any{"Li", 20.5, true}, p.Args)
}

func TestLoad_SignatureKeywords(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	path := writePlan(t, dir, "plan.hcl", `
construct "handle-based" "h" {
  signature = [string, number, bool, int]
  args      = ["Li", 20.5, true, 3]
}
`)

	// --- Act ---
	plan, err := NewLoader().Load(context.Background(), path)

	// --- Assert ---
	require.NoError(t, err)
	want := handle.Sig(reflect.TypeFor[string](), reflect.TypeFor[float64](), reflect.TypeFor[bool](), reflect.TypeFor[int]())
	assert.True(t, want.Equal(plan.Entries[0].Params.Signature), "got %s", plan.Entries[0].Params.Signature)
	assert.True(t, want.Equal(handle.SignatureOf(plan.Entries[0].Params.Args...)), "args bind to the same types")
}

func TestLoad_Directory(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	dir := t.TempDir()
	writePlan(t, dir, "b.hcl", `construct "copy" "second" { source = { name = "B", age = 2 } }`)
	writePlan(t, dir, "a.hcl", `construct "copy" "first" { source = { name = "A", age = 1 } }`)
	writePlan(t, dir, "ignored.txt", `not hcl at all {`)

	// --- Act ---
	plan, err := NewLoader().Load(context.Background(), dir)

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, []string{"first", "second"}, plan.Names())
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		src     string
		wantErr string
	}{
		{
			name:    "syntax error",
			src:     `construct "direct" "li" {`,
			wantErr: "failed to parse HCL file",
		},
		{
			name:    "unknown block",
			src:     `step "print" "a" {}`,
			wantErr: "failed to decode HCL file",
		},
		{
			name:    "unknown attribute",
			src:     `construct "direct" "li" { email = "li@example.com" }`,
			wantErr: `unsupported attribute "email"`,
		},
		{
			name:    "duplicate name",
			src:     "construct \"direct\" \"li\" {}\nconstruct \"copy\" \"li\" {}",
			wantErr: `entry name "li" already declared`,
		},
		{
			name: "shared location",
			src: `
construct "round-trip" "a" {
  source   = { name = "A", age = 1 }
  location = "same.snap"
}
construct "round-trip" "b" {
  source   = { name = "B", age = 2 }
  location = "./same.snap"
}`,
			wantErr: "already used by",
		},
		{
			name:    "source missing age",
			src:     `construct "copy" "c" { source = { name = "A" } }`,
			wantErr: "cannot convert source",
		},
		{
			name:    "source extra field",
			src:     `construct "copy" "c" { source = { name = "A", age = 1, email = "x" } }`,
			wantErr: `unknown field "email"`,
		},
		{
			name:    "fractional source age",
			src:     `construct "copy" "c" { source = { name = "A", age = 1.5 } }`,
			wantErr: "source",
		},
		{
			name:    "unknown signature type",
			src:     `construct "handle-based" "h" { signature = [float] }`,
			wantErr: `unknown type "float"`,
		},
		{
			name:    "signature not a list",
			src:     `construct "handle-based" "h" { signature = "string" }`,
			wantErr: "signature must be a list",
		},
		{
			name:    "null field",
			src:     `construct "direct" "d" { name = null }`,
			wantErr: "must not be null",
		},
		{
			name:    "patch not an object",
			src:     `construct "raw-allocate-and-patch" "r" { patch = ["name"] }`,
			wantErr: "expected an object",
		},
		{
			name:    "variable reference",
			src:     `construct "direct" "d" { name = var.name }`,
			wantErr: "Variables not allowed",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			path := writePlan(t, t.TempDir(), "plan.hcl", tt.src)

			_, err := NewLoader().Load(context.Background(), path)

			require.Error(t, err)
			assert.Contains(t, err.Error(), tt.wantErr)
		})
	}
}

func TestLoad_MissingPath(t *testing.T) {
	t.Parallel()

	_, err := NewLoader().Load(context.Background(), filepath.Join(t.TempDir(), "missing.hcl"))

	require.Error(t, err)
}
