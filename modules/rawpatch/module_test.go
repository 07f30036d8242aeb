package rawpatch

import (
	"context"
	"testing"

	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/specialistvlad/forgego/internal/registry"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConstruct_Zhang(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	r := registry.New()
	(&Module{}).Register(r)

	// --- Act ---
	res, err := r.Construct(context.Background(), Name, registry.Params{Fields: []registry.FieldValue{
		{Name: "name", Value: "Zhang"},
	}})

	// --- Assert ---
	require.NoError(t, err)
	assert.Equal(t, "Zhang", res.Record.Name())
	assert.Equal(t, []string{"name"}, res.Initialized)
	assert.Equal(t, []string{"age"}, res.Unset())
	assert.False(t, res.Complete(), "partial initialization must not look complete")
}

func TestConstruct_AllFields(t *testing.T) {
	t.Parallel()

	res, err := Construct(context.Background(), registry.Params{Fields: []registry.FieldValue{
		{Name: "age", Value: 61},
		{Name: "name", Value: "Zhang"},
	}})

	require.NoError(t, err)
	assert.True(t, person.New("Zhang", 61).Equal(res.Record))
	assert.True(t, res.Complete())
}

func TestConstruct_NothingListed(t *testing.T) {
	t.Parallel()

	res, err := Construct(context.Background(), registry.Params{})

	require.NoError(t, err)
	assert.Empty(t, res.Initialized)
	assert.Equal(t, person.Fields, res.Unset())
}

func TestConstruct_LaterWriteWins(t *testing.T) {
	t.Parallel()

	res, err := Construct(context.Background(), registry.Params{Fields: []registry.FieldValue{
		{Name: "name", Value: "Zhang"},
		{Name: "name", Value: "Zhang Wei"},
	}})

	require.NoError(t, err)
	assert.Equal(t, "Zhang Wei", res.Record.Name())
	assert.Equal(t, []string{"name"}, res.Initialized)
}

func TestConstruct_UnknownField(t *testing.T) {
	t.Parallel()

	for _, name := range []string{"email", "Name", ""} {
		_, err := Construct(context.Background(), registry.Params{Fields: []registry.FieldValue{{Name: name, Value: "x"}}})

		var ufe *failure.UnknownFieldError
		require.ErrorAs(t, err, &ufe, "field %q", name)
		assert.Equal(t, name, ufe.Field)
	}
}

func TestConstruct_WrongValueType(t *testing.T) {
	t.Parallel()

	_, err := Construct(context.Background(), registry.Params{Fields: []registry.FieldValue{{Name: "age", Value: "sixty"}}})

	var tme *failure.TypeMismatchError
	require.ErrorAs(t, err, &tme)
	assert.Equal(t, "int", tme.Want)
	assert.Equal(t, "string", tme.Got)
}

func TestPatchers_CoverEveryLayoutField(t *testing.T) {
	t.Parallel()

	for _, f := range layout.Fields() {
		assert.Contains(t, patchers, f.Name)
	}
	assert.Len(t, patchers, len(layout.Fields()))
}
