package registry

import (
	"context"
	"errors"
	"testing"

	"github.com/specialistvlad/forgego/internal/failure"
	"github.com/specialistvlad/forgego/internal/person"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegister_DuplicatePanics(t *testing.T) {
	t.Parallel()

	r := New()
	s := StrategyFunc(func(context.Context, Params) (*Result, error) { return nil, nil })
	r.Register("direct", s)

	assert.Panics(t, func() { r.Register("direct", s) })
	assert.Panics(t, func() { r.Register("nil", nil) })
	assert.Equal(t, []string{"direct"}, r.Names())
}

func TestConstruct_UnknownStrategy(t *testing.T) {
	t.Parallel()

	_, err := New().Construct(context.Background(), "teleport", Params{})

	var ce *failure.ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.Equal(t, "teleport", ce.Strategy)
	assert.ErrorIs(t, err, failure.ErrUnknownStrategy)
}

func TestConstruct_WrapsComponentErrorUnchanged(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	componentErr := &failure.DecodingError{Reason: "truncated"}
	r := New()
	r.Register("broken", StrategyFunc(func(context.Context, Params) (*Result, error) {
		return nil, componentErr
	}))

	// --- Act ---
	res, err := r.Construct(context.Background(), "broken", Params{})

	// --- Assert ---
	assert.Nil(t, res, "a failed strategy never yields a substitute record")
	var ce *failure.ConstructionError
	require.ErrorAs(t, err, &ce)
	var de *failure.DecodingError
	require.ErrorAs(t, err, &de)
	assert.Same(t, componentErr, de)
}

func TestConstruct_DoesNotDoubleWrap(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("picky", StrategyFunc(func(context.Context, Params) (*Result, error) {
		return nil, failure.InvalidParams("picky", "needs more")
	}))

	_, err := r.Construct(context.Background(), "picky", Params{})

	var ce *failure.ConstructionError
	require.ErrorAs(t, err, &ce)
	assert.True(t, errors.Is(err, failure.ErrInvalidParams))
	_, nested := ce.Err.(*failure.ConstructionError)
	assert.False(t, nested)
}

func TestConstruct_StampsStrategyName(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("fixed", StrategyFunc(func(context.Context, Params) (*Result, error) {
		return NewResult(person.New("Li", 20), person.FieldName, person.FieldAge), nil
	}))

	res, err := r.Construct(context.Background(), "fixed", Params{})
	require.NoError(t, err)
	assert.Equal(t, "fixed", res.Strategy)
	assert.True(t, res.Complete())
}

func TestConstruct_EmptyResultIsAnError(t *testing.T) {
	t.Parallel()

	r := New()
	r.Register("empty", StrategyFunc(func(context.Context, Params) (*Result, error) { return &Result{}, nil }))

	_, err := r.Construct(context.Background(), "empty", Params{})

	var ce *failure.ConstructionError
	require.ErrorAs(t, err, &ce)
}

func TestResult_PartialInitialization(t *testing.T) {
	t.Parallel()

	res := NewResult(person.New("Zhang", 0), person.FieldName, person.FieldName)

	assert.Equal(t, []string{"name"}, res.Initialized)
	assert.True(t, res.IsSet("name"))
	assert.False(t, res.IsSet("age"))
	assert.Equal(t, []string{"age"}, res.Unset())
	assert.False(t, res.Complete())
}

func TestResult_OrdersFields(t *testing.T) {
	t.Parallel()

	res := NewResult(person.NewEmpty(), person.FieldAge, person.FieldName, "bogus")

	assert.Equal(t, []string{"name", "age"}, res.Initialized)
	assert.Empty(t, res.Unset())
}

func TestParams_Field(t *testing.T) {
	t.Parallel()

	p := Params{Fields: []FieldValue{{Name: "name", Value: "Li"}, {Name: "name", Value: "Wang"}}}

	v, ok := p.Field("name")
	assert.True(t, ok)
	assert.Equal(t, "Li", v)
	_, ok = p.Field("age")
	assert.False(t, ok)
}

func TestNew_ResolverKnowsPersonConstructors(t *testing.T) {
	t.Parallel()

	r := New()

	h, err := r.Resolver().ResolveConstructor(nil)
	require.NoError(t, err)
	out, err := h.Invoke()
	require.NoError(t, err)
	assert.True(t, person.NewEmpty().Equal(out[0].(*person.Record)))
}
