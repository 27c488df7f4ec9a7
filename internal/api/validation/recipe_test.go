package validation

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// fakeLookup is an in-memory ReferenceLookup over a fixed id set.
type fakeLookup struct {
	ids map[int64]struct{}
	err error
}

func newFakeLookup(ids ...int64) *fakeLookup {
	set := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		set[id] = struct{}{}
	}
	return &fakeLookup{ids: set}
}

func (f *fakeLookup) ExistingIDs(_ context.Context, candidates []int64) (map[int64]struct{}, error) {
	if f.err != nil {
		return nil, f.err
	}
	found := make(map[int64]struct{})
	for _, id := range candidates {
		if _, ok := f.ids[id]; ok {
			found[id] = struct{}{}
		}
	}
	return found, nil
}

func newTestValidator() *RecipeValidator {
	return NewRecipeValidator(newFakeLookup(1, 2, 3), newFakeLookup(1, 2, 3))
}

func validIngredients() []RawIngredient {
	return []RawIngredient{
		{ID: float64(1), Amount: float64(200)},
		{ID: float64(2), Amount: float64(5)},
	}
}

func TestValidate_Success(t *testing.T) {
	v := newTestValidator()

	tagIDs, specs, err := v.Validate(context.Background(), []any{float64(1), float64(2)}, validIngredients())

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, tagIDs)
	assert.Equal(t, []IngredientSpec{
		{IngredientID: 1, Amount: 200},
		{IngredientID: 2, Amount: 5},
	}, specs)
}

func TestValidate_NumericStringsAccepted(t *testing.T) {
	v := newTestValidator()

	tagIDs, specs, err := v.Validate(context.Background(),
		[]any{"1", "2"},
		[]RawIngredient{{ID: "3", Amount: "10"}},
	)

	require.NoError(t, err)
	assert.Equal(t, []int64{1, 2}, tagIDs)
	assert.Equal(t, []IngredientSpec{{IngredientID: 3, Amount: 10}}, specs)
}

func TestValidate_EmptyTags(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), nil, validIngredients())

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["tags"], "must not be empty")
}

func TestValidate_NonIntegerTagID(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{"abc"}, validIngredients())

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["tags"], "tag ids must be integers")
}

func TestValidate_DuplicateTags(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1), float64(1), float64(2)}, validIngredients())

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["tags"], "tags must be unique")
	// ingredients were fine, so no ingredient errors
	assert.NotContains(t, verrs, "ingredients")
}

func TestValidate_UnknownTags(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1), float64(9), float64(7)}, validIngredients())

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	require.Len(t, verrs["tags"], 1)
	// every missing id is reported, sorted
	assert.Equal(t, "tags with ids [7 9] do not exist", verrs["tags"][0])
}

func TestValidate_EmptyIngredients(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1)}, nil)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["ingredients"], "must not be empty")
}

func TestValidate_NonIntegerIngredientID(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1)},
		[]RawIngredient{{ID: "x", Amount: float64(5)}})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["ingredients"], "ingredient ids must be integers")
}

func TestValidate_DuplicateIngredients(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1)},
		[]RawIngredient{
			{ID: float64(2), Amount: float64(5)},
			{ID: float64(2), Amount: float64(7)},
		})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["ingredients"], "ingredients must be unique")
}

func TestValidate_AmountBelowMinimum(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1)},
		[]RawIngredient{{ID: float64(1), Amount: float64(0)}})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["ingredients"], "ingredient amount must be at least 1")
}

func TestValidate_AmountAboveMaximum(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1)},
		[]RawIngredient{{ID: float64(1), Amount: float64(32769)}})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["ingredients"], "ingredient amount must not exceed 32768")
}

func TestValidate_FractionalAmountRejected(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1)},
		[]RawIngredient{{ID: float64(1), Amount: 2.5}})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["ingredients"], "ingredient amounts must be integers")
}

func TestValidate_UnknownIngredients(t *testing.T) {
	v := newTestValidator()

	_, _, err := v.Validate(context.Background(), []any{float64(1)},
		[]RawIngredient{
			{ID: float64(1), Amount: float64(5)},
			{ID: float64(55), Amount: float64(5)},
		})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["ingredients"], "ingredients with ids [55] do not exist")
}

func TestValidate_CollectsBothFields(t *testing.T) {
	v := newTestValidator()

	// bad tags and bad ingredients are reported together
	_, _, err := v.Validate(context.Background(),
		[]any{float64(1), float64(1)},
		[]RawIngredient{{ID: float64(99), Amount: float64(5)}},
	)

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["tags"], "tags must be unique")
	assert.Contains(t, verrs["ingredients"], "ingredients with ids [99] do not exist")
}

func TestValidate_LookupFailure(t *testing.T) {
	broken := newFakeLookup(1)
	broken.err = errors.New("db down")
	v := NewRecipeValidator(broken, newFakeLookup(1))

	_, _, err := v.Validate(context.Background(), []any{float64(1)},
		[]RawIngredient{{ID: float64(1), Amount: float64(5)}})

	var verrs Errors
	require.ErrorAs(t, err, &verrs)
	assert.Contains(t, verrs["tags"], "could not verify tags")
}
