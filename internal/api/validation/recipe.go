package validation

import (
	"context"
	"encoding/json"
	"fmt"
	"sort"
	"strconv"
	"strings"
)

const (
	MinIngredientAmount = 1
	MaxIngredientAmount = 32768
)

// ReferenceLookup answers batch existence checks against read-only reference
// data (tags, ingredients). Keeping it an interface keeps the validator free
// of storage coupling; tests use an in-memory fake.
type ReferenceLookup interface {
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error)
}

// Errors collects validation messages per request field. It is both the error
// value services return and the JSON body of the 400 response.
type Errors map[string][]string

func (e Errors) Error() string {
	fields := make([]string, 0, len(e))
	for field := range e {
		fields = append(fields, field)
	}
	sort.Strings(fields)

	parts := make([]string, 0, len(e))
	for _, field := range fields {
		parts = append(parts, field+": "+strings.Join(e[field], "; "))
	}
	return strings.Join(parts, " | ")
}

func (e Errors) add(field, msg string) {
	e[field] = append(e[field], msg)
}

// RawIngredient is an ingredient spec as it arrives off the wire. IDs and
// amounts stay untyped so numeric strings can be coerced the same way the
// rest of the payload parsing does.
type RawIngredient struct {
	ID     any `json:"id"`
	Amount any `json:"amount"`
}

// IngredientSpec is a validated (ingredient id, amount) pair.
type IngredientSpec struct {
	IngredientID int64
	Amount       int
}

type RecipeValidator struct {
	tags        ReferenceLookup
	ingredients ReferenceLookup
}

func NewRecipeValidator(tags, ingredients ReferenceLookup) *RecipeValidator {
	return &RecipeValidator{tags: tags, ingredients: ingredients}
}

// Validate checks the raw tag and ingredient payloads and returns the
// validated sets. Both fields are checked even when the first one fails, so
// the caller gets every violation in one response. The returned error is an
// Errors value when validation fails.
func (v *RecipeValidator) Validate(ctx context.Context, rawTags []any, rawIngredients []RawIngredient) ([]int64, []IngredientSpec, error) {
	errs := Errors{}

	tagIDs := v.validateTags(ctx, rawTags, errs)
	specs := v.validateIngredients(ctx, rawIngredients, errs)

	if len(errs) > 0 {
		return nil, nil, errs
	}
	return tagIDs, specs, nil
}

func (v *RecipeValidator) validateTags(ctx context.Context, rawTags []any, errs Errors) []int64 {
	if len(rawTags) == 0 {
		errs.add("tags", "must not be empty")
		return nil
	}

	ids := make([]int64, 0, len(rawTags))
	for _, raw := range rawTags {
		id, ok := asInt64(raw)
		if !ok {
			errs.add("tags", "tag ids must be integers")
			return nil
		}
		ids = append(ids, id)
	}

	if hasDuplicates(ids) {
		errs.add("tags", "tags must be unique")
		return nil
	}

	missing, err := v.missingIDs(ctx, v.tags, ids)
	if err != nil {
		errs.add("tags", "could not verify tags")
		return nil
	}
	if len(missing) > 0 {
		errs.add("tags", fmt.Sprintf("tags with ids %v do not exist", missing))
		return nil
	}
	return ids
}

func (v *RecipeValidator) validateIngredients(ctx context.Context, raw []RawIngredient, errs Errors) []IngredientSpec {
	if len(raw) == 0 {
		errs.add("ingredients", "must not be empty")
		return nil
	}

	ids := make([]int64, 0, len(raw))
	for _, item := range raw {
		id, ok := asInt64(item.ID)
		if !ok {
			errs.add("ingredients", "ingredient ids must be integers")
			return nil
		}
		ids = append(ids, id)
	}

	if hasDuplicates(ids) {
		errs.add("ingredients", "ingredients must be unique")
		return nil
	}

	amounts := make([]int, 0, len(raw))
	amountsOK := true
	for _, item := range raw {
		amount, ok := asInt64(item.Amount)
		if !ok {
			errs.add("ingredients", "ingredient amounts must be integers")
			amountsOK = false
			break
		}
		switch {
		case amount < MinIngredientAmount:
			errs.add("ingredients", fmt.Sprintf("ingredient amount must be at least %d", MinIngredientAmount))
			amountsOK = false
		case amount > MaxIngredientAmount:
			errs.add("ingredients", fmt.Sprintf("ingredient amount must not exceed %d", MaxIngredientAmount))
			amountsOK = false
		}
		if !amountsOK {
			break
		}
		amounts = append(amounts, int(amount))
	}

	missing, err := v.missingIDs(ctx, v.ingredients, ids)
	if err != nil {
		errs.add("ingredients", "could not verify ingredients")
		return nil
	}
	if len(missing) > 0 {
		errs.add("ingredients", fmt.Sprintf("ingredients with ids %v do not exist", missing))
		return nil
	}
	if !amountsOK {
		return nil
	}

	specs := make([]IngredientSpec, 0, len(raw))
	for i, id := range ids {
		specs = append(specs, IngredientSpec{IngredientID: id, Amount: amounts[i]})
	}
	return specs
}

// missingIDs runs one batch existence query and reports ids absent from the
// reference table, sorted for stable error messages.
func (v *RecipeValidator) missingIDs(ctx context.Context, lookup ReferenceLookup, ids []int64) ([]int64, error) {
	existing, err := lookup.ExistingIDs(ctx, ids)
	if err != nil {
		return nil, err
	}

	var missing []int64
	for _, id := range ids {
		if _, ok := existing[id]; !ok {
			missing = append(missing, id)
		}
	}
	sort.Slice(missing, func(i, j int) bool { return missing[i] < missing[j] })
	return missing, nil
}

func hasDuplicates(ids []int64) bool {
	seen := make(map[int64]struct{}, len(ids))
	for _, id := range ids {
		if _, ok := seen[id]; ok {
			return true
		}
		seen[id] = struct{}{}
	}
	return false
}

// asInt64 coerces the loosely typed values JSON decoding produces. Numeric
// strings are accepted; fractional numbers are not.
func asInt64(value any) (int64, bool) {
	switch v := value.(type) {
	case int64:
		return v, true
	case int:
		return int64(v), true
	case float64:
		if v != float64(int64(v)) {
			return 0, false
		}
		return int64(v), true
	case json.Number:
		n, err := v.Int64()
		if err != nil {
			return 0, false
		}
		return n, true
	case string:
		n, err := strconv.ParseInt(strings.TrimSpace(v), 10, 64)
		if err != nil {
			return 0, false
		}
		return n, true
	default:
		return 0, false
	}
}
