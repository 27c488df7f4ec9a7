package service

import (
	"context"
	"sort"

	"foodgram/internal/api/repository"
)

// ShoppingListItem is one aggregated shopping list line.
type ShoppingListItem struct {
	Name            string `json:"name"`
	MeasurementUnit string `json:"measurement_unit"`
	Amount          int    `json:"amount"`
}

// ShoppingListService aggregates the contents of a user's cart into a
// deduplicated, summed list. The grouping key is (name, unit), not the
// ingredient id: two ingredient records sharing "Salt, g" become one line —
// the list is for a human shopper, not a database key.
type ShoppingListService interface {
	ShoppingList(ctx context.Context, userID int64) ([]ShoppingListItem, error)
}

type shoppingListService struct {
	ingredients repository.IngredientRepository
}

func NewShoppingListService(ingredients repository.IngredientRepository) ShoppingListService {
	return &shoppingListService{ingredients: ingredients}
}

func (s *shoppingListService) ShoppingList(ctx context.Context, userID int64) ([]ShoppingListItem, error) {
	rows, err := s.ingredients.CartRows(ctx, userID)
	if err != nil {
		return nil, err
	}
	return aggregate(rows), nil
}

type nameUnit struct {
	name string
	unit string
}

// aggregate groups rows by (name, unit), sums amounts and orders the result
// by name then unit. An empty cart yields an empty list, not an error.
func aggregate(rows []repository.CartIngredientRow) []ShoppingListItem {
	totals := make(map[nameUnit]int, len(rows))
	for _, row := range rows {
		totals[nameUnit{row.Name, row.MeasurementUnit}] += row.Amount
	}

	items := make([]ShoppingListItem, 0, len(totals))
	for key, amount := range totals {
		items = append(items, ShoppingListItem{
			Name:            key.name,
			MeasurementUnit: key.unit,
			Amount:          amount,
		})
	}
	sort.Slice(items, func(i, j int) bool {
		if items[i].Name != items[j].Name {
			return items[i].Name < items[j].Name
		}
		return items[i].MeasurementUnit < items[j].MeasurementUnit
	})
	return items
}
