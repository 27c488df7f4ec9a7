package repository

import (
	"context"
	"fmt"

	"foodgram/internal/api/models"

	"gorm.io/gorm"
)

// CartIngredientRow is one ungrouped shopping cart line: a recipe ingredient
// belonging to a recipe currently in the user's cart.
type CartIngredientRow struct {
	Name            string
	MeasurementUnit string
	Amount          int
}

type IngredientRepository interface {
	List(ctx context.Context, namePrefix string) ([]models.Ingredient, error)
	GetByID(ctx context.Context, id int64) (*models.Ingredient, error)
	ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error)
	CartRows(ctx context.Context, userID int64) ([]CartIngredientRow, error)
}

type ingredientRepository struct {
	db *gorm.DB
}

func NewIngredientRepository(db *gorm.DB) IngredientRepository {
	return &ingredientRepository{db: db}
}

func (r *ingredientRepository) List(ctx context.Context, namePrefix string) ([]models.Ingredient, error) {
	var list []models.Ingredient
	q := r.db.WithContext(ctx).Order("name asc")
	if namePrefix != "" {
		q = q.Where("name ILIKE ?", namePrefix+"%")
	}
	if err := q.Find(&list).Error; err != nil {
		return nil, fmt.Errorf("get ingredients: %w", err)
	}
	return list, nil
}

func (r *ingredientRepository) GetByID(ctx context.Context, id int64) (*models.Ingredient, error) {
	var ing models.Ingredient
	if err := r.db.WithContext(ctx).First(&ing, id).Error; err != nil {
		return nil, err
	}
	return &ing, nil
}

func (r *ingredientRepository) ExistingIDs(ctx context.Context, ids []int64) (map[int64]struct{}, error) {
	if len(ids) == 0 {
		return map[int64]struct{}{}, nil
	}
	var found []int64
	if err := r.db.WithContext(ctx).
		Model(&models.Ingredient{}).
		Where("id IN ?", ids).
		Pluck("id", &found).Error; err != nil {
		return nil, fmt.Errorf("check ingredient ids: %w", err)
	}
	set := make(map[int64]struct{}, len(found))
	for _, id := range found {
		set[id] = struct{}{}
	}
	return set, nil
}

// CartRows selects every recipe ingredient whose recipe sits in the user's
// cart. Grouping and summing happen in the service so the aggregation stays
// unit-testable.
func (r *ingredientRepository) CartRows(ctx context.Context, userID int64) ([]CartIngredientRow, error) {
	var rows []CartIngredientRow
	if err := r.db.WithContext(ctx).
		Model(&models.RecipeIngredient{}).
		Select("ingredients.name AS name, ingredients.measurement_unit AS measurement_unit, recipe_ingredients.amount AS amount").
		Joins("JOIN ingredients ON ingredients.id = recipe_ingredients.ingredient_id").
		Joins("JOIN carts ON carts.recipe_id = recipe_ingredients.recipe_id").
		Where("carts.user_id = ?", userID).
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("cart ingredients: %w", err)
	}
	return rows, nil
}
