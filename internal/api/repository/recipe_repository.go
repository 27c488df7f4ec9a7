package repository

import (
	"context"
	"fmt"

	"foodgram/internal/api/models"

	"gorm.io/gorm"
)

// RecipeFilter narrows the recipe list. Zero values mean "no filter".
type RecipeFilter struct {
	AuthorID    *int64
	TagSlugs    []string
	FavoritedBy *int64
	InCartOf    *int64
}

type RecipeRepository interface {
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	List(ctx context.Context, filter RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error)
	Create(ctx context.Context, recipe *models.Recipe, tagIDs []int64, items []models.RecipeIngredient) error
	Update(ctx context.Context, recipe *models.Recipe, tagIDs []int64, items []models.RecipeIngredient) error
	Delete(ctx context.Context, id int64) error
}

type recipeRepository struct {
	db *gorm.DB
}

func NewRecipeRepository(db *gorm.DB) RecipeRepository {
	return &recipeRepository{db: db}
}

func (r *recipeRepository) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	var recipe models.Recipe
	if err := r.db.WithContext(ctx).
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		First(&recipe, id).Error; err != nil {
		return nil, err
	}
	return &recipe, nil
}

func (r *recipeRepository) List(ctx context.Context, filter RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error) {
	base := r.applyFilter(r.db.WithContext(ctx).Model(&models.Recipe{}), filter)

	var total int64
	if err := base.Distinct("recipes.id").Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count recipes: %w", err)
	}

	var list []models.Recipe
	offset := (page - 1) * pageSize
	if err := r.applyFilter(r.db.WithContext(ctx).Model(&models.Recipe{}), filter).
		Distinct("recipes.*").
		Preload("Author").
		Preload("Tags").
		Preload("Ingredients.Ingredient").
		Order("recipes.created_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list recipes: %w", err)
	}
	return list, total, nil
}

func (r *recipeRepository) applyFilter(q *gorm.DB, filter RecipeFilter) *gorm.DB {
	if filter.AuthorID != nil {
		q = q.Where("recipes.author_id = ?", *filter.AuthorID)
	}
	if len(filter.TagSlugs) > 0 {
		q = q.Joins("JOIN recipe_tags rt ON rt.recipe_id = recipes.id").
			Joins("JOIN tags ON tags.id = rt.tag_id").
			Where("tags.slug IN ?", filter.TagSlugs)
	}
	if filter.FavoritedBy != nil {
		q = q.Joins("JOIN favorites f ON f.recipe_id = recipes.id").
			Where("f.user_id = ?", *filter.FavoritedBy)
	}
	if filter.InCartOf != nil {
		q = q.Joins("JOIN carts c ON c.recipe_id = recipes.id").
			Where("c.user_id = ?", *filter.InCartOf)
	}
	return q
}

// Create inserts the recipe row and its tag/ingredient associations in one
// transaction. Any failure rolls the whole thing back, so a recipe is never
// left half-constructed.
func (r *recipeRepository) Create(ctx context.Context, recipe *models.Recipe, tagIDs []int64, items []models.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := tx.Omit("Tags", "Ingredients", "Author").Create(recipe).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateRecipeName
			}
			return fmt.Errorf("create recipe: %w", err)
		}
		return r.replaceAssociations(tx, recipe, tagIDs, items)
	})
}

// Update applies scalar field changes and rewrites both association sets with
// full-replacement semantics: the previous tag and ingredient sets are cleared
// and the new ones written, all inside one transaction.
func (r *recipeRepository) Update(ctx context.Context, recipe *models.Recipe, tagIDs []int64, items []models.RecipeIngredient) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		if err := r.replaceAssociations(tx, recipe, tagIDs, items); err != nil {
			return err
		}
		if err := tx.Model(&models.Recipe{ID: recipe.ID}).
			Select("Name", "Image", "Text", "CookingTime").
			Updates(map[string]any{
				"name":         recipe.Name,
				"image":        recipe.Image,
				"text":         recipe.Text,
				"cooking_time": recipe.CookingTime,
			}).Error; err != nil {
			if isUniqueViolation(err) {
				return ErrDuplicateRecipeName
			}
			return fmt.Errorf("update recipe: %w", err)
		}
		return nil
	})
}

// replaceAssociations clears then rewrites the tag set and the ingredient
// rows for the recipe. Runs inside the caller's transaction.
func (r *recipeRepository) replaceAssociations(tx *gorm.DB, recipe *models.Recipe, tagIDs []int64, items []models.RecipeIngredient) error {
	tags := make([]models.Tag, 0, len(tagIDs))
	for _, id := range tagIDs {
		tags = append(tags, models.Tag{ID: id})
	}
	if err := tx.Model(recipe).Association("Tags").Replace(&tags); err != nil {
		return fmt.Errorf("replace tags: %w", err)
	}

	if err := tx.Where("recipe_id = ?", recipe.ID).
		Delete(&models.RecipeIngredient{}).Error; err != nil {
		return fmt.Errorf("clear ingredients: %w", err)
	}
	if len(items) > 0 {
		for i := range items {
			items[i].ID = 0
			items[i].RecipeID = recipe.ID
		}
		if err := tx.Create(&items).Error; err != nil {
			return fmt.Errorf("insert ingredients: %w", err)
		}
	}
	return nil
}

func (r *recipeRepository) Delete(ctx context.Context, id int64) error {
	if err := r.db.WithContext(ctx).Delete(&models.Recipe{}, id).Error; err != nil {
		return fmt.Errorf("delete recipe: %w", err)
	}
	return nil
}
