package service

import (
	"context"
	"errors"

	"foodgram/internal/api/models"
	"foodgram/internal/api/repository"
	"foodgram/internal/api/validation"

	"gorm.io/gorm"
)

var (
	ErrRecipeNameTaken = errors.New("you already have a recipe with this name")
	ErrNotRecipeAuthor = errors.New("only the author can modify this recipe")
)

// RecipeInput carries a new recipe off the wire. Tags and ingredients stay
// raw until the validator has checked them.
type RecipeInput struct {
	Name        string
	Image       string
	Text        string
	CookingTime int
	Tags        []any
	Ingredients []validation.RawIngredient
}

// RecipeUpdateInput is partial for scalar fields but the tag and ingredient
// sets are required and fully replace the existing associations.
type RecipeUpdateInput struct {
	Name        *string
	Image       *string
	Text        *string
	CookingTime *int
	Tags        []any
	Ingredients []validation.RawIngredient
}

type RecipeService interface {
	List(ctx context.Context, filter repository.RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error)
	GetByID(ctx context.Context, id int64) (*models.Recipe, error)
	Create(ctx context.Context, authorID int64, in RecipeInput) (*models.Recipe, error)
	Update(ctx context.Context, actorID, recipeID int64, in RecipeUpdateInput) (*models.Recipe, error)
	Delete(ctx context.Context, actorID, recipeID int64) error
}

type recipeService struct {
	repo      repository.RecipeRepository
	validator *validation.RecipeValidator
}

func NewRecipeService(repo repository.RecipeRepository, validator *validation.RecipeValidator) RecipeService {
	return &recipeService{repo: repo, validator: validator}
}

func (s *recipeService) List(ctx context.Context, filter repository.RecipeFilter, page, pageSize int) ([]models.Recipe, int64, error) {
	return s.repo.List(ctx, filter, page, pageSize)
}

func (s *recipeService) GetByID(ctx context.Context, id int64) (*models.Recipe, error) {
	recipe, err := s.repo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}
	return recipe, nil
}

// Create validates the raw payload, then writes the recipe and both
// association sets transactionally. The (author, name) unique constraint is
// surfaced as ErrRecipeNameTaken.
func (s *recipeService) Create(ctx context.Context, authorID int64, in RecipeInput) (*models.Recipe, error) {
	tagIDs, specs, err := s.validator.Validate(ctx, in.Tags, in.Ingredients)
	if err != nil {
		return nil, err
	}

	recipe := &models.Recipe{
		AuthorID:    authorID,
		Name:        in.Name,
		Image:       in.Image,
		Text:        in.Text,
		CookingTime: in.CookingTime,
	}
	if err := s.repo.Create(ctx, recipe, tagIDs, toJoinRows(specs)); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecipeName) {
			return nil, ErrRecipeNameTaken
		}
		return nil, err
	}

	return s.GetByID(ctx, recipe.ID)
}

// Update applies partial scalar changes and replaces the tag and ingredient
// sets wholesale. Only the author may update.
func (s *recipeService) Update(ctx context.Context, actorID, recipeID int64, in RecipeUpdateInput) (*models.Recipe, error) {
	recipe, err := s.GetByID(ctx, recipeID)
	if err != nil {
		return nil, err
	}
	if recipe.AuthorID != actorID {
		return nil, ErrNotRecipeAuthor
	}

	tagIDs, specs, err := s.validator.Validate(ctx, in.Tags, in.Ingredients)
	if err != nil {
		return nil, err
	}

	if in.Name != nil {
		recipe.Name = *in.Name
	}
	if in.Image != nil {
		recipe.Image = *in.Image
	}
	if in.Text != nil {
		recipe.Text = *in.Text
	}
	if in.CookingTime != nil {
		recipe.CookingTime = *in.CookingTime
	}

	if err := s.repo.Update(ctx, recipe, tagIDs, toJoinRows(specs)); err != nil {
		if errors.Is(err, repository.ErrDuplicateRecipeName) {
			return nil, ErrRecipeNameTaken
		}
		return nil, err
	}

	return s.GetByID(ctx, recipeID)
}

func (s *recipeService) Delete(ctx context.Context, actorID, recipeID int64) error {
	recipe, err := s.GetByID(ctx, recipeID)
	if err != nil {
		return err
	}
	if recipe.AuthorID != actorID {
		return ErrNotRecipeAuthor
	}
	return s.repo.Delete(ctx, recipeID)
}

func toJoinRows(specs []validation.IngredientSpec) []models.RecipeIngredient {
	rows := make([]models.RecipeIngredient, 0, len(specs))
	for _, spec := range specs {
		rows = append(rows, models.RecipeIngredient{
			IngredientID: spec.IngredientID,
			Amount:       spec.Amount,
		})
	}
	return rows
}
