package service

import (
	"context"
	"errors"

	"foodgram/internal/api/models"
	"foodgram/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrRecipeNotFound  = errors.New("recipe not found")
	ErrAlreadyFavorite = errors.New("recipe already in favorites")
	ErrNotInFavorites  = errors.New("recipe not found in favorites")
	ErrAlreadyInCart   = errors.New("recipe already in shopping cart")
	ErrNotInCart       = errors.New("recipe not found in shopping cart")
)

// RecipeToggleService is one add/remove toggle over a unique (user, recipe)
// pair. Favorites and the shopping cart are the same machine with different
// wording, so it is instantiated twice.
type RecipeToggleService interface {
	Add(ctx context.Context, userID, recipeID int64) (*models.Recipe, error)
	Remove(ctx context.Context, userID, recipeID int64) error
	RecipeIDs(ctx context.Context, userID int64) ([]int64, error)
}

type recipeToggleService struct {
	pairs      repository.PairStore
	recipes    repository.RecipeRepository
	errAlready error
	errMissing error
}

func NewFavoriteService(pairs repository.PairStore, recipes repository.RecipeRepository) RecipeToggleService {
	return &recipeToggleService{
		pairs:      pairs,
		recipes:    recipes,
		errAlready: ErrAlreadyFavorite,
		errMissing: ErrNotInFavorites,
	}
}

func NewCartService(pairs repository.PairStore, recipes repository.RecipeRepository) RecipeToggleService {
	return &recipeToggleService{
		pairs:      pairs,
		recipes:    recipes,
		errAlready: ErrAlreadyInCart,
		errMissing: ErrNotInCart,
	}
}

// Add creates the pair. The unique constraint is the concurrency guard: when
// two duplicate submissions race, the loser gets the repository's duplicate
// error and is reported as "already in list", never a second row.
func (s *recipeToggleService) Add(ctx context.Context, userID, recipeID int64) (*models.Recipe, error) {
	recipe, err := s.recipes.GetByID(ctx, recipeID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrRecipeNotFound
		}
		return nil, err
	}

	if err := s.pairs.Add(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrDuplicatePair) {
			return nil, s.errAlready
		}
		return nil, err
	}
	return recipe, nil
}

// Remove deletes the pair if present. Removing twice yields the missing
// error the second time, never a crash.
func (s *recipeToggleService) Remove(ctx context.Context, userID, recipeID int64) error {
	if _, err := s.recipes.GetByID(ctx, recipeID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrRecipeNotFound
		}
		return err
	}

	if err := s.pairs.Remove(ctx, userID, recipeID); err != nil {
		if errors.Is(err, repository.ErrPairNotFound) {
			return s.errMissing
		}
		return err
	}
	return nil
}

// RecipeIDs lists the recipe ids in the user's toggle list, used to annotate
// recipe responses with is_favorited / is_in_shopping_cart.
func (s *recipeToggleService) RecipeIDs(ctx context.Context, userID int64) ([]int64, error) {
	return s.pairs.ObjectIDs(ctx, userID)
}
