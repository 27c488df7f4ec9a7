package repository

import (
	"context"
	"fmt"

	"foodgram/internal/api/models"

	"gorm.io/gorm"
)

// PairStore is the storage side of a toggle relation: a join row whose only
// operations are existence-create and existence-delete of a unique pair.
type PairStore interface {
	Add(ctx context.Context, subjectID, objectID int64) error
	Remove(ctx context.Context, subjectID, objectID int64) error
	Exists(ctx context.Context, subjectID, objectID int64) (bool, error)
	ObjectIDs(ctx context.Context, subjectID int64) ([]int64, error)
}

// pairRepository implements PairStore once for all three toggle joins
// (favorites, carts, subscriptions). The row constructor and column names are
// the only per-relation parts.
type pairRepository[T any] struct {
	db         *gorm.DB
	name       string
	subjectCol string
	objectCol  string
	newRow     func(subjectID, objectID int64) *T
}

func NewFavoriteRepository(db *gorm.DB) PairStore {
	return &pairRepository[models.Favorite]{
		db:         db,
		name:       "favorite",
		subjectCol: "user_id",
		objectCol:  "recipe_id",
		newRow: func(userID, recipeID int64) *models.Favorite {
			return &models.Favorite{UserID: userID, RecipeID: recipeID}
		},
	}
}

func NewCartRepository(db *gorm.DB) PairStore {
	return &pairRepository[models.Cart]{
		db:         db,
		name:       "cart",
		subjectCol: "user_id",
		objectCol:  "recipe_id",
		newRow: func(userID, recipeID int64) *models.Cart {
			return &models.Cart{UserID: userID, RecipeID: recipeID}
		},
	}
}

func NewSubscriptionRepository(db *gorm.DB) PairStore {
	return &pairRepository[models.Subscription]{
		db:         db,
		name:       "subscription",
		subjectCol: "follower_id",
		objectCol:  "following_id",
		newRow: func(followerID, followingID int64) *models.Subscription {
			return &models.Subscription{FollowerID: followerID, FollowingID: followingID}
		},
	}
}

func (r *pairRepository[T]) Add(ctx context.Context, subjectID, objectID int64) error {
	row := r.newRow(subjectID, objectID)
	if err := r.db.WithContext(ctx).Create(row).Error; err != nil {
		if isUniqueViolation(err) {
			return ErrDuplicatePair
		}
		return fmt.Errorf("add %s: %w", r.name, err)
	}
	return nil
}

func (r *pairRepository[T]) Remove(ctx context.Context, subjectID, objectID int64) error {
	var row T
	result := r.db.WithContext(ctx).
		Where(r.subjectCol+" = ? AND "+r.objectCol+" = ?", subjectID, objectID).
		Delete(&row)

	if result.Error != nil {
		return fmt.Errorf("remove %s: %w", r.name, result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrPairNotFound
	}
	return nil
}

func (r *pairRepository[T]) Exists(ctx context.Context, subjectID, objectID int64) (bool, error) {
	var row T
	var count int64
	if err := r.db.WithContext(ctx).
		Model(&row).
		Where(r.subjectCol+" = ? AND "+r.objectCol+" = ?", subjectID, objectID).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("check %s: %w", r.name, err)
	}
	return count > 0, nil
}

// ObjectIDs returns every object id paired with the subject, newest first.
func (r *pairRepository[T]) ObjectIDs(ctx context.Context, subjectID int64) ([]int64, error) {
	var row T
	var ids []int64
	if err := r.db.WithContext(ctx).
		Model(&row).
		Where(r.subjectCol+" = ?", subjectID).
		Order("added_at DESC").
		Pluck(r.objectCol, &ids).Error; err != nil {
		return nil, fmt.Errorf("list %s: %w", r.name, err)
	}
	return ids, nil
}
