package repository

import (
	"context"
	"fmt"

	"foodgram/internal/api/models"

	"gorm.io/gorm"
)

type UserRepository interface {
	Create(ctx context.Context, user *models.User) error
	FindByID(ctx context.Context, id int64) (*models.User, error)
	FindWithRecipes(ctx context.Context, id int64) (*models.User, error)
	FindByEmail(ctx context.Context, email string) (*models.User, error)
	FindByUsername(ctx context.Context, username string) (*models.User, error)
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	UpdateAvatar(ctx context.Context, id int64, avatar *string) error
	Following(ctx context.Context, followerID int64, page, pageSize int) ([]models.User, int64, error)
}

type userRepository struct {
	db *gorm.DB
}

func NewUserRepository(db *gorm.DB) UserRepository {
	return &userRepository{db: db}
}

func (r *userRepository) Create(ctx context.Context, user *models.User) error {
	if err := r.db.WithContext(ctx).Create(user).Error; err != nil {
		return fmt.Errorf("create user: %w", err)
	}
	return nil
}

func (r *userRepository) FindByID(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

// FindWithRecipes loads a user together with their recipes, newest first.
func (r *userRepository) FindWithRecipes(ctx context.Context, id int64) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		First(&u, id).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByEmail(ctx context.Context, email string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("email = ?", email).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) FindByUsername(ctx context.Context, username string) (*models.User, error) {
	var u models.User
	if err := r.db.WithContext(ctx).Where("username = ?", username).First(&u).Error; err != nil {
		return nil, err
	}
	return &u, nil
}

func (r *userRepository) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	var list []models.User
	var total int64

	if err := r.db.WithContext(ctx).Model(&models.User{}).Count(&total).Error; err != nil {
		return nil, 0, err
	}

	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Order("id asc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, err
	}
	return list, total, nil
}

func (r *userRepository) UpdateAvatar(ctx context.Context, id int64, avatar *string) error {
	if err := r.db.WithContext(ctx).
		Model(&models.User{}).
		Where("id = ?", id).
		Update("avatar", avatar).Error; err != nil {
		return fmt.Errorf("update avatar: %w", err)
	}
	return nil
}

// Following returns the users the follower is subscribed to, with their
// recipes preloaded newest first for the subscriptions representation.
func (r *userRepository) Following(ctx context.Context, followerID int64, page, pageSize int) ([]models.User, int64, error) {
	var total int64
	base := r.db.WithContext(ctx).
		Model(&models.User{}).
		Joins("JOIN subscriptions s ON s.following_id = users.id").
		Where("s.follower_id = ?", followerID)

	if err := base.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("count following: %w", err)
	}

	var list []models.User
	offset := (page - 1) * pageSize
	if err := r.db.WithContext(ctx).
		Joins("JOIN subscriptions s ON s.following_id = users.id").
		Where("s.follower_id = ?", followerID).
		Preload("Recipes", func(db *gorm.DB) *gorm.DB {
			return db.Order("created_at desc")
		}).
		Order("s.added_at desc").
		Limit(pageSize).
		Offset(offset).
		Find(&list).Error; err != nil {
		return nil, 0, fmt.Errorf("list following: %w", err)
	}
	return list, total, nil
}
