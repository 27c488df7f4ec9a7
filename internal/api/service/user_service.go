package service

import (
	"context"
	"errors"
	"strings"

	"foodgram/internal/api/models"
	"foodgram/internal/api/repository"

	"gorm.io/gorm"
)

var ErrEmptyAvatar = errors.New("avatar must not be empty")

type UserService interface {
	GetByID(ctx context.Context, id int64) (*models.User, error)
	List(ctx context.Context, page, pageSize int) ([]models.User, int64, error)
	SetAvatar(ctx context.Context, userID int64, avatar string) error
	DeleteAvatar(ctx context.Context, userID int64) error
}

type userService struct {
	repo repository.UserRepository
}

func NewUserService(repo repository.UserRepository) UserService {
	return &userService{repo: repo}
}

func (s *userService) GetByID(ctx context.Context, id int64) (*models.User, error) {
	user, err := s.repo.FindByID(ctx, id)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}
	return user, nil
}

func (s *userService) List(ctx context.Context, page, pageSize int) ([]models.User, int64, error) {
	return s.repo.List(ctx, page, pageSize)
}

func (s *userService) SetAvatar(ctx context.Context, userID int64, avatar string) error {
	if strings.TrimSpace(avatar) == "" {
		return ErrEmptyAvatar
	}
	return s.repo.UpdateAvatar(ctx, userID, &avatar)
}

func (s *userService) DeleteAvatar(ctx context.Context, userID int64) error {
	return s.repo.UpdateAvatar(ctx, userID, nil)
}
