package service

import (
	"context"
	"errors"

	"foodgram/internal/api/models"
	"foodgram/internal/api/repository"

	"gorm.io/gorm"
)

var (
	ErrUserNotFound      = errors.New("user not found")
	ErrSelfSubscription  = errors.New("cannot subscribe to yourself")
	ErrAlreadySubscribed = errors.New("already subscribed to this user")
	ErrNotSubscribed     = errors.New("was not subscribed to this user")
)

type SubscriptionService interface {
	Subscribe(ctx context.Context, followerID, followingID int64) (*models.User, error)
	Unsubscribe(ctx context.Context, followerID, followingID int64) error
	Subscriptions(ctx context.Context, followerID int64, page, pageSize int) ([]models.User, int64, error)
	FollowingIDs(ctx context.Context, followerID int64) ([]int64, error)
}

type subscriptionService struct {
	pairs repository.PairStore
	users repository.UserRepository
}

func NewSubscriptionService(pairs repository.PairStore, users repository.UserRepository) SubscriptionService {
	return &subscriptionService{pairs: pairs, users: users}
}

// Subscribe follows another user. Self-subscription is rejected before the
// existence check with its own error, regardless of any existing rows.
func (s *subscriptionService) Subscribe(ctx context.Context, followerID, followingID int64) (*models.User, error) {
	if followerID == followingID {
		return nil, ErrSelfSubscription
	}

	target, err := s.users.FindWithRecipes(ctx, followingID)
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrUserNotFound
		}
		return nil, err
	}

	if err := s.pairs.Add(ctx, followerID, followingID); err != nil {
		if errors.Is(err, repository.ErrDuplicatePair) {
			return nil, ErrAlreadySubscribed
		}
		return nil, err
	}
	return target, nil
}

func (s *subscriptionService) Unsubscribe(ctx context.Context, followerID, followingID int64) error {
	if _, err := s.users.FindByID(ctx, followingID); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return ErrUserNotFound
		}
		return err
	}

	if err := s.pairs.Remove(ctx, followerID, followingID); err != nil {
		if errors.Is(err, repository.ErrPairNotFound) {
			return ErrNotSubscribed
		}
		return err
	}
	return nil
}

func (s *subscriptionService) Subscriptions(ctx context.Context, followerID int64, page, pageSize int) ([]models.User, int64, error) {
	return s.users.Following(ctx, followerID, page, pageSize)
}

func (s *subscriptionService) FollowingIDs(ctx context.Context, followerID int64) ([]int64, error) {
	return s.pairs.ObjectIDs(ctx, followerID)
}
