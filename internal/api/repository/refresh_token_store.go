package repository

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/redis/go-redis/v9"
)

var ErrRefreshTokenNotFound = errors.New("refresh token not found")

// RefreshTokenStore keeps opaque refresh tokens with their owner. Redis is
// the backing store: expiry is native, so no sweep job is needed.
type RefreshTokenStore interface {
	Save(ctx context.Context, token string, userID int64, ttl time.Duration) error
	Lookup(ctx context.Context, token string) (int64, error)
	Delete(ctx context.Context, token string) error
}

type redisRefreshTokenStore struct {
	client *redis.Client
}

func NewRefreshTokenStore(client *redis.Client) RefreshTokenStore {
	return &redisRefreshTokenStore{client: client}
}

func refreshKey(token string) string {
	return "refresh:" + token
}

func (s *redisRefreshTokenStore) Save(ctx context.Context, token string, userID int64, ttl time.Duration) error {
	if err := s.client.Set(ctx, refreshKey(token), userID, ttl).Err(); err != nil {
		return fmt.Errorf("save refresh token: %w", err)
	}
	return nil
}

func (s *redisRefreshTokenStore) Lookup(ctx context.Context, token string) (int64, error) {
	value, err := s.client.Get(ctx, refreshKey(token)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return 0, ErrRefreshTokenNotFound
		}
		return 0, fmt.Errorf("lookup refresh token: %w", err)
	}
	userID, err := strconv.ParseInt(value, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("corrupt refresh token value: %w", err)
	}
	return userID, nil
}

func (s *redisRefreshTokenStore) Delete(ctx context.Context, token string) error {
	if err := s.client.Del(ctx, refreshKey(token)).Err(); err != nil {
		return fmt.Errorf("delete refresh token: %w", err)
	}
	return nil
}
