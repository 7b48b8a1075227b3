package redisstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/satishkumarramakoti33/sb-works/internal/storage"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

const refreshTokenPrefix = "refresh_token:"

// TokenRepo implements storage.RefreshTokenRepository on Redis. Tokens are
// opaque strings keyed as refresh_token:<token> with the owning user ID as
// value; expiry is handled by Redis TTLs.
type TokenRepo struct {
	client *redis.Client
}

// NewTokenRepo creates a new TokenRepo.
func NewTokenRepo(client *redis.Client) *TokenRepo {
	return &TokenRepo{client: client}
}

var _ storage.RefreshTokenRepository = (*TokenRepo)(nil)

func (r *TokenRepo) Save(ctx context.Context, token string, userID uuid.UUID, ttl time.Duration) error {
	if err := r.client.Set(ctx, refreshTokenPrefix+token, userID.String(), ttl).Err(); err != nil {
		return fmt.Errorf("failed to store refresh token: %w", err)
	}
	return nil
}

func (r *TokenRepo) Resolve(ctx context.Context, token string) (uuid.UUID, error) {
	val, err := r.client.Get(ctx, refreshTokenPrefix+token).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return uuid.Nil, storage.ErrNotFound
		}
		return uuid.Nil, fmt.Errorf("failed to look up refresh token: %w", err)
	}
	userID, err := uuid.Parse(val)
	if err != nil {
		return uuid.Nil, fmt.Errorf("corrupt refresh token entry: %w", err)
	}
	return userID, nil
}

func (r *TokenRepo) Delete(ctx context.Context, token string) error {
	if err := r.client.Del(ctx, refreshTokenPrefix+token).Err(); err != nil {
		return fmt.Errorf("failed to delete refresh token: %w", err)
	}
	return nil
}
