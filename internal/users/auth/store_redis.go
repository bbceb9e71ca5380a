// Copyright (c) 2026 Hyoka. All rights reserved.
// Author: tai.buivan.jp@gmail.com

package auth

import (
	"context"
	"errors"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/taibuivan/hyoka/internal/platform/apperr"
	"github.com/taibuivan/hyoka/internal/platform/constants"
)

// ErrCodeNotFound is returned when no confirmation code exists for a user,
// either because none was issued or because it expired.
var ErrCodeNotFound = errors.New("auth: confirmation code not found")

// RedisCodeRepository implements CodeRepository on Redis. The key TTL is
// the single source of truth for code expiry; no cleanup job is needed.
type RedisCodeRepository struct {
	client *redis.Client
}

// NewRedisCodeRepository creates the Redis-backed confirmation code store.
func NewRedisCodeRepository(client *redis.Client) *RedisCodeRepository {
	return &RedisCodeRepository{client: client}
}

// Save stores the bcrypt hash of a confirmation code, replacing any code
// previously issued to the same user.
func (repository *RedisCodeRepository) Save(ctx context.Context, userID, codeHash string, ttl time.Duration) error {
	if err := repository.client.Set(ctx, codeKey(userID), codeHash, ttl).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

// Get retrieves the stored code hash for a user.
func (repository *RedisCodeRepository) Get(ctx context.Context, userID string) (string, error) {
	hash, err := repository.client.Get(ctx, codeKey(userID)).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCodeNotFound
		}
		return "", apperr.Internal(err)
	}
	return hash, nil
}

// Delete removes the code after a successful exchange, making it single-use.
func (repository *RedisCodeRepository) Delete(ctx context.Context, userID string) error {
	if err := repository.client.Del(ctx, codeKey(userID)).Err(); err != nil {
		return apperr.Internal(err)
	}
	return nil
}

func codeKey(userID string) string {
	return constants.RedisPrefixConfirmCode + userID
}
