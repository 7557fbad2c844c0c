// Package verification stores short-lived email verification codes in an
// external key-value collaborator. The store is modeled as a tiny interface
// so the auth service can be tested with an in-memory fake.
package verification

import (
	"context"
	"errors"
	"time"

	internal "github.com/aditirto/identity-service/internal"
	"github.com/redis/go-redis/v9"
)

// ErrCodeNotFound is returned when no code is stored for an email, either
// because none was issued or because it expired.
var ErrCodeNotFound = errors.New("verification code not found")

type CodeStore interface {
	Set(ctx context.Context, email, code string, ttl time.Duration) error
	Get(ctx context.Context, email string) (string, error)
}

const keyPrefix = "verify:code:"

// RedisStore keeps codes in Redis; expiry is delegated to the key TTL.
type RedisStore struct {
	client *redis.Client
}

func NewRedisStore(client *redis.Client) *RedisStore {
	return &RedisStore{client: client}
}

func (s *RedisStore) Set(ctx context.Context, email, code string, ttl time.Duration) error {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()
	return s.client.Set(ctx, keyPrefix+email, code, ttl).Err()
}

func (s *RedisStore) Get(ctx context.Context, email string) (string, error) {
	ctx, cancel := internal.WithTimeout(ctx, 0)
	defer cancel()
	code, err := s.client.Get(ctx, keyPrefix+email).Result()
	if err != nil {
		if errors.Is(err, redis.Nil) {
			return "", ErrCodeNotFound
		}
		return "", err
	}
	return code, nil
}
