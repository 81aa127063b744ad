package store

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"

	"github.com/ByteAtATime/firebase-auth-extension/ports"
)

// RedisStore is a Redis implementation of the Store interface
type RedisStore struct {
	client *redis.Client
	prefix string
}

// NewRedisStore creates a new Redis store
func NewRedisStore(client *redis.Client) ports.Store {
	return &RedisStore{
		client: client,
		prefix: "auth:revoked:",
	}
}

// Revoke marks a credential as revoked in Redis
func (s *RedisStore) Revoke(ctx context.Context, credentialID string, expiry time.Duration) error {
	key := s.prefix + credentialID

	// Set key with expiration
	if err := s.client.Set(ctx, key, "1", expiry).Err(); err != nil {
		return fmt.Errorf("failed to revoke credential: %w", err)
	}

	return nil
}

// IsRevoked checks if a credential has been revoked in Redis
func (s *RedisStore) IsRevoked(ctx context.Context, credentialID string) (bool, error) {
	key := s.prefix + credentialID

	val, err := s.client.Exists(ctx, key).Result()
	if err != nil {
		return false, fmt.Errorf("failed to check credential revocation: %w", err)
	}

	return val > 0, nil
}
