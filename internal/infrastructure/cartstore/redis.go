// internal/infrastructure/cartstore/redis.go
package cartstore

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Redis implements the cart blob store on a Redis key with a session
// TTL. The blob is written as-is; the store knows nothing about its
// shape.
type Redis struct {
	client *redis.Client
	ttl    time.Duration
}

// NewRedis creates a Redis-backed cart store. Blobs expire after ttl so
// abandoned guest carts eventually disappear on their own.
func NewRedis(client *redis.Client, ttl time.Duration) *Redis {
	return &Redis{
		client: client,
		ttl:    ttl,
	}
}

// Get returns the stored blob, or ok=false when the key does not exist
func (s *Redis) Get(ctx context.Context, key string) ([]byte, bool, error) {
	blob, err := s.client.Get(ctx, key).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("reading cart blob: %w", err)
	}
	return blob, true, nil
}

// Set stores the blob, refreshing the expiration
func (s *Redis) Set(ctx context.Context, key string, blob []byte) error {
	if err := s.client.Set(ctx, key, blob, s.ttl).Err(); err != nil {
		return fmt.Errorf("writing cart blob: %w", err)
	}
	return nil
}

// Remove deletes the blob. Removing a missing key is not an error.
func (s *Redis) Remove(ctx context.Context, key string) error {
	if err := s.client.Del(ctx, key).Err(); err != nil {
		return fmt.Errorf("removing cart blob: %w", err)
	}
	return nil
}
