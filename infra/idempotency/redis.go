// Package idempotency implements the Idempotency-Key reservation store on
// Redis. A key is reserved once; replays within the TTL are refused before
// the workflow runs.
package idempotency

import (
	"context"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store reserves idempotency keys with a TTL.
type Store struct {
	client *redis.Client
	ttl    time.Duration
}

// New creates a store from a Redis URL
// (e.g. "redis://localhost:6379/0").
func New(url string, ttl time.Duration) (*Store, error) {
	opts, err := redis.ParseURL(url)
	if err != nil {
		return nil, fmt.Errorf("parse redis url: %w", err)
	}
	return &Store{client: redis.NewClient(opts), ttl: ttl}, nil
}

// Reserve attempts to claim the key. Returns false when the key was already
// claimed within the TTL.
func (s *Store) Reserve(ctx context.Context, key string) (bool, error) {
	return s.client.SetNX(ctx, "idem:"+key, 1, s.ttl).Result()
}

// Release frees a reserved key, letting the caller retry after a failed
// commit attempt.
func (s *Store) Release(ctx context.Context, key string) error {
	return s.client.Del(ctx, "idem:"+key).Err()
}

// Close releases the client connection.
func (s *Store) Close() error {
	return s.client.Close()
}
