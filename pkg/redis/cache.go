package redis

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/redis/go-redis/v9"
)

// Store is a prefixed byte store on top of Redis with SET ... EX expiry
// ⭐ SSOT: 캐시 키 네임스페이스는 여기서만
type Store struct {
	client *Client
	prefix string
}

// NewStore creates a new cache store
func NewStore(client *Client, prefix string) *Store {
	return &Store{
		client: client,
		prefix: prefix,
	}
}

// Get retrieves a cached value. A missing key is not an error.
func (s *Store) Get(ctx context.Context, key string) ([]byte, bool, error) {
	if !s.client.Enabled() {
		return nil, false, nil
	}

	data, err := s.client.Redis().Get(ctx, s.fullKey(key)).Bytes()
	if errors.Is(err, redis.Nil) {
		return nil, false, nil
	}
	if err != nil {
		return nil, false, fmt.Errorf("redis get %s: %w", key, err)
	}

	return data, true, nil
}

// Set stores a value with TTL
func (s *Store) Set(ctx context.Context, key string, value []byte, ttl time.Duration) error {
	if !s.client.Enabled() {
		return nil
	}

	if err := s.client.Redis().Set(ctx, s.fullKey(key), value, ttl).Err(); err != nil {
		return fmt.Errorf("redis set %s: %w", key, err)
	}
	return nil
}

// Delete removes a cached value
func (s *Store) Delete(ctx context.Context, key string) error {
	if !s.client.Enabled() {
		return nil
	}

	return s.client.Redis().Del(ctx, s.fullKey(key)).Err()
}

func (s *Store) fullKey(key string) string {
	if s.prefix == "" {
		return key
	}
	return fmt.Sprintf("%s:cache:%s", s.prefix, key)
}
