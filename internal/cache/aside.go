package cache

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"github.com/wonny/stockgrade/pkg/logger"
)

// Store is the key/value store behind the cache-aside accessor.
// Expiry is enforced by the store, never re-checked here.
type Store interface {
	// Get returns the stored bytes, or found=false when the key is absent or expired
	Get(ctx context.Context, key string) (value []byte, found bool, err error)

	// Set stores value under key for ttl
	Set(ctx context.Context, key string, value []byte, ttl time.Duration) error
}

// Aside implements the cache-aside read path
// ⭐ SSOT: 캐시 조회/저장 정책(fail open)은 여기서만
type Aside struct {
	store  Store
	logger *logger.Logger
}

// NewAside creates a cache-aside accessor over store
func NewAside(store Store, log *logger.Logger) *Aside {
	return &Aside{
		store:  store,
		logger: log,
	}
}

// Fetch returns the cached payload for key, or computes it, stores it with ttl
// and returns it. Store failures are logged and never returned; compute errors
// are returned as-is and nothing is written.
//
// The value returned on a miss is decoded from the same bytes that were written,
// so a later hit yields exactly the same shape.
func Fetch[T any](ctx context.Context, a *Aside, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	if cached, ok := lookup[T](ctx, a, key); ok {
		return cached, nil
	}

	a.logger.WithContext(ctx).WithField("key", key).Debug("Cache miss")

	return Refresh(ctx, a, key, ttl, compute)
}

// Refresh computes the payload and overwrites key regardless of what is cached
func Refresh[T any](ctx context.Context, a *Aside, key string, ttl time.Duration, compute func(ctx context.Context) (T, error)) (T, error) {
	var zero T

	value, err := compute(ctx)
	if err != nil {
		return zero, err
	}

	data, err := json.Marshal(value)
	if err != nil {
		return zero, fmt.Errorf("encode %s: %w", key, err)
	}

	if err := a.store.Set(ctx, key, data, ttl); err != nil {
		a.logger.WithContext(ctx).WithError(err).WithField("key", key).Warn("Cache write failed, serving uncached result")
	}

	var out T
	if err := json.Unmarshal(data, &out); err != nil {
		return zero, fmt.Errorf("decode %s: %w", key, err)
	}
	return out, nil
}

// lookup reads and decodes key; any failure counts as a miss
func lookup[T any](ctx context.Context, a *Aside, key string) (T, bool) {
	var out T

	data, found, err := a.store.Get(ctx, key)
	if err != nil {
		a.logger.WithContext(ctx).WithError(err).WithField("key", key).Warn("Cache read failed, falling through")
		return out, false
	}
	if !found || len(data) == 0 {
		return out, false
	}

	if err := json.Unmarshal(data, &out); err != nil {
		a.logger.WithContext(ctx).WithError(err).WithField("key", key).Warn("Cached payload unreadable, recomputing")
		var zero T
		return zero, false
	}

	a.logger.WithContext(ctx).WithField("key", key).Debug("Cache hit")
	return out, true
}
