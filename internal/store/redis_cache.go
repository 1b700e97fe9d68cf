package store

import (
	"context"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/shortener"
	"github.com/redis/go-redis/v9"
)

// RedisCacheRepository wraps a Repository with Redis caching for reads.
// Cached entries are indexed by creation time so the retention sweep evicts
// them together with the underlying records.
type RedisCacheRepository struct {
	store shortener.Repository
	cache *RedisStore
}

// NewRedisCacheRepository creates a new Redis-cached repository decorator.
func NewRedisCacheRepository(
	store shortener.Repository, client *redis.Client, ttl time.Duration,
) *RedisCacheRepository {
	return &RedisCacheRepository{
		store: store,
		cache: NewRedisStore(client, ttl),
	}
}

// Save stores a short URL in the underlying store and updates the cache.
func (r *RedisCacheRepository) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	if err := r.store.Save(ctx, shortURL); err != nil {
		return err
	}

	// Write-through
	_ = r.cache.put(ctx, shortURL)

	return nil
}

// GetByCode retrieves a short URL by its code, checking cache first.
func (r *RedisCacheRepository) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	if url, err := r.cache.GetByCode(ctx, code); err == nil {
		return url, nil
	}

	url, err := r.store.GetByCode(ctx, code)
	if err != nil {
		return nil, err
	}

	_ = r.cache.put(ctx, url)

	return url, nil
}

// DeleteOlderThan deletes from the underlying store, then evicts cached
// entries created before cutoff.
func (r *RedisCacheRepository) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	deleted, err := r.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		return 0, err
	}

	// Eviction is best effort; cached entries also carry a TTL.
	_, _ = r.cache.DeleteOlderThan(ctx, cutoff)

	return deleted, nil
}

// Shutdown is a no-op for RedisCacheRepository (client managed externally).
func (r *RedisCacheRepository) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisCacheRepository)(nil)
