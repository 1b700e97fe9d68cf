package store

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/shortener"
	"github.com/redis/go-redis/v9"
)

const (
	redisKeyPrefix = "shorturl:"
	redisIndexKey  = "shorturl:created"
)

// RedisStore keeps each short URL in a hash and indexes codes by creation
// time in a sorted set scored in Unix microseconds.
type RedisStore struct {
	client   *redis.Client
	prefix   string
	indexKey string
	ttl      time.Duration
}

// NewRedisStore creates a Redis-backed URL store. A positive ttl also expires
// each hash, which is how the cache decorator uses it.
func NewRedisStore(client *redis.Client, ttl time.Duration) *RedisStore {
	return &RedisStore{
		client:   client,
		prefix:   redisKeyPrefix,
		indexKey: redisIndexKey,
		ttl:      ttl,
	}
}

func (r *RedisStore) Save(ctx context.Context, shortURL *shortener.ShortURL) error {
	key := r.prefix + string(shortURL.Code)

	created, err := r.client.HSetNX(ctx, key, "code", string(shortURL.Code)).Result()
	if err != nil {
		return fmt.Errorf("claim code: %w", err)
	}

	if !created {
		return shortener.ErrConflict
	}

	if err := r.put(ctx, shortURL); err != nil {
		r.release(context.WithoutCancel(ctx), shortURL.Code)

		return fmt.Errorf("write short url: %w", err)
	}

	return nil
}

// release drops a claimed code whose record could not be written.
func (r *RedisStore) release(ctx context.Context, code shortener.Code) {
	_ = r.client.Del(ctx, r.prefix+string(code)).Err()
	_ = r.client.ZRem(ctx, r.indexKey, string(code)).Err()
}

func (r *RedisStore) GetByCode(ctx context.Context, code shortener.Code) (*shortener.ShortURL, error) {
	result, err := r.client.HGetAll(ctx, r.prefix+string(code)).Result()
	if err != nil {
		return nil, err
	}

	if len(result) == 0 {
		return nil, shortener.ErrNotFound
	}

	var createdAt time.Time

	if ts, ok := result["created_at"]; ok {
		if nanos, err := strconv.ParseInt(ts, 10, 64); err == nil {
			createdAt = time.Unix(0, nanos).UTC()
		}
	}

	return &shortener.ShortURL{
		Code:      shortener.Code(result["code"]),
		Original:  result["original"],
		CreatedAt: createdAt,
	}, nil
}

// DeleteOlderThan removes records created strictly before cutoff. Index
// scores only carry microseconds, so entries sharing the cutoff's microsecond
// are checked against their stored creation time.
func (r *RedisStore) DeleteOlderThan(ctx context.Context, cutoff time.Time) (int64, error) {
	edge := cutoff.UnixMicro()

	entries, err := r.client.ZRangeByScoreWithScores(ctx, r.indexKey, &redis.ZRangeBy{
		Min: "-inf",
		Max: strconv.FormatInt(edge, 10),
	}).Result()
	if err != nil {
		return 0, fmt.Errorf("scan index: %w", err)
	}

	keys := make([]string, 0, len(entries))
	members := make([]interface{}, 0, len(entries))

	for _, entry := range entries {
		code, ok := entry.Member.(string)
		if !ok {
			continue
		}

		if int64(entry.Score) >= edge {
			expired, err := r.createdBefore(ctx, code, cutoff)
			if err != nil {
				return 0, err
			}

			if !expired {
				continue
			}
		}

		keys = append(keys, r.prefix+code)
		members = append(members, code)
	}

	if len(keys) == 0 {
		return 0, nil
	}

	pipe := r.client.TxPipeline()
	deleted := pipe.Del(ctx, keys...)
	pipe.ZRem(ctx, r.indexKey, members...)

	if _, err := pipe.Exec(ctx); err != nil {
		return 0, fmt.Errorf("delete expired: %w", err)
	}

	return deleted.Val(), nil
}

// createdBefore reports whether the stored record for code predates cutoff.
// A missing hash counts as expired so its index entry is cleared.
func (r *RedisStore) createdBefore(ctx context.Context, code string, cutoff time.Time) (bool, error) {
	ts, err := r.client.HGet(ctx, r.prefix+code, "created_at").Result()
	if errors.Is(err, redis.Nil) {
		return true, nil
	}

	if err != nil {
		return false, fmt.Errorf("read created_at: %w", err)
	}

	nanos, err := strconv.ParseInt(ts, 10, 64)
	if err != nil {
		return true, nil
	}

	return time.Unix(0, nanos).Before(cutoff), nil
}

// put writes the record unconditionally.
func (r *RedisStore) put(ctx context.Context, url *shortener.ShortURL) error {
	key := r.prefix + string(url.Code)

	pipe := r.client.TxPipeline()
	pipe.HSet(ctx, key, map[string]interface{}{
		"code":       string(url.Code),
		"original":   url.Original,
		"created_at": url.CreatedAt.UnixNano(),
	})

	if r.ttl > 0 {
		pipe.Expire(ctx, key, r.ttl)
	}

	pipe.ZAdd(ctx, r.indexKey, redis.Z{
		Score:  float64(url.CreatedAt.UnixMicro()),
		Member: string(url.Code),
	})

	_, err := pipe.Exec(ctx)

	return err
}

// Shutdown is a no-op for RedisStore (client managed externally).
func (r *RedisStore) Shutdown() error {
	return nil
}

// Compile-time check.
var _ shortener.Repository = (*RedisStore)(nil)
