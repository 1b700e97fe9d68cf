package store_test

import (
	"context"
	"testing"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/store"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRateLimitMemoryStore(t *testing.T) {
	ctx := context.Background()

	newStore := func() (*store.RateLimitMemoryStore, *time.Time) {
		now := baseTime

		return store.NewRateLimitMemoryStore(func() time.Time { return now }), &now
	}

	t.Run("counts requests inside the window", func(t *testing.T) {
		s, _ := newStore()

		var counts []int64

		for range 3 {
			count, err := s.Record(ctx, "client:write", time.Minute)
			require.NoError(t, err)

			counts = append(counts, count)
		}

		assert.Equal(t, []int64{1, 2, 3}, counts)
	})

	t.Run("keys are independent", func(t *testing.T) {
		s, _ := newStore()

		_, _ = s.Record(ctx, "a", time.Minute)
		_, _ = s.Record(ctx, "a", time.Minute)

		count, err := s.Record(ctx, "b", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
		assert.Equal(t, 2, s.Keys())
	})

	t.Run("slides past requests older than the window", func(t *testing.T) {
		s, now := newStore()

		_, _ = s.Record(ctx, "a", time.Minute)

		*now = now.Add(40 * time.Second)
		_, _ = s.Record(ctx, "a", time.Minute)

		*now = now.Add(30 * time.Second)
		count, err := s.Record(ctx, "a", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(2), count, "the first request left the window")
	})

	t.Run("a request exactly one window old no longer counts", func(t *testing.T) {
		s, now := newStore()

		_, _ = s.Record(ctx, "a", time.Minute)

		*now = now.Add(time.Minute)
		count, err := s.Record(ctx, "a", time.Minute)

		require.NoError(t, err)
		assert.Equal(t, int64(1), count)
	})
}
