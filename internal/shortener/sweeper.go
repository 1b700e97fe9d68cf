package shortener

import (
	"context"
	"time"

	"go.uber.org/zap"
)

// Sweeper deletes records that outlived the retention threshold.
type Sweeper struct {
	store     Repository
	retention time.Duration
	logger    *zap.Logger
}

// NewSweeper creates a sweeper. A non-positive retention falls back to DefaultRetention.
func NewSweeper(store Repository, retention time.Duration, logger *zap.Logger) *Sweeper {
	if retention <= 0 {
		retention = DefaultRetention
	}

	return &Sweeper{
		store:     store,
		retention: retention,
		logger:    logger,
	}
}

// Retention returns the age after which records are deleted.
func (s *Sweeper) Retention() time.Duration {
	return s.retention
}

// Cutoff returns the instant before which records are expired at now.
func (s *Sweeper) Cutoff(now time.Time) time.Time {
	minutes := int(s.retention / time.Minute)

	return AddMinutes(now, -minutes).Add(-(s.retention % time.Minute))
}

// Sweep deletes every record created before now minus the retention and
// returns how many were removed. Failures are logged and reported as zero.
func (s *Sweeper) Sweep(ctx context.Context, now time.Time) int64 {
	cutoff := s.Cutoff(now)

	deleted, err := s.store.DeleteOlderThan(ctx, cutoff)
	if err != nil {
		s.logger.Error("retention sweep failed",
			zap.Time("cutoff", cutoff),
			zap.Error(err),
		)

		return 0
	}

	if deleted > 0 {
		s.logger.Info("retention sweep removed records",
			zap.Int64("deleted", deleted),
			zap.Time("cutoff", cutoff),
		)
	}

	return deleted
}
