package store

import (
	"context"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/analytics"
	"go.uber.org/zap"
)

// Log is an analytics.Store that writes each event as one structured log
// line. It backs the consumer when no document store is configured.
type Log struct {
	logger *zap.Logger
}

// NewLog creates a logging analytics store.
func NewLog(logger *zap.Logger) *Log {
	return &Log{logger: logger.Named("analytics")}
}

func (l *Log) SaveURLCreated(_ context.Context, event *analytics.URLCreatedEvent) error {
	l.write(analytics.TopicURLCreated, event.Code, event.Original, event.CreatedAt,
		zap.String("client_ip", event.ClientIP),
	)

	return nil
}

func (l *Log) SaveURLAccessed(_ context.Context, event *analytics.URLAccessedEvent) error {
	l.write(analytics.TopicURLAccessed, event.Code, event.Target, event.AccessedAt,
		zap.String("client_ip", event.ClientIP),
		zap.String("referrer", event.Referrer),
	)

	return nil
}

func (l *Log) write(kind, code, url string, at time.Time, extra ...zap.Field) {
	fields := append([]zap.Field{
		zap.String("code", code),
		zap.String("url", url),
		zap.Time("occurred_at", at),
	}, extra...)

	l.logger.Info(kind, fields...)
}

// Compile-time check.
var _ analytics.Store = (*Log)(nil)
