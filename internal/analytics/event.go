package analytics

import (
	"context"
	"time"
)

// Topics the server publishes to.
const (
	TopicURLCreated  = "url.created"
	TopicURLAccessed = "url.accessed"
)

// URLCreatedEvent is emitted when a short URL is created.
type URLCreatedEvent struct {
	Code      string    `json:"code"`
	Original  string    `json:"original"`
	CreatedAt time.Time `json:"createdAt"`
	ClientIP  string    `json:"clientIp"`
	UserAgent string    `json:"userAgent"`
}

// URLAccessedEvent is emitted when a short URL is resolved to a redirect.
type URLAccessedEvent struct {
	Code       string    `json:"code"`
	Target     string    `json:"target"`
	AccessedAt time.Time `json:"accessedAt"`
	ClientIP   string    `json:"clientIp"`
	UserAgent  string    `json:"userAgent"`
	Referrer   string    `json:"referrer"`
}

// Store persists consumed events. Returning an error asks the broker to
// redeliver the event.
type Store interface {
	SaveURLCreated(ctx context.Context, event *URLCreatedEvent) error
	SaveURLAccessed(ctx context.Context, event *URLAccessedEvent) error
}
