package store

import (
	"context"
	"fmt"
	"time"

	"github.com/isacvale/fcc-timestamp/internal/analytics"
	"go.mongodb.org/mongo-driver/mongo"
)

// EventsCollection holds one document per analytics event.
const EventsCollection = "url_events"

type eventDocument struct {
	Type       string    `bson:"type"`
	Code       string    `bson:"code"`
	URL        string    `bson:"url"`
	OccurredAt time.Time `bson:"occurred_at"`
	ClientIP   string    `bson:"client_ip,omitempty"`
	UserAgent  string    `bson:"user_agent,omitempty"`
	Referrer   string    `bson:"referrer,omitempty"`
}

// Mongo is an analytics.Store appending events to a MongoDB collection.
type Mongo struct {
	events *mongo.Collection
}

// NewMongo creates a MongoDB-backed analytics store.
func NewMongo(db *mongo.Database) *Mongo {
	return &Mongo{events: db.Collection(EventsCollection)}
}

func (m *Mongo) SaveURLCreated(ctx context.Context, event *analytics.URLCreatedEvent) error {
	return m.insert(ctx, eventDocument{
		Type:       analytics.TopicURLCreated,
		Code:       event.Code,
		URL:        event.Original,
		OccurredAt: event.CreatedAt,
		ClientIP:   event.ClientIP,
		UserAgent:  event.UserAgent,
	})
}

func (m *Mongo) SaveURLAccessed(ctx context.Context, event *analytics.URLAccessedEvent) error {
	return m.insert(ctx, eventDocument{
		Type:       analytics.TopicURLAccessed,
		Code:       event.Code,
		URL:        event.Target,
		OccurredAt: event.AccessedAt,
		ClientIP:   event.ClientIP,
		UserAgent:  event.UserAgent,
		Referrer:   event.Referrer,
	})
}

func (m *Mongo) insert(ctx context.Context, doc eventDocument) error {
	if _, err := m.events.InsertOne(ctx, doc); err != nil {
		return fmt.Errorf("insert %s event: %w", doc.Type, err)
	}

	return nil
}

// Compile-time check.
var _ analytics.Store = (*Mongo)(nil)
