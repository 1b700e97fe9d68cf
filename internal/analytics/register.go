package analytics

import (
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/isacvale/fcc-timestamp/internal/messaging"
	"go.uber.org/zap"
)

// Publishers holds the typed publish functions used by the HTTP handlers.
type Publishers struct {
	URLCreated  messaging.Publish[URLCreatedEvent]
	URLAccessed messaging.Publish[URLAccessedEvent]
}

// NewPublishers binds typed publish functions to publisher.
func NewPublishers(publisher message.Publisher) *Publishers {
	return &Publishers{
		URLCreated:  messaging.NewPublishFunc[URLCreatedEvent](publisher, TopicURLCreated),
		URLAccessed: messaging.NewPublishFunc[URLAccessedEvent](publisher, TopicURLAccessed),
	}
}

// DiscardPublishers returns publishers that drop every event.
func DiscardPublishers() *Publishers {
	return &Publishers{
		URLCreated:  messaging.Discard[URLCreatedEvent](),
		URLAccessed: messaging.Discard[URLAccessedEvent](),
	}
}

// RegisterConsumers adds one consumer per analytics topic to group, each
// persisting into store.
func RegisterConsumers(
	group *messaging.ConsumerGroup,
	subscriber message.Subscriber,
	store Store,
	logger *zap.Logger,
) {
	group.Add(messaging.NewConsumer[URLCreatedEvent](subscriber, TopicURLCreated, store.SaveURLCreated, logger))
	group.Add(messaging.NewConsumer[URLAccessedEvent](subscriber, TopicURLAccessed, store.SaveURLAccessed, logger))
}
