package messaging

import (
	"context"
	"errors"
	"fmt"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

// Runnable is anything the group can start and stop.
type Runnable interface {
	Start(ctx context.Context) error
	Shutdown() error
}

// ConsumerGroup runs consumers that share one subscriber and closes the
// subscriber after the last consumer stops.
type ConsumerGroup struct {
	consumers  []Runnable
	subscriber message.Subscriber
	logger     *zap.Logger
}

// NewConsumerGroup creates an empty group over subscriber.
func NewConsumerGroup(subscriber message.Subscriber, logger *zap.Logger) *ConsumerGroup {
	return &ConsumerGroup{
		subscriber: subscriber,
		logger:     logger,
	}
}

// Add registers consumers.
func (g *ConsumerGroup) Add(consumers ...Runnable) {
	g.consumers = append(g.consumers, consumers...)
}

// Len returns the number of registered consumers.
func (g *ConsumerGroup) Len() int {
	return len(g.consumers)
}

// Start starts every consumer. If one fails, those already running are
// stopped and the error is returned.
func (g *ConsumerGroup) Start(ctx context.Context) error {
	for i, consumer := range g.consumers {
		if err := consumer.Start(ctx); err != nil {
			stopErr := stopAll(g.consumers[:i])

			return errors.Join(fmt.Errorf("start %s: %w", describe(consumer, i), err), stopErr)
		}
	}

	g.logger.Info("consumers started", zap.Strings("topics", g.topics()))

	return nil
}

// Shutdown stops consumers in reverse order, then closes the subscriber.
// Every error encountered is returned.
func (g *ConsumerGroup) Shutdown() error {
	g.logger.Info("stopping consumers", zap.Int("count", len(g.consumers)))

	err := stopAll(g.consumers)

	if closeErr := g.subscriber.Close(); closeErr != nil {
		err = errors.Join(err, fmt.Errorf("close subscriber: %w", closeErr))
	}

	return err
}

func (g *ConsumerGroup) topics() []string {
	topics := make([]string, 0, len(g.consumers))
	for i, consumer := range g.consumers {
		topics = append(topics, describe(consumer, i))
	}

	return topics
}

func stopAll(consumers []Runnable) error {
	var errs []error

	for i := len(consumers) - 1; i >= 0; i-- {
		if err := consumers[i].Shutdown(); err != nil {
			errs = append(errs, err)
		}
	}

	return errors.Join(errs...)
}

// describe names a consumer by topic when it has one.
func describe(consumer Runnable, index int) string {
	if t, ok := consumer.(interface{ Topic() string }); ok {
		return t.Topic()
	}

	return fmt.Sprintf("consumer %d", index)
}
