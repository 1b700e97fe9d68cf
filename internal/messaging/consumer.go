package messaging

import (
	"context"
	"encoding/json"
	"sync/atomic"
	"time"

	"github.com/ThreeDotsLabs/watermill/message"
	"go.uber.org/zap"
)

const defaultHandlerTimeout = 5 * time.Second

// Handler processes one decoded event.
type Handler[T any] func(ctx context.Context, event *T) error

// Stats counts what a consumer did with the messages it received.
type Stats struct {
	Handled  int64
	Retried  int64
	Rejected int64
}

// Consumer decodes JSON messages from one topic into T and hands them to a
// Handler. Handler failures are nacked so the broker redelivers them.
// Payloads that do not decode are acked and dropped: redelivery cannot fix them.
type Consumer[T any] struct {
	subscriber message.Subscriber
	topic      string
	handler    Handler[T]
	logger     *zap.Logger
	timeout    time.Duration

	handled  atomic.Int64
	retried  atomic.Int64
	rejected atomic.Int64

	cancel context.CancelFunc
	done   chan struct{}
}

// ConsumerOption customizes a Consumer.
type ConsumerOption func(*consumerConfig)

type consumerConfig struct {
	timeout time.Duration
}

// WithHandlerTimeout bounds each handler call.
func WithHandlerTimeout(timeout time.Duration) ConsumerOption {
	return func(c *consumerConfig) { c.timeout = timeout }
}

// NewConsumer creates a consumer of topic.
func NewConsumer[T any](
	subscriber message.Subscriber,
	topic string,
	handler Handler[T],
	logger *zap.Logger,
	opts ...ConsumerOption,
) *Consumer[T] {
	cfg := consumerConfig{timeout: defaultHandlerTimeout}
	for _, opt := range opts {
		opt(&cfg)
	}

	return &Consumer[T]{
		subscriber: subscriber,
		topic:      topic,
		handler:    handler,
		logger:     logger.With(zap.String("topic", topic)),
		timeout:    cfg.timeout,
		done:       make(chan struct{}),
	}
}

// Topic returns the subscribed topic.
func (c *Consumer[T]) Topic() string {
	return c.topic
}

// Stats returns a snapshot of the message counters.
func (c *Consumer[T]) Stats() Stats {
	return Stats{
		Handled:  c.handled.Load(),
		Retried:  c.retried.Load(),
		Rejected: c.rejected.Load(),
	}
}

// Start subscribes and consumes in the background until ctx is cancelled
// or Shutdown is called.
func (c *Consumer[T]) Start(ctx context.Context) error {
	ctx, c.cancel = context.WithCancel(ctx)

	msgs, err := c.subscriber.Subscribe(ctx, c.topic)
	if err != nil {
		c.cancel()
		close(c.done)

		return err
	}

	go c.run(ctx, msgs)

	return nil
}

func (c *Consumer[T]) run(ctx context.Context, msgs <-chan *message.Message) {
	defer close(c.done)

	for {
		select {
		case <-ctx.Done():
			return
		case msg, ok := <-msgs:
			if !ok {
				return
			}

			c.process(ctx, msg)
		}
	}
}

func (c *Consumer[T]) process(ctx context.Context, msg *message.Message) {
	log := c.logger.With(zap.String("message_uuid", msg.UUID))

	event := new(T)
	if err := json.Unmarshal(msg.Payload, event); err != nil {
		c.rejected.Add(1)
		log.Warn("dropping undecodable event", zap.Error(err))
		msg.Ack()

		return
	}

	handlerCtx, cancel := context.WithTimeout(ctx, c.timeout)
	defer cancel()

	if err := c.handler(handlerCtx, event); err != nil {
		c.retried.Add(1)
		log.Error("event handler failed, requesting redelivery", zap.Error(err))
		msg.Nack()

		return
	}

	c.handled.Add(1)
	msg.Ack()
	log.Debug("event handled")
}

// Shutdown stops consuming and waits for the message in flight.
func (c *Consumer[T]) Shutdown() error {
	if c.cancel != nil {
		c.cancel()
	}

	<-c.done

	return nil
}
