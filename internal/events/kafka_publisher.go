package events

import (
	"context"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/middleware"
	kafkago "github.com/segmentio/kafka-go"
)

// MessageWriter is the subset of *kafkago.Writer the publisher needs.
type MessageWriter interface {
	WriteMessages(ctx context.Context, msgs ...kafkago.Message) error
	Close() error
}

// KafkaPublisher writes each event to the topic prefix+event name, keyed by
// aggregate id so events for one transaction or invoice stay ordered.
type KafkaPublisher struct {
	writer      MessageWriter
	topicPrefix string
	now         func() time.Time
}

// KafkaOption configures a KafkaPublisher.
type KafkaOption func(*KafkaPublisher)

// WithMessageWriter replaces the default kafka-go writer.
func WithMessageWriter(w MessageWriter) KafkaOption {
	return func(p *KafkaPublisher) { p.writer = w }
}

// WithPublishClock overrides the clock used for occurredAt.
func WithPublishClock(now func() time.Time) KafkaOption {
	return func(p *KafkaPublisher) { p.now = now }
}

// NewKafkaPublisher creates a publisher for the given brokers. The writer has
// no fixed topic; each message names its own.
func NewKafkaPublisher(brokers []string, topicPrefix string, opts ...KafkaOption) *KafkaPublisher {
	p := &KafkaPublisher{
		topicPrefix: topicPrefix,
		now:         time.Now,
	}
	for _, opt := range opts {
		opt(p)
	}
	if p.writer == nil {
		p.writer = &kafkago.Writer{
			Addr:                   kafkago.TCP(brokers...),
			Balancer:               &kafkago.Hash{},
			RequiredAcks:           kafkago.RequireAll,
			AllowAutoTopicCreation: true,
			BatchTimeout:           10 * time.Millisecond,
		}
	}
	return p
}

// Topic returns the topic an event is written to.
func (p *KafkaPublisher) Topic(event domain.Event) string {
	return p.topicPrefix + event.EventName()
}

func (p *KafkaPublisher) Publish(ctx context.Context, event domain.Event) error {
	env := NewEnvelope(event, p.now())
	payload, err := env.marshal()
	if err != nil {
		return err
	}

	topic := p.Topic(event)
	middleware.GetLoggerFromCtx(ctx).DebugContext(ctx, "Publishing domain event",
		slog.String("event_name", env.EventName),
		slog.String("aggregate_id", env.AggregateID),
		slog.String("topic", topic),
		slog.Int("payload_size", len(payload)),
	)

	msg := kafkago.Message{
		Topic: topic,
		Key:   []byte(env.AggregateID),
		Value: payload,
		Headers: []kafkago.Header{
			{Key: "event_id", Value: []byte(env.EventID)},
			{Key: "event_name", Value: []byte(env.EventName)},
		},
	}
	if err := p.writer.WriteMessages(ctx, msg); err != nil {
		return fmt.Errorf("kafka publish to %s: %w", topic, err)
	}
	return nil
}

// Close flushes and closes the underlying writer.
func (p *KafkaPublisher) Close() error {
	return p.writer.Close()
}
