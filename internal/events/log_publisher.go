package events

import (
	"context"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/middleware"
)

// LogPublisher writes events to the request logger. Used when no broker is configured.
type LogPublisher struct{}

// NewLogPublisher creates a LogPublisher.
func NewLogPublisher() *LogPublisher {
	return &LogPublisher{}
}

func (p *LogPublisher) Publish(ctx context.Context, event domain.Event) error {
	env := NewEnvelope(event, time.Now())
	payload, err := env.marshal()
	if err != nil {
		return err
	}
	middleware.GetLoggerFromCtx(ctx).InfoContext(ctx, "Domain event",
		slog.String("event_id", env.EventID),
		slog.String("event_name", env.EventName),
		slog.String("aggregate_id", env.AggregateID),
		slog.String("payload", string(payload)),
	)
	return nil
}

func (p *LogPublisher) Close() error { return nil }
