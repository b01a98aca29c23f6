package services

import (
	"context"
	"log/slog"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/metrics"
	"github.com/SscSPs/settlement_engine/internal/middleware"
)

// BaseService provides common functionality for all services
type BaseService struct {
	Events portssvc.EventPublisher
}

// GetLogger gets the logger from context or returns a default one
func (s *BaseService) GetLogger(ctx context.Context) *slog.Logger {
	logger := middleware.GetLoggerFromCtx(ctx)
	if logger == nil {
		return slog.Default()
	}
	return logger
}

// LogError logs an error with consistent formatting
func (s *BaseService) LogError(ctx context.Context, err error, msg string, keyvals ...any) {
	logger := s.GetLogger(ctx)
	args := make([]any, 0, len(keyvals)+1)
	args = append(args, slog.String("error", err.Error()))
	args = append(args, keyvals...)
	logger.Error(msg, args...)
}

// LogInfo logs an info message with consistent formatting
func (s *BaseService) LogInfo(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Info(msg, keyvals...)
}

// LogDebug logs a debug message with consistent formatting
func (s *BaseService) LogDebug(ctx context.Context, msg string, keyvals ...any) {
	s.GetLogger(ctx).Debug(msg, keyvals...)
}

// PublishEvent hands event to the configured publisher. Failures are logged
// and counted but never returned: the state change has already been persisted.
func (s *BaseService) PublishEvent(ctx context.Context, event domain.Event) {
	if s.Events == nil {
		s.LogDebug(ctx, "No event publisher configured, dropping event", slog.String("event", event.EventName()))
		return
	}
	if err := s.Events.Publish(ctx, event); err != nil {
		metrics.EventPublishFailures.WithLabelValues(event.EventName()).Inc()
		s.LogError(ctx, err, "Failed to publish event",
			slog.String("event", event.EventName()),
			slog.String("aggregate_id", event.AggregateID()))
	}
}
