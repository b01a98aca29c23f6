package providers

import (
	"context"
	"errors"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/metrics"
	"github.com/cenkalti/backoff/v4"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
)

// ResilientProvider bounds every attempt with a timeout, retries
// ProviderRequestErrors with exponential backoff and short-circuits through
// a circuit breaker after consecutive request failures. Configuration and
// unsupported-currency errors are returned at once and never trip the breaker.
type ResilientProvider struct {
	next            portssvc.RateProvider
	breaker         *gobreaker.CircuitBreaker
	timeout         time.Duration
	maxRetries      uint64
	initialInterval time.Duration
}

func NewResilientProvider(next portssvc.RateProvider, s Settings) *ResilientProvider {
	failures := s.BreakerFailures
	if failures == 0 {
		failures = 5
	}
	cooldown := s.BreakerCooldown
	if cooldown <= 0 {
		cooldown = 30 * time.Second
	}
	timeout := s.Timeout
	if timeout <= 0 {
		timeout = 5 * time.Second
	}
	initial := s.RetryInitialInterval
	if initial <= 0 {
		initial = 200 * time.Millisecond
	}

	breaker := gobreaker.NewCircuitBreaker(gobreaker.Settings{
		Name:        string(next.Name()),
		MaxRequests: 1,
		Timeout:     cooldown,
		ReadyToTrip: func(counts gobreaker.Counts) bool {
			return counts.ConsecutiveFailures >= failures
		},
		IsSuccessful: func(err error) bool {
			return err == nil || !errors.Is(err, apperrors.ErrProviderRequest)
		},
	})

	return &ResilientProvider{
		next:            next,
		breaker:         breaker,
		timeout:         timeout,
		maxRetries:      s.MaxRetries,
		initialInterval: initial,
	}
}

func (p *ResilientProvider) Name() domain.RateProvider { return p.next.Name() }

// BreakerState reports the circuit breaker state, e.g. for health output.
func (p *ResilientProvider) BreakerState() gobreaker.State { return p.breaker.State() }

func (p *ResilientProvider) FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	name := string(p.Name())

	attempt := func() (decimal.Decimal, error) {
		start := time.Now()
		v, err := p.breaker.Execute(func() (interface{}, error) {
			callCtx, cancel := context.WithTimeout(ctx, p.timeout)
			defer cancel()
			return p.next.FetchRate(callCtx, fromCode, toCode)
		})
		metrics.ProviderLatency.WithLabelValues(name).Observe(time.Since(start).Seconds())

		if err != nil {
			switch {
			case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
				metrics.ProviderRequests.WithLabelValues(name, metrics.OutcomeCircuitOpen).Inc()
				return decimal.Zero, backoff.Permanent(&apperrors.ProviderRequestError{Provider: name, Err: err})
			case errors.Is(err, apperrors.ErrConfiguration):
				metrics.ProviderRequests.WithLabelValues(name, metrics.OutcomeConfig).Inc()
				return decimal.Zero, backoff.Permanent(err)
			case errors.Is(err, apperrors.ErrUnsupportedCurrency):
				metrics.ProviderRequests.WithLabelValues(name, metrics.OutcomeUnsupported).Inc()
				return decimal.Zero, backoff.Permanent(err)
			case errors.Is(err, apperrors.ErrProviderRequest):
				metrics.ProviderRequests.WithLabelValues(name, metrics.OutcomeError).Inc()
				return decimal.Zero, err
			default:
				metrics.ProviderRequests.WithLabelValues(name, metrics.OutcomeError).Inc()
				return decimal.Zero, backoff.Permanent(err)
			}
		}

		metrics.ProviderRequests.WithLabelValues(name, metrics.OutcomeSuccess).Inc()
		return v.(decimal.Decimal), nil
	}

	policy := backoff.NewExponentialBackOff()
	policy.InitialInterval = p.initialInterval
	policy.MaxInterval = 10 * p.initialInterval
	policy.MaxElapsedTime = 0

	return backoff.RetryWithData(attempt, backoff.WithContext(backoff.WithMaxRetries(policy, p.maxRetries), ctx))
}
