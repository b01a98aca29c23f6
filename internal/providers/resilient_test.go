package providers_test

import (
	"context"
	"errors"
	"net/http"
	"sync/atomic"
	"testing"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/providers"
	"github.com/shopspring/decimal"
	"github.com/sony/gobreaker"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

type MockRateProvider struct {
	mock.Mock
}

func (m *MockRateProvider) FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockRateProvider) Name() domain.RateProvider { return domain.ProviderCustom }

func fastSettings(retries uint64, failures uint32) providers.Settings {
	return providers.Settings{
		Timeout:              time.Second,
		MaxRetries:           retries,
		BreakerFailures:      failures,
		BreakerCooldown:      time.Minute,
		RetryInitialInterval: time.Millisecond,
	}
}

var errTransient = &apperrors.ProviderRequestError{Provider: "custom", StatusCode: http.StatusBadGateway, Err: errors.New("bad gateway")}

func TestResilientProvider_RetriesRequestErrors(t *testing.T) {
	next := new(MockRateProvider)
	next.On("FetchRate", mock.Anything, "USD", "INR").Return(decimal.Zero, errTransient).Twice()
	next.On("FetchRate", mock.Anything, "USD", "INR").Return(decimal.NewFromInt(83), nil).Once()

	p := providers.NewResilientProvider(next, fastSettings(2, 10))
	rate, err := p.FetchRate(context.Background(), "USD", "INR")

	require.NoError(t, err)
	assert.True(t, decimal.NewFromInt(83).Equal(rate))
	next.AssertNumberOfCalls(t, "FetchRate", 3)
}

func TestResilientProvider_GivesUpAfterMaxRetries(t *testing.T) {
	next := new(MockRateProvider)
	next.On("FetchRate", mock.Anything, "USD", "INR").Return(decimal.Zero, errTransient)

	p := providers.NewResilientProvider(next, fastSettings(2, 10))
	_, err := p.FetchRate(context.Background(), "USD", "INR")

	assert.ErrorIs(t, err, apperrors.ErrProviderRequest)
	next.AssertNumberOfCalls(t, "FetchRate", 3)
}

func TestResilientProvider_NoRetryForPermanentErrors(t *testing.T) {
	tests := []struct {
		name string
		err  error
		is   error
	}{
		{"configuration", &apperrors.ConfigurationError{Provider: "custom", Reason: "no key"}, apperrors.ErrConfiguration},
		{"unsupported", &apperrors.UnsupportedCurrencyError{Provider: "custom", Code: "XXX"}, apperrors.ErrUnsupportedCurrency},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			next := new(MockRateProvider)
			next.On("FetchRate", mock.Anything, "USD", "XXX").Return(decimal.Zero, tt.err)

			p := providers.NewResilientProvider(next, fastSettings(3, 1))
			_, err := p.FetchRate(context.Background(), "USD", "XXX")
			assert.ErrorIs(t, err, tt.is)
			next.AssertNumberOfCalls(t, "FetchRate", 1)

			// Non-transient errors never open the breaker.
			_, _ = p.FetchRate(context.Background(), "USD", "XXX")
			assert.Equal(t, gobreaker.StateClosed, p.BreakerState())
		})
	}
}

func TestResilientProvider_BreakerOpens(t *testing.T) {
	next := new(MockRateProvider)
	next.On("FetchRate", mock.Anything, "USD", "INR").Return(decimal.Zero, errTransient)

	p := providers.NewResilientProvider(next, fastSettings(0, 2))
	ctx := context.Background()
	for i := 0; i < 2; i++ {
		_, err := p.FetchRate(ctx, "USD", "INR")
		require.ErrorIs(t, err, apperrors.ErrProviderRequest)
	}
	assert.Equal(t, gobreaker.StateOpen, p.BreakerState())

	_, err := p.FetchRate(ctx, "USD", "INR")
	assert.ErrorIs(t, err, apperrors.ErrProviderRequest)
	assert.ErrorIs(t, err, gobreaker.ErrOpenState)
	next.AssertNumberOfCalls(t, "FetchRate", 2)
}

func TestResilientProvider_TimeoutBoundsEachAttempt(t *testing.T) {
	var calls int32
	srv := newServer(t, &calls, func(w http.ResponseWriter, r *http.Request) {
		select {
		case <-r.Context().Done():
		case <-time.After(500 * time.Millisecond):
		}
		writeJSON(w, http.StatusOK, `{"rate":1}`)
	})

	s := fastSettings(1, 10)
	s.Timeout = 20 * time.Millisecond
	p := providers.NewResilientProvider(providers.NewCustomProvider(srv.Client(), srv.URL, ""), s)

	start := time.Now()
	_, err := p.FetchRate(context.Background(), "USD", "INR")
	assert.ErrorIs(t, err, apperrors.ErrProviderRequest)
	assert.Less(t, time.Since(start), 400*time.Millisecond)
	assert.Equal(t, int32(2), atomic.LoadInt32(&calls))
}
