// Package providers implements the exchange rate provider gateway: one
// adapter per external rate API behind the RateProvider port, wrapped with a
// timeout, retry and a circuit breaker.
package providers

import (
	"context"
	"net/http"
	"strings"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/platform/config"
	"github.com/shopspring/decimal"
)

// Settings selects and tunes the gateway.
type Settings struct {
	Provider        string
	APIKey          string
	BaseURL         string // overrides the adapter's default endpoint
	Timeout         time.Duration
	MaxRetries      uint64
	BreakerFailures uint32
	BreakerCooldown time.Duration
	// RetryInitialInterval is the first backoff delay; zero means 200ms.
	RetryInitialInterval time.Duration
}

// SettingsFromConfig copies the provider options out of cfg.
func SettingsFromConfig(cfg *config.Config) Settings {
	return Settings{
		Provider:        cfg.ExchangeRateProvider,
		APIKey:          cfg.ExchangeRateAPIKey,
		BaseURL:         cfg.ExchangeRateAPIBaseURL,
		Timeout:         cfg.ProviderTimeout,
		MaxRetries:      cfg.ProviderMaxRetries,
		BreakerFailures: cfg.ProviderBreakerFailures,
		BreakerCooldown: cfg.ProviderBreakerCooldown,
	}
}

// NewGateway builds the adapter named by s.Provider. An empty provider yields
// a gateway whose every fetch fails with a ConfigurationError; an unknown one
// is rejected here so startup fails.
func NewGateway(s Settings) (portssvc.RateProvider, error) {
	provider := domain.RateProvider(strings.ToLower(strings.TrimSpace(s.Provider)))
	if provider == "" {
		return unconfigured{}, nil
	}

	if s.Timeout <= 0 {
		s.Timeout = 5 * time.Second
	}
	client := &http.Client{Timeout: s.Timeout}

	var adapter portssvc.RateProvider
	switch provider {
	case domain.ProviderDirectPair:
		adapter = NewDirectPairProvider(client, s.BaseURL, s.APIKey)
	case domain.ProviderUSDAnchored:
		adapter = NewUSDAnchoredProvider(client, s.BaseURL, s.APIKey)
	case domain.ProviderBaseParameterized:
		adapter = NewBaseParameterizedProvider(client, s.BaseURL, s.APIKey)
	case domain.ProviderCustom:
		adapter = NewCustomProvider(client, s.BaseURL, s.APIKey)
	default:
		return nil, &apperrors.ConfigurationError{Provider: string(provider), Reason: "unknown exchange rate provider"}
	}

	return NewResilientProvider(adapter, s), nil
}

// unconfigured is selected when EXCHANGE_RATE_PROVIDER is empty.
type unconfigured struct{}

func (unconfigured) FetchRate(context.Context, string, string) (decimal.Decimal, error) {
	return decimal.Zero, &apperrors.ConfigurationError{Reason: "EXCHANGE_RATE_PROVIDER is not set"}
}

func (unconfigured) Name() domain.RateProvider { return "" }
