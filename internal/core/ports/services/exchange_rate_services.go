package services

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/dto"
	"github.com/shopspring/decimal"
)

// RateResolverSvc resolves rates between arbitrary currencies.
type RateResolverSvc interface {
	// Resolve returns units of toCode per 1 fromCode as of asOf, trying in order:
	// identity, direct, inverse, triangulation through the base currency and
	// finally the provider gateway. Fails with apperrors.RateUnavailableError.
	Resolve(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error)

	// ConvertAmount converts amount; a nil date means now.
	ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date *time.Time) (*domain.ConversionResult, error)
}

// ExchangeRateReaderSvc defines read operations for stored rates
type ExchangeRateReaderSvc interface {
	ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error)
}

// ExchangeRateWriterSvc defines write operations for exchange rate data
type ExchangeRateWriterSvc interface {
	// CreateExchangeRate persists a manual rate.
	CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error)
}

// ExchangeRateSvcFacade combines all exchange rate-related service interfaces
type ExchangeRateSvcFacade interface {
	RateResolverSvc
	ExchangeRateReaderSvc
	ExchangeRateWriterSvc
}

// RateProvider fetches a live rate from an external source.
type RateProvider interface {
	FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error)
	// Name is recorded as the provider of persisted rows.
	Name() domain.RateProvider
}
