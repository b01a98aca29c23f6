package repositories

import (
	"context"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// ExchangeRateReader defines read operations for exchange rate data
type ExchangeRateReader interface {
	// FindExchangeRates returns rows matching filter, most recently updated first.
	FindExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error)

	// ListExchangeRates pages through rows matching filter. page is 1-based.
	ListExchangeRates(ctx context.Context, filter domain.ExchangeRateFilter, page, pageSize int) ([]domain.ExchangeRate, int, error)
}

// ExchangeRateWriter defines write operations for exchange rate data
type ExchangeRateWriter interface {
	// SaveExchangeRate inserts a new rate row. With deactivateOthers, every other
	// active row of the same directed pair is deactivated in the same write.
	SaveExchangeRate(ctx context.Context, rate domain.ExchangeRate, deactivateOthers bool) error

	// UpsertActiveExchangeRate updates the most recently updated active row of
	// the directed pair, or inserts rate when there is none.
	UpsertActiveExchangeRate(ctx context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error)
}

// ExchangeRateRepositoryFacade combines all exchange rate-related repository interfaces
type ExchangeRateRepositoryFacade interface {
	ExchangeRateReader
	ExchangeRateWriter
}
