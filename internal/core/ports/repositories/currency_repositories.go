package repositories

import (
	"context"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// CurrencyReader defines read operations for currency data
type CurrencyReader interface {
	// FindCurrencyByCode retrieves a specific currency by its code.
	FindCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all currencies, active or not.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// FindBaseCurrency returns the currency flagged as base, or apperrors.ErrNotFound.
	FindBaseCurrency(ctx context.Context) (*domain.Currency, error)
}

// CurrencyWriter defines write operations for currency data
type CurrencyWriter interface {
	// SaveCurrency upserts a currency by code. When currency.IsBaseCurrency is
	// set, the base flag on every other row is cleared in the same atomic write.
	SaveCurrency(ctx context.Context, currency domain.Currency) error
}

// CurrencyRepositoryFacade combines all currency-related repository interfaces
type CurrencyRepositoryFacade interface {
	CurrencyReader
	CurrencyWriter
}
