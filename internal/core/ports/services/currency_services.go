package services

import (
	"context"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/dto"
)

// CurrencyReaderSvc defines read operations for currency data
type CurrencyReaderSvc interface {
	// GetCurrencyByCode retrieves a specific currency by its code.
	GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error)

	// ListCurrencies retrieves all known currencies.
	ListCurrencies(ctx context.Context) ([]domain.Currency, error)

	// GetBaseCurrency reads the designated base currency through the store.
	GetBaseCurrency(ctx context.Context) (*domain.Currency, error)
}

// CurrencyWriterSvc defines write operations for currency data
type CurrencyWriterSvc interface {
	// CreateOrUpdateCurrency upserts by code. Marking a currency as base
	// clears the flag on every other currency.
	CreateOrUpdateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error)

	// DeactivateCurrency marks a currency inactive. The base currency cannot be deactivated.
	DeactivateCurrency(ctx context.Context, currencyCode string, userID string) (*domain.Currency, error)
}

// CurrencySvcFacade combines all currency-related service interfaces
type CurrencySvcFacade interface {
	CurrencyReaderSvc
	CurrencyWriterSvc
}
