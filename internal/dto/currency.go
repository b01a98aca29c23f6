package dto

import (
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// CreateCurrencyRequest defines the data needed to create or update a currency.
type CreateCurrencyRequest struct {
	CurrencyCode   string `json:"currencyCode" binding:"required,uppercase,len=3"`
	Symbol         string `json:"symbol"`
	Name           string `json:"name" binding:"required"`
	IsBaseCurrency bool   `json:"isBaseCurrency"`
	IsActive       *bool  `json:"isActive"` // defaults to true
}

// CurrencyResponse defines the data returned for a currency.
type CurrencyResponse struct {
	CurrencyCode   string    `json:"currencyCode"`
	Symbol         string    `json:"symbol"`
	Name           string    `json:"name"`
	IsBaseCurrency bool      `json:"isBaseCurrency"`
	IsActive       bool      `json:"isActive"`
	CreatedAt      time.Time `json:"createdAt"`
	CreatedBy      string    `json:"createdBy"`
	LastUpdatedAt  time.Time `json:"lastUpdatedAt"`
	LastUpdatedBy  string    `json:"lastUpdatedBy"`
}

// ToCurrencyResponse converts a domain.Currency to CurrencyResponse DTO
func ToCurrencyResponse(curr *domain.Currency) CurrencyResponse {
	return CurrencyResponse{
		CurrencyCode:   curr.CurrencyCode,
		Symbol:         curr.Symbol,
		Name:           curr.Name,
		IsBaseCurrency: curr.IsBaseCurrency,
		IsActive:       curr.IsActive,
		CreatedAt:      curr.CreatedAt,
		CreatedBy:      curr.CreatedBy,
		LastUpdatedAt:  curr.LastUpdatedAt,
		LastUpdatedBy:  curr.LastUpdatedBy,
	}
}

// ToListCurrencyResponse converts a slice of domain.Currency to a slice of CurrencyResponse DTOs
func ToListCurrencyResponse(currencies []domain.Currency) []CurrencyResponse {
	res := make([]CurrencyResponse, len(currencies))
	for i := range currencies {
		res[i] = ToCurrencyResponse(&currencies[i])
	}
	return res
}
