package dto

import (
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// CreateExchangeRateRequest defines the structure for creating a manual exchange rate.
type CreateExchangeRateRequest struct {
	BaseCurrencyCode   string          `json:"baseCurrencyCode" binding:"required,len=3,uppercase"`
	TargetCurrencyCode string          `json:"targetCurrencyCode" binding:"required,len=3,uppercase,nefield=BaseCurrencyCode"`
	Rate               decimal.Decimal `json:"rate" binding:"decimal_gt0"`
	ValidFrom          *time.Time      `json:"validFrom"` // defaults to now
	ValidTo            *time.Time      `json:"validTo"`   // nil means open-ended
}

// ListExchangeRatesParams are the query parameters for listing stored rates.
type ListExchangeRatesParams struct {
	BaseCurrencyCode   string `form:"base" binding:"omitempty,len=3"`
	TargetCurrencyCode string `form:"target" binding:"omitempty,len=3"`
	ActiveOnly         bool   `form:"activeOnly"`
	Page               int    `form:"page" binding:"omitempty,min=1"`
	PageSize           int    `form:"pageSize" binding:"omitempty,min=1,max=500"`
}

// ExchangeRateResponse defines the structure for API responses containing exchange rate details.
type ExchangeRateResponse struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	RateType           string          `json:"rateType"`
	Provider           string          `json:"provider"`
	IsActive           bool            `json:"isActive"`
	ValidFrom          time.Time       `json:"validFrom"`
	ValidTo            *time.Time      `json:"validTo,omitempty"`
	CreatedAt          time.Time       `json:"createdAt"`
	CreatedBy          string          `json:"createdBy"`
	LastUpdatedAt      time.Time       `json:"lastUpdatedAt"`
	LastUpdatedBy      string          `json:"lastUpdatedBy"`
}

// ListExchangeRatesResponse is a page of stored rates.
type ListExchangeRatesResponse struct {
	Rates    []ExchangeRateResponse `json:"rates"`
	Total    int                    `json:"total"`
	Page     int                    `json:"page"`
	PageSize int                    `json:"pageSize"`
}

// ResolvedRateResponse is returned by the resolve endpoint.
type ResolvedRateResponse struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	AsOf         time.Time       `json:"asOf"`
}

// ConversionResponse mirrors domain.ConversionResult.
type ConversionResponse struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Date            time.Time       `json:"date"`
}

// ToExchangeRateResponse converts a domain.ExchangeRate to ExchangeRateResponse DTO
func ToExchangeRateResponse(rate *domain.ExchangeRate) ExchangeRateResponse {
	return ExchangeRateResponse{
		ExchangeRateID:     rate.ExchangeRateID,
		BaseCurrencyCode:   rate.BaseCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		Rate:               rate.Rate,
		RateType:           string(rate.RateType),
		Provider:           string(rate.Provider),
		IsActive:           rate.IsActive,
		ValidFrom:          rate.ValidFrom,
		ValidTo:            rate.ValidTo,
		CreatedAt:          rate.CreatedAt,
		CreatedBy:          rate.CreatedBy,
		LastUpdatedAt:      rate.LastUpdatedAt,
		LastUpdatedBy:      rate.LastUpdatedBy,
	}
}

// ToListExchangeRateResponse converts a slice of domain.ExchangeRate to a slice of ExchangeRateResponse DTOs.
func ToListExchangeRateResponse(rates []domain.ExchangeRate) []ExchangeRateResponse {
	responses := make([]ExchangeRateResponse, len(rates))
	for i := range rates {
		responses[i] = ToExchangeRateResponse(&rates[i])
	}
	return responses
}

// ToConversionResponse converts a domain.ConversionResult to its DTO.
func ToConversionResponse(res *domain.ConversionResult) ConversionResponse {
	return ConversionResponse{
		OriginalAmount:  res.OriginalAmount,
		ConvertedAmount: res.ConvertedAmount,
		ExchangeRate:    res.ExchangeRate,
		FromCurrency:    res.FromCurrency,
		ToCurrency:      res.ToCurrency,
		Date:            res.Date,
	}
}

// ConvertAmountParams are the query parameters of the convert endpoint.
type ConvertAmountParams struct {
	Amount string `form:"amount" binding:"required"`
	From   string `form:"from" binding:"required,len=3"`
	To     string `form:"to" binding:"required,len=3"`
	Date   string `form:"date"` // RFC3339, defaults to now
}
