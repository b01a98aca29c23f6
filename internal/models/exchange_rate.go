package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// ExchangeRate stores the rate of a directed currency pair over a validity window.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`     // Primary Key (UUID)
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`   // FK -> Currency.currencyCode
	TargetCurrencyCode string          `json:"targetCurrencyCode"` // FK -> Currency.currencyCode
	Rate               decimal.Decimal `json:"rate"`
	RateType           string          `json:"rateType"`
	Provider           string          `json:"provider"`
	IsActive           bool            `json:"isActive"`
	ValidFrom          time.Time       `json:"validFrom"`
	ValidTo            *time.Time      `json:"validTo"`
	AuditFields
}
