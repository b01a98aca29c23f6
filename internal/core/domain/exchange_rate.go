package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// RateType records how a rate row came to exist.
type RateType string

const (
	RateTypeManual RateType = "manual"
	RateTypeAPI    RateType = "api"
)

// RateProvider identifies the source of a rate row.
type RateProvider string

const (
	ProviderDirectPair        RateProvider = "direct-pair"
	ProviderUSDAnchored       RateProvider = "usd-anchored"
	ProviderBaseParameterized RateProvider = "base-parameterized"
	ProviderCustom            RateProvider = "custom"
	ProviderManual            RateProvider = "manual"
)

// IsValid reports whether p is one of the known providers.
func (p RateProvider) IsValid() bool {
	switch p {
	case ProviderDirectPair, ProviderUSDAnchored, ProviderBaseParameterized, ProviderCustom, ProviderManual:
		return true
	}
	return false
}

// ExchangeRate is a time-windowed rate for a directed currency pair:
// Rate units of TargetCurrencyCode per 1 unit of BaseCurrencyCode.
// A stored inverse is not required.
type ExchangeRate struct {
	ExchangeRateID     string          `json:"exchangeRateID"`
	BaseCurrencyCode   string          `json:"baseCurrencyCode"`
	TargetCurrencyCode string          `json:"targetCurrencyCode"`
	Rate               decimal.Decimal `json:"rate"`
	RateType           RateType        `json:"rateType"`
	Provider           RateProvider    `json:"provider"`
	IsActive           bool            `json:"isActive"`
	ValidFrom          time.Time       `json:"validFrom"`
	ValidTo            *time.Time      `json:"validTo,omitempty"` // nil means open-ended
	AuditFields
}

// IsEffectiveAt reports validFrom < t and (validTo is open or validTo > t).
func (r ExchangeRate) IsEffectiveAt(t time.Time) bool {
	if !r.ValidFrom.Before(t) {
		return false
	}
	return r.ValidTo == nil || r.ValidTo.After(t)
}

// ExchangeRateFilter selects rate rows. Zero-valued fields do not filter.
type ExchangeRateFilter struct {
	BaseCurrencyCode   string
	TargetCurrencyCode string
	ActiveOnly         bool
	EffectiveAt        *time.Time
	Limit              int
}

// Matches applies the filter predicate to a single row.
func (f ExchangeRateFilter) Matches(r ExchangeRate) bool {
	if f.BaseCurrencyCode != "" && r.BaseCurrencyCode != f.BaseCurrencyCode {
		return false
	}
	if f.TargetCurrencyCode != "" && r.TargetCurrencyCode != f.TargetCurrencyCode {
		return false
	}
	if f.ActiveOnly && !r.IsActive {
		return false
	}
	if f.EffectiveAt != nil && !r.IsEffectiveAt(*f.EffectiveAt) {
		return false
	}
	return true
}
