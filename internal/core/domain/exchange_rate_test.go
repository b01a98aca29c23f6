package domain_test

import (
	"testing"
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/stretchr/testify/assert"
)

func TestExchangeRate_IsEffectiveAt(t *testing.T) {
	from := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	to := time.Date(2026, 2, 1, 0, 0, 0, 0, time.UTC)

	tests := []struct {
		name string
		rate domain.ExchangeRate
		at   time.Time
		want bool
	}{
		{"open ended, after start", domain.ExchangeRate{ValidFrom: from}, from.Add(time.Hour), true},
		{"open ended, at start is excluded", domain.ExchangeRate{ValidFrom: from}, from, false},
		{"before start", domain.ExchangeRate{ValidFrom: from}, from.Add(-time.Hour), false},
		{"inside window", domain.ExchangeRate{ValidFrom: from, ValidTo: &to}, from.AddDate(0, 0, 10), true},
		{"at end is excluded", domain.ExchangeRate{ValidFrom: from, ValidTo: &to}, to, false},
		{"after end", domain.ExchangeRate{ValidFrom: from, ValidTo: &to}, to.Add(time.Minute), false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, tt.rate.IsEffectiveAt(tt.at))
		})
	}
}

func TestExchangeRateFilter_Matches(t *testing.T) {
	at := time.Date(2026, 1, 15, 0, 0, 0, 0, time.UTC)
	rate := domain.ExchangeRate{
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "INR",
		IsActive:           true,
		ValidFrom:          at.AddDate(0, 0, -1),
	}

	assert.True(t, domain.ExchangeRateFilter{BaseCurrencyCode: "USD", TargetCurrencyCode: "INR", ActiveOnly: true, EffectiveAt: &at}.Matches(rate))
	assert.False(t, domain.ExchangeRateFilter{BaseCurrencyCode: "INR"}.Matches(rate))

	inactive := rate
	inactive.IsActive = false
	assert.False(t, domain.ExchangeRateFilter{ActiveOnly: true}.Matches(inactive))
	assert.True(t, domain.ExchangeRateFilter{}.Matches(inactive))
}

func TestRateProvider_IsValid(t *testing.T) {
	assert.True(t, domain.ProviderUSDAnchored.IsValid())
	assert.True(t, domain.ProviderManual.IsValid())
	assert.False(t, domain.RateProvider("coinbase").IsValid())
}
