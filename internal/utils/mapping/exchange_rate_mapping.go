package mapping

import (
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/models"
)

// ToModelExchangeRate converts a domain ExchangeRate to a model ExchangeRate
func ToModelExchangeRate(d domain.ExchangeRate) models.ExchangeRate {
	return models.ExchangeRate{
		ExchangeRateID:     d.ExchangeRateID,
		BaseCurrencyCode:   d.BaseCurrencyCode,
		TargetCurrencyCode: d.TargetCurrencyCode,
		Rate:               d.Rate,
		RateType:           string(d.RateType),
		Provider:           string(d.Provider),
		IsActive:           d.IsActive,
		ValidFrom:          d.ValidFrom,
		ValidTo:            d.ValidTo,
		AuditFields:        ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainExchangeRate converts a model ExchangeRate to a domain ExchangeRate
func ToDomainExchangeRate(m models.ExchangeRate) domain.ExchangeRate {
	return domain.ExchangeRate{
		ExchangeRateID:     m.ExchangeRateID,
		BaseCurrencyCode:   m.BaseCurrencyCode,
		TargetCurrencyCode: m.TargetCurrencyCode,
		Rate:               m.Rate,
		RateType:           domain.RateType(m.RateType),
		Provider:           domain.RateProvider(m.Provider),
		IsActive:           m.IsActive,
		ValidFrom:          m.ValidFrom,
		ValidTo:            m.ValidTo,
		AuditFields:        ToDomainAuditFields(m.AuditFields),
	}
}

// ToDomainExchangeRateSlice converts a slice of model rates to domain rates
func ToDomainExchangeRateSlice(ms []models.ExchangeRate) []domain.ExchangeRate {
	ds := make([]domain.ExchangeRate, len(ms))
	for i, m := range ms {
		ds[i] = ToDomainExchangeRate(m)
	}
	return ds
}
