package mapping

import (
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/models"
)

// ToModelPaymentTransaction converts a domain PaymentTransaction to a model PaymentTransaction
func ToModelPaymentTransaction(d domain.PaymentTransaction) models.PaymentTransaction {
	return models.PaymentTransaction{
		TransactionID:          d.TransactionID,
		Amount:                 d.Amount,
		CurrencyCode:           d.CurrencyCode,
		InvoiceID:              d.InvoiceID,
		SettlementAmount:       d.SettlementAmount,
		SettlementCurrencyCode: d.SettlementCurrencyCode,
		ExchangeRate:           d.ExchangeRate,
		ExchangeRateDate:       d.ExchangeRateDate,
		AppliedAt:              d.AppliedAt,
		Metadata:               d.Metadata,
		AuditFields:            ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainPaymentTransaction converts a model PaymentTransaction to a domain PaymentTransaction
func ToDomainPaymentTransaction(m models.PaymentTransaction) domain.PaymentTransaction {
	metadata := m.Metadata
	if metadata == nil {
		metadata = map[string]any{}
	}
	return domain.PaymentTransaction{
		TransactionID:          m.TransactionID,
		Amount:                 m.Amount,
		CurrencyCode:           m.CurrencyCode,
		InvoiceID:              m.InvoiceID,
		SettlementAmount:       m.SettlementAmount,
		SettlementCurrencyCode: m.SettlementCurrencyCode,
		ExchangeRate:           m.ExchangeRate,
		ExchangeRateDate:       m.ExchangeRateDate,
		AppliedAt:              m.AppliedAt,
		Metadata:               metadata,
		AuditFields:            ToDomainAuditFields(m.AuditFields),
	}
}
