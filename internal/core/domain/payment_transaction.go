package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Metadata keys written by the settlement engine.
const (
	MetadataKeyCurrencyConversion = "currencyConversion"
	MetadataKeyExchangeGainLoss   = "exchangeGainLoss"
)

// PaymentTransaction is owned by the payments collaborator. The engine only
// fills in the settlement fields, links an invoice and merges metadata.
type PaymentTransaction struct {
	TransactionID          string           `json:"transactionID"`
	Amount                 decimal.Decimal  `json:"amount"`
	CurrencyCode           string           `json:"currencyCode"`
	InvoiceID              *string          `json:"invoiceID,omitempty"`
	SettlementAmount       *decimal.Decimal `json:"settlementAmount,omitempty"`
	SettlementCurrencyCode *string          `json:"settlementCurrencyCode,omitempty"`
	ExchangeRate           *decimal.Decimal `json:"exchangeRate,omitempty"`
	ExchangeRateDate       *time.Time       `json:"exchangeRateDate,omitempty"`
	AppliedAt              *time.Time       `json:"appliedAt,omitempty"`
	Metadata               map[string]any   `json:"metadata"`
	AuditFields
}

// IsConverted reports whether a currency conversion was ever recorded.
func (t PaymentTransaction) IsConverted() bool {
	return t.SettlementCurrencyCode != nil && *t.SettlementCurrencyCode != "" && t.ExchangeRate != nil
}

// IsApplied reports whether the transaction was already applied to an invoice.
func (t PaymentTransaction) IsApplied() bool {
	return t.AppliedAt != nil
}

// MergeMetadata copies patch into metadata, keeping keys the patch does not name.
func MergeMetadata(metadata, patch map[string]any) map[string]any {
	merged := make(map[string]any, len(metadata)+len(patch))
	for k, v := range metadata {
		merged[k] = v
	}
	for k, v := range patch {
		merged[k] = v
	}
	return merged
}

// AppendMetadataEntry appends entry to the list stored under key. A non-list
// value already stored under key is kept as the first element.
func AppendMetadataEntry(metadata map[string]any, key string, entry map[string]any) map[string]any {
	merged := MergeMetadata(metadata, nil)
	var history []any
	switch existing := merged[key].(type) {
	case nil:
	case []any:
		history = append(history, existing...)
	case []map[string]any:
		for _, e := range existing {
			history = append(history, e)
		}
	default:
		history = append(history, existing)
	}
	merged[key] = append(history, entry)
	return merged
}
