package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// PaymentTransaction is a row of payment_transactions. Metadata is a jsonb column.
type PaymentTransaction struct {
	TransactionID          string           `json:"transactionID"`
	Amount                 decimal.Decimal  `json:"amount"`
	CurrencyCode           string           `json:"currencyCode"`
	InvoiceID              *string          `json:"invoiceID"`
	SettlementAmount       *decimal.Decimal `json:"settlementAmount"`
	SettlementCurrencyCode *string          `json:"settlementCurrencyCode"`
	ExchangeRate           *decimal.Decimal `json:"exchangeRate"`
	ExchangeRateDate       *time.Time       `json:"exchangeRateDate"`
	AppliedAt              *time.Time       `json:"appliedAt"`
	Metadata               map[string]any   `json:"metadata"`
	AuditFields
}
