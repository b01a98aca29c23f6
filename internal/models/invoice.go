package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// Invoice is a row of invoices.
type Invoice struct {
	InvoiceID    string          `json:"invoiceID"`
	CurrencyCode string          `json:"currencyCode"`
	TotalAmount  decimal.Decimal `json:"totalAmount"`
	AmountPaid   decimal.Decimal `json:"amountPaid"`
	AmountDue    decimal.Decimal `json:"amountDue"`
	Status       string          `json:"status"`
	PaidDate     *time.Time      `json:"paidDate"`
	AuditFields
}
