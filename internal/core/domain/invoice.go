package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InvoiceStatus is the payment state of an invoice.
type InvoiceStatus string

const (
	InvoiceStatusUnpaid        InvoiceStatus = "unpaid"
	InvoiceStatusPartiallyPaid InvoiceStatus = "partially_paid"
	InvoiceStatusPaid          InvoiceStatus = "paid"
	InvoiceStatusOverdue       InvoiceStatus = "overdue"
	InvoiceStatusCancelled     InvoiceStatus = "cancelled"
)

// Invoice is owned by the invoicing collaborator; the engine mutates only
// the balance fields, status and paid date.
type Invoice struct {
	InvoiceID   string          `json:"invoiceID"`
	Currency    string          `json:"currency"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	AmountDue   decimal.Decimal `json:"amountDue"`
	Status      InvoiceStatus   `json:"status"`
	PaidDate    *time.Time      `json:"paidDate,omitempty"`
	AuditFields
}

// ApplyPayment adds amount to AmountPaid and recomputes AmountDue and Status.
// AmountDue = max(0, TotalAmount - AmountPaid) holds afterwards.
func (inv *Invoice) ApplyPayment(amount decimal.Decimal, at time.Time) {
	inv.AmountPaid = inv.AmountPaid.Add(amount)
	inv.AmountDue = decimal.Max(decimal.Zero, inv.TotalAmount.Sub(inv.AmountPaid))

	switch {
	case inv.AmountDue.LessThanOrEqual(decimal.Zero):
		inv.Status = InvoiceStatusPaid
		paidAt := at
		inv.PaidDate = &paidAt
	case inv.AmountPaid.GreaterThan(decimal.Zero):
		inv.Status = InvoiceStatusPartiallyPaid
	}
}
