package mapping

import (
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/SscSPs/settlement_engine/internal/models"
)

// ToModelInvoice converts a domain Invoice to a model Invoice
func ToModelInvoice(d domain.Invoice) models.Invoice {
	return models.Invoice{
		InvoiceID:    d.InvoiceID,
		CurrencyCode: d.Currency,
		TotalAmount:  d.TotalAmount,
		AmountPaid:   d.AmountPaid,
		AmountDue:    d.AmountDue,
		Status:       string(d.Status),
		PaidDate:     d.PaidDate,
		AuditFields:  ToModelAuditFields(d.AuditFields),
	}
}

// ToDomainInvoice converts a model Invoice to a domain Invoice
func ToDomainInvoice(m models.Invoice) domain.Invoice {
	return domain.Invoice{
		InvoiceID:   m.InvoiceID,
		Currency:    m.CurrencyCode,
		TotalAmount: m.TotalAmount,
		AmountPaid:  m.AmountPaid,
		AmountDue:   m.AmountDue,
		Status:      domain.InvoiceStatus(m.Status),
		PaidDate:    m.PaidDate,
		AuditFields: ToDomainAuditFields(m.AuditFields),
	}
}
