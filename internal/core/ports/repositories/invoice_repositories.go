package repositories

import (
	"context"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// InvoiceReader defines read operations for invoices
type InvoiceReader interface {
	FindInvoiceByID(ctx context.Context, invoiceID string) (*domain.Invoice, error)
}

// InvoiceRepositoryFacade combines invoice repository interfaces
type InvoiceRepositoryFacade interface {
	InvoiceReader
}

// SettlementRepository performs the settlement write spanning a payment
// transaction and an invoice.
type SettlementRepository interface {
	// ApplyPayment atomically, with the invoice serialized against concurrent
	// applications:
	//   - fails with apperrors.ErrAlreadyApplied if the transaction was applied before,
	//   - stores app.Settlement (when set) and merges app.MetadataPatch on the transaction,
	//   - links the transaction to the invoice and stamps app.AppliedAt,
	//   - runs mutate on the locked invoice and persists the result.
	ApplyPayment(ctx context.Context, app domain.PaymentApplication, mutate func(*domain.Invoice) error) (*domain.Invoice, error)
}
