package memory

import (
	"context"
	"fmt"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// SaveInvoice stores an invoice as the invoicing collaborator would.
func (s *Store) SaveInvoice(_ context.Context, invoice domain.Invoice) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	s.invoices[invoice.InvoiceID] = invoice
	return nil
}

func (s *Store) FindInvoiceByID(_ context.Context, invoiceID string) (*domain.Invoice, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	inv, ok := s.invoices[invoiceID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &inv, nil
}

func (s *Store) ApplyPayment(_ context.Context, app domain.PaymentApplication, mutate func(*domain.Invoice) error) (*domain.Invoice, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[app.TransactionID]
	if !ok {
		return nil, &apperrors.NotFoundError{Entity: "payment transaction", ID: app.TransactionID}
	}
	if txn.IsApplied() {
		return nil, fmt.Errorf("transaction %s: %w", app.TransactionID, apperrors.ErrAlreadyApplied)
	}
	inv, ok := s.invoices[app.InvoiceID]
	if !ok {
		return nil, &apperrors.NotFoundError{Entity: "invoice", ID: app.InvoiceID}
	}

	if err := mutate(&inv); err != nil {
		return nil, err
	}

	if app.Settlement != nil {
		amount := app.Settlement.Amount
		currency := app.Settlement.CurrencyCode
		rate := app.Settlement.ExchangeRate
		rateDate := app.Settlement.RateDate
		txn.SettlementAmount = &amount
		txn.SettlementCurrencyCode = &currency
		txn.ExchangeRate = &rate
		txn.ExchangeRateDate = &rateDate
	}
	txn.Metadata = domain.MergeMetadata(txn.Metadata, app.MetadataPatch)
	invoiceID := app.InvoiceID
	appliedAt := app.AppliedAt
	txn.InvoiceID = &invoiceID
	txn.AppliedAt = &appliedAt
	txn.LastUpdatedAt = appliedAt
	txn.LastUpdatedBy = domain.SystemUserID

	s.transactions[txn.TransactionID] = txn
	s.invoices[inv.InvoiceID] = inv
	return &inv, nil
}
