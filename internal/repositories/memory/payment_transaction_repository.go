package memory

import (
	"context"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// SavePaymentTransaction stores a transaction as the payments collaborator would.
func (s *Store) SavePaymentTransaction(_ context.Context, txn domain.PaymentTransaction) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn.Metadata = domain.MergeMetadata(txn.Metadata, nil)
	s.transactions[txn.TransactionID] = txn
	return nil
}

func (s *Store) FindPaymentTransactionByID(_ context.Context, transactionID string) (*domain.PaymentTransaction, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	txn.Metadata = domain.MergeMetadata(txn.Metadata, nil)
	return &txn, nil
}

func (s *Store) AppendMetadataEntry(_ context.Context, transactionID, key string, entry map[string]any) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	txn, ok := s.transactions[transactionID]
	if !ok {
		return apperrors.ErrNotFound
	}
	txn.Metadata = domain.AppendMetadataEntry(txn.Metadata, key, entry)
	s.transactions[transactionID] = txn
	return nil
}
