package repositories

import (
	"context"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// PaymentTransactionReader defines read operations for payment transactions
type PaymentTransactionReader interface {
	FindPaymentTransactionByID(ctx context.Context, transactionID string) (*domain.PaymentTransaction, error)
}

// PaymentTransactionWriter defines the metadata writes the engine performs
type PaymentTransactionWriter interface {
	// AppendMetadataEntry appends entry to the list under key without touching other keys.
	AppendMetadataEntry(ctx context.Context, transactionID, key string, entry map[string]any) error
}

// PaymentTransactionRepositoryFacade combines payment transaction repository interfaces
type PaymentTransactionRepositoryFacade interface {
	PaymentTransactionReader
	PaymentTransactionWriter
}
