package services

import (
	"context"
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// SettlementSvc applies payments to invoices.
type SettlementSvc interface {
	// ApplyPaymentToInvoice converts the payment into settlementCurrency (the
	// invoice currency when empty) and applies it to the invoice balance.
	ApplyPaymentToInvoice(ctx context.Context, transactionID, invoiceID, settlementCurrency string) (*domain.SettlementResult, error)
}

// GainLossSvc re-prices settled transactions.
type GainLossSvc interface {
	CalculateExchangeGainLoss(ctx context.Context, transactionID string, asOf time.Time) (*domain.GainLossResult, error)
}

// EventPublisher hands events to downstream collaborators (ledger, analytics, notifications).
type EventPublisher interface {
	Publish(ctx context.Context, event domain.Event) error
}
