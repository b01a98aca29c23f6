package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
)

// gainLossService re-prices settled transactions at a later rate.
type gainLossService struct {
	BaseService
	txRepo   portsrepo.PaymentTransactionRepositoryFacade
	resolver portssvc.RateResolverSvc
	now      func() time.Time
}

// NewGainLossService creates the gain/loss calculator.
func NewGainLossService(txRepo portsrepo.PaymentTransactionRepositoryFacade, resolver portssvc.RateResolverSvc, options ...SettlementOption) portssvc.GainLossSvc {
	svc := &gainLossService{
		txRepo:   txRepo,
		resolver: resolver,
		now:      time.Now,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.GainLossSvc = (*gainLossService)(nil)

func (s *gainLossService) CalculateExchangeGainLoss(ctx context.Context, transactionID string, asOf time.Time) (*domain.GainLossResult, error) {
	txn, err := s.txRepo.FindPaymentTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "payment transaction", ID: transactionID}
		}
		s.LogError(ctx, err, "Failed to load payment transaction", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to load payment transaction %s: %w", transactionID, err)
	}

	calculatedAt := s.now()
	result := &domain.GainLossResult{
		TransactionID: transactionID,
		FromCurrency:  txn.CurrencyCode,
		AsOf:          asOf,
		CalculatedAt:  calculatedAt,
	}

	// Never converted: nothing to re-price, and nothing is recorded.
	if !txn.IsConverted() {
		result.SettlementCurrency = txn.CurrencyCode
		return result, nil
	}

	settlementCurrency := *txn.SettlementCurrencyCode
	originalRate := *txn.ExchangeRate
	original := txn.Amount.Mul(originalRate)
	if txn.SettlementAmount != nil {
		original = *txn.SettlementAmount
	}

	currentRate, err := s.resolver.Resolve(ctx, txn.CurrencyCode, settlementCurrency, asOf)
	if err != nil {
		return nil, err
	}
	current := txn.Amount.Mul(currentRate)
	amount, percentage, isGain := domain.NewGainLoss(original, current)

	result.SettlementCurrency = settlementCurrency
	result.OriginalExchangeRate = originalRate
	result.CurrentExchangeRate = currentRate
	result.OriginalSettlementAmount = original
	result.CurrentSettlementAmount = current
	result.GainLossAmount = amount
	result.GainLossPercentage = percentage
	result.IsGain = isGain

	if err := s.txRepo.AppendMetadataEntry(ctx, transactionID, domain.MetadataKeyExchangeGainLoss, gainLossRecord(result)); err != nil {
		s.LogError(ctx, err, "Failed to record exchange gain/loss", slog.String("transaction_id", transactionID))
		return nil, fmt.Errorf("failed to record exchange gain/loss for %s: %w", transactionID, err)
	}

	s.LogInfo(ctx, "Exchange gain/loss calculated",
		slog.String("transaction_id", transactionID),
		slog.String("gain_loss_amount", amount.String()),
		slog.Bool("is_gain", isGain))

	s.PublishEvent(ctx, domain.ExchangeGainLossEvent{
		TransactionID:            transactionID,
		OriginalSettlementAmount: original,
		CurrentSettlementAmount:  current,
		GainLossAmount:           amount,
		GainLossPercentage:       percentage,
		IsGain:                   isGain,
		CalculatedAt:             calculatedAt,
	})
	return result, nil
}

func gainLossRecord(r *domain.GainLossResult) map[string]any {
	return map[string]any{
		"originalExchangeRate":     r.OriginalExchangeRate.String(),
		"currentExchangeRate":      r.CurrentExchangeRate.String(),
		"originalSettlementAmount": r.OriginalSettlementAmount.String(),
		"currentSettlementAmount":  r.CurrentSettlementAmount.String(),
		"gainLossAmount":           r.GainLossAmount.String(),
		"gainLossPercentage":       r.GainLossPercentage.StringFixed(4),
		"isGain":                   r.IsGain,
		"asOf":                     r.AsOf.UTC().Format(time.RFC3339Nano),
		"calculatedAt":             r.CalculatedAt.UTC().Format(time.RFC3339Nano),
	}
}
