package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strconv"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/metrics"
)

// settlementService applies payment transactions to invoices.
type settlementService struct {
	BaseService
	txRepo         portsrepo.PaymentTransactionReader
	invoiceRepo    portsrepo.InvoiceReader
	settlementRepo portsrepo.SettlementRepository
	resolver       portssvc.RateResolverSvc
	now            func() time.Time
}

// SettlementOption is a functional option for configuring the settlement and gain/loss services
type SettlementOption func(*BaseService)

// WithSettlementEvents sets the publisher for payment events.
func WithSettlementEvents(publisher portssvc.EventPublisher) SettlementOption {
	return func(s *BaseService) {
		s.Events = publisher
	}
}

// NewSettlementService creates the settlement engine.
func NewSettlementService(
	txRepo portsrepo.PaymentTransactionReader,
	invoiceRepo portsrepo.InvoiceReader,
	settlementRepo portsrepo.SettlementRepository,
	resolver portssvc.RateResolverSvc,
	options ...SettlementOption,
) portssvc.SettlementSvc {
	svc := &settlementService{
		txRepo:         txRepo,
		invoiceRepo:    invoiceRepo,
		settlementRepo: settlementRepo,
		resolver:       resolver,
		now:            time.Now,
	}
	for _, option := range options {
		option(&svc.BaseService)
	}
	return svc
}

var _ portssvc.SettlementSvc = (*settlementService)(nil)

func (s *settlementService) ApplyPaymentToInvoice(ctx context.Context, transactionID, invoiceID, settlementCurrency string) (*domain.SettlementResult, error) {
	logger := s.GetLogger(ctx).With(slog.String("transaction_id", transactionID), slog.String("invoice_id", invoiceID))

	txn, err := s.txRepo.FindPaymentTransactionByID(ctx, transactionID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "payment transaction", ID: transactionID}
		}
		logger.Error("Failed to load payment transaction", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load payment transaction %s: %w", transactionID, err)
	}
	if txn.IsApplied() {
		return nil, fmt.Errorf("transaction %s: %w", transactionID, apperrors.ErrAlreadyApplied)
	}

	invoice, err := s.invoiceRepo.FindInvoiceByID(ctx, invoiceID)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "invoice", ID: invoiceID}
		}
		logger.Error("Failed to load invoice", slog.String("error", err.Error()))
		return nil, fmt.Errorf("failed to load invoice %s: %w", invoiceID, err)
	}
	if invoice.Status == domain.InvoiceStatusCancelled {
		return nil, fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrValidation, invoiceID)
	}

	target := invoice.Currency
	if settlementCurrency != "" {
		if target, err = normalizeCurrencyCode(settlementCurrency); err != nil {
			return nil, err
		}
	}

	now := s.now()
	app := domain.PaymentApplication{
		TransactionID: transactionID,
		InvoiceID:     invoiceID,
		AppliedAt:     now,
	}
	amountToApply := txn.Amount
	var conversion *domain.ConversionResult

	if txn.CurrencyCode != target {
		conversion, err = s.resolver.ConvertAmount(ctx, txn.Amount, txn.CurrencyCode, target, &now)
		if err != nil {
			logger.Warn("Currency conversion failed, payment not applied", slog.String("error", err.Error()))
			return nil, err
		}
		amountToApply = conversion.ConvertedAmount
		app.Settlement = &domain.Settlement{
			Amount:       conversion.ConvertedAmount,
			CurrencyCode: target,
			ExchangeRate: conversion.ExchangeRate,
			RateDate:     conversion.Date,
		}
		app.MetadataPatch = map[string]any{
			domain.MetadataKeyCurrencyConversion: conversionRecord(conversion, now),
		}
	}

	updated, err := s.settlementRepo.ApplyPayment(ctx, app, func(inv *domain.Invoice) error {
		if inv.Status == domain.InvoiceStatusCancelled {
			return fmt.Errorf("%w: invoice %s is cancelled", apperrors.ErrValidation, inv.InvoiceID)
		}
		inv.ApplyPayment(amountToApply, now)
		inv.LastUpdatedAt = now
		inv.LastUpdatedBy = domain.SystemUserID
		return nil
	})
	if err != nil {
		if !errors.Is(err, apperrors.ErrAlreadyApplied) && !errors.Is(err, apperrors.ErrValidation) {
			logger.Error("Failed to apply payment to invoice", slog.String("error", err.Error()))
		}
		return nil, err
	}

	converted := conversion != nil
	metrics.SettlementsApplied.WithLabelValues(strconv.FormatBool(converted)).Inc()
	logger.Info("Payment applied to invoice",
		slog.String("amount_applied", amountToApply.String()),
		slog.String("settlement_currency", target),
		slog.Bool("conversion_applied", converted),
		slog.String("amount_due", updated.AmountDue.String()),
		slog.String("status", string(updated.Status)))

	if converted {
		s.PublishEvent(ctx, domain.CurrencyConvertedEvent{
			TransactionID:     transactionID,
			OriginalAmount:    conversion.OriginalAmount,
			OriginalCurrency:  conversion.FromCurrency,
			ConvertedAmount:   conversion.ConvertedAmount,
			ConvertedCurrency: conversion.ToCurrency,
			ExchangeRate:      conversion.ExchangeRate,
		})
	}
	s.PublishEvent(ctx, domain.PaymentAppliedEvent{
		TransactionID:     transactionID,
		InvoiceID:         invoiceID,
		AmountApplied:     amountToApply,
		ConversionApplied: converted,
		RemainingBalance:  updated.AmountDue,
	})

	return &domain.SettlementResult{
		TransactionID:      transactionID,
		InvoiceID:          invoiceID,
		AmountApplied:      amountToApply,
		SettlementCurrency: target,
		ConversionApplied:  converted,
		Conversion:         conversion,
		Invoice:            *updated,
	}, nil
}

// conversionRecord is the metadata entry kept on the transaction. Decimals are
// stored as strings so the record survives a JSON round trip unchanged.
func conversionRecord(c *domain.ConversionResult, at time.Time) map[string]any {
	return map[string]any{
		"originalAmount":    c.OriginalAmount.String(),
		"originalCurrency":  c.FromCurrency,
		"convertedAmount":   c.ConvertedAmount.String(),
		"convertedCurrency": c.ToCurrency,
		"exchangeRate":      c.ExchangeRate.String(),
		"rateDate":          c.Date.UTC().Format(time.RFC3339Nano),
		"convertedAt":       at.UTC().Format(time.RFC3339Nano),
	}
}
