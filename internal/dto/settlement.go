package dto

import (
	"time"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

// ApplyPaymentRequest is the body of POST /payments/{transactionID}/apply.
type ApplyPaymentRequest struct {
	InvoiceID          string `json:"invoiceID" binding:"required"`
	SettlementCurrency string `json:"settlementCurrency" binding:"omitempty,len=3,uppercase"`
}

// InvoiceBalanceResponse is the invoice state after a settlement.
type InvoiceBalanceResponse struct {
	InvoiceID   string          `json:"invoiceID"`
	Currency    string          `json:"currency"`
	TotalAmount decimal.Decimal `json:"totalAmount"`
	AmountPaid  decimal.Decimal `json:"amountPaid"`
	AmountDue   decimal.Decimal `json:"amountDue"`
	Status      string          `json:"status"`
	PaidDate    *time.Time      `json:"paidDate,omitempty"`
}

// SettlementResponse is returned after applying a payment.
type SettlementResponse struct {
	TransactionID      string                 `json:"transactionID"`
	AmountApplied      decimal.Decimal        `json:"amountApplied"`
	SettlementCurrency string                 `json:"settlementCurrency"`
	ConversionApplied  bool                   `json:"conversionApplied"`
	Conversion         *ConversionResponse    `json:"conversion,omitempty"`
	Invoice            InvoiceBalanceResponse `json:"invoice"`
}

// GainLossResponse reports unrealized exchange gain or loss.
type GainLossResponse struct {
	TransactionID            string          `json:"transactionID"`
	FromCurrency             string          `json:"fromCurrency,omitempty"`
	SettlementCurrency       string          `json:"settlementCurrency,omitempty"`
	OriginalExchangeRate     decimal.Decimal `json:"originalExchangeRate"`
	CurrentExchangeRate      decimal.Decimal `json:"currentExchangeRate"`
	OriginalSettlementAmount decimal.Decimal `json:"originalSettlementAmount"`
	CurrentSettlementAmount  decimal.Decimal `json:"currentSettlementAmount"`
	GainLossAmount           decimal.Decimal `json:"gainLossAmount"`
	GainLossPercentage       decimal.Decimal `json:"gainLossPercentage"`
	IsGain                   bool            `json:"isGain"`
	AsOf                     time.Time       `json:"asOf"`
	CalculatedAt             time.Time       `json:"calculatedAt"`
}

// ToSettlementResponse converts a domain.SettlementResult to its DTO.
func ToSettlementResponse(res *domain.SettlementResult) SettlementResponse {
	resp := SettlementResponse{
		TransactionID:      res.TransactionID,
		AmountApplied:      res.AmountApplied,
		SettlementCurrency: res.SettlementCurrency,
		ConversionApplied:  res.ConversionApplied,
		Invoice: InvoiceBalanceResponse{
			InvoiceID:   res.Invoice.InvoiceID,
			Currency:    res.Invoice.Currency,
			TotalAmount: res.Invoice.TotalAmount,
			AmountPaid:  res.Invoice.AmountPaid,
			AmountDue:   res.Invoice.AmountDue,
			Status:      string(res.Invoice.Status),
			PaidDate:    res.Invoice.PaidDate,
		},
	}
	if res.Conversion != nil {
		conv := ToConversionResponse(res.Conversion)
		resp.Conversion = &conv
	}
	return resp
}

// ToGainLossResponse converts a domain.GainLossResult to its DTO.
func ToGainLossResponse(res *domain.GainLossResult) GainLossResponse {
	return GainLossResponse{
		TransactionID:            res.TransactionID,
		FromCurrency:             res.FromCurrency,
		SettlementCurrency:       res.SettlementCurrency,
		OriginalExchangeRate:     res.OriginalExchangeRate,
		CurrentExchangeRate:      res.CurrentExchangeRate,
		OriginalSettlementAmount: res.OriginalSettlementAmount,
		CurrentSettlementAmount:  res.CurrentSettlementAmount,
		GainLossAmount:           res.GainLossAmount,
		GainLossPercentage:       res.GainLossPercentage,
		IsGain:                   res.IsGain,
		AsOf:                     res.AsOf,
		CalculatedAt:             res.CalculatedAt,
	}
}
