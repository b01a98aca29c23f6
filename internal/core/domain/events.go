package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Event names published by the engine.
const (
	EventRateUpdated            = "currency.rate_updated"
	EventCurrencyConverted      = "payment.currency_converted"
	EventPaymentApplied         = "payment.applied_to_invoice"
	EventExchangeGainLossResult = "payment.exchange_gain_loss_calculated"
)

// Event is a message handed to the event publisher port.
type Event interface {
	EventName() string
	// AggregateID keys the message, e.g. for partitioning.
	AggregateID() string
}

type RateUpdatedEvent struct {
	FromCurrency string          `json:"fromCurrency"`
	ToCurrency   string          `json:"toCurrency"`
	Rate         decimal.Decimal `json:"rate"`
	Provider     RateProvider    `json:"provider"`
}

func (RateUpdatedEvent) EventName() string     { return EventRateUpdated }
func (e RateUpdatedEvent) AggregateID() string { return e.FromCurrency + "/" + e.ToCurrency }

type CurrencyConvertedEvent struct {
	TransactionID     string          `json:"transactionId"`
	OriginalAmount    decimal.Decimal `json:"originalAmount"`
	OriginalCurrency  string          `json:"originalCurrency"`
	ConvertedAmount   decimal.Decimal `json:"convertedAmount"`
	ConvertedCurrency string          `json:"convertedCurrency"`
	ExchangeRate      decimal.Decimal `json:"exchangeRate"`
}

func (CurrencyConvertedEvent) EventName() string     { return EventCurrencyConverted }
func (e CurrencyConvertedEvent) AggregateID() string { return e.TransactionID }

type PaymentAppliedEvent struct {
	TransactionID     string          `json:"transactionId"`
	InvoiceID         string          `json:"invoiceId"`
	AmountApplied     decimal.Decimal `json:"amountApplied"`
	ConversionApplied bool            `json:"conversionApplied"`
	RemainingBalance  decimal.Decimal `json:"remainingBalance"`
}

func (PaymentAppliedEvent) EventName() string     { return EventPaymentApplied }
func (e PaymentAppliedEvent) AggregateID() string { return e.InvoiceID }

type ExchangeGainLossEvent struct {
	TransactionID            string          `json:"transactionId"`
	OriginalSettlementAmount decimal.Decimal `json:"originalSettlementAmount"`
	CurrentSettlementAmount  decimal.Decimal `json:"currentSettlementAmount"`
	GainLossAmount           decimal.Decimal `json:"gainLossAmount"`
	GainLossPercentage       decimal.Decimal `json:"gainLossPercentage"`
	IsGain                   bool            `json:"isGain"`
	CalculatedAt             time.Time       `json:"calculatedAt"`
}

func (ExchangeGainLossEvent) EventName() string     { return EventExchangeGainLossResult }
func (e ExchangeGainLossEvent) AggregateID() string { return e.TransactionID }
