package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// ConversionResult is the outcome of converting an amount between currencies.
type ConversionResult struct {
	OriginalAmount  decimal.Decimal `json:"originalAmount"`
	ConvertedAmount decimal.Decimal `json:"convertedAmount"`
	ExchangeRate    decimal.Decimal `json:"exchangeRate"`
	FromCurrency    string          `json:"fromCurrency"`
	ToCurrency      string          `json:"toCurrency"`
	Date            time.Time       `json:"date"`
}

// Settlement holds the conversion fields written onto a payment transaction.
type Settlement struct {
	Amount       decimal.Decimal
	CurrencyCode string
	ExchangeRate decimal.Decimal
	RateDate     time.Time
}

// PaymentApplication describes one atomic settlement write: the optional
// conversion, the metadata patch, the invoice link and the applied timestamp.
type PaymentApplication struct {
	TransactionID string
	InvoiceID     string
	Settlement    *Settlement
	MetadataPatch map[string]any
	AppliedAt     time.Time
}

// SettlementResult is returned by ApplyPaymentToInvoice.
type SettlementResult struct {
	TransactionID      string            `json:"transactionID"`
	InvoiceID          string            `json:"invoiceID"`
	AmountApplied      decimal.Decimal   `json:"amountApplied"`
	SettlementCurrency string            `json:"settlementCurrency"`
	ConversionApplied  bool              `json:"conversionApplied"`
	Conversion         *ConversionResult `json:"conversion,omitempty"`
	Invoice            Invoice           `json:"invoice"`
}

// GainLossResult reports unrealized exchange gain or loss for a settled transaction.
type GainLossResult struct {
	TransactionID            string          `json:"transactionID"`
	FromCurrency             string          `json:"fromCurrency"`
	SettlementCurrency       string          `json:"settlementCurrency"`
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

var hundred = decimal.NewFromInt(100)

// NewGainLoss computes the delta between the original and current settlement amounts.
func NewGainLoss(original, current decimal.Decimal) (amount, percentage decimal.Decimal, isGain bool) {
	amount = current.Sub(original)
	if !original.IsZero() {
		percentage = amount.Div(original).Mul(hundred)
	}
	return amount, percentage, amount.GreaterThan(decimal.Zero)
}
