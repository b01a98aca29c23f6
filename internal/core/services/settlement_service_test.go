package services_test

import (
	"context"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/core/services"
	"github.com/SscSPs/settlement_engine/internal/dto"
	"github.com/SscSPs/settlement_engine/internal/repositories/memory"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

type SettlementServiceTestSuite struct {
	suite.Suite
	store    *memory.Store
	events   *recordingPublisher
	rates    portssvc.ExchangeRateSvcFacade
	service  portssvc.SettlementSvc
	gainLoss portssvc.GainLossSvc
}

func (suite *SettlementServiceTestSuite) SetupTest() {
	ctx := context.Background()
	suite.store = memory.NewStore()
	suite.events = &recordingPublisher{}
	currencies := services.NewCurrencyService(suite.store)
	suite.rates = services.NewExchangeRateService(suite.store, currencies, services.WithRateEvents(suite.events))
	suite.service = services.NewSettlementService(suite.store, suite.store, suite.store, suite.rates,
		services.WithSettlementEvents(suite.events))
	suite.gainLoss = services.NewGainLossService(suite.store, suite.rates, services.WithSettlementEvents(suite.events))

	for _, c := range []dto.CreateCurrencyRequest{
		{CurrencyCode: "USD", Name: "US Dollar", IsBaseCurrency: true},
		{CurrencyCode: "INR", Name: "Indian Rupee"},
	} {
		_, err := currencies.CreateOrUpdateCurrency(ctx, c, "seed")
		suite.Require().NoError(err)
	}
}

func (suite *SettlementServiceTestSuite) seedInvoice(id, currency, total string) {
	suite.Require().NoError(suite.store.SaveInvoice(context.Background(), domain.Invoice{
		InvoiceID:   id,
		Currency:    currency,
		TotalAmount: dec(total),
		AmountDue:   dec(total),
		Status:      domain.InvoiceStatusUnpaid,
	}))
}

func (suite *SettlementServiceTestSuite) seedPayment(id, currency, amount string) {
	suite.Require().NoError(suite.store.SavePaymentTransaction(context.Background(), domain.PaymentTransaction{
		TransactionID: id,
		Amount:        dec(amount),
		CurrencyCode:  currency,
		Metadata:      map[string]any{"gateway": "razorpay"},
	}))
}

func (suite *SettlementServiceTestSuite) setRate(from, to, rate string, validFrom time.Time) {
	_, err := suite.rates.CreateExchangeRate(context.Background(), dto.CreateExchangeRateRequest{
		BaseCurrencyCode:   from,
		TargetCurrencyCode: to,
		Rate:               dec(rate),
		ValidFrom:          &validFrom,
	}, "admin")
	suite.Require().NoError(err)
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_SameCurrencyPartialThenPaid() {
	ctx := context.Background()
	suite.seedInvoice("inv-1", "INR", "100000")
	suite.seedPayment("tx-1", "INR", "60000")
	suite.seedPayment("tx-2", "INR", "40000")

	first, err := suite.service.ApplyPaymentToInvoice(ctx, "tx-1", "inv-1", "")
	suite.Require().NoError(err)
	suite.False(first.ConversionApplied)
	suite.Equal(domain.InvoiceStatusPartiallyPaid, first.Invoice.Status)
	suite.True(dec("40000").Equal(first.Invoice.AmountDue))

	second, err := suite.service.ApplyPaymentToInvoice(ctx, "tx-2", "inv-1", "")
	suite.Require().NoError(err)
	suite.Equal(domain.InvoiceStatusPaid, second.Invoice.Status)
	suite.True(decimal.Zero.Equal(second.Invoice.AmountDue))
	suite.NotNil(second.Invoice.PaidDate)

	suite.Empty(suite.events.named(domain.EventCurrencyConverted))
	applied := suite.events.named(domain.EventPaymentApplied)
	suite.Require().Len(applied, 2)
	suite.True(decimal.Zero.Equal(applied[1].(domain.PaymentAppliedEvent).RemainingBalance))
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_ConvertsAndRecordsMetadata() {
	ctx := context.Background()
	suite.setRate("USD", "INR", "83", time.Now().Add(-time.Hour))
	suite.seedInvoice("inv-1", "INR", "100000")
	suite.seedPayment("tx-1", "USD", "1000")

	res, err := suite.service.ApplyPaymentToInvoice(ctx, "tx-1", "inv-1", "")
	suite.Require().NoError(err)
	suite.True(res.ConversionApplied)
	suite.True(dec("83000").Equal(res.AmountApplied))
	suite.True(dec("17000").Equal(res.Invoice.AmountDue))

	txn, err := suite.store.FindPaymentTransactionByID(ctx, "tx-1")
	suite.Require().NoError(err)
	suite.Require().NotNil(txn.SettlementAmount)
	suite.True(dec("83000").Equal(*txn.SettlementAmount))
	suite.Equal("INR", *txn.SettlementCurrencyCode)
	suite.True(dec("83").Equal(*txn.ExchangeRate))
	suite.Equal("inv-1", *txn.InvoiceID)
	suite.Equal("razorpay", txn.Metadata["gateway"])
	record, ok := txn.Metadata[domain.MetadataKeyCurrencyConversion].(map[string]any)
	suite.Require().True(ok)
	suite.Equal("83000", record["convertedAmount"])

	converted := suite.events.named(domain.EventCurrencyConverted)
	suite.Require().Len(converted, 1)
	suite.Equal("tx-1", converted[0].(domain.CurrencyConvertedEvent).TransactionID)
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_AlreadyApplied() {
	ctx := context.Background()
	suite.seedInvoice("inv-1", "INR", "100000")
	suite.seedPayment("tx-1", "INR", "60000")

	_, err := suite.service.ApplyPaymentToInvoice(ctx, "tx-1", "inv-1", "")
	suite.Require().NoError(err)
	_, err = suite.service.ApplyPaymentToInvoice(ctx, "tx-1", "inv-1", "")
	suite.ErrorIs(err, apperrors.ErrAlreadyApplied)

	inv, err := suite.store.FindInvoiceByID(ctx, "inv-1")
	suite.Require().NoError(err)
	suite.True(dec("60000").Equal(inv.AmountPaid))
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_ConcurrentPaymentsNeverOverpay() {
	ctx := context.Background()
	suite.seedInvoice("inv-1", "INR", "100000")
	const payments = 6
	for i := 0; i < payments; i++ {
		suite.seedPayment(paymentID(i), "INR", "30000")
	}

	var wg sync.WaitGroup
	for i := 0; i < payments; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := suite.service.ApplyPaymentToInvoice(ctx, paymentID(i), "inv-1", "")
			suite.NoError(err)
		}(i)
	}
	wg.Wait()

	inv, err := suite.store.FindInvoiceByID(ctx, "inv-1")
	suite.Require().NoError(err)
	suite.True(dec("180000").Equal(inv.AmountPaid), "every payment is counted exactly once")
	suite.True(decimal.Zero.Equal(inv.AmountDue))
	suite.Equal(domain.InvoiceStatusPaid, inv.Status)
}

func (suite *SettlementServiceTestSuite) TestApplyPayment_Failures() {
	ctx := context.Background()
	suite.seedInvoice("inv-1", "INR", "100")
	suite.seedPayment("tx-eur", "EUR", "10")
	suite.seedPayment("tx-1", "INR", "10")
	suite.Require().NoError(suite.store.SaveInvoice(ctx, domain.Invoice{
		InvoiceID: "inv-cancelled", Currency: "INR", TotalAmount: dec("100"), AmountDue: dec("100"),
		Status: domain.InvoiceStatusCancelled,
	}))

	_, err := suite.service.ApplyPaymentToInvoice(ctx, "missing", "inv-1", "")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.ApplyPaymentToInvoice(ctx, "tx-1", "missing", "")
	suite.ErrorIs(err, apperrors.ErrNotFound)

	_, err = suite.service.ApplyPaymentToInvoice(ctx, "tx-1", "inv-cancelled", "")
	suite.ErrorIs(err, apperrors.ErrValidation)

	_, err = suite.service.ApplyPaymentToInvoice(ctx, "tx-eur", "inv-1", "")
	suite.ErrorIs(err, apperrors.ErrRateUnavailable)

	inv, err := suite.store.FindInvoiceByID(ctx, "inv-1")
	suite.Require().NoError(err)
	suite.True(decimal.Zero.Equal(inv.AmountPaid))
	suite.Empty(suite.events.named(domain.EventPaymentApplied))
}

func (suite *SettlementServiceTestSuite) TestGainLoss_RateMovedUp() {
	ctx := context.Background()
	settledAt := time.Now().Add(-2 * time.Hour)
	suite.setRate("USD", "INR", "83", settledAt)
	suite.seedInvoice("inv-1", "INR", "100000")
	suite.seedPayment("tx-1", "USD", "1000")
	_, err := suite.service.ApplyPaymentToInvoice(ctx, "tx-1", "inv-1", "")
	suite.Require().NoError(err)

	suite.setRate("USD", "INR", "84", time.Now().Add(-time.Minute))

	res, err := suite.gainLoss.CalculateExchangeGainLoss(ctx, "tx-1", time.Now())
	suite.Require().NoError(err)
	suite.True(dec("83000").Equal(res.OriginalSettlementAmount))
	suite.True(dec("84000").Equal(res.CurrentSettlementAmount))
	suite.True(dec("1000").Equal(res.GainLossAmount))
	suite.True(res.IsGain)
	pct, _ := res.GainLossPercentage.Float64()
	suite.InDelta(1.2048, pct, 0.0001)

	txn, err := suite.store.FindPaymentTransactionByID(ctx, "tx-1")
	suite.Require().NoError(err)
	history, ok := txn.Metadata[domain.MetadataKeyExchangeGainLoss].([]any)
	suite.Require().True(ok)
	suite.Len(history, 1)
	suite.Len(suite.events.named(domain.EventExchangeGainLossResult), 1)
}

func (suite *SettlementServiceTestSuite) TestGainLoss_NeverConverted() {
	ctx := context.Background()
	suite.seedPayment("tx-1", "INR", "500")

	res, err := suite.gainLoss.CalculateExchangeGainLoss(ctx, "tx-1", time.Now())
	suite.Require().NoError(err)
	suite.True(res.GainLossAmount.IsZero())
	suite.False(res.IsGain)
	suite.Equal("INR", res.SettlementCurrency)

	txn, err := suite.store.FindPaymentTransactionByID(ctx, "tx-1")
	suite.Require().NoError(err)
	suite.NotContains(txn.Metadata, domain.MetadataKeyExchangeGainLoss)
	suite.Empty(suite.events.named(domain.EventExchangeGainLossResult))
}

func (suite *SettlementServiceTestSuite) TestGainLoss_UnknownTransaction() {
	_, err := suite.gainLoss.CalculateExchangeGainLoss(context.Background(), "nope", time.Now())
	suite.ErrorIs(err, apperrors.ErrNotFound)
}

func paymentID(i int) string {
	return "tx-" + string(rune('a'+i))
}

func TestSettlementService(t *testing.T) {
	suite.Run(t, new(SettlementServiceTestSuite))
}
