//go:build integration

package pgsql_test

import (
	"context"
	"log/slog"
	"os"
	"path/filepath"
	"sync"
	"testing"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	"github.com/SscSPs/settlement_engine/internal/repositories/database/pgsql"
	"github.com/SscSPs/settlement_engine/pkg/database"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
	"github.com/testcontainers/testcontainers-go"
	"github.com/testcontainers/testcontainers-go/modules/postgres"
	"github.com/testcontainers/testcontainers-go/wait"
)

type PgsqlRepositoriesTestSuite struct {
	suite.Suite
	ctx       context.Context
	container *postgres.PostgresContainer
	pool      *pgxpool.Pool
	repos     portsrepo.RepositoryProvider
}

func TestPgsqlRepositoriesTestSuite(t *testing.T) {
	suite.Run(t, new(PgsqlRepositoriesTestSuite))
}

func (s *PgsqlRepositoriesTestSuite) SetupSuite() {
	s.ctx = context.Background()

	container, err := postgres.Run(s.ctx, "postgres:16-alpine",
		postgres.WithDatabase("settlement_test"),
		postgres.WithUsername("test"),
		postgres.WithPassword("test"),
		testcontainers.WithWaitStrategy(
			wait.ForLog("database system is ready to accept connections").
				WithOccurrence(2).
				WithStartupTimeout(30*time.Second),
		),
	)
	s.Require().NoError(err)
	s.container = container

	dsn, err := container.ConnectionString(s.ctx, "sslmode=disable")
	s.Require().NoError(err)

	s.Require().NoError(database.RunMigrations(dsn, "file://"+findMigrationsDir(), slog.Default()))

	s.pool, err = database.NewPgxPool(s.ctx, dsn)
	s.Require().NoError(err)
	s.repos = pgsql.NewRepositoryProvider(s.pool)
}

func (s *PgsqlRepositoriesTestSuite) TearDownSuite() {
	database.ClosePgxPool(s.pool)
	if s.container != nil {
		_ = s.container.Terminate(context.Background())
	}
}

func (s *PgsqlRepositoriesTestSuite) SetupTest() {
	_, err := s.pool.Exec(s.ctx, `TRUNCATE payment_transactions, invoices, exchange_rates, currencies CASCADE`)
	s.Require().NoError(err)
}

// findMigrationsDir walks up from the package directory to the module root.
func findMigrationsDir() string {
	dir, err := os.Getwd()
	if err != nil {
		return "migrations"
	}
	for n := 0; n < 10; n++ {
		candidate := filepath.Join(dir, "migrations")
		if info, err := os.Stat(candidate); err == nil && info.IsDir() {
			return candidate
		}
		dir = filepath.Dir(dir)
	}
	return "migrations"
}

func (s *PgsqlRepositoriesTestSuite) saveCurrency(code string, base bool) {
	now := time.Now()
	s.Require().NoError(s.repos.CurrencyRepo.SaveCurrency(s.ctx, domain.Currency{
		CurrencyCode:   code,
		Name:           code,
		IsBaseCurrency: base,
		IsActive:       true,
		AuditFields:    domain.AuditFields{CreatedAt: now, CreatedBy: "test", LastUpdatedAt: now, LastUpdatedBy: "test"},
	}))
}

func (s *PgsqlRepositoriesTestSuite) TestCurrency_SingleBase() {
	s.saveCurrency("USD", true)
	s.saveCurrency("INR", true)

	base, err := s.repos.CurrencyRepo.FindBaseCurrency(s.ctx)
	s.Require().NoError(err)
	s.Equal("INR", base.CurrencyCode)

	usd, err := s.repos.CurrencyRepo.FindCurrencyByCode(s.ctx, "USD")
	s.Require().NoError(err)
	s.False(usd.IsBaseCurrency)

	_, err = s.repos.CurrencyRepo.FindCurrencyByCode(s.ctx, "XXX")
	s.ErrorIs(err, apperrors.ErrNotFound)
}

func (s *PgsqlRepositoriesTestSuite) TestExchangeRates_FindAndUpsert() {
	s.saveCurrency("USD", false)
	s.saveCurrency("INR", false)
	t0 := time.Now().Add(-time.Hour).UTC().Truncate(time.Microsecond)

	rate := domain.ExchangeRate{
		ExchangeRateID:     "5b0ad5b4-1f7e-4f0e-9a9e-0d1f8f7b1a01",
		BaseCurrencyCode:   "USD",
		TargetCurrencyCode: "INR",
		Rate:               decimal.RequireFromString("83.45"),
		RateType:           domain.RateTypeManual,
		Provider:           domain.ProviderManual,
		IsActive:           true,
		ValidFrom:          t0,
		AuditFields:        domain.AuditFields{CreatedAt: t0, CreatedBy: "test", LastUpdatedAt: t0, LastUpdatedBy: "test"},
	}
	s.Require().NoError(s.repos.ExchangeRateRepo.SaveExchangeRate(s.ctx, rate, false))

	asOf := time.Now()
	found, err := s.repos.ExchangeRateRepo.FindExchangeRates(s.ctx, domain.ExchangeRateFilter{
		BaseCurrencyCode: "USD", TargetCurrencyCode: "INR", ActiveOnly: true, EffectiveAt: &asOf, Limit: 1,
	})
	s.Require().NoError(err)
	s.Require().Len(found, 1)
	s.True(rate.Rate.Equal(found[0].Rate))

	// validFrom is exclusive
	found, err = s.repos.ExchangeRateRepo.FindExchangeRates(s.ctx, domain.ExchangeRateFilter{EffectiveAt: &t0})
	s.Require().NoError(err)
	s.Empty(found)

	fresh := rate
	fresh.ExchangeRateID = "5b0ad5b4-1f7e-4f0e-9a9e-0d1f8f7b1a02"
	fresh.Rate = decimal.RequireFromString("84")
	fresh.RateType = domain.RateTypeAPI
	fresh.Provider = domain.ProviderDirectPair
	fresh.LastUpdatedAt = time.Now()
	saved, err := s.repos.ExchangeRateRepo.UpsertActiveExchangeRate(s.ctx, fresh)
	s.Require().NoError(err)
	s.Equal(rate.ExchangeRateID, saved.ExchangeRateID)
	s.True(decimal.NewFromInt(84).Equal(saved.Rate))

	page, total, err := s.repos.ExchangeRateRepo.ListExchangeRates(s.ctx, domain.ExchangeRateFilter{}, 1, 10)
	s.Require().NoError(err)
	s.Equal(1, total)
	s.Len(page, 1)
}

func (s *PgsqlRepositoriesTestSuite) seedInvoiceAndTransactions(n int) {
	_, err := s.pool.Exec(s.ctx, `
		INSERT INTO invoices (invoice_id, currency_code, total_amount, amount_paid, amount_due, status, created_by, last_updated_by)
		VALUES ('inv-1', 'INR', 100000, 0, 100000, 'unpaid', 'test', 'test')`)
	s.Require().NoError(err)
	for i := 0; i < n; i++ {
		_, err := s.pool.Exec(s.ctx, `
			INSERT INTO payment_transactions (transaction_id, amount, currency_code, metadata, created_by, last_updated_by)
			VALUES ($1, 30000, 'INR', '{"source":"card"}', 'test', 'test')`, txID(i))
		s.Require().NoError(err)
	}
}

func txID(i int) string { return "tx-" + string(rune('a'+i)) }

func (s *PgsqlRepositoriesTestSuite) TestApplyPayment_SerializedPerInvoice() {
	s.seedInvoiceAndTransactions(5)

	var wg sync.WaitGroup
	for i := 0; i < 5; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			_, err := s.repos.SettlementRepo.ApplyPayment(s.ctx, domain.PaymentApplication{
				TransactionID: txID(i),
				InvoiceID:     "inv-1",
				AppliedAt:     time.Now(),
			}, func(inv *domain.Invoice) error {
				inv.ApplyPayment(decimal.NewFromInt(30000), time.Now())
				return nil
			})
			s.NoError(err)
		}(i)
	}
	wg.Wait()

	inv, err := s.repos.InvoiceRepo.FindInvoiceByID(s.ctx, "inv-1")
	s.Require().NoError(err)
	s.True(decimal.NewFromInt(150000).Equal(inv.AmountPaid), "amount paid %s", inv.AmountPaid)
	s.True(inv.AmountDue.IsZero())
	s.Equal(domain.InvoiceStatusPaid, inv.Status)
}

func (s *PgsqlRepositoriesTestSuite) TestApplyPayment_SettlementAndMetadata() {
	s.seedInvoiceAndTransactions(1)
	at := time.Now().UTC().Truncate(time.Microsecond)

	_, err := s.repos.SettlementRepo.ApplyPayment(s.ctx, domain.PaymentApplication{
		TransactionID: txID(0),
		InvoiceID:     "inv-1",
		AppliedAt:     at,
		Settlement: &domain.Settlement{
			Amount:       decimal.NewFromInt(25),
			CurrencyCode: "EUR",
			ExchangeRate: decimal.RequireFromString("0.000833"),
			RateDate:     at,
		},
		MetadataPatch: map[string]any{domain.MetadataKeyCurrencyConversion: map[string]any{"exchangeRate": "0.000833"}},
	}, func(inv *domain.Invoice) error {
		inv.ApplyPayment(decimal.NewFromInt(25), at)
		return nil
	})
	s.Require().NoError(err)

	txn, err := s.repos.PaymentTransactionRepo.FindPaymentTransactionByID(s.ctx, txID(0))
	s.Require().NoError(err)
	s.True(txn.IsConverted())
	s.True(txn.IsApplied())
	s.Equal("EUR", *txn.SettlementCurrencyCode)
	s.Equal("card", txn.Metadata["source"])
	s.Contains(txn.Metadata, domain.MetadataKeyCurrencyConversion)

	_, err = s.repos.SettlementRepo.ApplyPayment(s.ctx, domain.PaymentApplication{TransactionID: txID(0), InvoiceID: "inv-1", AppliedAt: at},
		func(*domain.Invoice) error { return nil })
	s.ErrorIs(err, apperrors.ErrAlreadyApplied)

	s.Require().NoError(s.repos.PaymentTransactionRepo.AppendMetadataEntry(s.ctx, txID(0), domain.MetadataKeyExchangeGainLoss, map[string]any{"isGain": true}))
	txn, err = s.repos.PaymentTransactionRepo.FindPaymentTransactionByID(s.ctx, txID(0))
	s.Require().NoError(err)
	history, ok := txn.Metadata[domain.MetadataKeyExchangeGainLoss].([]any)
	s.Require().True(ok)
	s.Len(history, 1)
}
