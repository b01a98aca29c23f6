package pgsql

import (
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	"github.com/jackc/pgx/v5/pgxpool"
)

func NewRepositoryProvider(dbPool *pgxpool.Pool) portsrepo.RepositoryProvider {
	currencyRepo := newPgxCurrencyRepository(dbPool)
	exchangeRateRepo := newPgxExchangeRateRepository(dbPool)
	paymentTransactionRepo := newPgxPaymentTransactionRepository(dbPool)
	invoiceRepo := newPgxInvoiceRepository(dbPool)

	return portsrepo.RepositoryProvider{
		CurrencyRepo:           currencyRepo,
		ExchangeRateRepo:       exchangeRateRepo,
		PaymentTransactionRepo: paymentTransactionRepo,
		InvoiceRepo:            invoiceRepo,
		SettlementRepo:         invoiceRepo,
	}
}
