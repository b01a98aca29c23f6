// Package memory implements the repository ports in process memory. It backs
// STORAGE_DRIVER=memory and the service tests.
package memory

import (
	"sync"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
)

// Store holds every table. A single lock serializes writes, which also
// serializes settlement writes per invoice.
type Store struct {
	mu           sync.RWMutex
	currencies   map[string]domain.Currency
	rates        []domain.ExchangeRate
	transactions map[string]domain.PaymentTransaction
	invoices     map[string]domain.Invoice
}

// NewStore creates an empty store.
func NewStore() *Store {
	return &Store{
		currencies:   make(map[string]domain.Currency),
		transactions: make(map[string]domain.PaymentTransaction),
		invoices:     make(map[string]domain.Invoice),
	}
}

var (
	_ portsrepo.CurrencyRepositoryFacade           = (*Store)(nil)
	_ portsrepo.ExchangeRateRepositoryFacade       = (*Store)(nil)
	_ portsrepo.PaymentTransactionRepositoryFacade = (*Store)(nil)
	_ portsrepo.InvoiceRepositoryFacade            = (*Store)(nil)
	_ portsrepo.SettlementRepository               = (*Store)(nil)
)

// NewRepositoryProvider exposes store through every repository port.
func NewRepositoryProvider(store *Store) portsrepo.RepositoryProvider {
	return portsrepo.RepositoryProvider{
		CurrencyRepo:           store,
		ExchangeRateRepo:       store,
		PaymentTransactionRepo: store,
		InvoiceRepo:            store,
		SettlementRepo:         store,
	}
}
