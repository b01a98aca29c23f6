package services

import (
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/platform/config"
)

// NewServiceContainer creates a new service container with properly initialized dependencies.
// provider may be nil, in which case only stored rates resolve.
func NewServiceContainer(
	cfg *config.Config,
	repos portsrepo.RepositoryProvider,
	provider portssvc.RateProvider,
	publisher portssvc.EventPublisher,
) *portssvc.ServiceContainer {
	container := &portssvc.ServiceContainer{}

	container.Currency = NewCurrencyService(repos.CurrencyRepo)

	rateOptions := []ExchangeRateOption{
		WithRateEvents(publisher),
		WithSingleActiveRate(cfg.ExchangeRateSingleActive),
	}
	if provider != nil {
		rateOptions = append(rateOptions, WithRateProvider(provider))
	}
	container.ExchangeRate = NewExchangeRateService(repos.ExchangeRateRepo, container.Currency, rateOptions...)

	container.Settlement = NewSettlementService(
		repos.PaymentTransactionRepo,
		repos.InvoiceRepo,
		repos.SettlementRepo,
		container.ExchangeRate,
		WithSettlementEvents(publisher),
	)
	container.GainLoss = NewGainLossService(
		repos.PaymentTransactionRepo,
		container.ExchangeRate,
		WithSettlementEvents(publisher),
	)

	return container
}
