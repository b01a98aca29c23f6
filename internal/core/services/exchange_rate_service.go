package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"math"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/dto"
	"github.com/SscSPs/settlement_engine/internal/metrics"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"golang.org/x/sync/singleflight"
)

const (
	defaultRatePage     = 1
	defaultRatePageSize = 50
	maxRatePageSize     = 500
)

// exchangeRateService stores rates and resolves them between arbitrary currencies.
type exchangeRateService struct {
	BaseService
	rateRepo     portsrepo.ExchangeRateRepositoryFacade
	currencies   portssvc.CurrencyReaderSvc
	provider     portssvc.RateProvider
	singleActive bool
	fetches      singleflight.Group
	now          func() time.Time
}

// ExchangeRateOption is a functional option for configuring the exchange rate service
type ExchangeRateOption func(*exchangeRateService)

// WithRateProvider sets the gateway used when no stored rate resolves.
func WithRateProvider(provider portssvc.RateProvider) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.provider = provider
	}
}

// WithRateEvents sets the publisher for currency.rate_updated events.
func WithRateEvents(publisher portssvc.EventPublisher) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.Events = publisher
	}
}

// WithSingleActiveRate makes manual rate creation deactivate every other
// active row of the same directed pair.
func WithSingleActiveRate(enabled bool) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.singleActive = enabled
	}
}

// WithRateClock overrides time.Now, for tests.
func WithRateClock(now func() time.Time) ExchangeRateOption {
	return func(s *exchangeRateService) {
		s.now = now
	}
}

// NewExchangeRateService creates the rate store and resolver service.
func NewExchangeRateService(rateRepo portsrepo.ExchangeRateRepositoryFacade, currencies portssvc.CurrencyReaderSvc, options ...ExchangeRateOption) portssvc.ExchangeRateSvcFacade {
	svc := &exchangeRateService{
		rateRepo:   rateRepo,
		currencies: currencies,
		now:        time.Now,
	}
	for _, option := range options {
		option(svc)
	}
	return svc
}

var _ portssvc.ExchangeRateSvcFacade = (*exchangeRateService)(nil)

func (s *exchangeRateService) Resolve(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	from, err := normalizeCurrencyCode(fromCode)
	if err != nil {
		return decimal.Zero, err
	}
	to, err := normalizeCurrencyCode(toCode)
	if err != nil {
		return decimal.Zero, err
	}

	if from == to {
		metrics.RateResolutions.WithLabelValues(metrics.StrategyIdentity).Inc()
		return decimal.NewFromInt(1), nil
	}

	logger := s.GetLogger(ctx).With(slog.String("from", from), slog.String("to", to))

	direct, err := s.findEffectiveRate(ctx, from, to, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if direct != nil {
		metrics.RateResolutions.WithLabelValues(metrics.StrategyDirect).Inc()
		return direct.Rate, nil
	}

	inverse, err := s.findEffectiveRate(ctx, to, from, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if inverse != nil && inverse.Rate.IsPositive() {
		metrics.RateResolutions.WithLabelValues(metrics.StrategyInverse).Inc()
		return decimal.NewFromInt(1).Div(inverse.Rate), nil
	}

	rate, ok, err := s.triangulate(ctx, from, to, asOf)
	if err != nil {
		return decimal.Zero, err
	}
	if ok {
		metrics.RateResolutions.WithLabelValues(metrics.StrategyTriangulated).Inc()
		return rate, nil
	}

	logger.Debug("No stored rate resolves the pair, asking the provider")
	rate, err = s.fetchFromProvider(ctx, from, to)
	if err != nil {
		metrics.RateResolutions.WithLabelValues(metrics.StrategyUnavailable).Inc()
		logger.Warn("Exchange rate unavailable", slog.String("error", err.Error()))
		return decimal.Zero, &apperrors.RateUnavailableError{From: from, To: to, AsOf: asOf, Cause: err}
	}
	metrics.RateResolutions.WithLabelValues(metrics.StrategyProvider).Inc()
	return rate, nil
}

// findEffectiveRate returns the most recently updated active row of the
// directed pair effective at asOf, or nil when there is none.
func (s *exchangeRateService) findEffectiveRate(ctx context.Context, from, to string, asOf time.Time) (*domain.ExchangeRate, error) {
	rates, err := s.rateRepo.FindExchangeRates(ctx, domain.ExchangeRateFilter{
		BaseCurrencyCode:   from,
		TargetCurrencyCode: to,
		ActiveOnly:         true,
		EffectiveAt:        &asOf,
		Limit:              1,
	})
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, nil
		}
		s.LogError(ctx, err, "Failed to look up exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to look up exchange rate %s->%s: %w", from, to, err)
	}
	if len(rates) == 0 {
		return nil, nil
	}
	return &rates[0], nil
}

// triangulate resolves from->to as rate(base->to) / rate(base->from) using
// direct stored rows only.
func (s *exchangeRateService) triangulate(ctx context.Context, from, to string, asOf time.Time) (decimal.Decimal, bool, error) {
	base, err := s.currencies.GetBaseCurrency(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return decimal.Zero, false, nil
		}
		return decimal.Zero, false, err
	}
	if base.CurrencyCode == from || base.CurrencyCode == to {
		return decimal.Zero, false, nil
	}

	baseToFrom, err := s.findEffectiveRate(ctx, base.CurrencyCode, from, asOf)
	if err != nil || baseToFrom == nil || !baseToFrom.Rate.IsPositive() {
		return decimal.Zero, false, err
	}
	baseToTo, err := s.findEffectiveRate(ctx, base.CurrencyCode, to, asOf)
	if err != nil || baseToTo == nil {
		return decimal.Zero, false, err
	}
	return baseToTo.Rate.Div(baseToFrom.Rate), true, nil
}

// fetchFromProvider calls the gateway once per pair even under concurrent
// misses, persists the result as the active api rate and announces it.
func (s *exchangeRateService) fetchFromProvider(ctx context.Context, from, to string) (decimal.Decimal, error) {
	if s.provider == nil {
		return decimal.Zero, &apperrors.ConfigurationError{Reason: "no exchange rate provider configured"}
	}

	v, err, shared := s.fetches.Do(from+"/"+to, func() (any, error) {
		// Other callers may join this flight, so one caller's cancellation
		// must not abort it. The gateway bounds each attempt.
		fetchCtx := context.WithoutCancel(ctx)
		rate, err := s.provider.FetchRate(fetchCtx, from, to)
		if err != nil {
			return nil, err
		}
		s.storeProviderRate(fetchCtx, from, to, rate)
		return rate, nil
	})
	if err != nil {
		return decimal.Zero, err
	}
	if shared {
		s.LogDebug(ctx, "Provider fetch shared with a concurrent resolution", slog.String("from", from), slog.String("to", to))
	}
	return v.(decimal.Decimal), nil
}

func (s *exchangeRateService) storeProviderRate(ctx context.Context, from, to string, rate decimal.Decimal) {
	now := s.now()
	row := domain.ExchangeRate{
		ExchangeRateID:     uuid.NewString(),
		BaseCurrencyCode:   from,
		TargetCurrencyCode: to,
		Rate:               rate,
		RateType:           domain.RateTypeAPI,
		Provider:           s.provider.Name(),
		IsActive:           true,
		ValidFrom:          now,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     domain.SystemUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: domain.SystemUserID,
		},
	}

	saved, err := s.rateRepo.UpsertActiveExchangeRate(ctx, row)
	if err != nil {
		// The fetched rate is still returned; the next resolution fetches again.
		s.LogError(ctx, err, "Failed to persist provider rate", slog.String("from", from), slog.String("to", to))
		return
	}

	s.LogInfo(ctx, "Provider rate stored",
		slog.String("exchange_rate_id", saved.ExchangeRateID),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("rate", rate.String()),
		slog.String("provider", string(row.Provider)))

	s.PublishEvent(ctx, domain.RateUpdatedEvent{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate,
		Provider:     row.Provider,
	})
}

func (s *exchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date *time.Time) (*domain.ConversionResult, error) {
	from, err := normalizeCurrencyCode(fromCode)
	if err != nil {
		return nil, err
	}
	to, err := normalizeCurrencyCode(toCode)
	if err != nil {
		return nil, err
	}

	asOf := s.now()
	if date != nil {
		asOf = *date
	}

	result := &domain.ConversionResult{
		OriginalAmount:  amount,
		ConvertedAmount: amount,
		ExchangeRate:    decimal.NewFromInt(1),
		FromCurrency:    from,
		ToCurrency:      to,
		Date:            asOf,
	}
	if from == to {
		return result, nil
	}

	rate, err := s.Resolve(ctx, from, to, asOf)
	if err != nil {
		return nil, err
	}
	result.ExchangeRate = rate
	result.ConvertedAmount = amount.Mul(rate)
	return result, nil
}

func (s *exchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	if !req.Rate.IsPositive() {
		return nil, fmt.Errorf("%w: exchange rate must be positive", apperrors.ErrValidation)
	}
	from, err := normalizeCurrencyCode(req.BaseCurrencyCode)
	if err != nil {
		return nil, err
	}
	to, err := normalizeCurrencyCode(req.TargetCurrencyCode)
	if err != nil {
		return nil, err
	}
	if from == to {
		return nil, fmt.Errorf("%w: base and target currency codes cannot be the same", apperrors.ErrValidation)
	}

	for _, code := range []string{from, to} {
		if _, err := s.currencies.GetCurrencyByCode(ctx, code); err != nil {
			if errors.Is(err, apperrors.ErrNotFound) {
				return nil, fmt.Errorf("%w: currency code '%s' not found", apperrors.ErrValidation, code)
			}
			return nil, fmt.Errorf("failed to verify currency %s: %w", code, err)
		}
	}

	now := s.now()
	validFrom := now
	if req.ValidFrom != nil {
		validFrom = *req.ValidFrom
	}
	if req.ValidTo != nil && !req.ValidTo.After(validFrom) {
		return nil, fmt.Errorf("%w: validTo must be after validFrom", apperrors.ErrValidation)
	}

	rate := domain.ExchangeRate{
		ExchangeRateID:     uuid.NewString(),
		BaseCurrencyCode:   from,
		TargetCurrencyCode: to,
		Rate:               req.Rate,
		RateType:           domain.RateTypeManual,
		Provider:           domain.ProviderManual,
		IsActive:           true,
		ValidFrom:          validFrom,
		ValidTo:            req.ValidTo,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     creatorUserID,
			LastUpdatedAt: now,
			LastUpdatedBy: creatorUserID,
		},
	}

	if err := s.rateRepo.SaveExchangeRate(ctx, rate, s.singleActive); err != nil {
		s.LogError(ctx, err, "Failed to save exchange rate", slog.String("from", from), slog.String("to", to))
		return nil, fmt.Errorf("failed to save exchange rate: %w", err)
	}

	s.LogInfo(ctx, "Exchange rate created",
		slog.String("exchange_rate_id", rate.ExchangeRateID),
		slog.String("from", from),
		slog.String("to", to),
		slog.String("rate", rate.Rate.String()))

	s.PublishEvent(ctx, domain.RateUpdatedEvent{
		FromCurrency: from,
		ToCurrency:   to,
		Rate:         rate.Rate,
		Provider:     rate.Provider,
	})
	return &rate, nil
}

func (s *exchangeRateService) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error) {
	page, pageSize := params.Page, params.PageSize
	if page < 1 {
		page = defaultRatePage
	}
	if pageSize < 1 {
		pageSize = defaultRatePageSize
	}
	if pageSize > maxRatePageSize {
		pageSize = maxRatePageSize
	}
	if page > math.MaxInt/pageSize {
		return nil, apperrors.NewValidationError(fmt.Sprintf("page %d is out of range", page))
	}

	filter := domain.ExchangeRateFilter{ActiveOnly: params.ActiveOnly}
	var err error
	if params.BaseCurrencyCode != "" {
		if filter.BaseCurrencyCode, err = normalizeCurrencyCode(params.BaseCurrencyCode); err != nil {
			return nil, err
		}
	}
	if params.TargetCurrencyCode != "" {
		if filter.TargetCurrencyCode, err = normalizeCurrencyCode(params.TargetCurrencyCode); err != nil {
			return nil, err
		}
	}

	rates, total, err := s.rateRepo.ListExchangeRates(ctx, filter, page, pageSize)
	if err != nil {
		s.LogError(ctx, err, "Failed to list exchange rates")
		return nil, fmt.Errorf("failed to list exchange rates: %w", err)
	}

	return &dto.ListExchangeRatesResponse{
		Rates:    dto.ToListExchangeRateResponse(rates),
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	}, nil
}
