package services

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"strings"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portsrepo "github.com/SscSPs/settlement_engine/internal/core/ports/repositories"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/dto"
)

// currencyService is the currency registry.
type currencyService struct {
	BaseService
	currencyRepo portsrepo.CurrencyRepositoryFacade
	now          func() time.Time
}

// NewCurrencyService creates the currency registry service.
func NewCurrencyService(currencyRepo portsrepo.CurrencyRepositoryFacade) portssvc.CurrencySvcFacade {
	return &currencyService{
		currencyRepo: currencyRepo,
		now:          time.Now,
	}
}

var _ portssvc.CurrencySvcFacade = (*currencyService)(nil)

func (s *currencyService) CreateOrUpdateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	code, err := normalizeCurrencyCode(req.CurrencyCode)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(req.Name) == "" {
		return nil, fmt.Errorf("%w: currency name is required", apperrors.ErrValidation)
	}

	existing, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil && !errors.Is(err, apperrors.ErrNotFound) {
		s.LogError(ctx, err, "Failed to look up currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to look up currency %s: %w", code, err)
	}

	now := s.now()
	currency := domain.Currency{
		CurrencyCode:   code,
		Symbol:         req.Symbol,
		Name:           req.Name,
		IsBaseCurrency: req.IsBaseCurrency,
		IsActive:       true,
		AuditFields: domain.AuditFields{
			CreatedAt:     now,
			CreatedBy:     userID,
			LastUpdatedAt: now,
			LastUpdatedBy: userID,
		},
	}
	if existing != nil {
		currency.CreatedAt = existing.CreatedAt
		currency.CreatedBy = existing.CreatedBy
		currency.IsActive = existing.IsActive
		if existing.IsBaseCurrency && !req.IsBaseCurrency {
			s.GetLogger(ctx).Warn("Base currency flag cleared, no base currency is designated",
				slog.String("currency_code", code))
		}
	}
	if req.IsActive != nil {
		currency.IsActive = *req.IsActive
	}
	if currency.IsBaseCurrency && !currency.IsActive {
		return nil, fmt.Errorf("%w: the base currency must be active", apperrors.ErrValidation)
	}

	if err := s.currencyRepo.SaveCurrency(ctx, currency); err != nil {
		s.LogError(ctx, err, "Failed to save currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to save currency %s: %w", code, err)
	}

	s.LogInfo(ctx, "Currency saved",
		slog.String("currency_code", code),
		slog.Bool("is_base_currency", currency.IsBaseCurrency),
		slog.Bool("created", existing == nil))
	return &currency, nil
}

func (s *currencyService) GetCurrencyByCode(ctx context.Context, currencyCode string) (*domain.Currency, error) {
	code, err := normalizeCurrencyCode(currencyCode)
	if err != nil {
		return nil, err
	}
	currency, err := s.currencyRepo.FindCurrencyByCode(ctx, code)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "currency", ID: code}
		}
		s.LogError(ctx, err, "Failed to get currency", slog.String("currency_code", code))
		return nil, fmt.Errorf("failed to get currency %s: %w", code, err)
	}
	return currency, nil
}

func (s *currencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	currencies, err := s.currencyRepo.ListCurrencies(ctx)
	if err != nil {
		s.LogError(ctx, err, "Failed to list currencies")
		return nil, fmt.Errorf("failed to list currencies: %w", err)
	}
	if currencies == nil {
		return []domain.Currency{}, nil
	}
	return currencies, nil
}

func (s *currencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	currency, err := s.currencyRepo.FindBaseCurrency(ctx)
	if err != nil {
		if errors.Is(err, apperrors.ErrNotFound) {
			return nil, &apperrors.NotFoundError{Entity: "base currency", ID: "*"}
		}
		s.LogError(ctx, err, "Failed to get base currency")
		return nil, fmt.Errorf("failed to get base currency: %w", err)
	}
	return currency, nil
}

func (s *currencyService) DeactivateCurrency(ctx context.Context, currencyCode string, userID string) (*domain.Currency, error) {
	currency, err := s.GetCurrencyByCode(ctx, currencyCode)
	if err != nil {
		return nil, err
	}
	if currency.IsBaseCurrency {
		return nil, fmt.Errorf("%w: the base currency %s cannot be deactivated", apperrors.ErrValidation, currency.CurrencyCode)
	}
	if !currency.IsActive {
		return currency, nil
	}

	currency.IsActive = false
	currency.LastUpdatedAt = s.now()
	currency.LastUpdatedBy = userID
	if err := s.currencyRepo.SaveCurrency(ctx, *currency); err != nil {
		s.LogError(ctx, err, "Failed to deactivate currency", slog.String("currency_code", currency.CurrencyCode))
		return nil, fmt.Errorf("failed to deactivate currency %s: %w", currency.CurrencyCode, err)
	}

	s.LogInfo(ctx, "Currency deactivated", slog.String("currency_code", currency.CurrencyCode))
	return currency, nil
}

// normalizeCurrencyCode uppercases code and checks it is three ASCII letters.
func normalizeCurrencyCode(code string) (string, error) {
	code = strings.ToUpper(strings.TrimSpace(code))
	if len(code) != 3 {
		return "", fmt.Errorf("%w: currency code %q must be 3 letters", apperrors.ErrValidation, code)
	}
	for _, r := range code {
		if r < 'A' || r > 'Z' {
			return "", fmt.Errorf("%w: currency code %q must be 3 letters", apperrors.ErrValidation, code)
		}
	}
	return code, nil
}
