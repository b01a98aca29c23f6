package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

func (s *Store) SaveCurrency(_ context.Context, currency domain.Currency) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if currency.IsBaseCurrency {
		for code, c := range s.currencies {
			if code != currency.CurrencyCode && c.IsBaseCurrency {
				c.IsBaseCurrency = false
				c.LastUpdatedAt = currency.LastUpdatedAt
				c.LastUpdatedBy = currency.LastUpdatedBy
				s.currencies[code] = c
			}
		}
	}
	s.currencies[currency.CurrencyCode] = currency
	return nil
}

func (s *Store) FindCurrencyByCode(_ context.Context, currencyCode string) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	c, ok := s.currencies[currencyCode]
	if !ok {
		return nil, apperrors.ErrNotFound
	}
	return &c, nil
}

func (s *Store) ListCurrencies(_ context.Context) ([]domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	out := make([]domain.Currency, 0, len(s.currencies))
	for _, c := range s.currencies {
		out = append(out, c)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].CurrencyCode < out[j].CurrencyCode })
	return out, nil
}

func (s *Store) FindBaseCurrency(_ context.Context) (*domain.Currency, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	for _, c := range s.currencies {
		if c.IsBaseCurrency {
			return &c, nil
		}
	}
	return nil, apperrors.ErrNotFound
}
