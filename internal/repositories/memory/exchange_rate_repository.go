package memory

import (
	"context"
	"sort"

	"github.com/SscSPs/settlement_engine/internal/core/domain"
)

// newestFirst orders by LastUpdatedAt, then by insertion order, both descending.
func newestFirst(rates []indexedRate) {
	sort.SliceStable(rates, func(i, j int) bool {
		if !rates[i].LastUpdatedAt.Equal(rates[j].LastUpdatedAt) {
			return rates[i].LastUpdatedAt.After(rates[j].LastUpdatedAt)
		}
		return rates[i].idx > rates[j].idx
	})
}

type indexedRate struct {
	domain.ExchangeRate
	idx int
}

func (s *Store) matching(filter domain.ExchangeRateFilter) []indexedRate {
	var out []indexedRate
	for i, r := range s.rates {
		if filter.Matches(r) {
			out = append(out, indexedRate{ExchangeRate: r, idx: i})
		}
	}
	newestFirst(out)
	return out
}

func unwrapRates(rates []indexedRate) []domain.ExchangeRate {
	out := make([]domain.ExchangeRate, len(rates))
	for i, r := range rates {
		out[i] = r.ExchangeRate
	}
	return out
}

func (s *Store) FindExchangeRates(_ context.Context, filter domain.ExchangeRateFilter) ([]domain.ExchangeRate, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := s.matching(filter)
	if filter.Limit > 0 && len(found) > filter.Limit {
		found = found[:filter.Limit]
	}
	return unwrapRates(found), nil
}

func (s *Store) ListExchangeRates(_ context.Context, filter domain.ExchangeRateFilter, page, pageSize int) ([]domain.ExchangeRate, int, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	found := s.matching(filter)
	total := len(found)
	start := (page - 1) * pageSize
	if start < 0 || start >= total {
		return []domain.ExchangeRate{}, total, nil
	}
	end := start + pageSize
	if end > total {
		end = total
	}
	return unwrapRates(found[start:end]), total, nil
}

func (s *Store) SaveExchangeRate(_ context.Context, rate domain.ExchangeRate, deactivateOthers bool) error {
	s.mu.Lock()
	defer s.mu.Unlock()

	if deactivateOthers {
		for i, r := range s.rates {
			if r.IsActive && r.BaseCurrencyCode == rate.BaseCurrencyCode && r.TargetCurrencyCode == rate.TargetCurrencyCode {
				s.rates[i].IsActive = false
				s.rates[i].LastUpdatedAt = rate.LastUpdatedAt
				s.rates[i].LastUpdatedBy = rate.LastUpdatedBy
			}
		}
	}
	s.rates = append(s.rates, rate)
	return nil
}

func (s *Store) UpsertActiveExchangeRate(_ context.Context, rate domain.ExchangeRate) (*domain.ExchangeRate, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	active := s.matching(domain.ExchangeRateFilter{
		BaseCurrencyCode:   rate.BaseCurrencyCode,
		TargetCurrencyCode: rate.TargetCurrencyCode,
		ActiveOnly:         true,
	})
	if len(active) == 0 {
		s.rates = append(s.rates, rate)
		return &rate, nil
	}

	idx := active[0].idx
	existing := s.rates[idx]
	existing.Rate = rate.Rate
	existing.RateType = rate.RateType
	existing.Provider = rate.Provider
	existing.ValidFrom = rate.ValidFrom
	existing.ValidTo = rate.ValidTo
	existing.LastUpdatedAt = rate.LastUpdatedAt
	existing.LastUpdatedBy = rate.LastUpdatedBy
	s.rates[idx] = existing
	return &existing, nil
}
