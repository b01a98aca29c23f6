package providers

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strings"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

const (
	defaultUSDAnchoredURL = "https://openexchangerates.org"
	anchorCurrency        = "USD"
)

// USDAnchoredProvider only knows rates relative to USD and derives the cross
// rate as rate(USD->to) / rate(USD->from).
type USDAnchoredProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewUSDAnchoredProvider(client *http.Client, baseURL, apiKey string) *USDAnchoredProvider {
	if baseURL == "" {
		baseURL = defaultUSDAnchoredURL
	}
	return &USDAnchoredProvider{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (p *USDAnchoredProvider) Name() domain.RateProvider { return domain.ProviderUSDAnchored }

type usdAnchoredResponse struct {
	Error       bool                       `json:"error"`
	Message     string                     `json:"message"`
	Description string                     `json:"description"`
	Rates       map[string]decimal.Decimal `json:"rates"`
}

func (p *USDAnchoredProvider) FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	if err := requireKey(p.Name(), p.apiKey); err != nil {
		return decimal.Zero, err
	}

	var symbols []string
	for _, code := range []string{fromCode, toCode} {
		if code != anchorCurrency {
			symbols = append(symbols, code)
		}
	}
	query := url.Values{"app_id": {p.apiKey}}
	if len(symbols) > 0 {
		query.Set("symbols", strings.Join(symbols, ","))
	}

	var resp usdAnchoredResponse
	status, err := getJSON(ctx, p.client, p.Name(), joinURL(p.baseURL, "/api/latest.json", query), nil, &resp)
	if err != nil {
		return decimal.Zero, err
	}

	if resp.Error || status != http.StatusOK {
		switch resp.Message {
		case "invalid_app_id", "missing_app_id", "not_allowed", "access_restricted":
			return decimal.Zero, &apperrors.ConfigurationError{Provider: string(p.Name()), Reason: resp.Message}
		}
		return decimal.Zero, &apperrors.ProviderRequestError{
			Provider:   string(p.Name()),
			StatusCode: status,
			Err:        fmt.Errorf("%s: %s", resp.Message, resp.Description),
		}
	}

	usdTo, err := p.usdRate(resp.Rates, toCode, status)
	if err != nil {
		return decimal.Zero, err
	}
	usdFrom, err := p.usdRate(resp.Rates, fromCode, status)
	if err != nil {
		return decimal.Zero, err
	}
	return positiveRate(p.Name(), status, usdTo.Div(usdFrom))
}

func (p *USDAnchoredProvider) usdRate(rates map[string]decimal.Decimal, code string, status int) (decimal.Decimal, error) {
	if code == anchorCurrency {
		return decimal.NewFromInt(1), nil
	}
	rate, ok := rates[code]
	if !ok {
		return decimal.Zero, &apperrors.UnsupportedCurrencyError{Provider: string(p.Name()), Code: code}
	}
	return positiveRate(p.Name(), status, rate)
}
