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

const defaultBaseParameterizedURL = "https://api.exchangeratesapi.io/v1"

// BaseParameterizedProvider passes the from currency as the base parameter
// and reads the target rate directly.
type BaseParameterizedProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewBaseParameterizedProvider(client *http.Client, baseURL, apiKey string) *BaseParameterizedProvider {
	if baseURL == "" {
		baseURL = defaultBaseParameterizedURL
	}
	return &BaseParameterizedProvider{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (p *BaseParameterizedProvider) Name() domain.RateProvider { return domain.ProviderBaseParameterized }

type baseParameterizedResponse struct {
	Success bool `json:"success"`
	Error   struct {
		Code int    `json:"code"`
		Type string `json:"type"`
		Info string `json:"info"`
	} `json:"error"`
	Rates map[string]decimal.Decimal `json:"rates"`
}

func (p *BaseParameterizedProvider) FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	if err := requireKey(p.Name(), p.apiKey); err != nil {
		return decimal.Zero, err
	}

	query := url.Values{
		"access_key": {p.apiKey},
		"base":       {fromCode},
		"symbols":    {toCode},
	}
	var resp baseParameterizedResponse
	status, err := getJSON(ctx, p.client, p.Name(), joinURL(p.baseURL, "/latest", query), nil, &resp)
	if err != nil {
		return decimal.Zero, err
	}

	if !resp.Success {
		switch resp.Error.Type {
		case "invalid_base_currency":
			return decimal.Zero, &apperrors.UnsupportedCurrencyError{Provider: string(p.Name()), Code: fromCode}
		case "invalid_currency_codes":
			return decimal.Zero, &apperrors.UnsupportedCurrencyError{Provider: string(p.Name()), Code: toCode}
		case "invalid_access_key", "missing_access_key", "inactive_user", "base_currency_access_restricted", "function_access_restricted":
			return decimal.Zero, &apperrors.ConfigurationError{Provider: string(p.Name()), Reason: resp.Error.Type}
		}
		return decimal.Zero, &apperrors.ProviderRequestError{
			Provider:   string(p.Name()),
			StatusCode: status,
			Err:        fmt.Errorf("error %d %s: %s", resp.Error.Code, resp.Error.Type, resp.Error.Info),
		}
	}

	rate, ok := resp.Rates[toCode]
	if !ok {
		return decimal.Zero, &apperrors.UnsupportedCurrencyError{Provider: string(p.Name()), Code: toCode}
	}
	return positiveRate(p.Name(), status, rate)
}
