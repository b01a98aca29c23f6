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

// CustomProvider calls an in-house rate endpoint:
//
//	GET {baseURL}?from=USD&to=INR  ->  {"rate": 83.45}
//
// The API key, when set, is sent as X-API-Key. 404 and 422 mean the pair is unknown.
type CustomProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewCustomProvider(client *http.Client, baseURL, apiKey string) *CustomProvider {
	return &CustomProvider{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (p *CustomProvider) Name() domain.RateProvider { return domain.ProviderCustom }

type customResponse struct {
	Rate  decimal.Decimal `json:"rate"`
	Error string          `json:"error"`
}

func (p *CustomProvider) FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	if p.baseURL == "" {
		return decimal.Zero, &apperrors.ConfigurationError{Provider: string(p.Name()), Reason: "EXCHANGE_RATE_API_BASE_URL is not set"}
	}

	header := http.Header{}
	if p.apiKey != "" {
		header.Set("X-API-Key", p.apiKey)
	}
	query := url.Values{"from": {fromCode}, "to": {toCode}}

	var resp customResponse
	status, err := getJSON(ctx, p.client, p.Name(), joinURL(p.baseURL, "", query), header, &resp)
	if err != nil {
		return decimal.Zero, err
	}

	switch {
	case status == http.StatusNotFound || status == http.StatusUnprocessableEntity:
		return decimal.Zero, &apperrors.UnsupportedCurrencyError{Provider: string(p.Name()), Code: fromCode + "/" + toCode}
	case status == http.StatusUnauthorized || status == http.StatusForbidden:
		return decimal.Zero, &apperrors.ConfigurationError{Provider: string(p.Name()), Reason: fmt.Sprintf("endpoint rejected credentials with status %d", status)}
	case status != http.StatusOK:
		return decimal.Zero, &apperrors.ProviderRequestError{Provider: string(p.Name()), StatusCode: status, Err: fmt.Errorf("unexpected response %q", resp.Error)}
	}
	return positiveRate(p.Name(), status, resp.Rate)
}
