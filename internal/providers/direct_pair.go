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

const defaultDirectPairURL = "https://v6.exchangerate-api.com"

// DirectPairProvider asks the remote API for an arbitrary from/to pair.
type DirectPairProvider struct {
	client  *http.Client
	baseURL string
	apiKey  string
}

func NewDirectPairProvider(client *http.Client, baseURL, apiKey string) *DirectPairProvider {
	if baseURL == "" {
		baseURL = defaultDirectPairURL
	}
	return &DirectPairProvider{client: client, baseURL: strings.TrimRight(baseURL, "/"), apiKey: apiKey}
}

func (p *DirectPairProvider) Name() domain.RateProvider { return domain.ProviderDirectPair }

type directPairResponse struct {
	Result         string          `json:"result"`
	ErrorType      string          `json:"error-type"`
	ConversionRate decimal.Decimal `json:"conversion_rate"`
}

func (p *DirectPairProvider) FetchRate(ctx context.Context, fromCode, toCode string) (decimal.Decimal, error) {
	if err := requireKey(p.Name(), p.apiKey); err != nil {
		return decimal.Zero, err
	}

	path := fmt.Sprintf("/v6/%s/pair/%s/%s", url.PathEscape(p.apiKey), url.PathEscape(fromCode), url.PathEscape(toCode))
	var resp directPairResponse
	status, err := getJSON(ctx, p.client, p.Name(), joinURL(p.baseURL, path, nil), nil, &resp)
	if err != nil {
		return decimal.Zero, err
	}

	if resp.Result != "success" {
		switch resp.ErrorType {
		case "unsupported-code":
			return decimal.Zero, &apperrors.UnsupportedCurrencyError{Provider: string(p.Name()), Code: fromCode + "/" + toCode}
		case "invalid-key", "inactive-account":
			return decimal.Zero, &apperrors.ConfigurationError{Provider: string(p.Name()), Reason: resp.ErrorType}
		}
		return decimal.Zero, &apperrors.ProviderRequestError{
			Provider:   string(p.Name()),
			StatusCode: status,
			Err:        fmt.Errorf("result %q, error type %q", resp.Result, resp.ErrorType),
		}
	}
	return positiveRate(p.Name(), status, resp.ConversionRate)
}
