package providers

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	"github.com/shopspring/decimal"
)

const maxResponseBytes = 1 << 20

// getJSON issues one GET and decodes the body into out. Error responses that
// are not JSON leave out untouched so the caller can classify by status.
// Transport failures and undecodable success bodies are ProviderRequestErrors.
func getJSON(ctx context.Context, client *http.Client, provider domain.RateProvider, endpoint string, header http.Header, out any) (int, error) {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, endpoint, nil)
	if err != nil {
		return 0, &apperrors.ProviderRequestError{Provider: string(provider), Err: fmt.Errorf("building request: %w", err)}
	}
	req.Header.Set("Accept", "application/json")
	for k, vs := range header {
		for _, v := range vs {
			req.Header.Add(k, v)
		}
	}

	resp, err := client.Do(req)
	if err != nil {
		return 0, &apperrors.ProviderRequestError{Provider: string(provider), Err: err}
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(io.LimitReader(resp.Body, maxResponseBytes))
	if err != nil {
		return resp.StatusCode, &apperrors.ProviderRequestError{Provider: string(provider), StatusCode: resp.StatusCode, Err: fmt.Errorf("reading body: %w", err)}
	}
	if err := json.Unmarshal(body, out); err != nil {
		if resp.StatusCode < 200 || resp.StatusCode > 299 {
			return resp.StatusCode, nil
		}
		return resp.StatusCode, &apperrors.ProviderRequestError{Provider: string(provider), StatusCode: resp.StatusCode, Err: fmt.Errorf("decoding body: %w", err)}
	}
	return resp.StatusCode, nil
}

// requireKey fails fast, before any network I/O, when the credential is missing.
func requireKey(provider domain.RateProvider, key string) error {
	if key == "" {
		return &apperrors.ConfigurationError{Provider: string(provider), Reason: "EXCHANGE_RATE_API_KEY is not set"}
	}
	return nil
}

func positiveRate(provider domain.RateProvider, status int, rate decimal.Decimal) (decimal.Decimal, error) {
	if !rate.IsPositive() {
		return decimal.Zero, &apperrors.ProviderRequestError{
			Provider:   string(provider),
			StatusCode: status,
			Err:        fmt.Errorf("provider returned non-positive rate %s", rate),
		}
	}
	return rate, nil
}

func joinURL(base string, path string, query url.Values) string {
	u := base + path
	if len(query) > 0 {
		u += "?" + query.Encode()
	}
	return u
}
