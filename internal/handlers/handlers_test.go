package handlers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/SscSPs/settlement_engine/internal/core/domain"
	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/dto"
	"github.com/SscSPs/settlement_engine/internal/handlers"
	"github.com/SscSPs/settlement_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/suite"
)

// --- Mock CurrencyService ---
type MockCurrencyService struct {
	mock.Mock
}

func (m *MockCurrencyService) GetCurrencyByCode(ctx context.Context, code string) (*domain.Currency, error) {
	args := m.Called(ctx, code)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) ListCurrencies(ctx context.Context) ([]domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) GetBaseCurrency(ctx context.Context) (*domain.Currency, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) CreateOrUpdateCurrency(ctx context.Context, req dto.CreateCurrencyRequest, userID string) (*domain.Currency, error) {
	args := m.Called(ctx, req, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

func (m *MockCurrencyService) DeactivateCurrency(ctx context.Context, code string, userID string) (*domain.Currency, error) {
	args := m.Called(ctx, code, userID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Currency), args.Error(1)
}

var _ portssvc.CurrencySvcFacade = (*MockCurrencyService)(nil)

// --- Mock ExchangeRateService ---
type MockExchangeRateService struct {
	mock.Mock
}

func (m *MockExchangeRateService) Resolve(ctx context.Context, fromCode, toCode string, asOf time.Time) (decimal.Decimal, error) {
	args := m.Called(ctx, fromCode, toCode, asOf)
	return args.Get(0).(decimal.Decimal), args.Error(1)
}

func (m *MockExchangeRateService) ConvertAmount(ctx context.Context, amount decimal.Decimal, fromCode, toCode string, date *time.Time) (*domain.ConversionResult, error) {
	args := m.Called(ctx, amount, fromCode, toCode, date)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ConversionResult), args.Error(1)
}

func (m *MockExchangeRateService) ListExchangeRates(ctx context.Context, params dto.ListExchangeRatesParams) (*dto.ListExchangeRatesResponse, error) {
	args := m.Called(ctx, params)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*dto.ListExchangeRatesResponse), args.Error(1)
}

func (m *MockExchangeRateService) CreateExchangeRate(ctx context.Context, req dto.CreateExchangeRateRequest, creatorUserID string) (*domain.ExchangeRate, error) {
	args := m.Called(ctx, req, creatorUserID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.ExchangeRate), args.Error(1)
}

var _ portssvc.ExchangeRateSvcFacade = (*MockExchangeRateService)(nil)

// --- Mock Settlement and GainLoss services ---
type MockSettlementService struct {
	mock.Mock
}

func (m *MockSettlementService) ApplyPaymentToInvoice(ctx context.Context, transactionID, invoiceID, settlementCurrency string) (*domain.SettlementResult, error) {
	args := m.Called(ctx, transactionID, invoiceID, settlementCurrency)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.SettlementResult), args.Error(1)
}

type MockGainLossService struct {
	mock.Mock
}

func (m *MockGainLossService) CalculateExchangeGainLoss(ctx context.Context, transactionID string, asOf time.Time) (*domain.GainLossResult, error) {
	args := m.Called(ctx, transactionID, asOf)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.GainLossResult), args.Error(1)
}

// --- Test Suite ---
type HandlerTestSuite struct {
	suite.Suite
	router     *gin.Engine
	jwtSecret  string
	userID     string
	currencies *MockCurrencyService
	rates      *MockExchangeRateService
	settlement *MockSettlementService
	gainLoss   *MockGainLossService
}

func (suite *HandlerTestSuite) SetupSuite() {
	suite.Require().NoError(handlers.RegisterValidators())
}

func (suite *HandlerTestSuite) SetupTest() {
	gin.SetMode(gin.TestMode)
	suite.router = gin.New()
	suite.jwtSecret = "test-secret-key-that-is-long-enough"
	suite.userID = uuid.NewString()

	suite.currencies = new(MockCurrencyService)
	suite.rates = new(MockExchangeRateService)
	suite.settlement = new(MockSettlementService)
	suite.gainLoss = new(MockGainLossService)

	v1 := suite.router.Group("/api/v1", middleware.AuthMiddleware(suite.jwtSecret))
	handlers.RegisterCurrencyRoutes(v1, suite.currencies)
	handlers.RegisterExchangeRateRoutes(v1, suite.rates)
	handlers.RegisterPaymentRoutes(v1, suite.settlement, suite.gainLoss)
}

// generateTestToken creates a signed JWT for userID.
func (suite *HandlerTestSuite) generateTestToken(userID string) string {
	claims := jwt.RegisteredClaims{
		Issuer:    "settlement-test",
		Subject:   userID,
		ExpiresAt: jwt.NewNumericDate(time.Now().Add(time.Hour)),
		IssuedAt:  jwt.NewNumericDate(time.Now()),
	}
	signed, err := jwt.NewWithClaims(jwt.SigningMethodHS256, claims).SignedString([]byte(suite.jwtSecret))
	suite.Require().NoError(err)
	return signed
}

func (suite *HandlerTestSuite) do(method, url string, body any) *httptest.ResponseRecorder {
	var buf bytes.Buffer
	if body != nil {
		suite.Require().NoError(json.NewEncoder(&buf).Encode(body))
	}
	req, _ := http.NewRequest(method, url, &buf)
	req.Header.Set("Content-Type", "application/json")
	req.Header.Set("Authorization", "Bearer "+suite.generateTestToken(suite.userID))
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	return w
}

// --- Test Cases ---

func (suite *HandlerTestSuite) TestRequiresBearerToken() {
	req, _ := http.NewRequest(http.MethodGet, "/api/v1/currencies", nil)
	w := httptest.NewRecorder()
	suite.router.ServeHTTP(w, req)
	suite.Equal(http.StatusUnauthorized, w.Code)
	suite.currencies.AssertNotCalled(suite.T(), "ListCurrencies", mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateCurrency_PassesUserFromToken() {
	suite.currencies.On("CreateOrUpdateCurrency", mock.Anything, mock.MatchedBy(func(r dto.CreateCurrencyRequest) bool {
		return r.CurrencyCode == "USD" && r.IsBaseCurrency
	}), suite.userID).Return(&domain.Currency{CurrencyCode: "USD", Name: "US Dollar", IsBaseCurrency: true, IsActive: true}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/currencies", dto.CreateCurrencyRequest{CurrencyCode: "USD", Name: "US Dollar", IsBaseCurrency: true})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.CurrencyResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsBaseCurrency)
	suite.currencies.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestCreateCurrency_BindingFailure() {
	w := suite.do(http.MethodPost, "/api/v1/currencies", map[string]any{"currencyCode": "usd"})
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestGetBaseCurrency_NotFound() {
	suite.currencies.On("GetBaseCurrency", mock.Anything).
		Return(nil, &apperrors.NotFoundError{Entity: "base currency", ID: "*"}).Once()

	w := suite.do(http.MethodGet, "/api/v1/currencies/base", nil)
	suite.Equal(http.StatusNotFound, w.Code)
}

func (suite *HandlerTestSuite) TestCreateExchangeRate_RejectsNonPositiveRate() {
	w := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{
		"baseCurrencyCode": "USD", "targetCurrencyCode": "INR", "rate": "-1",
	})
	suite.Equal(http.StatusBadRequest, w.Code)
	suite.rates.AssertNotCalled(suite.T(), "CreateExchangeRate", mock.Anything, mock.Anything, mock.Anything)
}

func (suite *HandlerTestSuite) TestCreateExchangeRate_Success() {
	suite.rates.On("CreateExchangeRate", mock.Anything, mock.MatchedBy(func(r dto.CreateExchangeRateRequest) bool {
		return r.Rate.Equal(decimal.RequireFromString("83.45"))
	}), suite.userID).Return(&domain.ExchangeRate{
		ExchangeRateID: "r-1", BaseCurrencyCode: "USD", TargetCurrencyCode: "INR",
		Rate: decimal.RequireFromString("83.45"), RateType: domain.RateTypeManual, Provider: domain.ProviderManual, IsActive: true,
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/exchange-rates", map[string]any{
		"baseCurrencyCode": "USD", "targetCurrencyCode": "INR", "rate": "83.45",
	})

	suite.Equal(http.StatusCreated, w.Code)
	suite.rates.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestResolveExchangeRate() {
	asOf := time.Date(2024, 5, 1, 0, 0, 0, 0, time.UTC)
	suite.rates.On("Resolve", mock.Anything, "EUR", "INR", mock.MatchedBy(func(t time.Time) bool { return t.Equal(asOf) })).
		Return(decimal.RequireFromString("90.7"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/EUR/INR?date=2024-05-01T00:00:00Z", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ResolvedRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.RequireFromString("90.7").Equal(resp.Rate))
}

func (suite *HandlerTestSuite) TestResolveExchangeRate_NormalizesCodes() {
	suite.rates.On("Resolve", mock.Anything, "USD", "INR", mock.AnythingOfType("time.Time")).
		Return(decimal.RequireFromString("83.45"), nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/usd/inr", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ResolvedRateResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.Equal("USD", resp.FromCurrency)
	suite.Equal("INR", resp.ToCurrency)
	suite.rates.AssertExpectations(suite.T())
}

func (suite *HandlerTestSuite) TestResolveExchangeRate_BadDate() {
	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/EUR/INR?date=yesterday", nil)
	suite.Equal(http.StatusBadRequest, w.Code)
}

func (suite *HandlerTestSuite) TestConvertAmount() {
	suite.rates.On("ConvertAmount", mock.Anything, mock.MatchedBy(func(d decimal.Decimal) bool { return d.Equal(decimal.NewFromInt(10)) }), "USD", "INR", (*time.Time)(nil)).
		Return(&domain.ConversionResult{
			OriginalAmount: decimal.NewFromInt(10), ConvertedAmount: decimal.RequireFromString("834.5"),
			ExchangeRate: decimal.RequireFromString("83.45"), FromCurrency: "USD", ToCurrency: "INR",
		}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/exchange-rates/convert?amount=10&from=USD&to=INR", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.ConversionResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(decimal.RequireFromString("834.5").Equal(resp.ConvertedAmount))
}

func (suite *HandlerTestSuite) TestErrorStatusMapping() {
	tests := []struct {
		name   string
		err    error
		status int
	}{
		{"validation", apperrors.NewValidationError("bad"), http.StatusBadRequest},
		{"not found", &apperrors.NotFoundError{Entity: "invoice", ID: "inv-1"}, http.StatusNotFound},
		{"already applied", apperrors.ErrAlreadyApplied, http.StatusConflict},
		{"unsupported", &apperrors.UnsupportedCurrencyError{Provider: "custom", Code: "XXX"}, http.StatusUnprocessableEntity},
		{"rate unavailable", &apperrors.RateUnavailableError{From: "USD", To: "XXX", Cause: &apperrors.UnsupportedCurrencyError{Code: "XXX"}}, http.StatusFailedDependency},
		{"provider request", &apperrors.ProviderRequestError{Provider: "custom", Err: errors.New("timeout")}, http.StatusBadGateway},
		{"configuration", &apperrors.ConfigurationError{Reason: "no key"}, http.StatusInternalServerError},
		{"unexpected", errors.New("boom"), http.StatusInternalServerError},
	}
	for _, tt := range tests {
		suite.Run(tt.name, func() {
			txID := "tx-" + strings.ReplaceAll(tt.name, " ", "-")
			suite.settlement.On("ApplyPaymentToInvoice", mock.Anything, txID, "inv-1", "").Return(nil, tt.err).Once()

			w := suite.do(http.MethodPost, "/api/v1/payments/"+txID+"/apply", dto.ApplyPaymentRequest{InvoiceID: "inv-1"})

			suite.Equal(tt.status, w.Code)
		})
	}
}

func (suite *HandlerTestSuite) TestApplyPayment_Success() {
	suite.settlement.On("ApplyPaymentToInvoice", mock.Anything, "tx-1", "inv-1", "INR").Return(&domain.SettlementResult{
		TransactionID:      "tx-1",
		InvoiceID:          "inv-1",
		AmountApplied:      decimal.NewFromInt(83000),
		SettlementCurrency: "INR",
		ConversionApplied:  true,
		Conversion:         &domain.ConversionResult{ExchangeRate: decimal.NewFromInt(83)},
		Invoice: domain.Invoice{
			InvoiceID: "inv-1", Currency: "INR", TotalAmount: decimal.NewFromInt(100000),
			AmountPaid: decimal.NewFromInt(83000), AmountDue: decimal.NewFromInt(17000), Status: domain.InvoiceStatusPartiallyPaid,
		},
	}, nil).Once()

	w := suite.do(http.MethodPost, "/api/v1/payments/tx-1/apply", dto.ApplyPaymentRequest{InvoiceID: "inv-1", SettlementCurrency: "INR"})

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.SettlementResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.ConversionApplied)
	suite.Equal("partially_paid", resp.Invoice.Status)
	suite.True(decimal.NewFromInt(17000).Equal(resp.Invoice.AmountDue))
}

func (suite *HandlerTestSuite) TestGetGainLoss() {
	suite.gainLoss.On("CalculateExchangeGainLoss", mock.Anything, "tx-1", mock.AnythingOfType("time.Time")).
		Return(&domain.GainLossResult{TransactionID: "tx-1", GainLossAmount: decimal.NewFromInt(1000), IsGain: true}, nil).Once()

	w := suite.do(http.MethodGet, "/api/v1/payments/tx-1/gain-loss", nil)

	suite.Equal(http.StatusOK, w.Code)
	var resp dto.GainLossResponse
	suite.Require().NoError(json.Unmarshal(w.Body.Bytes(), &resp))
	suite.True(resp.IsGain)
}

// --- Run Test Suite ---
func TestHandlers(t *testing.T) {
	suite.Run(t, new(HandlerTestSuite))
}
