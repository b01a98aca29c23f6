package handlers

import (
	"fmt"
	"log/slog"
	"net/http"
	"strings"
	"time"

	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/dto"
	"github.com/SscSPs/settlement_engine/internal/middleware"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// exchangeRateHandler handles HTTP requests related to exchange rates.
type exchangeRateHandler struct {
	exchangeRateService portssvc.ExchangeRateSvcFacade
}

// newExchangeRateHandler creates a new exchangeRateHandler.
func newExchangeRateHandler(ers portssvc.ExchangeRateSvcFacade) *exchangeRateHandler {
	return &exchangeRateHandler{
		exchangeRateService: ers,
	}
}

// RegisterExchangeRateRoutes registers routes related to exchange rates.
func RegisterExchangeRateRoutes(rg *gin.RouterGroup, exchangeRateService portssvc.ExchangeRateSvcFacade) {
	h := newExchangeRateHandler(exchangeRateService)

	exchangeRates := rg.Group("/exchange-rates")
	{
		exchangeRates.POST("", h.createExchangeRate)
		exchangeRates.GET("", h.listExchangeRates)
		exchangeRates.GET("/convert", h.convertAmount)
		exchangeRates.GET("/:from/:to", h.resolveExchangeRate)
	}
}

// parseTimeQuery reads an optional RFC3339 query parameter.
func parseTimeQuery(c *gin.Context, key string) (*time.Time, error) {
	raw := c.Query(key)
	if raw == "" {
		return nil, nil
	}
	t, err := time.Parse(time.RFC3339, raw)
	if err != nil {
		return nil, fmt.Errorf("query parameter %q must be RFC3339: %w", key, err)
	}
	return &t, nil
}

// createExchangeRate godoc
// @Summary Create a manual exchange rate
// @Description Stores a rate for a directed currency pair over a validity window
// @Tags exchange rates
// @Accept  json
// @Produce  json
// @Param   rate body dto.CreateExchangeRateRequest true "Exchange Rate details"
// @Success 201 {object} dto.ExchangeRateResponse
// @Failure 400 {object} map[string]string "Invalid input format or validation error"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to create exchange rate"
// @Security BearerAuth
// @Router /exchange-rates [post]
func (h *exchangeRateHandler) createExchangeRate(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateExchangeRateRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateExchangeRate", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	creatorUserID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("Creator user ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(
		slog.String("creator_user_id", creatorUserID),
		slog.String("from", req.BaseCurrencyCode),
		slog.String("to", req.TargetCurrencyCode),
	)

	createdRate, err := h.exchangeRateService.CreateExchangeRate(c.Request.Context(), req, creatorUserID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to create exchange rate")
		return
	}

	logger.Info("Exchange rate created successfully", slog.String("rate_id", createdRate.ExchangeRateID))
	c.JSON(http.StatusCreated, dto.ToExchangeRateResponse(createdRate))
}

// listExchangeRates godoc
// @Summary List stored exchange rates
// @Description Pages through stored rate rows, newest update first
// @Tags exchange rates
// @Produce  json
// @Param   base       query string false "Base currency code"
// @Param   target     query string false "Target currency code"
// @Param   activeOnly query bool   false "Only active rows"
// @Param   page       query int    false "Page number (default 1)"
// @Param   pageSize   query int    false "Page size (default 50)"
// @Success 200 {object} dto.ListExchangeRatesResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Security BearerAuth
// @Router /exchange-rates [get]
func (h *exchangeRateHandler) listExchangeRates(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ListExchangeRatesParams
	if err := c.ShouldBindQuery(&params); err != nil {
		logger.Warn("Failed to bind query for ListExchangeRates", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}

	resp, err := h.exchangeRateService.ListExchangeRates(c.Request.Context(), params)
	if err != nil {
		respondWithError(c, logger, err, "Failed to list exchange rates")
		return
	}
	c.JSON(http.StatusOK, resp)
}

// resolveExchangeRate godoc
// @Summary Resolve an exchange rate
// @Description Resolves units of {to} per 1 {from} as of date, falling back from stored rates to the configured provider
// @Tags exchange rates
// @Produce  json
// @Param   from path  string true  "From Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   to   path  string true  "To Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Param   date query string false "RFC3339 timestamp, defaults to now"
// @Success 200 {object} dto.ResolvedRateResponse
// @Failure 400 {object} map[string]string "Invalid currency code or date"
// @Failure 424 {object} map[string]string "No rate could be resolved"
// @Security BearerAuth
// @Router /exchange-rates/{from}/{to} [get]
func (h *exchangeRateHandler) resolveExchangeRate(c *gin.Context) {
	fromCode := strings.ToUpper(strings.TrimSpace(c.Param("from")))
	toCode := strings.ToUpper(strings.TrimSpace(c.Param("to")))
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("from", fromCode), slog.String("to", toCode))

	asOf := time.Now()
	date, err := parseTimeQuery(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if date != nil {
		asOf = *date
	}

	rate, err := h.exchangeRateService.Resolve(c.Request.Context(), fromCode, toCode, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to resolve exchange rate")
		return
	}

	c.JSON(http.StatusOK, dto.ResolvedRateResponse{
		FromCurrency: fromCode,
		ToCurrency:   toCode,
		Rate:         rate,
		AsOf:         asOf,
	})
}

// convertAmount godoc
// @Summary Convert an amount
// @Description Converts amount from one currency to another using the resolved rate
// @Tags exchange rates
// @Produce  json
// @Param   amount query string true  "Decimal amount"
// @Param   from   query string true  "From Currency Code"
// @Param   to     query string true  "To Currency Code"
// @Param   date   query string false "RFC3339 timestamp, defaults to now"
// @Success 200 {object} dto.ConversionResponse
// @Failure 400 {object} map[string]string "Invalid query parameters"
// @Failure 424 {object} map[string]string "No rate could be resolved"
// @Security BearerAuth
// @Router /exchange-rates/convert [get]
func (h *exchangeRateHandler) convertAmount(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var params dto.ConvertAmountParams
	if err := c.ShouldBindQuery(&params); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid query parameters: " + err.Error()})
		return
	}
	amount, err := decimal.NewFromString(params.Amount)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "amount must be a decimal number"})
		return
	}
	date, err := parseTimeQuery(c, "date")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	logger = logger.With(slog.String("from", params.From), slog.String("to", params.To))
	res, err := h.exchangeRateService.ConvertAmount(c.Request.Context(), amount, params.From, params.To, date)
	if err != nil {
		respondWithError(c, logger, err, "Failed to convert amount")
		return
	}
	c.JSON(http.StatusOK, dto.ToConversionResponse(res))
}
