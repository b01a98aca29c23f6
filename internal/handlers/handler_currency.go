package handlers

import (
	"log/slog"
	"net/http"

	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/dto"
	"github.com/SscSPs/settlement_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// currencyHandler handles HTTP requests related to currencies.
type currencyHandler struct {
	currencyService portssvc.CurrencySvcFacade
}

// newCurrencyHandler creates a new currencyHandler.
func newCurrencyHandler(cs portssvc.CurrencySvcFacade) *currencyHandler {
	return &currencyHandler{
		currencyService: cs,
	}
}

// RegisterCurrencyRoutes registers routes related to currencies.
func RegisterCurrencyRoutes(rg *gin.RouterGroup, currencyService portssvc.CurrencySvcFacade) {
	h := newCurrencyHandler(currencyService)

	currencies := rg.Group("/currencies")
	{
		currencies.POST("", h.createOrUpdateCurrency)
		currencies.GET("", h.listCurrencies)
		currencies.GET("/base", h.getBaseCurrency)
		currencies.GET("/:currencyCode", h.getCurrencyByCode)
		currencies.DELETE("/:currencyCode", h.deactivateCurrency)
	}
}

// createOrUpdateCurrency godoc
// @Summary Create or update a currency
// @Description Upserts a currency by code. Marking it as base clears the flag on every other currency.
// @Tags currencies
// @Accept  json
// @Produce  json
// @Param   currency body dto.CreateCurrencyRequest true "Currency details"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid input"
// @Failure 401 {object} map[string]string "Unauthorized"
// @Failure 500 {object} map[string]string "Failed to save currency"
// @Security BearerAuth
// @Router /currencies [post]
func (h *currencyHandler) createOrUpdateCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())
	var req dto.CreateCurrencyRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for CreateOrUpdateCurrency", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	logger = logger.With(slog.String("currency_code", req.CurrencyCode))
	currency, err := h.currencyService.CreateOrUpdateCurrency(c.Request.Context(), req, userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to save currency")
		return
	}

	logger.Info("Currency saved", slog.Bool("is_base_currency", currency.IsBaseCurrency))
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// getCurrencyByCode godoc
// @Summary Get a currency by code
// @Description Retrieves details for a specific currency by its 3-letter code
// @Tags currencies
// @Produce  json
// @Param   currencyCode path string true "Currency Code (3 letters)" MinLength(3) MaxLength(3)
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Invalid currency code"
// @Failure 404 {object} map[string]string "Currency not found"
// @Failure 500 {object} map[string]string "Failed to retrieve currency"
// @Security BearerAuth
// @Router /currencies/{currencyCode} [get]
func (h *currencyHandler) getCurrencyByCode(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("currency_code", c.Param("currencyCode")))

	currency, err := h.currencyService.GetCurrencyByCode(c.Request.Context(), c.Param("currencyCode"))
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// getBaseCurrency godoc
// @Summary Get the base currency
// @Description Returns the currency used as the triangulation pivot
// @Tags currencies
// @Produce  json
// @Success 200 {object} dto.CurrencyResponse
// @Failure 404 {object} map[string]string "No base currency designated"
// @Security BearerAuth
// @Router /currencies/base [get]
func (h *currencyHandler) getBaseCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currency, err := h.currencyService.GetBaseCurrency(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to retrieve base currency")
		return
	}
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}

// listCurrencies godoc
// @Summary List all currencies
// @Description Retrieves every known currency, active or not
// @Tags currencies
// @Produce  json
// @Success 200 {array} dto.CurrencyResponse
// @Failure 500 {object} map[string]string "Failed to list currencies"
// @Security BearerAuth
// @Router /currencies [get]
func (h *currencyHandler) listCurrencies(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context())

	currencies, err := h.currencyService.ListCurrencies(c.Request.Context())
	if err != nil {
		respondWithError(c, logger, err, "Failed to list currencies")
		return
	}

	logger.Info("Currencies listed successfully", slog.Int("count", len(currencies)))
	c.JSON(http.StatusOK, dto.ToListCurrencyResponse(currencies))
}

// deactivateCurrency godoc
// @Summary Deactivate a currency
// @Description Marks a currency inactive. The base currency cannot be deactivated.
// @Tags currencies
// @Produce  json
// @Param   currencyCode path string true "Currency Code (3 letters)"
// @Success 200 {object} dto.CurrencyResponse
// @Failure 400 {object} map[string]string "Base currency or invalid code"
// @Failure 404 {object} map[string]string "Currency not found"
// @Security BearerAuth
// @Router /currencies/{currencyCode} [delete]
func (h *currencyHandler) deactivateCurrency(c *gin.Context) {
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("currency_code", c.Param("currencyCode")))

	userID, ok := middleware.GetUserIDFromContext(c)
	if !ok {
		logger.Error("User ID not found in context")
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Unauthorized"})
		return
	}

	currency, err := h.currencyService.DeactivateCurrency(c.Request.Context(), c.Param("currencyCode"), userID)
	if err != nil {
		respondWithError(c, logger, err, "Failed to deactivate currency")
		return
	}

	logger.Info("Currency deactivated")
	c.JSON(http.StatusOK, dto.ToCurrencyResponse(currency))
}
