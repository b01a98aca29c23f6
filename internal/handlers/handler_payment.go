package handlers

import (
	"log/slog"
	"net/http"
	"time"

	portssvc "github.com/SscSPs/settlement_engine/internal/core/ports/services"
	"github.com/SscSPs/settlement_engine/internal/dto"
	"github.com/SscSPs/settlement_engine/internal/middleware"
	"github.com/gin-gonic/gin"
)

// paymentHandler exposes the settlement engine and the gain/loss calculator.
type paymentHandler struct {
	settlementService portssvc.SettlementSvc
	gainLossService   portssvc.GainLossSvc
}

// RegisterPaymentRoutes registers settlement routes.
func RegisterPaymentRoutes(rg *gin.RouterGroup, settlementService portssvc.SettlementSvc, gainLossService portssvc.GainLossSvc) {
	h := &paymentHandler{
		settlementService: settlementService,
		gainLossService:   gainLossService,
	}

	payments := rg.Group("/payments/:transactionID")
	{
		payments.POST("/apply", h.applyPayment)
		payments.GET("/gain-loss", h.getGainLoss)
	}
}

// applyPayment godoc
// @Summary Apply a payment to an invoice
// @Description Converts the payment into the settlement currency when needed and applies it to the invoice balance
// @Tags payments
// @Accept  json
// @Produce  json
// @Param   transactionID path string                  true "Payment transaction ID"
// @Param   request       body dto.ApplyPaymentRequest true "Invoice and optional settlement currency"
// @Success 200 {object} dto.SettlementResponse
// @Failure 400 {object} map[string]string "Invalid input or cancelled invoice"
// @Failure 404 {object} map[string]string "Transaction or invoice not found"
// @Failure 409 {object} map[string]string "Payment already applied"
// @Failure 424 {object} map[string]string "No rate could be resolved"
// @Security BearerAuth
// @Router /payments/{transactionID}/apply [post]
func (h *paymentHandler) applyPayment(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	var req dto.ApplyPaymentRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		logger.Warn("Failed to bind JSON for ApplyPayment", slog.String("error", err.Error()))
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid request format: " + err.Error()})
		return
	}

	res, err := h.settlementService.ApplyPaymentToInvoice(c.Request.Context(), transactionID, req.InvoiceID, req.SettlementCurrency)
	if err != nil {
		respondWithError(c, logger.With(slog.String("invoice_id", req.InvoiceID)), err, "Failed to apply payment")
		return
	}
	c.JSON(http.StatusOK, dto.ToSettlementResponse(res))
}

// getGainLoss godoc
// @Summary Calculate exchange gain or loss
// @Description Re-prices a settled payment at the rate effective asOf and records the result on the transaction
// @Tags payments
// @Produce  json
// @Param   transactionID path  string true  "Payment transaction ID"
// @Param   asOf          query string false "RFC3339 timestamp, defaults to now"
// @Success 200 {object} dto.GainLossResponse
// @Failure 404 {object} map[string]string "Transaction not found"
// @Failure 424 {object} map[string]string "No rate could be resolved"
// @Security BearerAuth
// @Router /payments/{transactionID}/gain-loss [get]
func (h *paymentHandler) getGainLoss(c *gin.Context) {
	transactionID := c.Param("transactionID")
	logger := middleware.GetLoggerFromCtx(c.Request.Context()).With(slog.String("transaction_id", transactionID))

	asOf := time.Now()
	date, err := parseTimeQuery(c, "asOf")
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if date != nil {
		asOf = *date
	}

	res, err := h.gainLossService.CalculateExchangeGainLoss(c.Request.Context(), transactionID, asOf)
	if err != nil {
		respondWithError(c, logger, err, "Failed to calculate exchange gain/loss")
		return
	}
	c.JSON(http.StatusOK, dto.ToGainLossResponse(res))
}
