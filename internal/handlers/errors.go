package handlers

import (
	"errors"
	"log/slog"
	"net/http"

	"github.com/SscSPs/settlement_engine/internal/apperrors"
	"github.com/gin-gonic/gin"
)

// statusForError maps engine error kinds onto HTTP status codes. The order
// matters: RateUnavailableError wraps the provider error that caused it.
func statusForError(err error) int {
	switch {
	case errors.Is(err, apperrors.ErrValidation):
		return http.StatusBadRequest
	case errors.Is(err, apperrors.ErrNotFound):
		return http.StatusNotFound
	case errors.Is(err, apperrors.ErrDuplicate):
		return http.StatusConflict
	case errors.Is(err, apperrors.ErrRateUnavailable):
		return http.StatusFailedDependency
	case errors.Is(err, apperrors.ErrUnsupportedCurrency):
		return http.StatusUnprocessableEntity
	case errors.Is(err, apperrors.ErrProviderRequest):
		return http.StatusBadGateway
	case errors.Is(err, apperrors.ErrConfiguration):
		return http.StatusInternalServerError
	}
	var appErr *apperrors.AppError
	if errors.As(err, &appErr) && appErr.Code != 0 {
		return appErr.Code
	}
	return http.StatusInternalServerError
}

// respondWithError writes the mapped status. Server-side failures get
// fallbackMsg instead of the internal error text.
func respondWithError(c *gin.Context, logger *slog.Logger, err error, fallbackMsg string) {
	status := statusForError(err)
	if status >= http.StatusInternalServerError {
		logger.Error(fallbackMsg, slog.String("error", err.Error()))
		c.JSON(status, gin.H{"error": fallbackMsg})
		return
	}
	logger.Warn(fallbackMsg, slog.String("error", err.Error()), slog.Int("status", status))
	c.JSON(status, gin.H{"error": err.Error()})
}
