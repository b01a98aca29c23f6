package apperrors

import (
	"errors"
	"fmt"
	"net/http"
	"time"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrAlreadyApplied indicates that a payment transaction was already applied to an invoice.
var ErrAlreadyApplied = fmt.Errorf("%w: payment already applied", ErrDuplicate)

// Rate engine error kinds. Typed errors below unwrap to one of these.
var (
	ErrConfiguration       = errors.New("exchange rate provider misconfigured")
	ErrUnsupportedCurrency = errors.New("currency not supported by provider")
	ErrProviderRequest     = errors.New("exchange rate provider request failed")
	ErrRateUnavailable     = errors.New("exchange rate unavailable")
)

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error { return e.Err }

// NewAppError wraps err with a status code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewNotFoundError returns an AppError that matches ErrNotFound.
func NewNotFoundError(message string) *AppError {
	return &AppError{Code: http.StatusNotFound, Message: message, Err: ErrNotFound}
}

// NewValidationError returns an AppError that matches ErrValidation.
func NewValidationError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

// NotFoundError reports a lookup miss for a specific entity.
type NotFoundError struct {
	Entity string
	ID     string
}

func (e *NotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Entity, e.ID)
}

func (e *NotFoundError) Unwrap() error { return ErrNotFound }

// ConfigurationError is fatal and never retried.
type ConfigurationError struct {
	Provider string
	Reason   string
}

func (e *ConfigurationError) Error() string {
	if e.Provider == "" {
		return fmt.Sprintf("exchange rate provider configuration: %s", e.Reason)
	}
	return fmt.Sprintf("exchange rate provider %q configuration: %s", e.Provider, e.Reason)
}

func (e *ConfigurationError) Unwrap() error { return ErrConfiguration }

// UnsupportedCurrencyError is returned when the selected provider does not know a code.
type UnsupportedCurrencyError struct {
	Provider string
	Code     string
}

func (e *UnsupportedCurrencyError) Error() string {
	return fmt.Sprintf("provider %q does not support currency %q", e.Provider, e.Code)
}

func (e *UnsupportedCurrencyError) Unwrap() error { return ErrUnsupportedCurrency }

// ProviderRequestError covers network failures and non-success provider responses.
type ProviderRequestError struct {
	Provider   string
	StatusCode int
	Err        error
}

func (e *ProviderRequestError) Error() string {
	if e.StatusCode != 0 {
		return fmt.Sprintf("provider %q request failed with status %d: %v", e.Provider, e.StatusCode, e.Err)
	}
	return fmt.Sprintf("provider %q request failed: %v", e.Provider, e.Err)
}

// Is lets errors.Is match ErrProviderRequest while Unwrap exposes the cause.
func (e *ProviderRequestError) Is(target error) bool { return target == ErrProviderRequest }

func (e *ProviderRequestError) Unwrap() error { return e.Err }

// RateUnavailableError means every resolution strategy, including the provider, failed.
type RateUnavailableError struct {
	From  string
	To    string
	AsOf  time.Time
	Cause error
}

func (e *RateUnavailableError) Error() string {
	return fmt.Sprintf("no exchange rate for %s->%s as of %s: %v", e.From, e.To, e.AsOf.Format(time.RFC3339), e.Cause)
}

func (e *RateUnavailableError) Is(target error) bool { return target == ErrRateUnavailable }

func (e *RateUnavailableError) Unwrap() error { return e.Cause }
