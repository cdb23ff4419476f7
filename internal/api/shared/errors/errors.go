package errors

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/feral-file/ff-collection-ledger/internal/domain"
)

// ErrorCode represents a standardized error code
type ErrorCode string

const (
	// Client errors (4xx)
	ErrCodeBadRequest       ErrorCode = "bad_request"
	ErrCodeNotFound         ErrorCode = "not_found"
	ErrCodeValidationFailed ErrorCode = "validation_failed"
	ErrCodeUnauthorized     ErrorCode = "unauthorized"
	ErrCodeForbidden        ErrorCode = "forbidden"
	ErrCodeConflict         ErrorCode = "conflict"
	ErrCodeRateLimited      ErrorCode = "rate_limited"

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
	ErrCodeDatabaseError ErrorCode = "database_error"
	ErrCodeServiceError  ErrorCode = "service_error"
)

// APIError represents a structured API error that carries error code and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

// Error constructors for common error types
func NewBadRequestError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeBadRequest,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewNotFoundError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeNotFound,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewValidationError(details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeValidationFailed,
		Message: "Validation failed",
		Details: strings.Join(details, ", "),
	}
}

func NewUnauthorizedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeUnauthorized,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewForbiddenError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeForbidden,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewConflictError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeConflict,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewRateLimitedError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeRateLimited,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewInternalError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeInternalError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewDatabaseError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeDatabaseError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

func NewServiceError(message string, details ...string) *APIError {
	return &APIError{
		Code:    ErrCodeServiceError,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// FromLedgerError maps a ledger rejection to an HTTP status and API error.
// ok is false when err is not a ledger rejection.
func FromLedgerError(err error) (status int, apiErr *APIError, ok bool) {
	switch {
	case errors.Is(err, domain.ErrCollectionNotFound):
		return http.StatusNotFound, NewNotFoundError("Collection not found", err.Error()), true
	case errors.Is(err, domain.ErrNonexistentToken):
		return http.StatusNotFound, NewNotFoundError("Token not found", err.Error()), true
	case errors.Is(err, domain.ErrUnauthorized):
		return http.StatusForbidden, NewForbiddenError("Caller is not authorized", err.Error()), true
	case errors.Is(err, domain.ErrZeroAddress),
		errors.Is(err, domain.ErrInvalidAddress),
		errors.Is(err, domain.ErrInvalidQuantity),
		errors.Is(err, domain.ErrInvalidRoyalty),
		errors.Is(err, domain.ErrInvalidConfig):
		return http.StatusUnprocessableEntity, NewValidationError(err.Error()), true
	case errors.Is(err, domain.ErrSupplyExceeded),
		errors.Is(err, domain.ErrBatchTooLarge),
		errors.Is(err, domain.ErrIncorrectOwner),
		errors.Is(err, domain.ErrApprovalToOwner),
		errors.Is(err, domain.ErrSelfApproval),
		errors.Is(err, domain.ErrReentrantCall):
		return http.StatusConflict, NewConflictError("Ledger call rejected", err.Error()), true
	case errors.Is(err, domain.ErrStaleState):
		return http.StatusConflict, NewConflictError("Collection changed concurrently, retry the call", err.Error()), true
	}

	return 0, nil, false
}
