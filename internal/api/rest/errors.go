package rest

import (
	"encoding/json"
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"github.com/slide-archive/histogramd/internal/domain"
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

	// Server errors (5xx)
	ErrCodeInternalError ErrorCode = "internal_error"
)

// APIError represents a structured API error that carries error code
// and details
type APIError struct {
	Code    ErrorCode `json:"code"`
	Message string    `json:"message"`
	Details string    `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	jsonErr, _ := json.Marshal(e)
	return string(jsonErr)
}

func newAPIError(code ErrorCode, message string, details ...string) *APIError {
	return &APIError{
		Code:    code,
		Message: message,
		Details: strings.Join(details, ", "),
	}
}

// respondBadRequest responds with a bad request error
func respondBadRequest(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusBadRequest, newAPIError(ErrCodeBadRequest, message, details...))
}

// respondNotFound responds with a not found error
func respondNotFound(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusNotFound, newAPIError(ErrCodeNotFound, message, details...))
}

// respondForbidden responds with a forbidden error
func respondForbidden(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusForbidden, newAPIError(ErrCodeForbidden, message, details...))
}

// respondValidationError responds with a validation error
func respondValidationError(c *gin.Context, details ...string) {
	c.JSON(http.StatusUnprocessableEntity, newAPIError(ErrCodeValidationFailed, "Validation failed", details...))
}

// respondInternalError responds with an internal server error
func respondInternalError(c *gin.Context, message string, details ...string) {
	c.JSON(http.StatusInternalServerError, newAPIError(ErrCodeInternalError, message, details...))
}

// respondDomainError maps domain errors onto their HTTP status. fallback
// is the message used when the error is an unclassified internal one.
func respondDomainError(c *gin.Context, err error, fallback string) {
	switch {
	case errors.Is(err, domain.ErrNotFound):
		respondNotFound(c, err.Error())
	case errors.Is(err, domain.ErrAccessDenied):
		respondForbidden(c, err.Error())
	case errors.Is(err, domain.ErrMissingParameter):
		respondBadRequest(c, err.Error())
	case domain.IsValidation(err):
		respondValidationError(c, err.Error())
	default:
		respondInternalError(c, fallback, err.Error())
	}
}
