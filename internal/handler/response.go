package handler

import (
	"errors"
	"net/http"

	"github.com/dafibh/fintwin/fintwin-backend/internal/domain"
	"github.com/labstack/echo/v4"
	"github.com/rs/zerolog/log"
)

// ProblemDetails represents an RFC 7807 Problem Details response.
// Error carries the short message for clients that only read {error}.
type ProblemDetails struct {
	Type     string            `json:"type"`
	Title    string            `json:"title"`
	Status   int               `json:"status"`
	Detail   string            `json:"detail,omitempty"`
	Instance string            `json:"instance,omitempty"`
	Errors   []ValidationError `json:"errors,omitempty"`
	Error    string            `json:"error"`
}

// ValidationError represents a single validation error
type ValidationError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// Error types
const (
	ErrorTypeValidation    = "https://fintwin.app/errors/validation"
	ErrorTypeUnknownIntent = "https://fintwin.app/errors/unknown-intent"
	ErrorTypeNotFound      = "https://fintwin.app/errors/not-found"
	ErrorTypeForbidden     = "https://fintwin.app/errors/forbidden"
	ErrorTypeInternal      = "https://fintwin.app/errors/internal"
	ErrorTypeUnavailable   = "https://fintwin.app/errors/unavailable"
)

// NewValidationError creates a validation error response
func NewValidationError(c echo.Context, detail string, errors []ValidationError) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeValidation,
		Title:    "Validation Error",
		Status:   http.StatusBadRequest,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Errors:   errors,
		Error:    detail,
	})
}

// NewUnknownIntentError creates the response for an intent the estimator does not handle
func NewUnknownIntentError(c echo.Context, intent string) error {
	return c.JSON(http.StatusBadRequest, ProblemDetails{
		Type:     ErrorTypeUnknownIntent,
		Title:    "Unknown Intent",
		Status:   http.StatusBadRequest,
		Detail:   "Intent '" + intent + "' is not supported",
		Instance: c.Request().URL.Path,
		Error:    "Unknown intent",
	})
}

// NewNotFoundError creates a not found error response
func NewNotFoundError(c echo.Context, detail string) error {
	return c.JSON(http.StatusNotFound, ProblemDetails{
		Type:     ErrorTypeNotFound,
		Title:    "Not Found",
		Status:   http.StatusNotFound,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Error:    detail,
	})
}

// NewForbiddenError creates a forbidden error response
func NewForbiddenError(c echo.Context, detail string) error {
	return c.JSON(http.StatusForbidden, ProblemDetails{
		Type:     ErrorTypeForbidden,
		Title:    "Forbidden",
		Status:   http.StatusForbidden,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Error:    detail,
	})
}

// NewInternalError creates an internal error response
func NewInternalError(c echo.Context, detail string) error {
	return c.JSON(http.StatusInternalServerError, ProblemDetails{
		Type:     ErrorTypeInternal,
		Title:    "Internal Server Error",
		Status:   http.StatusInternalServerError,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Error:    detail,
	})
}

// NewUnavailableError creates a service unavailable error response
func NewUnavailableError(c echo.Context, detail string) error {
	return c.JSON(http.StatusServiceUnavailable, ProblemDetails{
		Type:     ErrorTypeUnavailable,
		Title:    "Service Unavailable",
		Status:   http.StatusServiceUnavailable,
		Detail:   detail,
		Instance: c.Request().URL.Path,
		Error:    detail,
	})
}

// fieldErrors converts a domain validation error to response entries
func fieldErrors(verr *domain.ValidationError) []ValidationError {
	out := make([]ValidationError, 0, len(verr.Fields))
	for _, f := range verr.Fields {
		out = append(out, ValidationError{Field: f.Field, Message: f.Message})
	}
	return out
}

// writeServiceError maps a service error onto the response taxonomy.
// internalMsg is shown for failures the caller cannot fix.
func writeServiceError(c echo.Context, err error, internalMsg string) error {
	var verr *domain.ValidationError
	switch {
	case errors.As(err, &verr):
		return NewValidationError(c, "Validation failed", fieldErrors(verr))
	case errors.Is(err, domain.ErrValidation):
		return NewValidationError(c, err.Error(), nil)
	case errors.Is(err, domain.ErrProfileNotFound):
		return NewNotFoundError(c, "Profile not found")
	case errors.Is(err, domain.ErrReportArchiveDisabled):
		return NewUnavailableError(c, "Report archive is not configured")
	default:
		log.Error().Err(err).Str("path", c.Request().URL.Path).Msg(internalMsg)
		return NewInternalError(c, internalMsg)
	}
}
