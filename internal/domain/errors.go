package domain

import (
	"errors"
	"strings"

	"github.com/shopspring/decimal"
)

// Domain errors
var (
	ErrValidation            = errors.New("validation failed")
	ErrUnknownIntent         = errors.New("unknown intent")
	ErrComputation           = errors.New("computation failed")
	ErrProfileNotFound       = errors.New("profile not found")
	ErrReportArchiveDisabled = errors.New("report archive is not configured")
)

// FieldError describes a single invalid input field
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

// ValidationError reports malformed input detected before any computation runs.
// It matches ErrValidation with errors.Is.
type ValidationError struct {
	Fields []FieldError
}

// NewValidationError creates a ValidationError for a single field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Fields: []FieldError{{Field: field, Message: message}}}
}

// Add appends a field error
func (e *ValidationError) Add(field, message string) {
	e.Fields = append(e.Fields, FieldError{Field: field, Message: message})
}

// addAmount records a field error when amount is out of bounds
func (e *ValidationError) addAmount(field string, amount decimal.Decimal) {
	if msg := CheckAmount(amount); msg != "" {
		e.Add(field, msg)
	}
}

// HasErrors reports whether any field error was recorded
func (e *ValidationError) HasErrors() bool {
	return e != nil && len(e.Fields) > 0
}

// OrNil returns nil when no field error was recorded.
// Callers return it directly so an empty *ValidationError never becomes a non-nil error.
func (e *ValidationError) OrNil() error {
	if !e.HasErrors() {
		return nil
	}
	return e
}

func (e *ValidationError) Error() string {
	if len(e.Fields) == 0 {
		return ErrValidation.Error()
	}
	parts := make([]string, 0, len(e.Fields))
	for _, f := range e.Fields {
		parts = append(parts, f.Field+": "+f.Message)
	}
	return ErrValidation.Error() + ": " + strings.Join(parts, "; ")
}

// Is makes errors.Is(err, ErrValidation) succeed
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

// ComputationError reports an arithmetic edge case that validation failed to catch
type ComputationError struct {
	Op     string
	Reason string
}

func (e *ComputationError) Error() string {
	return ErrComputation.Error() + ": " + e.Op + ": " + e.Reason
}

// Is makes errors.Is(err, ErrComputation) succeed
func (e *ComputationError) Is(target error) bool {
	return target == ErrComputation
}
