// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrInsufficientData = errors.New("insufficient data")
	ErrInvalidInput     = errors.New("invalid input")
	ErrZeroRiskDistance = errors.New("zero risk distance")
	ErrDataUnavailable  = errors.New("market data unavailable")
	ErrSessionNotFound  = errors.New("session not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
)

// ValidationError represents an input validation error. It wraps
// ErrInvalidInput so callers can match the whole class.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

func (e *ValidationError) Unwrap() error {
	return ErrInvalidInput
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// ZeroRiskDistanceError is returned when entry and stop collapse to
// the same price, which would make position sizing divide by zero.
type ZeroRiskDistanceError struct {
	Entry    float64
	StopLoss float64
}

func (e *ZeroRiskDistanceError) Error() string {
	return fmt.Sprintf("zero risk distance: entry %.4f equals stop loss %.4f", e.Entry, e.StopLoss)
}

func (e *ZeroRiskDistanceError) Unwrap() error {
	return ErrZeroRiskDistance
}

// DataUnavailableError represents a market-data provider failure. The
// engine surfaces it to the caller instead of fabricating fallback data.
type DataUnavailableError struct {
	Symbol string
	Source string
	Err    error
}

func (e *DataUnavailableError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("data unavailable [%s] %s: %v", e.Source, e.Symbol, e.Err)
	}
	return fmt.Sprintf("data unavailable [%s] %s", e.Source, e.Symbol)
}

func (e *DataUnavailableError) Unwrap() error {
	return ErrDataUnavailable
}

// NewDataUnavailableError creates a new DataUnavailableError.
func NewDataUnavailableError(source, symbol string, err error) *DataUnavailableError {
	return &DataUnavailableError{
		Symbol: symbol,
		Source: source,
		Err:    err,
	}
}

// Wrap wraps an error with additional context.
func Wrap(err error, message string) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", message, err)
}

// Wrapf wraps an error with formatted context.
func Wrapf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return fmt.Errorf("%s: %w", fmt.Sprintf(format, args...), err)
}

// Is reports whether any error in err's chain matches target.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
