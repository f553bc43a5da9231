// Package errors provides custom error types for domain-specific errors.
package errors

import (
	"errors"
	"fmt"
)

// Standard sentinel errors
var (
	ErrTradeNotFound    = errors.New("trade not found")
	ErrTradeClosed      = errors.New("trade is closed and immutable")
	ErrTradeNotClosed   = errors.New("trade has no recorded outcome")
	ErrItemNotFound     = errors.New("checklist item not found")
	ErrSettingsNotFound = errors.New("user settings not found")
	ErrConfigInvalid    = errors.New("invalid configuration")
	ErrDatabaseError    = errors.New("database error")
	ErrInputValidation  = errors.New("input validation failed")
)

// ValidationError represents a validation error.
type ValidationError struct {
	Field   string
	Value   interface{}
	Message string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("validation error: %s (%v): %s", e.Field, e.Value, e.Message)
}

// NewValidationError creates a new ValidationError.
func NewValidationError(field string, value interface{}, message string) *ValidationError {
	return &ValidationError{
		Field:   field,
		Value:   value,
		Message: message,
	}
}

// TradeStateError represents an invalid trade lifecycle transition.
type TradeStateError struct {
	TradeID string
	From    string
	Action  string
	Reason  string
}

func (e *TradeStateError) Error() string {
	return fmt.Sprintf("trade state error [%s] %s from %s: %s", e.TradeID, e.Action, e.From, e.Reason)
}

// NewTradeStateError creates a new TradeStateError.
func NewTradeStateError(tradeID, from, action, reason string) *TradeStateError {
	return &TradeStateError{
		TradeID: tradeID,
		From:    from,
		Action:  action,
		Reason:  reason,
	}
}

// StoreError represents a persistence-layer error.
type StoreError struct {
	Op     string
	Entity string
	Err    error
}

func (e *StoreError) Error() string {
	return fmt.Sprintf("store error [%s] %s: %v", e.Op, e.Entity, e.Err)
}

func (e *StoreError) Unwrap() error {
	return e.Err
}

// NewStoreError creates a new StoreError.
func NewStoreError(op, entity string, err error) *StoreError {
	return &StoreError{
		Op:     op,
		Entity: entity,
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
