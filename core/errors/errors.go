// Package errors provides standardized error types and helpers for the
// measurekit codebase.
package errors

import (
	"errors"
	"fmt"
)

// Sentinel errors for common cases
var (
	// ErrDimensionMismatch indicates an operation between incompatible dimensions
	ErrDimensionMismatch = errors.New("dimension mismatch")
	// ErrInvalidPrefix indicates an unregistered power-of-ten prefix exponent
	ErrInvalidPrefix = errors.New("invalid prefix")
	// ErrUnknownUnit indicates a unit or dimension symbol that is not registered
	ErrUnknownUnit = errors.New("unknown unit")
	// ErrAlreadyRegistered indicates a symbol collision during registration
	ErrAlreadyRegistered = errors.New("already registered")
	// ErrInvalidDefinition indicates a malformed unit or dimension declaration
	ErrInvalidDefinition = errors.New("invalid definition")
)

// DimensionMismatchError reports an operation attempted across two
// incompatible dimensions.
type DimensionMismatchError struct {
	Op    string // Operation that was attempted (e.g., "add", "convert", "less")
	Left  string // Dimensions of the left operand
	Right string // Dimensions of the right operand
	Err   error  // Underlying error, if any
}

func (e *DimensionMismatchError) Error() string {
	if e.Op != "" {
		return fmt.Sprintf("cannot %s: dimension mismatch: %s vs %s", e.Op, e.Left, e.Right)
	}
	return fmt.Sprintf("dimension mismatch: %s vs %s", e.Left, e.Right)
}

func (e *DimensionMismatchError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrDimensionMismatch
}

// InvalidPrefixError reports a request for a power-of-ten prefix that is
// not registered, or a prefixed form of a non-prefixable unit.
type InvalidPrefixError struct {
	Tens   int    // Requested power-of-ten exponent
	Symbol string // Unit symbol involved, if any
	Reason string // Why the prefix is invalid
}

func (e *InvalidPrefixError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("invalid prefix 10^%d for unit %s: %s", e.Tens, e.Symbol, e.Reason)
	}
	return fmt.Sprintf("invalid prefix 10^%d: %s", e.Tens, e.Reason)
}

func (e *InvalidPrefixError) Unwrap() error {
	return ErrInvalidPrefix
}

// UnknownUnitError reports a lookup of a symbol that is not registered.
type UnknownUnitError struct {
	Symbol string // Symbol that failed to resolve
	Err    error  // Underlying error, if any
}

func (e *UnknownUnitError) Error() string {
	return fmt.Sprintf("unknown unit: %s", e.Symbol)
}

func (e *UnknownUnitError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrUnknownUnit
}

// RegistrationError reports a failed unit or dimension declaration.
type RegistrationError struct {
	Symbol string // Symbol being declared
	Reason string // Why the declaration failed
	Err    error  // Underlying error, if any
}

func (e *RegistrationError) Error() string {
	if e.Symbol != "" {
		return fmt.Sprintf("cannot register %s: %s", e.Symbol, e.Reason)
	}
	return fmt.Sprintf("registration failed: %s", e.Reason)
}

func (e *RegistrationError) Unwrap() error {
	if e.Err != nil {
		return e.Err
	}
	return ErrInvalidDefinition
}

// Helper functions for creating common errors

// NewDimensionMismatch creates a DimensionMismatchError
func NewDimensionMismatch(op, left, right string) *DimensionMismatchError {
	return &DimensionMismatchError{
		Op:    op,
		Left:  left,
		Right: right,
	}
}

// NewInvalidPrefix creates an InvalidPrefixError
func NewInvalidPrefix(tens int, symbol, reason string) *InvalidPrefixError {
	return &InvalidPrefixError{
		Tens:   tens,
		Symbol: symbol,
		Reason: reason,
	}
}

// NewUnknownUnit creates an UnknownUnitError
func NewUnknownUnit(symbol string) *UnknownUnitError {
	return &UnknownUnitError{Symbol: symbol}
}

// NewRegistration creates a RegistrationError
func NewRegistration(symbol, reason string) *RegistrationError {
	return &RegistrationError{
		Symbol: symbol,
		Reason: reason,
	}
}
