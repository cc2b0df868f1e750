// Package errors provides structured error handling with typed error codes.
//
// Error codes are organized into categories:
//   - General errors (1-99): Unknown and general errors
//   - Validation errors (100-199): Invalid parameters, configuration and versions
//   - Data/Resource errors (200-299): Missing price data or unavailable price sources
//   - Indicator errors (300-399): Indicator lookup and calculation errors
//   - Strategy errors (400-499): Strategy lookup and configuration errors
//   - Formula errors (900-999): Syntax, unknown identifiers/functions and arity errors
//
// Usage:
//
//	// Create a new error
//	err := errors.New(errors.ErrCodeInvalidParameter, "invalid parameter value")
//
//	// Wrap an existing error
//	err := errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to read config", originalErr)
//
//	// Check error code, typed formula errors included
//	if errors.HasCode(err, errors.ErrCodeSyntax) { ... }
package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error represents a structured error with an error code and message.
type Error struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// New creates a new Error with the given code and message.
func New(code ErrorCode, message string) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   nil,
	}
}

// Newf creates a new Error with the given code and formatted message.
func Newf(code ErrorCode, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   nil,
	}
}

// Wrap wraps an existing error with a new Error containing the given code and message.
func Wrap(code ErrorCode, message string, cause error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Cause:   cause,
	}
}

// Wrapf wraps an existing error with a new Error containing the given code and formatted message.
func Wrapf(code ErrorCode, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%d] %s: %v", e.Code, e.Message, e.Cause)
	}

	return fmt.Sprintf("[%d] %s", e.Code, e.Message)
}

// Unwrap returns the underlying error cause.
func (e *Error) Unwrap() error {
	return e.Cause
}

// ErrorCode returns the error code.
func (e *Error) ErrorCode() ErrorCode {
	return e.Code
}

// coded is implemented by every error type in this package.
type coded interface {
	error
	ErrorCode() ErrorCode
}

// Is reports whether any error in err's chain matches target.
// This is a convenience wrapper around the standard errors.Is function.
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target.
// This is a convenience wrapper around the standard errors.As function.
func As(err error, target any) bool {
	return errors.As(err, target)
}

// GetCode extracts the ErrorCode from the first coded error in err's chain.
// Returns ErrCodeUnknown if the chain carries no code.
func GetCode(err error) ErrorCode {
	var c coded
	if errors.As(err, &c) {
		return c.ErrorCode()
	}

	return ErrCodeUnknown
}

// HasCode checks if an error has a specific ErrorCode.
func HasCode(err error, code ErrorCode) bool {
	return GetCode(err) == code
}

// SyntaxError is returned by the formula parser for malformed input.
type SyntaxError struct {
	Offset   int    // Byte offset into the formula as written
	Expected string // What the parser was looking for
	Found    string // What it found instead
}

// NewSyntaxError creates a new SyntaxError.
func NewSyntaxError(offset int, expected, found string) *SyntaxError {
	return &SyntaxError{
		Offset:   offset,
		Expected: expected,
		Found:    found,
	}
}

// Error implements the error interface.
func (e *SyntaxError) Error() string {
	return fmt.Sprintf("expected %s at pos %d, found %s", e.Expected, e.Offset, e.Found)
}

// ErrorCode returns ErrCodeSyntax.
func (e *SyntaxError) ErrorCode() ErrorCode {
	return ErrCodeSyntax
}

// UnknownIdentifierError is returned when a formula references a series the context does not provide.
type UnknownIdentifierError struct {
	Name      string
	Supported []string
}

// NewUnknownIdentifierError creates a new UnknownIdentifierError.
func NewUnknownIdentifierError(name string, supported []string) *UnknownIdentifierError {
	return &UnknownIdentifierError{
		Name:      name,
		Supported: supported,
	}
}

// Error implements the error interface.
func (e *UnknownIdentifierError) Error() string {
	return fmt.Sprintf("unknown identifier '%s'. Supported: %s", e.Name, strings.Join(e.Supported, ", "))
}

// ErrorCode returns ErrCodeUnknownIdentifier.
func (e *UnknownIdentifierError) ErrorCode() ErrorCode {
	return ErrCodeUnknownIdentifier
}

// UnknownFunctionError is returned when a formula calls a function outside the registry.
type UnknownFunctionError struct {
	Name string
}

// NewUnknownFunctionError creates a new UnknownFunctionError.
func NewUnknownFunctionError(name string) *UnknownFunctionError {
	return &UnknownFunctionError{Name: name}
}

// Error implements the error interface.
func (e *UnknownFunctionError) Error() string {
	return fmt.Sprintf("unknown function %s", e.Name)
}

// ErrorCode returns ErrCodeUnknownFunction.
func (e *UnknownFunctionError) ErrorCode() ErrorCode {
	return ErrCodeUnknownFunction
}

// ArityError is returned when a known function is called with the wrong number of arguments.
type ArityError struct {
	Function string
	Min      int
	Max      int
	Actual   int
}

// NewArityError creates a new ArityError.
func NewArityError(function string, minArgs, maxArgs, actual int) *ArityError {
	return &ArityError{
		Function: function,
		Min:      minArgs,
		Max:      maxArgs,
		Actual:   actual,
	}
}

// Error implements the error interface.
func (e *ArityError) Error() string {
	if e.Min == e.Max {
		return fmt.Sprintf("%s expects %d args, got %d", e.Function, e.Min, e.Actual)
	}

	return fmt.Sprintf("%s expects %d-%d args, got %d", e.Function, e.Min, e.Max, e.Actual)
}

// ErrorCode returns ErrCodeArity.
func (e *ArityError) ErrorCode() ErrorCode {
	return ErrCodeArity
}

// IsSyntaxError checks if an error is a SyntaxError.
func IsSyntaxError(err error) bool {
	var target *SyntaxError

	return errors.As(err, &target)
}

// IsUnknownIdentifierError checks if an error is an UnknownIdentifierError.
func IsUnknownIdentifierError(err error) bool {
	var target *UnknownIdentifierError

	return errors.As(err, &target)
}

// IsUnknownFunctionError checks if an error is an UnknownFunctionError.
func IsUnknownFunctionError(err error) bool {
	var target *UnknownFunctionError

	return errors.As(err, &target)
}

// IsArityError checks if an error is an ArityError.
func IsArityError(err error) bool {
	var target *ArityError

	return errors.As(err, &target)
}
