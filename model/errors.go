package model

import (
	"errors"
	"fmt"
)

// ErrorCode classifies construction-time errors. Errors raised by an engine
// while a request is in flight are never wrapped in Error.
type ErrorCode int

const (
	// ErrCodeValidation indicates a malformed host, request or part.
	ErrCodeValidation ErrorCode = iota
	// ErrCodeBody indicates the body could not be prepared (e.g. the file
	// is missing).
	ErrCodeBody
	// ErrCodeClosed indicates the client was already closed.
	ErrCodeClosed
)

// String returns the error code name.
func (c ErrorCode) String() string {
	switch c {
	case ErrCodeValidation:
		return "validation"
	case ErrCodeBody:
		return "body"
	case ErrCodeClosed:
		return "closed"
	default:
		return "unknown"
	}
}

// ErrClosed is returned when a closed client is asked to execute a request.
var ErrClosed = &Error{Code: ErrCodeClosed, Message: "client is closed"}

// Error is a construction-time failure raised before a request reaches the
// engine.
type Error struct {
	// Code classifies the error.
	Code ErrorCode
	// Field names the offending input, if known.
	Field string
	// Message describes the error.
	Message string
	// Err is the underlying error.
	Err error
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("httpfacade: %s: %s: %s", e.Code, e.Field, e.Message)
	}
	return fmt.Sprintf("httpfacade: %s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying error.
func (e *Error) Unwrap() error {
	return e.Err
}

// Is matches errors with the same code, so errors.Is(err, ErrClosed) works
// for any closed-client error.
func (e *Error) Is(target error) bool {
	t, ok := target.(*Error)
	if !ok {
		return false
	}
	return t.Code == e.Code && t.Field == "" && t.Err == nil
}

// NewValidationError creates a validation error.
func NewValidationError(field, msg string) *Error {
	return &Error{Code: ErrCodeValidation, Field: field, Message: msg}
}

// NewBodyError creates a body preparation error.
func NewBodyError(err error) *Error {
	return &Error{Code: ErrCodeBody, Message: err.Error(), Err: err}
}

// IsValidation checks if an error is a validation error.
func IsValidation(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeValidation
}

// IsBody checks if an error is a body preparation error.
func IsBody(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeBody
}

// IsClosed checks if an error reports a closed client.
func IsClosed(err error) bool {
	var e *Error
	return errors.As(err, &e) && e.Code == ErrCodeClosed
}
