// Package errors provides the structured errors used across statblock-api.
//
// Repositories return coded errors (NotFound, InvalidArgument), orchestrators
// wrap them with context, and the transports translate codes to HTTP statuses
// or gRPC statuses:
//
//	if err := repo.Put(ctx, input); err != nil {
//	    return nil, errors.Wrap(err, "failed to save stat block")
//	}
//
//	err := errors.NotFoundf("stat block %q not found", name).WithMeta("name", name)
//
//	if errors.IsNotFound(err) { ... }
//
// Config and request validation collect field errors with a ValidationBuilder.
package errors

import (
	"errors"
	"fmt"
)

// Error is a structured error with a code, a user-facing message and metadata
type Error struct {
	Code    Code           `json:"code"`
	Message string         `json:"message"`
	Cause   error          `json:"-"`
	Meta    map[string]any `json:"meta,omitempty"`
}

// Error implements the error interface
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the wrapped error
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is reports whether target is an *Error with the same code
func (e *Error) Is(target error) bool {
	var targetErr *Error
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// WithMeta adds a metadata entry
func (e *Error) WithMeta(key string, value any) *Error {
	if e.Meta == nil {
		e.Meta = make(map[string]any)
	}
	e.Meta[key] = value
	return e
}

// New creates an error with the given code and message
func New(code Code, message string) *Error {
	return &Error{Code: code, Message: message}
}

// Newf creates an error with a formatted message
func Newf(code Code, format string, args ...any) *Error {
	return New(code, fmt.Sprintf(format, args...))
}

// Wrap wraps err with a message. The code and metadata of a wrapped *Error are
// kept; any other error becomes Internal.
func Wrap(err error, message string) *Error {
	if err == nil {
		return nil
	}

	var existing *Error
	if errors.As(err, &existing) {
		return &Error{
			Code:    existing.Code,
			Message: message,
			Cause:   err,
			Meta:    existing.Meta,
		}
	}

	return &Error{
		Code:    CodeInternal,
		Message: message,
		Cause:   err,
	}
}

// Wrapf wraps err with a formatted message
func Wrapf(err error, format string, args ...any) *Error {
	return Wrap(err, fmt.Sprintf(format, args...))
}

// WrapWithCode wraps err and replaces its code
func WrapWithCode(err error, code Code, message string) *Error {
	if err == nil {
		return nil
	}

	wrapped := &Error{
		Code:    code,
		Message: message,
		Cause:   err,
	}

	var existing *Error
	if errors.As(err, &existing) {
		for k, v := range existing.Meta {
			wrapped.WithMeta(k, v)
		}
	}

	return wrapped
}

// NotFound creates a not found error
func NotFound(message string) *Error { return New(CodeNotFound, message) }

// NotFoundf creates a not found error with a formatted message
func NotFoundf(format string, args ...any) *Error { return Newf(CodeNotFound, format, args...) }

// InvalidArgument creates an invalid argument error
func InvalidArgument(message string) *Error { return New(CodeInvalidArgument, message) }

// InvalidArgumentf creates an invalid argument error with a formatted message
func InvalidArgumentf(format string, args ...any) *Error {
	return Newf(CodeInvalidArgument, format, args...)
}

// FailedPrecondition creates a failed precondition error
func FailedPrecondition(message string) *Error { return New(CodeFailedPrecondition, message) }

// FailedPreconditionf creates a failed precondition error with a formatted message
func FailedPreconditionf(format string, args ...any) *Error {
	return Newf(CodeFailedPrecondition, format, args...)
}

// Internal creates an internal error
func Internal(message string) *Error { return New(CodeInternal, message) }

// Internalf creates an internal error with a formatted message
func Internalf(format string, args ...any) *Error { return Newf(CodeInternal, format, args...) }

// Unavailable creates an unavailable error
func Unavailable(message string) *Error { return New(CodeUnavailable, message) }

// GetCode returns the code of err, CodeOK for nil and CodeInternal for foreign errors
func GetCode(err error) Code {
	if err == nil {
		return CodeOK
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	return CodeInternal
}

// GetMessage returns the user-facing message of err
func GetMessage(err error) string {
	if err == nil {
		return ""
	}

	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}

// GetMeta returns the metadata of err, or nil
func GetMeta(err error) map[string]any {
	var e *Error
	if errors.As(err, &e) {
		return e.Meta
	}
	return nil
}

// IsNotFound reports whether err carries CodeNotFound
func IsNotFound(err error) bool { return GetCode(err) == CodeNotFound }

// IsInvalidArgument reports whether err carries CodeInvalidArgument
func IsInvalidArgument(err error) bool { return GetCode(err) == CodeInvalidArgument }

// IsFailedPrecondition reports whether err carries CodeFailedPrecondition
func IsFailedPrecondition(err error) bool { return GetCode(err) == CodeFailedPrecondition }

// IsInternal reports whether err carries CodeInternal
func IsInternal(err error) bool { return GetCode(err) == CodeInternal }
