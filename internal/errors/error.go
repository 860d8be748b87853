package errors

import (
	"fmt"
)

// Category represents the type of error.
type Category string

const (
	CategoryRuntime   Category = "runtime"
	CategoryHost      Category = "host"
	CategoryCommand   Category = "command"
	CategoryTransport Category = "transport"
	CategoryStore     Category = "store"
	CategoryConfig    Category = "config"
	CategoryCLI       Category = "cli"
)

// MdomError is a structured error with a registered code, suggestions and documentation.
type MdomError struct {
	// Code is a unique error identifier (e.g., "E001").
	Code string

	// Category is the error type (runtime, host, etc.).
	Category Category

	// Message is a short description of the error.
	Message string

	// Detail is a longer explanation of the error.
	Detail string

	// Suggestion is a hint on how to fix the error.
	Suggestion string

	// DocURL is a link to documentation about this error.
	DocURL string

	// Wrapped is the underlying error, if any.
	Wrapped error
}

// Error implements the error interface.
func (e *MdomError) Error() string {
	msg := e.Message
	if e.Code != "" {
		msg = fmt.Sprintf("%s: %s", e.Code, e.Message)
	}
	if e.Detail != "" {
		msg += " (" + e.Detail + ")"
	}
	if e.Wrapped != nil {
		msg += ": " + e.Wrapped.Error()
	}
	return msg
}

// Unwrap returns the wrapped error for errors.Is/As support.
func (e *MdomError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is an MdomError with the same code.
func (e *MdomError) Is(target error) bool {
	t, ok := target.(*MdomError)
	if !ok || t.Code == "" {
		return false
	}
	return e.Code == t.Code
}

// WithSuggestion adds a fix suggestion to the error.
func (e *MdomError) WithSuggestion(s string) *MdomError {
	e.Suggestion = s
	return e
}

// WithDetail adds a detailed explanation to the error.
func (e *MdomError) WithDetail(d string) *MdomError {
	e.Detail = d
	return e
}

// WithDetailf adds a formatted detail to the error.
func (e *MdomError) WithDetailf(format string, args ...any) *MdomError {
	e.Detail = fmt.Sprintf(format, args...)
	return e
}

// Wrap wraps another error.
func (e *MdomError) Wrap(err error) *MdomError {
	e.Wrapped = err
	return e
}

// New creates an MdomError from a registered error code.
func New(code string) *MdomError {
	template, ok := registry[code]
	if !ok {
		return &MdomError{
			Code:    code,
			Message: "Unknown error",
		}
	}
	return &MdomError{
		Code:     code,
		Category: template.Category,
		Message:  template.Message,
		DocURL:   template.DocURL,
	}
}

// Newf creates a new MdomError with a formatted message (no code).
func Newf(category Category, format string, args ...any) *MdomError {
	return &MdomError{
		Category: category,
		Message:  fmt.Sprintf(format, args...),
	}
}

// FromError wraps a standard error in an MdomError.
// Errors that already are MdomErrors are returned unchanged.
func FromError(err error, code string) *MdomError {
	if err == nil {
		return nil
	}
	if me, ok := err.(*MdomError); ok {
		return me
	}
	return New(code).Wrap(err)
}

// Code returns the code of err if it is an MdomError, or "" otherwise.
func Code(err error) string {
	for err != nil {
		if me, ok := err.(*MdomError); ok {
			return me.Code
		}
		u, ok := err.(interface{ Unwrap() error })
		if !ok {
			return ""
		}
		err = u.Unwrap()
	}
	return ""
}
