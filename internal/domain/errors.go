package domain

import (
	"errors"
	"fmt"
	"strings"
)

// ErrNotFound is returned when the requested resource does not exist.
// Handlers should map this to HTTP 404.
var ErrNotFound = errors.New("not found")

// ErrValidation is returned when input fails a local rule before any network
// call is made (e.g. missing required field, missing selection).
// Handlers should map this to HTTP 422 Unprocessable Entity.
var ErrValidation = errors.New("validation error")

// ErrConnection is returned when the trip backend cannot be reached at all.
var ErrConnection = errors.New("connection error")

// ErrServer is returned when the trip backend was reached but answered with
// a failure.
var ErrServer = errors.New("server error")

// ErrUnsupportedInput is returned when input is rejected against a static
// allow-list (e.g. a city with no known location identifier).
var ErrUnsupportedInput = errors.New("unsupported input")

// ValidationError names the missing or invalid piece of input.
// It unwraps to ErrValidation.
type ValidationError struct {
	Field   string
	Message string
}

// NewValidationError builds a ValidationError for field with a user-facing message.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

func (e *ValidationError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("%s is required", e.Field)
	}
	return e.Message
}

func (e *ValidationError) Unwrap() error { return ErrValidation }

// ConnectionError reports that the backend at BaseURL was unreachable.
// The message is shown to the user verbatim.
type ConnectionError struct {
	BaseURL string
	Err     error
}

func (e *ConnectionError) Error() string {
	return "Cannot connect to server. Please make sure the backend server is running on " + e.BaseURL
}

// Unwrap exposes both the sentinel and the underlying transport error.
func (e *ConnectionError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrConnection}
	}
	return []error{ErrConnection, e.Err}
}

// ServerError carries the failure message the backend returned.
type ServerError struct {
	Status  int
	Message string
}

func (e *ServerError) Error() string { return e.Message }

func (e *ServerError) Unwrap() error { return ErrServer }

// UnsupportedInputError reports input outside a static allow-list.
// Supported lists the accepted values so the user can correct the input.
type UnsupportedInputError struct {
	Kind      string
	Input     string
	Supported []string
}

func (e *UnsupportedInputError) Error() string {
	return fmt.Sprintf("unsupported %s %q. Supported: %s", e.Kind, e.Input, strings.Join(e.Supported, ", "))
}

func (e *UnsupportedInputError) Unwrap() error { return ErrUnsupportedInput }

// UserMessage returns the text that should be shown to the user for err.
// Typed errors carry their own message; wrapped prefixes added while the
// error travelled up the stack are dropped.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var (
		ve *ValidationError
		ce *ConnectionError
		se *ServerError
		ue *UnsupportedInputError
	)
	switch {
	case errors.As(err, &ve):
		return ve.Error()
	case errors.As(err, &ce):
		return ce.Error()
	case errors.As(err, &se):
		return se.Error()
	case errors.As(err, &ue):
		return ue.Error()
	}
	return err.Error()
}
