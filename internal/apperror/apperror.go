// Package apperror defines the error taxonomy shared by all layers.
//
// Services return *AppError values wrapping one of the sentinel errors below;
// the HTTP layer maps sentinels to status codes with errors.Is and serializes
// the Message/Details/Debug fields. Nothing outside the handler package
// should ever see an HTTP status code.
package apperror

import "errors"

var (
	// ErrInvalidInput marks a missing or malformed client-supplied value (400).
	ErrInvalidInput = errors.New("invalid input")

	// ErrNotFound marks an absent stored record (404).
	ErrNotFound = errors.New("not found")

	// ErrUpstream marks a non-success response from an external API (502).
	ErrUpstream = errors.New("upstream failure")

	// ErrConflict marks a unique-constraint violation. The auth service treats
	// a conflicting token upsert as an idempotent re-auth, so this sentinel
	// normally never reaches the HTTP layer.
	ErrConflict = errors.New("conflict")
)

// AppError is a typed application error.
//
// Message is the user-visible error string. Details carries diagnostic data
// safe to return to the caller (an upstream body, an underlying error
// message). Debug carries configuration diagnostics for 500s — booleans and
// URIs only, never secret values.
type AppError struct {
	Err     error
	Message string
	Details any
	Debug   map[string]any
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// InvalidInput builds a 400-class error.
func InvalidInput(message string, details any) *AppError {
	return &AppError{Err: ErrInvalidInput, Message: message, Details: details}
}

// NotFound builds a 404-class error.
func NotFound(message string, details any) *AppError {
	return &AppError{Err: ErrNotFound, Message: message, Details: details}
}

// Upstream builds a 502-class error.
func Upstream(message string, details any) *AppError {
	return &AppError{Err: ErrUpstream, Message: message, Details: details}
}

// Internal builds a 500-class error. Err is nil so none of the mapped
// sentinels match and the handler falls through to 500.
func Internal(message string, details any) *AppError {
	return &AppError{Message: message, Details: details}
}

// WithDebug attaches a debug block and returns the same error.
func (e *AppError) WithDebug(debug map[string]any) *AppError {
	e.Debug = debug
	return e
}
