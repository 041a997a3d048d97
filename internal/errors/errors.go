package errors

import (
	"errors"
	"fmt"
	"strings"
)

// Error codes for categorizing errors
const (
	ErrConfig  = "CONFIG"
	ErrStore   = "STORE" // store missing, unreadable or unreachable
	ErrPrefs   = "PREFS" // stored preference does not parse as the requested type
	ErrDisplay = "DISPLAY"
)

// Error represents a structured error with code, message, suggestion, and optional cause.
// Rendered as:
//
//	✗ <What failed>
//
//	  <Why it failed - technical details>
//
//	  <How to fix it - actionable steps>
type Error struct {
	Code       string
	Message    string
	Suggestion string
	Cause      error
}

// New creates a new structured error with the given code, message, and suggestion.
func New(code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
	}
}

// WrapWithCode wraps an existing error with a specific code, message, and suggestion.
func WrapWithCode(err error, code, message, suggestion string) *Error {
	return &Error{
		Code:       code,
		Message:    message,
		Suggestion: suggestion,
		Cause:      err,
	}
}

// NewStoreUnavailable reports that the bandwidth database at path could not be used.
func NewStoreUnavailable(path string, cause error) *Error {
	return &Error{
		Code:       ErrStore,
		Message:    fmt.Sprintf("Database file not available: %s", path),
		Suggestion: "Check that the BitMeter capture service is installed, or point BITMETER_DB at the database file",
		Cause:      cause,
	}
}

// NewInvalidPreference reports a stored preference value that does not parse as want.
func NewInvalidPreference(name, value, want string, cause error) *Error {
	return &Error{
		Code:       ErrPrefs,
		Message:    fmt.Sprintf("Preference '%s' has value %q, expected %s", name, value, want),
		Suggestion: fmt.Sprintf("Reset it with 'bitmeter prefs set %s <value>'", name),
		Cause:      cause,
	}
}

// Error implements the error interface.
func (e *Error) Error() string {
	var b strings.Builder

	// First line: failure symbol + main message
	b.WriteString(fmt.Sprintf("✗ %s\n", e.Message))

	if e.Cause != nil {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Cause.Error()))
	}

	if e.Suggestion != "" {
		b.WriteString(fmt.Sprintf("\n  %s\n", e.Suggestion))
	}

	return b.String()
}

// Unwrap returns the underlying cause for use with errors.Is/errors.As.
func (e *Error) Unwrap() error {
	return e.Cause
}

// IsCode checks if an error is a structured Error with the given code.
func IsCode(err error, code string) bool {
	if err == nil {
		return false
	}
	var bmErr *Error
	if errors.As(err, &bmErr) {
		return bmErr.Code == code
	}
	return false
}
