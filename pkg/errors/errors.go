// Package errors provides structured error types for the token importer.
//
// Errors carry a machine-readable [Code] so callers can tell fatal
// acquisition failures apart from per-token resolution failures without
// matching on message text.
//
// # Error Codes
//
// Fatal codes abort a run before or during acquisition:
//   - CONFIGURATION: missing credential or unusable settings
//   - FETCH_FAILED: the variables endpoint answered with a non-success status
//   - NETWORK_ERROR: the request never produced a response
//   - INVALID_SNAPSHOT: a snapshot could not be decoded
//
// Non-fatal codes describe a single token or variable:
//   - UNRESOLVED_REFERENCE: an alias target could not be found
//   - CYCLE_DETECTED: an alias chain loops back on itself
//
// DUPLICATE_PATH is fatal only when the tree builder runs with the "error"
// conflict policy.
//
// # Usage
//
//	err := errors.New(errors.ErrCodeConfiguration, "FIGMA_ACCESS_TOKEN is required")
//	if errors.Is(err, errors.ErrCodeConfiguration) {
//	    // abort before fetching
//	}
//
//	var fe *errors.FetchError
//	if stderrors.As(err, &fe) {
//	    log.Error("fetch failed", "status", fe.Status, "body", fe.Body)
//	}
package errors

import (
	"errors"
	"fmt"
)

// Code represents a machine-readable error code.
type Code string

// Error codes for different error categories.
const (
	// Input and configuration errors
	ErrCodeInvalidInput  Code = "INVALID_INPUT"
	ErrCodeInvalidPath   Code = "INVALID_PATH"
	ErrCodeConfiguration Code = "CONFIGURATION"

	// Acquisition errors
	ErrCodeFetch           Code = "FETCH_FAILED"
	ErrCodeNetwork         Code = "NETWORK_ERROR"
	ErrCodeInvalidSnapshot Code = "INVALID_SNAPSHOT"

	// Resolution errors
	ErrCodeUnresolvedReference Code = "UNRESOLVED_REFERENCE"
	ErrCodeCycleDetected       Code = "CYCLE_DETECTED"
	ErrCodeDuplicatePath       Code = "DUPLICATE_PATH"

	// Internal errors
	ErrCodeInternal Code = "INTERNAL_ERROR"
)

// Error is a structured error with a code and optional cause.
type Error struct {
	Code    Code   // Machine-readable error code
	Message string // Human-readable message
	Cause   error  // Underlying error (optional)
}

// Error implements the error interface.
func (e *Error) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause for errors.Is/As compatibility.
func (e *Error) Unwrap() error {
	return e.Cause
}

// New creates a new Error with the given code and formatted message.
func New(code Code, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// Wrap creates a new Error wrapping an existing error.
func Wrap(code Code, cause error, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Cause:   cause,
	}
}

// Is reports whether err has the given error code.
// It unwraps the error chain looking for an *Error with a matching code,
// and also recognizes the typed errors in this package by their Code method.
func Is(err error, code Code) bool {
	return GetCode(err) == code && code != ""
}

// coder is implemented by typed errors that are not *Error.
type coder interface {
	Code() Code
}

// GetCode extracts the error code from an error, if available.
// Returns empty string if no coded error is found in the chain.
func GetCode(err error) Code {
	var e *Error
	if errors.As(err, &e) {
		return e.Code
	}
	var c coder
	if errors.As(err, &c) {
		return c.Code()
	}
	return ""
}

// UserMessage returns a user-friendly message for the error.
// A top-level *Error is rendered without its code prefix, followed by its
// cause. Other errors, including ones wrapping an *Error, are returned
// as-is so their context is kept.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if e, ok := err.(*Error); ok {
		if e.Cause != nil {
			return e.Message + ": " + e.Cause.Error()
		}
		return e.Message
	}
	return err.Error()
}

// FetchError reports a non-success response from the variables endpoint.
type FetchError struct {
	FileKey string // Figma file key that was requested
	Status  int    // HTTP status code
	Body    string // Response body, verbatim
	Hint    string // Likely cause, when the status identifies one
}

// Error implements the error interface.
func (e *FetchError) Error() string {
	msg := fmt.Sprintf("figma API error %d", e.Status)
	if e.FileKey != "" {
		msg += " for file " + e.FileKey
	}
	if e.Hint != "" {
		msg += " (" + e.Hint + ")"
	}
	return msg + ": " + e.Body
}

// Code returns the error code for this error type.
func (e *FetchError) Code() Code {
	return ErrCodeFetch
}

// UnresolvedReferenceError reports an alias whose target is not reachable
// through the current snapshot or the key map.
type UnresolvedReferenceError struct {
	Ref string // original alias id
}

func (e *UnresolvedReferenceError) Error() string {
	return fmt.Sprintf("unresolved reference %s", e.Ref)
}

// Code returns the error code for this error type.
func (e *UnresolvedReferenceError) Code() Code {
	return ErrCodeUnresolvedReference
}

// CycleDetectedError reports an alias chain that revisits a variable.
type CycleDetectedError struct {
	Chain []string // variable ids in visit order, ending with the repeated id
}

func (e *CycleDetectedError) Error() string {
	if len(e.Chain) == 0 {
		return "alias cycle detected"
	}
	return fmt.Sprintf("alias cycle detected at %s (chain length %d)", e.Chain[len(e.Chain)-1], len(e.Chain))
}

// Code returns the error code for this error type.
func (e *CycleDetectedError) Code() Code {
	return ErrCodeCycleDetected
}
