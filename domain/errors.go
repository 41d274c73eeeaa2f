package domain

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode represents a semantic classification shared across layers.
type ErrorCode string

const (
	ErrCodeTimeout      ErrorCode = "TIMEOUT"
	ErrCodeNetwork      ErrorCode = "NETWORK_UNREACHABLE"
	ErrCodeCanceled     ErrorCode = "CANCELED"
	ErrCodeHTTPStatus   ErrorCode = "HTTP_STATUS"
	ErrCodeApplication  ErrorCode = "APPLICATION"
	ErrCodeUnrecognized ErrorCode = "UNRECOGNIZED_SHAPE"
	ErrCodeNotFound     ErrorCode = "NOT_FOUND"
	ErrCodeInvalid      ErrorCode = "INVALID"
	ErrCodeInternal     ErrorCode = "INTERNAL"
)

// Error is the single error type surfaced by the client core and everything above it.
// Status carries the HTTP status for ErrCodeHTTPStatus, AppCode the envelope code for
// ErrCodeApplication.
type Error struct {
	Code    ErrorCode
	Status  int
	AppCode int
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	msg := e.Message
	switch e.Code {
	case ErrCodeHTTPStatus:
		msg = fmt.Sprintf("http %d: %s", e.Status, e.Message)
	case ErrCodeApplication:
		msg = fmt.Sprintf("application code %d: %s", e.AppCode, e.Message)
	}
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", msg, e.Err)
	}
	return msg
}

func (e *Error) Unwrap() error {
	if e == nil {
		return nil
	}
	return e.Err
}

// Unauthorized reports whether the error means the session is no longer valid,
// whether it came from the transport status or from the envelope code.
func (e *Error) Unauthorized() bool {
	if e == nil {
		return false
	}
	return (e.Code == ErrCodeHTTPStatus && e.Status == http.StatusUnauthorized) ||
		(e.Code == ErrCodeApplication && e.AppCode == http.StatusUnauthorized)
}

// Transient reports whether no response was received, which makes the request retryable.
// A canceled caller context is never transient.
func (e *Error) Transient() bool {
	return e != nil && (e.Code == ErrCodeTimeout || e.Code == ErrCodeNetwork)
}

// UserMessage returns the message shown to an operator in a transient notification.
func (e *Error) UserMessage() string {
	if e == nil {
		return ""
	}
	if e.Unauthorized() {
		return "session expired, please sign in again"
	}
	switch e.Code {
	case ErrCodeTimeout:
		return "request timed out, please try again later"
	case ErrCodeNetwork:
		return "unable to reach the server, please check the network connection"
	case ErrCodeHTTPStatus:
		switch e.Status {
		case http.StatusForbidden:
			return "you do not have permission to perform this action"
		case http.StatusNotFound:
			return "the requested resource does not exist"
		case http.StatusInternalServerError:
			return "server error, please try again later"
		}
	case ErrCodeUnrecognized:
		return "the server returned data in an unexpected format"
	case ErrCodeCanceled:
		return "request canceled"
	}
	if e.Message != "" {
		return e.Message
	}
	return "request failed"
}

// NewError builds a domain error.
func NewError(code ErrorCode, message string) *Error {
	return &Error{Code: code, Message: message}
}

// WrapError wraps an existing error with a domain classification.
func WrapError(code ErrorCode, message string, err error) *Error {
	return &Error{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// NewStatusError classifies a non-2xx transport response.
func NewStatusError(status int, message string) *Error {
	if message == "" {
		message = http.StatusText(status)
	}
	return &Error{Code: ErrCodeHTTPStatus, Status: status, Message: message}
}

// NewApplicationError classifies an envelope-level failure carried by a 2xx response.
func NewApplicationError(code int, message string) *Error {
	if message == "" {
		message = "request failed"
	}
	return &Error{Code: ErrCodeApplication, AppCode: code, Message: message}
}

// Common domain errors.
var (
	ErrKeyNotFound     = NewError(ErrCodeNotFound, "key not found")
	ErrInvalidPayload  = NewError(ErrCodeInvalid, "invalid payload")
	ErrNotLoggedIn     = NewError(ErrCodeInvalid, "no active session")
	ErrMissingToken    = NewError(ErrCodeInvalid, "login response does not contain access_token")
	ErrUnknownResource = NewError(ErrCodeInvalid, "unknown resource")
)

// IsDomainError helps checking error codes.
func IsDomainError(err error, code ErrorCode) bool {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr.Code == code
	}
	return false
}

// AsError extracts the domain error from a chain.
func AsError(err error) (*Error, bool) {
	var dErr *Error
	if errors.As(err, &dErr) {
		return dErr, true
	}
	return nil, false
}

// IsUnauthorized reports whether err carries a 401 classification from either path.
func IsUnauthorized(err error) bool {
	dErr, ok := AsError(err)
	return ok && dErr.Unauthorized()
}
