// Package apperror defines the machine-readable errors returned by the API and
// the JSON envelope they are rendered with.
package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

// Error is an API error carrying its HTTP status and SCREAMING_SNAKE_CASE code.
type Error struct {
	Status  int
	Code    string
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return e.Code + ": " + e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an Error with the given status, code and message.
func New(status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message}
}

// Wrap attaches a cause to a new Error.
func Wrap(err error, status int, code, message string) *Error {
	return &Error{Status: status, Code: code, Message: message, Err: err}
}

// From returns the *Error in err's chain, or an INTERNAL_ERROR embedding err's text.
func From(err error) *Error {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr
	}
	return Internal(err)
}

const (
	CodeAPIDisabled              = "API_DISABLED"
	CodeJWTUnavailable           = "JWT_UNAVAILABLE"
	CodeInvalidJSON              = "INVALID_JSON"
	CodeMissingCredentials       = "MISSING_CREDENTIALS"
	CodeCredentialsNotConfigured = "CREDENTIALS_NOT_CONFIGURED"
	CodeInvalidCredentials       = "INVALID_CREDENTIALS"
	CodeMissingToken             = "MISSING_TOKEN"
	CodeInvalidTokenFormat       = "INVALID_TOKEN_FORMAT"
	CodeTokenExpired             = "TOKEN_EXPIRED"
	CodeInvalidToken             = "INVALID_TOKEN"
	CodeMissingRegistration      = "MISSING_REGISTRATION_NUMBER"
	CodeMissingCheckType         = "MISSING_CHECK_TYPE"
	CodeMissingCheckDate         = "MISSING_CHECK_DATE"
	CodeInvalidCheckType         = "INVALID_CHECK_TYPE"
	CodeInvalidDateFormat        = "INVALID_DATE_FORMAT"
	CodeInvalidLatitude          = "INVALID_LATITUDE"
	CodeInvalidLongitude         = "INVALID_LONGITUDE"
	CodeInvalidMatchPercentage   = "INVALID_MATCH_PERCENTAGE"
	CodeInvalidVerification      = "INVALID_VERIFICATION_STATUS"
	CodeInvalidTimeFormat        = "INVALID_TIME_FORMAT"
	CodeEmployeeNotFound         = "EMPLOYEE_NOT_FOUND"
	CodeInvalidDateRange         = "INVALID_DATE_RANGE"
	CodeMaxChecksExceeded        = "MAX_CHECKS_EXCEEDED"
	CodeInvalidParameter         = "INVALID_PARAMETER"
	CodeNotFound                 = "NOT_FOUND"
	CodeInternal                 = "INTERNAL_ERROR"
)

func APIDisabled() *Error {
	return New(http.StatusServiceUnavailable, CodeAPIDisabled, "the attendance API is disabled")
}

func JWTUnavailable(err error) *Error {
	return Wrap(err, http.StatusInternalServerError, CodeJWTUnavailable, "token signing is not available")
}

func InvalidJSON(err error) *Error {
	return Wrap(err, http.StatusBadRequest, CodeInvalidJSON, "request body is not valid JSON")
}

func BadRequest(code, message string) *Error {
	return New(http.StatusBadRequest, code, message)
}

func Unauthorized(code, message string) *Error {
	return New(http.StatusUnauthorized, code, message)
}

func InvalidParameter(name, value string) *Error {
	return New(http.StatusBadRequest, CodeInvalidParameter, fmt.Sprintf("invalid value %q for parameter %s", value, name))
}

func EmployeeNotFound(key string) *Error {
	return New(http.StatusNotFound, CodeEmployeeNotFound, fmt.Sprintf("employee %s not found", key))
}

// Internal embeds the error text in the response message, which is handy for
// diagnosing device integrations.
func Internal(err error) *Error {
	msg := "internal error"
	if err != nil {
		msg = err.Error()
	}
	return Wrap(err, http.StatusInternalServerError, CodeInternal, msg)
}
