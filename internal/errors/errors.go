package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
)

// ErrorCode classifies errors returned by the HTTP API
type ErrorCode string

const (
	CodeInvalidRequest   ErrorCode = "INVALID_REQUEST"
	CodeInvalidSelection ErrorCode = "INVALID_SELECTION"
	CodeUnauthorized     ErrorCode = "UNAUTHORIZED"
	CodeNotFound         ErrorCode = "NOT_FOUND"
	CodeInternalError    ErrorCode = "INTERNAL_ERROR"
)

// APIError is an error that is reported to API clients
type APIError struct {
	Code      ErrorCode `json:"code"`
	Message   string    `json:"message"`
	RequestID string    `json:"requestId,omitempty"`
	Err       error     `json:"-"`
}

func (e *APIError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *APIError) Unwrap() error {
	return e.Err
}

// New creates a new API error
func New(code ErrorCode, message, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   message,
		RequestID: requestID,
	}
}

// Wrap creates an API error whose message is taken from err
func Wrap(code ErrorCode, err error, requestID string) *APIError {
	return &APIError{
		Code:      code,
		Message:   err.Error(),
		RequestID: requestID,
		Err:       err,
	}
}

// HTTPStatusCode returns the appropriate HTTP status code
func (e *APIError) HTTPStatusCode() int {
	switch e.Code {
	case CodeInvalidRequest:
		return http.StatusBadRequest
	case CodeInvalidSelection:
		return http.StatusUnprocessableEntity
	case CodeUnauthorized:
		return http.StatusUnauthorized
	case CodeNotFound:
		return http.StatusNotFound
	case CodeInternalError:
		return http.StatusInternalServerError
	default:
		return http.StatusInternalServerError
	}
}

// body is the JSON error envelope
type body struct {
	Error *APIError `json:"error"`
}

// WriteError writes an API error as a JSON response
func WriteError(w http.ResponseWriter, err *APIError) {
	if err.Code == CodeInternalError {
		// internal details stay in the server log
		err = New(CodeInternalError, "internal error", err.RequestID)
	}
	w.Header().Set("Content-Type", "application/json")
	if err.RequestID != "" {
		w.Header().Set("x-request-id", err.RequestID)
	}
	if err.Code == CodeUnauthorized {
		w.Header().Set("WWW-Authenticate", `Bearer realm="policy-generator"`)
	}
	w.WriteHeader(err.HTTPStatusCode())
	json.NewEncoder(w).Encode(body{Error: err})
}
