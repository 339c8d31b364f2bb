package utils

import (
	"encoding/json"
	"errors"
	"net/http"
)

// HTTPError defines a custom error structure that includes an HTTP status code and message
type HTTPError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Details string `json:"details,omitempty"`
	// UpstreamStatus is the status returned by a proxied service, if any.
	UpstreamStatus int `json:"-"`
}

// Implement the Error() method to satisfy the error interface
func (e *HTTPError) Error() string {
	if e.Details != "" {
		return e.Message + ": " + e.Details
	}
	return e.Message
}

// New creates a new HTTPError instance with a custom status code and message
func NewHTTPError(code int, message string) error {
	return &HTTPError{
		Code:    code,
		Message: message,
	}
}

// WithDetails attaches details to an HTTPError. Other errors are returned unchanged.
func WithDetails(err error, details string) error {
	var httpErr *HTTPError
	if errors.As(err, &httpErr) {
		return &HTTPError{Code: httpErr.Code, Message: httpErr.Message, Details: details, UpstreamStatus: httpErr.UpstreamStatus}
	}
	return err
}

// BadRequest creates a 400 Bad Request error
func BadRequest(message string) error {
	return NewHTTPError(http.StatusBadRequest, message)
}

// Unauthorized creates a 401 Unauthorized error
func Unauthorized(message string) error {
	return NewHTTPError(http.StatusUnauthorized, message)
}

// NotFound creates a 404 Not Found error
func NotFound(message string) error {
	return NewHTTPError(http.StatusNotFound, message)
}

// Conflict creates a 409 Conflict error
func Conflict(message string) error {
	return NewHTTPError(http.StatusConflict, message)
}

// TooManyRequests creates a 429 Too Many Requests error
func TooManyRequests(message string) error {
	return NewHTTPError(http.StatusTooManyRequests, message)
}

// InternalServerError creates a 500 Internal Server Error
func InternalServerError(message string) error {
	return NewHTTPError(http.StatusInternalServerError, message)
}

// BadGateway creates a 502 Bad Gateway error, used for failed upstream calls
func BadGateway(message string) error {
	return NewHTTPError(http.StatusBadGateway, message)
}

// ServiceUnavailable creates a 503 Service Unavailable error
func ServiceUnavailable(message string) error {
	return NewHTTPError(http.StatusServiceUnavailable, message)
}

// WriteError sends err as a JSON {error, details} envelope.
func WriteError(w http.ResponseWriter, err error) {
	var httpErr *HTTPError
	if !errors.As(err, &httpErr) {
		httpErr = &HTTPError{
			Code:    http.StatusInternalServerError,
			Message: "Internal Server Error",
		}
		if err != nil {
			httpErr.Details = err.Error()
		}
	}

	w.Header().Set("Content-Type", "application/json")
	w.Header().Set("X-Content-Type-Options", "nosniff")
	w.WriteHeader(httpErr.Code)
	_ = json.NewEncoder(w).Encode(httpErr)
}
