package client

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorClass represents a classification of request failures.
type ErrorClass string

const (
	// ErrorClassNetwork represents timeouts and failed round trips.
	ErrorClassNetwork ErrorClass = "network"

	// ErrorClassClient represents 4xx client errors.
	ErrorClassClient ErrorClass = "client"

	// ErrorClassServer represents 5xx server errors.
	ErrorClassServer ErrorClass = "server"
)

// StatusError is returned by Client.Get for responses with status >= 400.
type StatusError struct {
	StatusCode int
	Status     string
	URL        string
	Header     http.Header
	Body       []byte
}

// Error implements the error interface.
func (e *StatusError) Error() string {
	return fmt.Sprintf("client: GET %s: unexpected status %d", e.URL, e.StatusCode)
}

// TransportError is returned by Client.Get when no response was received.
type TransportError struct {
	Method string
	URL    string
	Err    error
}

// Error implements the error interface.
func (e *TransportError) Error() string {
	return fmt.Sprintf("client: %s %s: %v", e.Method, e.URL, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *TransportError) Unwrap() error {
	return e.Err
}

// NetworkError reports a timeout or a request that never got a response.
type NetworkError struct {
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NetworkError) Error() string {
	return formatClassified("network", e.Message, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *NetworkError) Unwrap() error {
	return e.Err
}

// RequestError reports a 4xx response.
type RequestError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *RequestError) Error() string {
	return formatClassified(fmt.Sprintf("request (status %d)", e.StatusCode), e.Message, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *RequestError) Unwrap() error {
	return e.Err
}

// ServerError reports a 5xx response.
type ServerError struct {
	StatusCode int
	Message    string
	Err        error
}

// Error implements the error interface.
func (e *ServerError) Error() string {
	return formatClassified(fmt.Sprintf("server (status %d)", e.StatusCode), e.Message, e.Err)
}

// Unwrap implements error unwrapping for errors.Is/As.
func (e *ServerError) Unwrap() error {
	return e.Err
}

func formatClassified(kind, message string, err error) string {
	if err != nil {
		return fmt.Sprintf("client: %s error: %s: %v", kind, message, err)
	}
	return fmt.Sprintf("client: %s error: %s", kind, message)
}

// IsNetworkError reports whether err is or wraps a *NetworkError.
func IsNetworkError(err error) bool {
	var e *NetworkError
	return errors.As(err, &e)
}

// IsRequestError reports whether err is or wraps a *RequestError.
func IsRequestError(err error) bool {
	var e *RequestError
	return errors.As(err, &e)
}

// IsServerError reports whether err is or wraps a *ServerError.
func IsServerError(err error) bool {
	var e *ServerError
	return errors.As(err, &e)
}

// IsNotFound reports whether err is a RequestError for a 404 response.
func IsNotFound(err error) bool {
	var e *RequestError
	return errors.As(err, &e) && e.StatusCode == http.StatusNotFound
}

// IsTimeout reports whether err is a NetworkError caused by a timeout.
func IsTimeout(err error) bool {
	var e *NetworkError
	return errors.As(err, &e) && e.Message == MessageTimeout
}

// IsRetryable reports whether err is plausibly transient. The client
// itself never retries.
func IsRetryable(err error) bool {
	return IsNetworkError(err) || IsServerError(err)
}

// ClassOf returns the class of a classified error, or "" for anything else.
func ClassOf(err error) ErrorClass {
	switch {
	case IsNetworkError(err):
		return ErrorClassNetwork
	case IsServerError(err):
		return ErrorClassServer
	case IsRequestError(err):
		return ErrorClassClient
	default:
		return ""
	}
}

func asStatusError(err error) (*StatusError, bool) {
	var e *StatusError
	ok := errors.As(err, &e)
	return e, ok
}
