package client

import (
	"context"
	"errors"
	"net"
	"net/http"
)

// Messages of classified errors.
const (
	MessageTimeout    = "request timed out"
	MessageNoResponse = "no response received"
	MessageServer     = "internal server error"
	MessageNotFound   = "resource not found"
	MessageBadRequest = "bad request"
)

// classify converts the outcome of a failed request into a typed error.
// Timeouts are checked first because a timed out round trip also arrives as
// a *TransportError. Errors it does not recognise, caller cancellation
// included, are returned unchanged.
func classify(err error) error {
	if err == nil {
		return nil
	}

	if isTimeout(err) {
		return &NetworkError{Message: MessageTimeout, Err: err}
	}

	var transportErr *TransportError
	if errors.As(err, &transportErr) {
		if errors.Is(err, context.Canceled) {
			return err
		}
		return &NetworkError{Message: MessageNoResponse, Err: err}
	}

	var statusErr *StatusError
	if errors.As(err, &statusErr) {
		switch {
		case statusErr.StatusCode >= 500:
			return &ServerError{StatusCode: statusErr.StatusCode, Message: MessageServer, Err: err}
		case statusErr.StatusCode == http.StatusNotFound:
			return &RequestError{StatusCode: statusErr.StatusCode, Message: MessageNotFound, Err: err}
		case statusErr.StatusCode >= 400:
			return &RequestError{StatusCode: statusErr.StatusCode, Message: MessageBadRequest, Err: err}
		}
	}

	return err
}

func isTimeout(err error) bool {
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var netErr net.Error
	return errors.As(err, &netErr) && netErr.Timeout()
}
