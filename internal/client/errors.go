// ABOUTME: Error types returned by the API client
// ABOUTME: Separates server-reported failures from transport failures

package client

import (
	"errors"
	"fmt"
)

// APIError is a non-2xx response from a service
type APIError struct {
	StatusCode int
	// Message is the body's "message" field, empty when the body had none
	Message string
}

func (e *APIError) Error() string {
	if e.Message == "" {
		return fmt.Sprintf("backend returned status %d", e.StatusCode)
	}
	return fmt.Sprintf("backend error (%d): %s", e.StatusCode, e.Message)
}

// TransportError covers network failures, timeouts, cancellation and
// responses that could not be decoded
type TransportError struct {
	Op  string
	Err error
}

func (e *TransportError) Error() string {
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *TransportError) Unwrap() error {
	return e.Err
}

// IsTransport reports whether err is (or wraps) a TransportError
func IsTransport(err error) bool {
	var te *TransportError
	return errors.As(err, &te)
}

// APIMessage returns the server message carried by err and whether err is an APIError
func APIMessage(err error) (string, bool) {
	var ae *APIError
	if errors.As(err, &ae) {
		return ae.Message, true
	}
	return "", false
}
