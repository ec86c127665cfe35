package bpi

import (
	"fmt"
)

// NetworkError means the request failed in transport or was rejected with a
// non-2xx status.
type NetworkError struct {
	Currency string
	// Status is empty when no response was received.
	Status string
	Body   string
	Err    error
}

func (e *NetworkError) Error() string {
	if e.Status != "" {
		return fmt.Sprintf("API error [%s]: %s - %s", e.Currency, e.Status, e.Body)
	}
	return fmt.Sprintf("HTTP request failed [%s]: %v", e.Currency, e.Err)
}

func (e *NetworkError) Unwrap() error { return e.Err }

// MalformedResponseError means a 2xx response whose payload did not have the
// expected shape.
type MalformedResponseError struct {
	Currency string
	Reason   string
	Err      error
}

func (e *MalformedResponseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("malformed response [%s]: %s: %v", e.Currency, e.Reason, e.Err)
	}
	return fmt.Sprintf("malformed response [%s]: %s", e.Currency, e.Reason)
}

func (e *MalformedResponseError) Unwrap() error { return e.Err }
