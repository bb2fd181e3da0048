// Package clients provides the instrumented HTTP client used to reach the
// remote quote endpoint.
package clients

import "errors"

// Transport-level failures. The acl package maps them to domain errors.
var (
	// ErrCircuitOpen means the breaker rejected the request without sending it.
	ErrCircuitOpen = errors.New("circuit breaker open")

	// ErrMaxRetriesExceeded wraps the last error after every attempt failed.
	ErrMaxRetriesExceeded = errors.New("max retries exceeded")
)
