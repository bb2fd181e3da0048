package acl

import (
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"

	"github.com/jsamuelsen/quote-sync/internal/adapters/clients"
	"github.com/jsamuelsen/quote-sync/internal/domain"
)

// ErrorResponse is an error body returned by the remote. Both the nested
// {"error":{"message":...}} and the flat {"message":...} shapes are accepted.
type ErrorResponse struct {
	Error   ErrorDetail `json:"error"`
	Code    string      `json:"code,omitempty"`
	Message string      `json:"message,omitempty"`
}

// ErrorDetail is the nested error shape.
type ErrorDetail struct {
	Code    string            `json:"code"`
	Message string            `json:"message"`
	Details map[string]string `json:"details,omitempty"`
}

// GetMessage returns the message from either shape.
func (e *ErrorResponse) GetMessage() string {
	if e.Error.Message != "" {
		return e.Error.Message
	}

	return e.Message
}

// ParseErrorResponse decodes an error body. Returns nil when the body is
// empty, not JSON, or carries no message.
func ParseErrorResponse(body io.Reader) *ErrorResponse {
	if body == nil {
		return nil
	}

	var errResp ErrorResponse
	if err := json.NewDecoder(io.LimitReader(body, 64<<10)).Decode(&errResp); err != nil {
		return nil
	}

	if errResp.GetMessage() == "" && errResp.Error.Code == "" && errResp.Code == "" {
		return nil
	}

	return &errResp
}

// MapHTTPError maps a failed exchange with the remote to a domain error.
// resp is nil when clientErr is set.
func MapHTTPError(resp *http.Response, clientErr error, serviceName, operation string) error {
	if clientErr != nil {
		return mapClientError(clientErr, serviceName, operation)
	}

	if resp == nil {
		return domain.NewUnavailableError(serviceName, "no response received")
	}

	if resp.StatusCode >= http.StatusOK && resp.StatusCode < http.StatusMultipleChoices {
		return nil
	}

	var errResp *ErrorResponse
	if resp.Body != nil {
		errResp = ParseErrorResponse(resp.Body)
	}

	return mapStatusCode(resp.StatusCode, errResp, serviceName, operation)
}

func mapClientError(err error, serviceName, operation string) error {
	switch {
	case errors.Is(err, clients.ErrCircuitOpen):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("circuit breaker open during %s", operation))
	case errors.Is(err, clients.ErrMaxRetriesExceeded):
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s: %v", operation, err))
	default:
		return domain.NewUnavailableError(serviceName,
			fmt.Sprintf("%s failed: %v", operation, err))
	}
}

func mapStatusCode(status int, errResp *ErrorResponse, serviceName, operation string) error {
	message := fmt.Sprintf("%s failed with status %d", operation, status)
	if errResp != nil && errResp.GetMessage() != "" {
		message = errResp.GetMessage()
	}

	switch status {
	case http.StatusNotFound:
		return domain.NewNotFoundError(serviceName+" "+operation, "")
	case http.StatusConflict:
		return domain.NewConflictError(serviceName, message)
	case http.StatusBadRequest, http.StatusUnprocessableEntity:
		if errResp != nil {
			for field, msg := range errResp.Error.Details {
				return domain.NewValidationError(field, msg)
			}
		}

		return domain.NewValidationError("", message)
	case http.StatusUnauthorized, http.StatusForbidden:
		return domain.NewUnavailableError(serviceName, "credentials rejected")
	case http.StatusTooManyRequests:
		return domain.NewUnavailableError(serviceName, "rate limit exceeded")
	default:
		if status >= http.StatusInternalServerError {
			return domain.NewUnavailableError(serviceName, message)
		}

		return domain.NewValidationError("", message)
	}
}
