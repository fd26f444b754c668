package weco

import (
	"encoding/json"
	"net/http"

	"github.com/weco-ai/weco-go/core"
)

// normalizeError converts an HTTP error response into the taxonomy:
// 429 and 5xx become retryable *core.APIError attempts, any other 4xx
// becomes a terminal *core.RequestError surfaced after one attempt.
func normalizeError(status int, body []byte, requestID string) error {
	var envelope wecoErrorResponse
	_ = json.Unmarshal(body, &envelope)

	message := envelope.Error.Message
	if message == "" {
		message = http.StatusText(status)
	}
	code := envelope.Error.Code
	if code == "" {
		code = envelope.Error.Type
	}

	switch {
	case status == http.StatusTooManyRequests:
		return &core.APIError{
			Status:    status,
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Err:       core.ErrRateLimited,
		}
	case status >= 500:
		return &core.APIError{
			Status:    status,
			Code:      code,
			Message:   message,
			RequestID: requestID,
			Err:       core.ErrServer,
		}
	default:
		return &core.RequestError{
			Status:    status,
			Code:      code,
			Message:   message,
			RequestID: requestID,
		}
	}
}
