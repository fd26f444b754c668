package weco

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"io"
	"net/http"
	"time"

	"github.com/google/uuid"

	"github.com/weco-ai/weco-go/core"
)

// post executes one logical POST against the service: it marshals the
// body, runs attempts under the retry policy, and classifies terminal
// failures into the error taxonomy. Retries are invisible to callers
// except through latency and the attempt count on a ServiceError.
func (c *Client) post(ctx context.Context, path string, body any) ([]byte, error) {
	payload, err := json.Marshal(body)
	if err != nil {
		return nil, core.NewInputError("cannot encode request body: %v", err)
	}

	for attempt := 0; ; attempt++ {
		data, err := c.attempt(ctx, path, payload)
		if err == nil {
			return data, nil
		}

		delay, retry := c.config.Retry.NextDelay(attempt, err)
		if !retry {
			// Only transient attempt errors reach here as *core.APIError;
			// a spent budget turns the last one into a ServiceError.
			var ae *core.APIError
			if errors.As(err, &ae) {
				return nil, &core.ServiceError{
					Status:    ae.Status,
					Code:      ae.Code,
					Message:   ae.Message,
					RequestID: ae.RequestID,
					Attempts:  attempt + 1,
					Err:       ae.Err,
				}
			}
			return nil, err
		}

		select {
		case <-ctx.Done():
			return nil, ctx.Err()
		case <-time.After(delay):
		}
	}
}

// attempt executes a single HTTP attempt. Transient failures come back
// as *core.APIError for the retry policy to classify; non-retryable
// failures come back already typed (*core.RequestError,
// *core.ResponseError, or the caller's context error).
func (c *Client) attempt(ctx context.Context, path string, payload []byte) ([]byte, error) {
	attemptCtx := ctx
	if c.config.Timeout > 0 {
		var cancel context.CancelFunc
		attemptCtx, cancel = context.WithTimeout(ctx, c.config.Timeout)
		defer cancel()
	}

	req, err := http.NewRequestWithContext(attemptCtx, http.MethodPost, c.config.BaseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, &core.APIError{Message: err.Error(), Err: core.ErrNetwork}
	}

	req.Header = c.buildHeaders()
	// Fresh correlation ID per attempt so retries are distinguishable
	// in service-side logs.
	req.Header.Set("X-Request-ID", uuid.NewString())

	resp, err := c.config.HTTPClient.Do(req)
	if err != nil {
		return nil, c.classifyTransportError(ctx, attemptCtx, err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, c.classifyTransportError(ctx, attemptCtx, err)
	}

	requestID := resp.Header.Get("x-request-id")
	if resp.StatusCode >= 400 {
		return nil, normalizeError(resp.StatusCode, respBody, requestID)
	}

	return respBody, nil
}

// classifyTransportError separates caller cancellation (terminal) from
// an attempt timeout (retryable) and plain network failures (retryable).
func (c *Client) classifyTransportError(ctx, attemptCtx context.Context, err error) error {
	if ctx.Err() != nil {
		return ctx.Err()
	}
	if errors.Is(attemptCtx.Err(), context.DeadlineExceeded) {
		return &core.APIError{
			Message: "attempt timed out after " + c.config.Timeout.String(),
			Err:     core.ErrTimeout,
		}
	}
	return &core.APIError{Message: err.Error(), Err: core.ErrNetwork}
}
