// Package core provides the shared plumbing for the Weco Go client:
// the error taxonomy, retry policies, API-key redaction, image payload
// encoding, and the asynchronous completion handle.
//
// Most users never import this package directly; the weco package
// re-exposes everything needed at call sites. Import core when you want
// to classify errors with errors.Is/errors.As or plug in a custom
// RetryPolicy:
//
//	res, err := client.Query(ctx, req)
//	var se *core.ServiceError
//	if errors.As(err, &se) {
//	    log.Printf("gave up after %d attempts (last status %d)", se.Attempts, se.Status)
//	}
//
// # Error taxonomy
//
// Every failure surfaced by the client is one of five typed errors:
//
//   - *InputError: caller-supplied data is malformed. Raised before any
//     network call, never retried.
//   - *AuthError: no API key could be resolved at client construction.
//   - *RequestError: the service rejected the request with a
//     non-retryable client error (4xx other than 429).
//   - *ServiceError: retries were exhausted against transient failures
//     (network errors, timeouts, 429, 5xx). Carries the attempt count
//     and the last observed status.
//   - *ResponseError: the response body does not match the expected
//     contract shape, indicating a client/service version mismatch.
//
// # Retries
//
// RetryPolicy decides whether and when a failed attempt is retried.
// The default policy applies exponential backoff with jitter and only
// retries transient failures. Attempt timeouts count against the same
// budget as any other transient failure.
package core
