package weco

import (
	"net/http"
	"time"

	"github.com/weco-ai/weco-go/core"
)

// BatchPolicy controls how a batch reacts to per-item failures.
type BatchPolicy int

const (
	// BatchCollectAll runs every item to completion and records
	// per-item outcomes; one item's failure never cancels its siblings.
	// This is the default.
	BatchCollectAll BatchPolicy = iota
	// BatchFailFast cancels the remaining items as soon as one fails
	// terminally and surfaces that first error.
	BatchFailFast
)

// Config holds the client configuration. It is assembled once by New
// and read-only afterwards, so a single Client is safe for arbitrarily
// many concurrent calls.
type Config struct {
	APIKey           core.Secret
	BaseURL          string
	HTTPClient       *http.Client
	Timeout          time.Duration
	Retry            core.RetryPolicy
	BatchConcurrency int
	BatchPolicy      BatchPolicy
	Headers          http.Header
}

// Option configures a Client at construction time.
type Option func(*Config)

// WithAPIKey sets the API key. The positional argument to New takes
// precedence; this option exists for the package-level free functions.
func WithAPIKey(key string) Option {
	return func(c *Config) {
		if key != "" {
			c.APIKey = core.NewSecret(key)
		}
	}
}

// WithBaseURL overrides the service base URL (e.g., for a staging
// deployment or a test server).
func WithBaseURL(url string) Option {
	return func(c *Config) {
		if url != "" {
			c.BaseURL = url
		}
	}
}

// WithHTTPClient sets a custom HTTP client, e.g. one with a tuned
// transport or an instrumented RoundTripper.
func WithHTTPClient(client *http.Client) Option {
	return func(c *Config) {
		if client != nil {
			c.HTTPClient = client
		}
	}
}

// WithTimeout sets the per-attempt timeout. Each retry attempt gets a
// fresh timeout. Zero disables the attempt timeout (the caller's
// context still bounds the overall call).
func WithTimeout(d time.Duration) Option {
	return func(c *Config) {
		if d >= 0 {
			c.Timeout = d
		}
	}
}

// WithRetryPolicy sets the retry policy for transient failures.
func WithRetryPolicy(p core.RetryPolicy) Option {
	return func(c *Config) {
		if p != nil {
			c.Retry = p
		}
	}
}

// WithBatchConcurrency bounds the number of in-flight requests a batch
// may hold at once.
func WithBatchConcurrency(n int) Option {
	return func(c *Config) {
		if n > 0 {
			c.BatchConcurrency = n
		}
	}
}

// WithBatchPolicy selects the batch failure policy.
func WithBatchPolicy(p BatchPolicy) Option {
	return func(c *Config) {
		c.BatchPolicy = p
	}
}

// WithHeaders adds extra headers to every request, e.g. for tracing.
func WithHeaders(headers http.Header) Option {
	return func(c *Config) {
		if c.Headers == nil {
			c.Headers = make(http.Header)
		}
		for key, values := range headers {
			for _, v := range values {
				c.Headers.Add(key, v)
			}
		}
	}
}
