// Package weco is a Go client for the Weco AI function-builder service.
// Build a specialized LLM-backed function from a task description, then
// query it with text and image inputs, one call at a time or in
// concurrent batches:
//
//	client, err := weco.NewFromEnv()
//	if err != nil {
//	    log.Fatal(err)
//	}
//	fn, err := client.Build(ctx, &weco.BuildRequest{
//	    TaskDescription: "Extract the total amount from a receipt",
//	})
//	res, err := client.Query(ctx, &weco.QueryRequest{
//	    Ref:   fn.Ref,
//	    Input: weco.QueryInput{Text: receiptText},
//	})
//
// Every operation has a synchronous method and an Async variant
// returning a core.Handle; the synchronous form blocks on the same
// handle, so the two share one execution path.
package weco

import (
	"context"
	"net/http"
	"os"
	"time"

	"github.com/weco-ai/weco-go/core"
)

// DefaultBaseURL is the production endpoint of the function-builder API.
const DefaultBaseURL = "https://function.api.weco.ai"

// DefaultAPIKeyEnvVar is the environment variable consulted when no
// explicit API key is supplied.
const DefaultAPIKeyEnvVar = "WECO_API_KEY"

// Defaults applied by New.
const (
	DefaultTimeout          = 30 * time.Second
	DefaultBatchConcurrency = 8
)

// Client is a stateful handle on the service, safe for concurrent use.
// Its configuration is immutable after New.
type Client struct {
	config Config
}

// New creates a Client. The API key is resolved in order: the apiKey
// argument, the WithAPIKey option, then the WECO_API_KEY environment
// variable. When none yields a key, New fails with a *core.AuthError
// before any network activity.
func New(apiKey string, opts ...Option) (*Client, error) {
	cfg := Config{
		BaseURL:          DefaultBaseURL,
		HTTPClient:       http.DefaultClient,
		Timeout:          DefaultTimeout,
		Retry:            core.DefaultRetryPolicy(),
		BatchConcurrency: DefaultBatchConcurrency,
		BatchPolicy:      BatchCollectAll,
	}
	for _, opt := range opts {
		opt(&cfg)
	}

	if apiKey != "" {
		cfg.APIKey = core.NewSecret(apiKey)
	}
	if cfg.APIKey.IsEmpty() {
		if v := os.Getenv(DefaultAPIKeyEnvVar); v != "" {
			cfg.APIKey = core.NewSecret(v)
		}
	}
	if cfg.APIKey.IsEmpty() {
		return nil, &core.AuthError{
			Message: "API key must be passed to the client or set via " + DefaultAPIKeyEnvVar,
		}
	}

	return &Client{config: cfg}, nil
}

// NewFromEnv creates a Client using the WECO_API_KEY environment
// variable.
func NewFromEnv(opts ...Option) (*Client, error) {
	return New("", opts...)
}

// buildHeaders constructs the common headers for an API request.
func (c *Client) buildHeaders() http.Header {
	headers := make(http.Header)
	headers.Set("Authorization", "Bearer "+c.config.APIKey.Expose())
	headers.Set("Content-Type", "application/json")

	for key, values := range c.config.Headers {
		for _, v := range values {
			headers.Add(key, v)
		}
	}
	return headers
}

// Build creates a new remote function from a task description,
// blocking until the call completes or fails terminally.
func (c *Client) Build(ctx context.Context, req *BuildRequest) (*BuildResult, error) {
	return c.BuildAsync(ctx, req).Wait(ctx)
}

// BuildAsync starts a build call and returns its completion handle.
func (c *Client) BuildAsync(ctx context.Context, req *BuildRequest) *core.Handle[*BuildResult] {
	return core.Run(ctx, func(ctx context.Context) (*BuildResult, error) {
		return c.doBuild(ctx, req)
	})
}

// Query invokes a remote function, blocking until the call completes
// or fails terminally.
func (c *Client) Query(ctx context.Context, req *QueryRequest) (*QueryResult, error) {
	return c.QueryAsync(ctx, req).Wait(ctx)
}

// QueryAsync starts a query call and returns its completion handle.
func (c *Client) QueryAsync(ctx context.Context, req *QueryRequest) *core.Handle[*QueryResult] {
	return core.Run(ctx, func(ctx context.Context) (*QueryResult, error) {
		return c.doQuery(ctx, req)
	})
}

// BatchQuery issues every input through the asynchronous path under
// the configured concurrency bound and blocks until all items settle
// (or, under BatchFailFast, until the first terminal failure).
func (c *Client) BatchQuery(ctx context.Context, req *BatchRequest) (*BatchResult, error) {
	return c.BatchQueryAsync(ctx, req).Wait(ctx)
}

// BatchQueryAsync starts a batch call and returns its completion
// handle. Cancelling the handle aborts every in-flight item.
func (c *Client) BatchQueryAsync(ctx context.Context, req *BatchRequest) *core.Handle[*BatchResult] {
	return core.Run(ctx, func(ctx context.Context) (*BatchResult, error) {
		return c.doBatch(ctx, req)
	})
}

func (c *Client) doBuild(ctx context.Context, req *BuildRequest) (*BuildResult, error) {
	wire, err := newBuildWireRequest(req)
	if err != nil {
		return nil, err
	}
	body, err := c.post(ctx, buildPath, wire)
	if err != nil {
		return nil, err
	}
	return decodeBuildResponse(body)
}

func (c *Client) doQuery(ctx context.Context, req *QueryRequest) (*QueryResult, error) {
	wire, err := newQueryWireRequest(req)
	if err != nil {
		return nil, err
	}
	body, err := c.post(ctx, queryPath, wire)
	if err != nil {
		return nil, err
	}
	return decodeQueryResponse(body, req.ReturnReasoning)
}
