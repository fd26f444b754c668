package weco

import (
	"context"

	"github.com/weco-ai/weco-go/core"
)

// Package-level free functions for sparse call sites. Each constructs a
// short-lived client per call and delegates to the same request
// builders as the Client methods, so the serialized wire bodies are
// byte-identical between the two surfaces. Pass WithAPIKey to supply a
// key explicitly; otherwise WECO_API_KEY is used.

// Build creates a remote function using a one-shot client.
func Build(ctx context.Context, req *BuildRequest, opts ...Option) (*BuildResult, error) {
	c, err := New("", opts...)
	if err != nil {
		return nil, err
	}
	return c.Build(ctx, req)
}

// BuildAsync starts a build call on a one-shot client. Construction
// failures (e.g. a missing API key) are reported before any handle
// exists.
func BuildAsync(ctx context.Context, req *BuildRequest, opts ...Option) (*core.Handle[*BuildResult], error) {
	c, err := New("", opts...)
	if err != nil {
		return nil, err
	}
	return c.BuildAsync(ctx, req), nil
}

// Query invokes a remote function using a one-shot client.
func Query(ctx context.Context, req *QueryRequest, opts ...Option) (*QueryResult, error) {
	c, err := New("", opts...)
	if err != nil {
		return nil, err
	}
	return c.Query(ctx, req)
}

// QueryAsync starts a query call on a one-shot client.
func QueryAsync(ctx context.Context, req *QueryRequest, opts ...Option) (*core.Handle[*QueryResult], error) {
	c, err := New("", opts...)
	if err != nil {
		return nil, err
	}
	return c.QueryAsync(ctx, req), nil
}

// BatchQuery runs a batch using a one-shot client.
func BatchQuery(ctx context.Context, req *BatchRequest, opts ...Option) (*BatchResult, error) {
	c, err := New("", opts...)
	if err != nil {
		return nil, err
	}
	return c.BatchQuery(ctx, req)
}

// BatchQueryAsync starts a batch on a one-shot client.
func BatchQueryAsync(ctx context.Context, req *BatchRequest, opts ...Option) (*core.Handle[*BatchResult], error) {
	c, err := New("", opts...)
	if err != nil {
		return nil, err
	}
	return c.BatchQueryAsync(ctx, req), nil
}
