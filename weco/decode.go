package weco

import (
	"encoding/json"

	"github.com/weco-ai/weco-go/core"
)

// decodeBuildResponse validates and converts a build response body.
// Missing required fields signal a client/service contract mismatch,
// not a request failure, and surface as *core.ResponseError.
func decodeBuildResponse(body []byte) (*BuildResult, error) {
	var wire buildWireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &core.ResponseError{Message: "invalid JSON: " + err.Error()}
	}
	if wire.FnName == "" {
		return nil, &core.ResponseError{Field: "fn_name", Message: "missing or empty"}
	}
	if wire.FnDescription == "" {
		return nil, &core.ResponseError{Field: "fn_description", Message: "missing or empty"}
	}

	return &BuildResult{
		Ref:         FunctionRef{Name: wire.FnName, Version: wire.VersionNumber},
		Description: wire.FnDescription,
		Warnings:    wire.Warnings,
	}, nil
}

// decodeQueryResponse validates and converts a query response body.
// The reasoning trace is kept only when the caller asked for it, so an
// unsolicited trace from the service never leaks into the result.
func decodeQueryResponse(body []byte, returnReasoning bool) (*QueryResult, error) {
	var wire queryWireResponse
	if err := json.Unmarshal(body, &wire); err != nil {
		return nil, &core.ResponseError{Message: "invalid JSON: " + err.Error()}
	}
	if wire.Output == nil {
		return nil, &core.ResponseError{Field: "output", Message: "missing"}
	}

	var output map[string]any
	if err := json.Unmarshal(wire.Output, &output); err != nil {
		return nil, &core.ResponseError{Field: "output", Message: "not an object: " + err.Error()}
	}

	res := &QueryResult{
		Output:       output,
		InputTokens:  wire.InTokens,
		OutputTokens: wire.OutTokens,
		LatencyMS:    wire.LatencyMS,
		Warnings:     wire.Warnings,
	}
	if returnReasoning && wire.ReasoningSteps != nil {
		res.ReasoningSteps = wire.ReasoningSteps
	}
	return res, nil
}
