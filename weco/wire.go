package weco

import "encoding/json"

// API endpoint paths.
const (
	buildPath = "/build"
	queryPath = "/query"
)

// buildWireRequest is the JSON body of a build call.
type buildWireRequest struct {
	TaskDescription string          `json:"task_description"`
	Multimodal      bool            `json:"multimodal,omitempty"`
	OutputSchema    json.RawMessage `json:"output_schema,omitempty"`
}

// buildWireResponse is the JSON body of a build response.
type buildWireResponse struct {
	FnName        string   `json:"fn_name"`
	VersionNumber int      `json:"version_number"`
	FnDescription string   `json:"fn_description"`
	Warnings      []string `json:"warnings"`
}

// queryWireRequest is the JSON body of a query call. Batch items reuse
// it: a batch is a bounded fan-out of query calls.
type queryWireRequest struct {
	FnName          string   `json:"fn_name"`
	VersionNumber   int      `json:"version_number"`
	TextInput       string   `json:"text_input"`
	ImagesInput     []string `json:"images_input,omitempty"`
	ReturnReasoning bool     `json:"return_reasoning,omitempty"`
}

// queryWireResponse is the JSON body of a query response. Output stays
// raw until decoding so a missing field is distinguishable from an
// empty object.
type queryWireResponse struct {
	Output         json.RawMessage `json:"output"`
	InTokens       int             `json:"in_tokens"`
	OutTokens      int             `json:"out_tokens"`
	LatencyMS      int             `json:"latency_ms"`
	ReasoningSteps []string        `json:"reasoning_steps"`
	Warnings       []string        `json:"warnings"`
}

// wecoErrorResponse is the service's error envelope.
type wecoErrorResponse struct {
	Error struct {
		Message string `json:"message"`
		Type    string `json:"type"`
		Code    string `json:"code"`
	} `json:"error"`
}
