package weco

import "encoding/json"

// LatestVersion targets the newest version of a function.
const LatestVersion = -1

// Service-side input limits, enforced client-side before any network
// call so oversized inputs fail fast.
const (
	// MaxTextLength is the maximum length of a text or task-description input.
	MaxTextLength = 10000
	// MaxImageUploads is the maximum number of images per query.
	MaxImageUploads = 10
)

// FunctionRef identifies a remote function by name and version.
// The zero Version targets the latest version. A FunctionRef is
// immutable once constructed and always supplied by the caller.
type FunctionRef struct {
	Name    string
	Version int
}

// Func returns a FunctionRef targeting the latest version of name.
func Func(name string) FunctionRef {
	return FunctionRef{Name: name, Version: LatestVersion}
}

// WithVersion returns a copy of the ref pinned to a specific version.
func (r FunctionRef) WithVersion(v int) FunctionRef {
	r.Version = v
	return r
}

// wireVersion maps the unset and latest cases onto the wire default.
func (r FunctionRef) wireVersion() int {
	if r.Version <= 0 {
		return LatestVersion
	}
	return r.Version
}

// QueryInput is one function invocation's input: required text plus an
// ordered sequence of image references. Each reference may be a raw
// base64 payload, a data URI, a public http(s) URL, or a local file
// path; all forms are normalized before transmission.
type QueryInput struct {
	Text   string
	Images []string
}

// BuildRequest describes the function to create: a natural-language
// task description plus optional hints.
type BuildRequest struct {
	// TaskDescription is required and non-empty.
	TaskDescription string
	// Multimodal builds a function that also accepts image inputs.
	Multimodal bool
	// OutputSchema is an optional JSON Schema hint for the shape of the
	// function's structured output. See the schema package for
	// generating one from a Go type.
	OutputSchema json.RawMessage
}

// BuildResult is the outcome of a build operation: a reference to the
// created function and the service's description of what it inferred.
type BuildResult struct {
	Ref         FunctionRef
	Description string
	Warnings    []string
}

// QueryRequest invokes one remote function with one input.
type QueryRequest struct {
	Ref   FunctionRef
	Input QueryInput
	// ReturnReasoning asks the service for the intermediate reasoning
	// trace alongside the structured output.
	ReturnReasoning bool
}

// QueryResult is one decoded query response. Immutable after decoding.
type QueryResult struct {
	// Output is the function's structured output; its shape is defined
	// by the remote function, not by the client.
	Output map[string]any

	InputTokens  int
	OutputTokens int
	LatencyMS    int

	// ReasoningSteps is nil unless reasoning was requested and the
	// service returned it. A requested-but-empty trace is a non-nil
	// empty slice, so the two cases stay distinguishable.
	ReasoningSteps []string

	Warnings []string
}

// BatchRequest fans one or more function refs out over an ordered
// sequence of inputs. Set Func to use one function for every input, or
// Funcs for per-item refs; when Funcs is set its length must equal
// len(Inputs) or the batch fails with an InputError before any network
// call.
type BatchRequest struct {
	Func            FunctionRef
	Funcs           []FunctionRef
	Inputs          []QueryInput
	ReturnReasoning bool
}

// BatchItem is one input's outcome within a batch. Exactly one of
// Result and Err is set.
type BatchItem struct {
	Index  int
	Result *QueryResult
	Err    error
}

// BatchResult carries per-item outcomes, index-aligned with the batch
// inputs regardless of completion order.
type BatchResult struct {
	Items []BatchItem
}

// Succeeded returns the number of items that completed without error.
func (r *BatchResult) Succeeded() int {
	n := 0
	for _, it := range r.Items {
		if it.Err == nil {
			n++
		}
	}
	return n
}

// Failed returns the number of items that ended in error.
func (r *BatchResult) Failed() int {
	return len(r.Items) - r.Succeeded()
}
