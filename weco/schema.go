package weco

import (
	"github.com/weco-ai/weco-go/core"
	"github.com/weco-ai/weco-go/schema"
)

// WithOutputSchemaFor fills req.OutputSchema with the JSON Schema of T,
// so the build call can hint the expected output shape from a Go type:
//
//	req := &weco.BuildRequest{TaskDescription: "extract receipt totals"}
//	if err := weco.WithOutputSchemaFor[Receipt](req); err != nil { ... }
func WithOutputSchemaFor[T any](req *BuildRequest) error {
	if req == nil {
		return core.NewInputError("build request must be provided")
	}
	s, err := schema.Generate[T]()
	if err != nil {
		return core.NewInputError("generate output schema: %v", err)
	}
	req.OutputSchema = s
	return nil
}
