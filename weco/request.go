package weco

import (
	"github.com/weco-ai/weco-go/core"
)

// newBuildWireRequest validates a BuildRequest and maps it to its wire
// form. It is a pure function of the request, so the client facade and
// the package-level free functions produce byte-identical bodies for
// equivalent arguments.
func newBuildWireRequest(req *BuildRequest) (*buildWireRequest, error) {
	if req == nil || req.TaskDescription == "" {
		return nil, core.NewInputError("task description must be provided")
	}
	if len(req.TaskDescription) > MaxTextLength {
		return nil, core.NewInputError("task description must be less than %d characters", MaxTextLength)
	}
	return &buildWireRequest{
		TaskDescription: req.TaskDescription,
		Multimodal:      req.Multimodal,
		OutputSchema:    req.OutputSchema,
	}, nil
}

// newQueryWireRequest validates a QueryRequest, normalizes its image
// references, and maps it to its wire form.
func newQueryWireRequest(req *QueryRequest) (*queryWireRequest, error) {
	if req == nil || req.Ref.Name == "" {
		return nil, core.NewInputError("function name must be provided")
	}
	if req.Input.Text == "" {
		return nil, core.NewInputError("text input must be provided")
	}
	if len(req.Input.Text) > MaxTextLength {
		return nil, core.NewInputError("text input must be less than %d characters", MaxTextLength)
	}
	if len(req.Input.Images) > MaxImageUploads {
		return nil, core.NewInputError("number of images must be at most %d", MaxImageUploads)
	}

	images, err := core.EncodeImageRefs(req.Input.Images)
	if err != nil {
		return nil, err
	}

	return &queryWireRequest{
		FnName:          req.Ref.Name,
		VersionNumber:   req.Ref.wireVersion(),
		TextInput:       req.Input.Text,
		ImagesInput:     images,
		ReturnReasoning: req.ReturnReasoning,
	}, nil
}

// resolveBatchRefs expands a batch's function refs to one per input.
// A per-item list whose length does not match the inputs is rejected
// before any network call; no broadcast semantics are guessed.
func resolveBatchRefs(req *BatchRequest) ([]FunctionRef, error) {
	if req == nil || len(req.Inputs) == 0 {
		return nil, core.NewInputError("batch inputs must be provided")
	}

	if len(req.Funcs) > 0 {
		if len(req.Funcs) != len(req.Inputs) {
			return nil, core.NewInputError("number of function refs (%d) must match number of inputs (%d)",
				len(req.Funcs), len(req.Inputs))
		}
		return req.Funcs, nil
	}

	if req.Func.Name == "" {
		return nil, core.NewInputError("function name must be provided")
	}
	refs := make([]FunctionRef, len(req.Inputs))
	for i := range refs {
		refs[i] = req.Func
	}
	return refs, nil
}
