package weco

import (
	"context"
	"fmt"

	"golang.org/x/sync/errgroup"
)

// doBatch fans the batch inputs out as individual query calls through
// the shared transport, holding at most BatchConcurrency requests in
// flight. Outcomes land at their input's index regardless of completion
// order. Under the default collect-all policy the call itself errors
// only when every item failed; under fail-fast the first terminal
// failure cancels the siblings and is returned alongside the partial
// result.
func (c *Client) doBatch(ctx context.Context, req *BatchRequest) (*BatchResult, error) {
	refs, err := resolveBatchRefs(req)
	if err != nil {
		return nil, err
	}

	items := make([]BatchItem, len(req.Inputs))

	eg, egCtx := errgroup.WithContext(ctx)
	eg.SetLimit(c.config.BatchConcurrency)

	for i := range req.Inputs {
		i := i
		eg.Go(func() error {
			res, err := c.doQuery(egCtx, &QueryRequest{
				Ref:             refs[i],
				Input:           req.Inputs[i],
				ReturnReasoning: req.ReturnReasoning,
			})
			items[i] = BatchItem{Index: i, Result: res, Err: err}
			if err != nil && c.config.BatchPolicy == BatchFailFast {
				return fmt.Errorf("batch item %d: %w", i, err)
			}
			return nil
		})
	}

	result := &BatchResult{Items: items}
	if err := eg.Wait(); err != nil {
		return result, err
	}

	if result.Failed() == len(items) {
		return result, fmt.Errorf("batch: all %d items failed: %w", len(items), items[0].Err)
	}
	return result, nil
}
