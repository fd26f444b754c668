package commands

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"gopkg.in/yaml.v3"

	"github.com/weco-ai/weco-go/weco"
)

// batchInput is one entry of the YAML inputs file.
type batchInput struct {
	Text   string   `yaml:"text"`
	Images []string `yaml:"images,omitempty"`
}

func (a *App) newBatchCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "batch <function>",
		Short: "Run a batch of inputs against a function",
		Long: `Run every input from a YAML file against a function, with bounded
concurrency. Results are reported in input order.

The inputs file is a YAML list:

  - text: "Total: $42.50"
  - text: "see attached"
    images: [receipt.png]

Examples:
  weco batch parse-receipt --inputs inputs.yaml
  weco batch parse-receipt --inputs inputs.yaml --concurrency 4 --fail-fast`,
		Args: cobra.ExactArgs(1),
		RunE: a.runBatch,
	}

	cmd.Flags().StringVar(&a.batchInputsFile, "inputs", "", "YAML file of inputs (required)")
	cmd.Flags().IntVar(&a.batchConcurrency, "concurrency", 0, "Max in-flight requests (0 = config or default)")
	cmd.Flags().BoolVar(&a.batchFailFast, "fail-fast", false, "Stop on the first failure")
	cmd.Flags().BoolVar(&a.batchReasoning, "reasoning", false, "Request reasoning traces")
	cmd.Flags().IntVar(&a.batchVersion, "version", weco.LatestVersion, "Function version (default latest)")

	_ = cmd.MarkFlagRequired("inputs")

	return cmd
}

func (a *App) runBatch(cmd *cobra.Command, args []string) error {
	data, err := os.ReadFile(a.batchInputsFile)
	if err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to read inputs file: %w", err))
	}

	var entries []batchInput
	if err := yaml.Unmarshal(data, &entries); err != nil {
		return exitWithCode(ExitValidation, fmt.Errorf("failed to parse inputs file: %w", err))
	}

	inputs := make([]weco.QueryInput, len(entries))
	for i, e := range entries {
		inputs[i] = weco.QueryInput{Text: e.Text, Images: e.Images}
	}

	var extra []weco.Option
	if a.batchConcurrency > 0 {
		extra = append(extra, weco.WithBatchConcurrency(a.batchConcurrency))
	}
	if a.batchFailFast {
		extra = append(extra, weco.WithBatchPolicy(weco.BatchFailFast))
	}

	client, err := a.newClient(extra...)
	if err != nil {
		return err
	}

	res, err := client.BatchQuery(cmd.Context(), &weco.BatchRequest{
		Func:            weco.Func(args[0]).WithVersion(a.batchVersion),
		Inputs:          inputs,
		ReturnReasoning: a.batchReasoning,
	})
	if err != nil && res == nil {
		return a.handleError(err)
	}

	if a.jsonOutput {
		items := make([]map[string]any, len(res.Items))
		for i, item := range res.Items {
			entry := map[string]any{"index": item.Index}
			if item.Err != nil {
				entry["error"] = item.Err.Error()
			} else {
				entry["output"] = item.Result.Output
			}
			items[i] = entry
		}
		if jsonErr := a.outputJSON(map[string]any{
			"items":     items,
			"succeeded": res.Succeeded(),
			"failed":    res.Failed(),
		}); jsonErr != nil {
			return jsonErr
		}
	} else {
		for _, item := range res.Items {
			if item.Err != nil {
				fmt.Fprintf(a.stdout, "[%d] error: %v\n", item.Index, item.Err)
				continue
			}
			fmt.Fprintf(a.stdout, "[%d] %v\n", item.Index, item.Result.Output)
		}
		fmt.Fprintf(a.stderr, "%d succeeded, %d failed\n", res.Succeeded(), res.Failed())
	}

	if err != nil {
		return a.handleError(err)
	}
	return nil
}
