package commands

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/weco-ai/weco-go/weco"
)

func (a *App) newQueryCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "query <function>",
		Short: "Invoke a function with text and optional images",
		Long: `Invoke a built function with text input and optional image references.

Image references may be URLs, local file paths, data URIs, or raw
base64 strings.

Examples:
  weco query parse-receipt -i "Total: $42.50"
  weco query parse-receipt -i "see attached" --image receipt.png
  weco query parse-receipt -i "see attached" --reasoning --version 2`,
		Args: cobra.ExactArgs(1),
		RunE: a.runQuery,
	}

	cmd.Flags().StringVarP(&a.queryText, "input", "i", "", "Text input (required)")
	cmd.Flags().StringArrayVar(&a.queryImages, "image", nil, "Image reference (repeatable)")
	cmd.Flags().BoolVar(&a.queryReasoning, "reasoning", false, "Request the reasoning trace")
	cmd.Flags().IntVar(&a.queryVersion, "version", weco.LatestVersion, "Function version (default latest)")

	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func (a *App) runQuery(cmd *cobra.Command, args []string) error {
	client, err := a.newClient()
	if err != nil {
		return err
	}

	res, err := client.Query(cmd.Context(), &weco.QueryRequest{
		Ref:             weco.Func(args[0]).WithVersion(a.queryVersion),
		Input:           weco.QueryInput{Text: a.queryText, Images: a.queryImages},
		ReturnReasoning: a.queryReasoning,
	})
	if err != nil {
		return a.handleError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(map[string]any{
			"output":          res.Output,
			"in_tokens":       res.InputTokens,
			"out_tokens":      res.OutputTokens,
			"latency_ms":      res.LatencyMS,
			"reasoning_steps": res.ReasoningSteps,
		})
	}

	if err := a.outputJSON(res.Output); err != nil {
		return err
	}
	if a.queryReasoning {
		for i, step := range res.ReasoningSteps {
			fmt.Fprintf(a.stderr, "Step %d: %s\n", i+1, step)
		}
	}
	fmt.Fprintf(a.stderr, "Tokens: %d in, %d out (%d ms)\n",
		res.InputTokens, res.OutputTokens, res.LatencyMS)
	return nil
}
