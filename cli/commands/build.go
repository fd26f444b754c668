package commands

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/weco-ai/weco-go/weco"
)

func (a *App) newBuildCommand() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build",
		Short: "Build a function from a task description",
		Long: `Build a new function from a natural-language task description.

Examples:
  weco build -t "Extract the total amount from a receipt"
  weco build -t "Parse invoices" --schema invoice.schema.json --multimodal
  weco build -t "Summarize reviews" --json`,
		RunE: a.runBuild,
	}

	cmd.Flags().StringVarP(&a.buildTask, "task", "t", "", "Task description (required)")
	cmd.Flags().StringVar(&a.buildSchemaFile, "schema", "", "JSON Schema file hinting the output shape")
	cmd.Flags().BoolVar(&a.buildMultimodal, "multimodal", false, "Build a function that accepts images")

	_ = cmd.MarkFlagRequired("task")

	return cmd
}

func (a *App) runBuild(cmd *cobra.Command, args []string) error {
	req := &weco.BuildRequest{
		TaskDescription: a.buildTask,
		Multimodal:      a.buildMultimodal,
	}

	if a.buildSchemaFile != "" {
		data, err := os.ReadFile(a.buildSchemaFile)
		if err != nil {
			return exitWithCode(ExitValidation, fmt.Errorf("failed to read schema file: %w", err))
		}
		if !json.Valid(data) {
			return exitWithCode(ExitValidation, fmt.Errorf("schema file %s is not valid JSON", a.buildSchemaFile))
		}
		req.OutputSchema = data
	}

	client, err := a.newClient()
	if err != nil {
		return err
	}

	res, err := client.Build(cmd.Context(), req)
	if err != nil {
		return a.handleError(err)
	}

	if a.jsonOutput {
		return a.outputJSON(map[string]any{
			"fn_name":        res.Ref.Name,
			"version_number": res.Ref.Version,
			"fn_description": res.Description,
			"warnings":       res.Warnings,
		})
	}

	fmt.Fprintf(a.stdout, "Built function %s (version %d)\n", res.Ref.Name, res.Ref.Version)
	fmt.Fprintf(a.stdout, "  %s\n", res.Description)
	for _, w := range res.Warnings {
		fmt.Fprintf(a.stderr, "Warning: %s\n", w)
	}
	return nil
}
