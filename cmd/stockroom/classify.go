package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stockroom/internal/cli"
	"github.com/Veraticus/stockroom/internal/model"
)

func classifyCmd() *cobra.Command {
	var (
		input  model.ProductInput
		asJSON bool
	)

	cmd := &cobra.Command{
		Use:   "classify <name>",
		Short: "Suggest a category for a product",
		Long: `Classify a product name (and optional description) against the catalog
without saving anything. The suggested category may not exist yet.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input.Name = args[0]

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			c, err := newClassifier(ctx, store)
			if err != nil {
				return err
			}

			result, err := c.Classify(ctx, input)
			if err != nil {
				return fmt.Errorf("failed to classify %q: %w", input.Name, err)
			}

			out := cmd.OutOrStdout()
			if asJSON {
				enc := json.NewEncoder(out)
				enc.SetIndent("", "  ")
				return enc.Encode(result)
			}

			fmt.Fprintln(out, cli.RenderResult(input.Name, result))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Description, "description", "d", "", "product description")
	cmd.Flags().Float64Var(&input.Cost, "cost", 0, "product cost")
	cmd.Flags().StringVar(&input.HintCategoryID, "hint", "", "category id to use if it exists")
	cmd.Flags().BoolVar(&asJSON, "json", false, "print the result as JSON")

	return cmd
}
