package main

import (
	"fmt"
	"log/slog"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stockroom/internal/cli"
	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/service"
)

func recategorizeCmd() *cobra.Command {
	var all bool

	cmd := &cobra.Command{
		Use:   "recategorize",
		Short: "Classify stored products again",
		Long: `Run the classifier again over products flagged for review, or over every
product with --all. Useful after extending the knowledge base or adding
categories by hand.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			products, err := store.GetProducts(ctx, service.ProductFilter{NeedsReview: !all})
			if err != nil {
				return fmt.Errorf("failed to get products: %w", err)
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("Nothing to recategorize."))
				return nil
			}

			c, err := newClassifier(ctx, store)
			if err != nil {
				return err
			}

			var stats cli.RecategorizeStats
			bar := cli.NewProgressBar(cmd.ErrOrStderr(), len(products), "Classifying products...")

			for _, p := range products {
				if err := ctx.Err(); err != nil {
					slog.Warn("Recategorization interrupted", "processed", stats.Processed)
					break
				}
				stats.Processed++

				result, err := c.Classify(ctx, p.Input())
				if err != nil {
					stats.Failed++
					common.LogError(err, "Failed to classify product", common.Fields{"id": p.ID})
					_ = bar.Add(1)
					continue
				}

				categoryID, needsReview, err := assignCategory(ctx, c, result)
				if err != nil || categoryID == "" {
					stats.Failed++
					_ = bar.Add(1)
					continue
				}
				if result.IsNewCategory {
					stats.NewCategory++
				}

				if categoryID != p.CategoryID || needsReview != p.NeedsReview {
					if err := store.UpdateProductCategory(ctx, p.ID, categoryID, needsReview); err != nil {
						stats.Failed++
						common.LogError(err, "Failed to update product", common.Fields{"id": p.ID, "category_id": categoryID})
						_ = bar.Add(1)
						continue
					}
				}

				if needsReview {
					stats.StillReview++
				} else {
					stats.Resolved++
				}
				if err := bar.Add(1); err != nil {
					slog.Warn("Failed to update progress bar", "error", err)
				}
			}

			common.LogInfo("Recategorization finished", common.Fields{
				"processed": stats.Processed,
				"resolved":  stats.Resolved,
				"failed":    stats.Failed,
			})
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderRecategorizeSummary(stats))
			return nil
		},
	}

	cmd.Flags().BoolVar(&all, "all", false, "recategorize every product, not only those needing review")

	return cmd
}
