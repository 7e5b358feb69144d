package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stockroom/internal/classifier"
	"github.com/Veraticus/stockroom/internal/cli"
	"github.com/Veraticus/stockroom/internal/common"
	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/service"
	"github.com/Veraticus/stockroom/internal/tui"
)

func reviewCmd() *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "review",
		Short: "Review products flagged for manual categorization",
		Long: `Walk through the products flagged for review one at a time. For each one,
accept the classifier's suggestion, pick an existing category, type the name
of a new category, or skip it.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			products, err := store.GetProducts(ctx, service.ProductFilter{NeedsReview: true, Limit: limit})
			if err != nil {
				return fmt.Errorf("failed to get products: %w", err)
			}
			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No products need review."))
				return nil
			}

			c, err := newClassifier(ctx, store)
			if err != nil {
				return err
			}

			items := reviewItems(ctx, c, products)
			summary, err := tui.Run(ctx, tui.Config{
				Resolver:   catalogResolver{store: store, classifier: c},
				Items:      items,
				Categories: c.Categories(),
				Input:      cmd.InOrStdin(),
				Output:     cmd.OutOrStdout(),
				AltScreen:  cmd.OutOrStdout() == os.Stdout,
			})
			if err != nil {
				return err
			}

			common.LogInfo("Review finished", common.Fields{
				"resolved": summary.Resolved,
				"skipped":  summary.Skipped,
				"failed":   summary.Failed,
			})
			fmt.Fprintln(cmd.OutOrStdout(), cli.RenderReviewSummary(summary.Resolved, summary.Skipped, summary.Failed))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 0, "review at most this many products")

	return cmd
}

// reviewItems pairs each product with a fresh suggestion.
func reviewItems(ctx context.Context, c *classifier.Classifier, products []model.Product) []tui.Item {
	items := make([]tui.Item, 0, len(products))
	for _, p := range products {
		result, err := c.Classify(ctx, p.Input())
		if err != nil {
			common.LogError(err, "Failed to classify product for review", common.Fields{"id": p.ID})
		}
		items = append(items, tui.Item{Product: p, Suggestion: result})
	}
	return items
}

// catalogResolver stores review decisions: it materializes the chosen
// category and clears the product's review flag.
type catalogResolver struct {
	store      service.Storage
	classifier *classifier.Classifier
}

func (r catalogResolver) Resolve(ctx context.Context, d tui.Decision) (model.Category, error) {
	var cat model.Category
	err := common.WithRetry(ctx, func() error {
		var ensureErr error
		cat, ensureErr = r.classifier.EnsureCategory(ctx, d.CategoryID, d.Name, d.Description)
		return ensureErr
	}, ensureRetry)
	if err != nil {
		return model.Category{}, fmt.Errorf("failed to ensure category %q: %w", d.CategoryID, err)
	}

	if err := r.store.UpdateProductCategory(ctx, d.ProductID, cat.ID, false); err != nil {
		return model.Category{}, fmt.Errorf("failed to update product %q: %w", d.ProductID, err)
	}
	return cat, nil
}
