package main

import (
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"github.com/Veraticus/stockroom/internal/cli"
	"github.com/Veraticus/stockroom/internal/model"
	"github.com/Veraticus/stockroom/internal/service"
)

func productsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "products",
		Short: "Manage catalog products",
		Long:  `Add products to the catalog (classifying them on the way in) and list them.`,
	}

	cmd.AddCommand(addProductCmd())
	cmd.AddCommand(listProductsCmd())

	return cmd
}

func addProductCmd() *cobra.Command {
	var input model.ProductInput

	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Add a product and assign its category",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()
			input.Name = args[0]
			if input.Cost < 0 {
				return fmt.Errorf("cost must not be negative, got %.2f", input.Cost)
			}

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

			categoryID, needsReview, err := assignCategory(ctx, c, result)
			if err != nil {
				return err
			}

			product := &model.Product{
				ID:          uuid.NewString(),
				Name:        input.Name,
				Description: input.Description,
				Cost:        input.Cost,
				CategoryID:  categoryID,
				NeedsReview: needsReview,
				IsActive:    true,
				CreatedAt:   time.Now().UTC(),
			}
			if err := store.SaveProduct(ctx, product); err != nil {
				return fmt.Errorf("failed to save product: %w", err)
			}

			out := cmd.OutOrStdout()
			fmt.Fprintln(out, cli.RenderResult(input.Name, result))
			if categoryID == "" {
				fmt.Fprintln(out, cli.FormatWarning(fmt.Sprintf("Saved %s without a category", product.ID)))
				return nil
			}
			fmt.Fprintln(out, cli.FormatSuccess(fmt.Sprintf("Saved %s in %q", product.ID, categoryID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input.Description, "description", "d", "", "product description")
	cmd.Flags().Float64Var(&input.Cost, "cost", 0, "product cost")
	cmd.Flags().StringVar(&input.HintCategoryID, "hint", "", "category id to use if it exists")

	return cmd
}

func listProductsCmd() *cobra.Command {
	var (
		filter     service.ProductFilter
		reviewOnly bool
	)

	cmd := &cobra.Command{
		Use:   "list",
		Short: "List catalog products",
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()
			filter.NeedsReview = reviewOnly

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			products, err := store.GetProducts(ctx, filter)
			if err != nil {
				return fmt.Errorf("failed to get products: %w", err)
			}

			if len(products) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No products found. Use 'stockroom products add' to create one."))
				return nil
			}

			return cli.RenderProducts(cmd.OutOrStdout(), products)
		},
	}

	cmd.Flags().BoolVar(&reviewOnly, "review", false, "only products that need manual review")
	cmd.Flags().StringVar(&filter.CategoryID, "category", "", "only products in this category")
	cmd.Flags().IntVar(&filter.Limit, "limit", 0, "maximum number of products (0 for all)")
	cmd.Flags().IntVar(&filter.Offset, "offset", 0, "number of products to skip")

	return cmd
}
