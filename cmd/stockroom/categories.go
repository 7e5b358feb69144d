package main

import (
	"errors"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/Veraticus/stockroom/internal/cli"
	"github.com/Veraticus/stockroom/internal/common"
)

func categoriesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "categories",
		Short: "Manage product categories",
		Long:  `List categories, create them idempotently and retire them.`,
	}

	cmd.AddCommand(listCategoriesCmd())
	cmd.AddCommand(ensureCategoryCmd())
	cmd.AddCommand(deactivateCategoryCmd())

	return cmd
}

func listCategoriesCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all categories",
		Long:  `Display all active categories with their descriptions.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			categories, err := store.LoadActiveCategories(ctx)
			if err != nil {
				return fmt.Errorf("failed to get categories: %w", err)
			}

			if len(categories) == 0 {
				fmt.Fprintln(cmd.OutOrStdout(), cli.InfoStyle.Render("No categories found. Use 'stockroom categories ensure' to create one."))
				return nil
			}

			return cli.RenderCategories(cmd.OutOrStdout(), categories)
		},
	}
}

func ensureCategoryCmd() *cobra.Command {
	var description string

	cmd := &cobra.Command{
		Use:   "ensure <id> <name>",
		Short: "Create a category unless it already exists",
		Long: `Create a category with the given id and name. When a category with the
same id, or the same name in any letter case, already exists it is returned
unchanged.`,
		Args: cobra.ExactArgs(2),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			c, err := newClassifier(ctx, store)
			if err != nil {
				return err
			}

			cat, err := c.EnsureCategory(ctx, args[0], args[1], description)
			if err != nil {
				return fmt.Errorf("failed to ensure category: %w", err)
			}

			if cat.ID != args[0] {
				fmt.Fprintln(cmd.OutOrStdout(), cli.FormatInfo(fmt.Sprintf("Category %q already exists as %q", args[1], cat.ID)))
				return nil
			}
			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Category %q (%s) is ready", cat.Name, cat.ID)))
			return nil
		},
	}

	cmd.Flags().StringVarP(&description, "description", "d", "", "category description")

	return cmd
}

func deactivateCategoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "deactivate <id>",
		Short: "Stop offering a category",
		Long: `Hide a category from classification. Products keep their category id, and
ensuring a category with the same name later reactivates it.`,
		Args: cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			ctx := cmd.Context()

			store, err := initStorage(ctx)
			if err != nil {
				return err
			}
			defer store.Close()

			if err := store.DeactivateCategory(ctx, args[0]); err != nil {
				if errors.Is(err, common.ErrNotFound) {
					return common.NewUserError(fmt.Sprintf("no active category %q", args[0]), err)
				}
				return fmt.Errorf("failed to deactivate category: %w", err)
			}

			fmt.Fprintln(cmd.OutOrStdout(), cli.FormatSuccess(fmt.Sprintf("Deactivated category %s", args[0])))
			return nil
		},
	}
}
