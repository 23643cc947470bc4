package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/model"
)

func strategyCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "strategy",
		Short: "Manage the sales strategy matrix",
	}

	cmd.AddCommand(strategyShowCmd())
	cmd.AddCommand(strategyAddCmd())
	cmd.AddCommand(strategyEditCmd())
	cmd.AddCommand(strategyHistoryCmd())
	return cmd
}

func strategyShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Display the strategy matrix",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			categories, err := store.GetStrategyCategories(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load strategy matrix: %w", err)
			}

			for _, category := range categories {
				fmt.Println(cli.TitleStyle.Render(category.Name))
				for _, item := range category.Items {
					fmt.Printf("  %s %s\n", shortID(item.ID), cli.BoldStyle.Render(item.Title))
					for i, cell := range item.Cells {
						if cell.Text == "" {
							continue
						}
						fmt.Printf("    [%d] %s\n", i, cell.Text)
					}
				}
				fmt.Println()
			}
			return nil
		},
	}
}

func strategyAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Add a strategy item",
		Args:  cobra.ExactArgs(1),
		RunE:  runStrategyAdd,
	}

	cmd.Flags().String("category", "", "category name (created if missing)")
	_ = cmd.MarkFlagRequired("category")
	return cmd
}

func runStrategyAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	categoryName, _ := cmd.Flags().GetString("category")

	categories, err := store.GetStrategyCategories(ctx)
	if err != nil {
		return fmt.Errorf("failed to load categories: %w", err)
	}

	var category *model.StrategyCategory
	for i := range categories {
		if categories[i].Name == categoryName {
			category = &categories[i]
			break
		}
	}
	if category == nil {
		category = &model.StrategyCategory{Name: categoryName, Position: len(categories)}
		if err := store.CreateStrategyCategory(ctx, category); err != nil {
			return fmt.Errorf("failed to create category: %w", err)
		}
	}

	item := &model.StrategyItem{
		CategoryID: category.ID,
		Title:      args[0],
		Position:   len(category.Items),
	}
	if err := store.CreateStrategyItem(ctx, item); err != nil {
		return fmt.Errorf("failed to create item: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Added %s (%s)", item.Title, shortID(item.ID))))
	return nil
}

func strategyEditCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "edit <item-id> <cell> <text>",
		Short: "Edit one cell of a strategy item",
		Long: `Write a cell (0-3) of a strategy item. The previous value is
kept in the item's history; cells are never hard-deleted.`,
		Args: cobra.ExactArgs(3),
		RunE: runStrategyEdit,
	}

	cmd.Flags().String("color", "", "color tag for the cell")
	return cmd
}

func runStrategyEdit(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	cell, err := strconv.Atoi(args[1])
	if err != nil {
		return fmt.Errorf("invalid cell index %q", args[1])
	}
	color, _ := cmd.Flags().GetString("color")

	if err := store.UpdateStrategyCell(ctx, args[0], cell, args[2], color); err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render("Updated."))
	return nil
}

func strategyHistoryCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "history <item-id>",
		Short: "Show the edit history of a strategy item",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			history, err := store.GetStrategyHistory(cmd.Context(), args[0])
			if err != nil {
				return err
			}

			for _, h := range history {
				fmt.Printf("%s  cell %d: %q → %q\n",
					h.ChangedAt.Format("2006-01-02 15:04"), h.Cell, h.OldValue, h.NewValue)
			}
			return nil
		},
	}
}
