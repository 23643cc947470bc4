package main

import (
	"fmt"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/normalize"
)

func quotationsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "quotations",
		Short: "Manage quotations",
	}

	cmd.AddCommand(quotationsAddCmd())
	cmd.AddCommand(quotationsListCmd())
	cmd.AddCommand(quotationsShowCmd())
	return cmd
}

func quotationsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List all quotations",
		RunE:  runQuotationsList,
	}
}

func runQuotationsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	quotations, err := store.GetQuotations(ctx)
	if err != nil {
		return fmt.Errorf("failed to load quotations: %w", err)
	}
	if len(quotations) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No quotations."))
		return nil
	}

	fmt.Println(cli.TitleStyle.Render("견적서"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("제목"),
		cli.BoldStyle.Render("상태"),
		cli.BoldStyle.Render("품목"),
		cli.BoldStyle.Render("합계"))

	for _, q := range quotations {
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s원\n",
			shortID(q.ID), q.Title, q.Status, len(q.Items),
			normalize.FormatAmount(q.Total))
	}
	return nil
}

func quotationsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <title>",
		Short: "Create a quotation",
		Long: `Create a quotation from line items. Each --item is
"name:quantity:unit-price"; supply, 10% VAT (truncated), and total are
computed from the items.`,
		Args: cobra.ExactArgs(1),
		RunE: runQuotationsAdd,
	}

	cmd.Flags().StringSlice("item", nil, `line item as "name:qty:unit-price" (repeatable)`)
	cmd.Flags().String("activity", "", "linked activity ID")

	return cmd
}

func runQuotationsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	quotation := &model.Quotation{Title: args[0]}
	quotation.ActivityID, _ = cmd.Flags().GetString("activity")

	items, _ := cmd.Flags().GetStringSlice("item")
	for _, raw := range items {
		item, err := parseLineItem(raw)
		if err != nil {
			return err
		}
		quotation.Items = append(quotation.Items, item)
	}

	if err := store.CreateQuotation(ctx, quotation); err != nil {
		return fmt.Errorf("failed to create quotation: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created %s — 합계 %s원",
		quotation.Title, normalize.FormatAmount(quotation.Total))))
	return nil
}

func parseLineItem(raw string) (model.LineItem, error) {
	parts := strings.Split(raw, ":")
	if len(parts) != 3 {
		return model.LineItem{}, fmt.Errorf("invalid item %q: want name:qty:unit-price", raw)
	}

	qty, err := strconv.ParseInt(strings.TrimSpace(parts[1]), 10, 64)
	if err != nil {
		return model.LineItem{}, fmt.Errorf("invalid quantity in %q: %w", raw, err)
	}
	price, err := strconv.ParseInt(strings.TrimSpace(parts[2]), 10, 64)
	if err != nil {
		return model.LineItem{}, fmt.Errorf("invalid unit price in %q: %w", raw, err)
	}

	return model.LineItem{
		Name:      strings.TrimSpace(parts[0]),
		Quantity:  qty,
		UnitPrice: price,
	}, nil
}

func quotationsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show a quotation with its line items",
		Args:  cobra.ExactArgs(1),
		RunE:  runQuotationsShow,
	}
}

func runQuotationsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	quotation, err := store.GetQuotation(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render(quotation.Title))
	for _, item := range quotation.Items {
		fmt.Printf("  %-20s %4d × %12s = %12s\n",
			item.Name, item.Quantity,
			normalize.FormatAmount(item.UnitPrice),
			normalize.FormatAmount(item.Amount()))
	}
	fmt.Printf("\n공급가액: %s원\n", normalize.FormatAmount(quotation.Supply))
	fmt.Printf("부가세:   %s원\n", normalize.FormatAmount(quotation.Tax))
	fmt.Println(cli.BoldStyle.Render(fmt.Sprintf("합계:     %s원", normalize.FormatAmount(quotation.Total))))
	return nil
}
