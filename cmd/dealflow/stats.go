package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/sheets"
	"github.com/karyhub/dealflow/internal/tui"
)

func statsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stats",
		Short: "Show per-stage pipeline statistics",
		Long: `Compute per-stage counts and rates against the configured bands,
plus the client-list summary. Unrecognized historical stage values are
listed separately so counts always sum to the total.`,
		RunE: runStats,
	}

	cmd.Flags().Bool("tui", false, "open the interactive dashboard")
	cmd.Flags().Bool("export-sheets", false, "export the report to Google Sheets")

	return cmd
}

func runStats(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	records, err := loadRecords(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	bands, err := store.GetStageBands(ctx)
	if err != nil {
		return fmt.Errorf("failed to load stage bands: %w", err)
	}
	rep := report.Aggregate(records, bands)

	accounts, err := store.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}
	contracts, err := store.GetAllContracts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load contracts: %w", err)
	}
	deals, err := store.GetDeals(ctx)
	if err != nil {
		return fmt.Errorf("failed to load deals: %w", err)
	}
	summary := report.Summarize(accounts, contracts, deals)

	if useTUI, _ := cmd.Flags().GetBool("tui"); useTUI {
		return tui.Run(rep, summary)
	}

	if export, _ := cmd.Flags().GetBool("export-sheets"); export {
		return exportToSheets(cmd, rep, summary)
	}

	renderStats(rep, summary)
	return nil
}

func renderStats(rep report.Report, summary report.Summary) {
	fmt.Println(cli.TitleStyle.Render("단계별 현황"))
	fmt.Println(cli.SubtleStyle.Render(fmt.Sprintf("전체 %d건", rep.Total)))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("단계"),
		cli.BoldStyle.Render("건수"),
		cli.BoldStyle.Render("비율"),
		cli.BoldStyle.Render("비고"))

	for _, st := range rep.Stages {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%s\n",
			st.Label, st.Count, st.Rate, cli.BandStyle(st.Status).Render(st.Message))
	}
	for _, st := range rep.Extras {
		fmt.Fprintf(w, "%s\t%d\t%.1f%%\t%s\n",
			cli.SubtleStyle.Render(st.Label), st.Count, st.Rate, cli.SubtleStyle.Render("미분류"))
	}

	if flushErr := w.Flush(); flushErr != nil {
		slog.Error("failed to flush table writer", "error", flushErr)
	}

	fmt.Println()
	fmt.Println(cli.TitleStyle.Render("고객 요약"))
	fmt.Printf("전체 %d · 활성 %d · 관리 %d · 비활성 %d\n",
		summary.Total, summary.Active, summary.Managed, summary.Inactive)
	fmt.Printf("계약 만료 임박 %d · 영업 기회 보유 %d\n",
		summary.ExpiringSoon, summary.WithOpportunity)
}

func exportToSheets(cmd *cobra.Command, rep report.Report, summary report.Summary) error {
	ctx := cmd.Context()

	cfg := sheets.DefaultConfig()
	if err := cfg.LoadFromEnv(); err != nil {
		return fmt.Errorf("sheets configuration: %w", err)
	}

	writer, err := sheets.NewWriter(ctx, cfg, slog.Default())
	if err != nil {
		return fmt.Errorf("failed to create sheets writer: %w", err)
	}

	if err := writer.Write(ctx, rep, summary); err != nil {
		return fmt.Errorf("failed to export report: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render("Exported to Google Sheets."))
	return nil
}
