package main

import (
	"fmt"
	"io"
	"os"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/normalize"
	"github.com/karyhub/dealflow/internal/parse"
	"github.com/karyhub/dealflow/internal/stage"
)

func importCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "import",
		Short: "Import pipeline records",
	}

	cmd.AddCommand(importPasteCmd())
	cmd.AddCommand(importCSVCmd())
	return cmd
}

func importPasteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "paste",
		Short: "Create a record from pasted chat text",
		Long: `Read consultation-chat text from stdin and create a pipeline
record from it. Labeled lines (회사명:, 담당자:, 연락처:, ...) are taken
directly; phone numbers, emails, dates, and amount buckets are picked
out of the remaining text. The company is matched against existing
accounts before a new one is created.`,
		RunE: runImportPaste,
	}

	cmd.Flags().Bool("dry-run", false, "show the parsed form without saving")
	return cmd
}

func runImportPaste(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	text, err := io.ReadAll(cmd.InOrStdin())
	if err != nil {
		return fmt.Errorf("failed to read input: %w", err)
	}

	intake := parse.Paste(string(text))
	if intake.Company == "" && intake.ContactName == "" && intake.Phone == "" {
		return fmt.Errorf("could not find anything usable in the pasted text")
	}

	fmt.Println(cli.TitleStyle.Render("파싱 결과"))
	fmt.Printf("회사:   %s\n담당자: %s\n연락처: %s\n이메일: %s\n날짜:   %s\n금액:   %s\n",
		intake.Company, intake.ContactName, intake.Phone, intake.Email, intake.Date, intake.AmountRange)

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	accounts, err := store.GetAccounts(ctx)
	if err != nil {
		return fmt.Errorf("failed to load accounts: %w", err)
	}

	account := parse.MatchAccount(intake.Company, accounts)
	if account == nil && intake.Company != "" {
		account = &model.Account{
			Name:        intake.Company,
			ContactName: intake.ContactName,
			Phone:       intake.Phone,
			Email:       intake.Email,
		}
		if err := store.CreateAccount(ctx, account); err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}
	}

	name := intake.ContactName
	if name == "" {
		name = intake.Company
	}
	deal := &model.Deal{
		Name:             name,
		Stage:            string(stage.S0),
		FirstContactDate: normalize.FormatDate(normalize.Today()),
		NextContactDate:  intake.Date,
		AmountRange:      intake.AmountRange,
	}
	if account != nil {
		deal.AccountID = account.ID
	}

	if err := store.CreateDeal(ctx, deal); err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	if err := store.CreateActivity(ctx, &model.Activity{
		DealID:  deal.ID,
		Type:    model.ActivityNote,
		Date:    deal.FirstContactDate,
		Content: intake.Memo,
	}); err != nil {
		return fmt.Errorf("failed to record intake note: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created %s (%s)", deal.Name, shortID(deal.ID))))
	return nil
}

func importCSVCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "csv <file>",
		Short: "Bulk import records from a CSV file",
		Long: `Import pipeline records from a CSV file with a header row
(English or Korean column names). Rows matching an existing record by
normalized name and company are skipped as duplicates.`,
		Args: cobra.ExactArgs(1),
		RunE: runImportCSV,
	}

	cmd.Flags().Bool("dry-run", false, "parse and report without saving")
	return cmd
}

func runImportCSV(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	f, err := os.Open(args[0]) // #nosec G304
	if err != nil {
		return fmt.Errorf("failed to open import file: %w", err)
	}
	defer func() { _ = f.Close() }()

	rows, err := parse.CSV(f)
	if err != nil {
		return fmt.Errorf("failed to parse import file: %w", err)
	}
	if len(rows) == 0 {
		return fmt.Errorf("no importable rows in %s", args[0])
	}

	if dry, _ := cmd.Flags().GetBool("dry-run"); dry {
		fmt.Printf("%d rows parsed.\n", len(rows))
		return nil
	}

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	// Existing records, keyed the same way as the incoming rows.
	existing := make(map[string]bool)
	records, err := loadRecords(ctx, store)
	if err != nil {
		return fmt.Errorf("failed to load records: %w", err)
	}
	for _, r := range records {
		existing[parse.CSVRow{Name: r.Name, Company: r.Company}.Key()] = true
	}

	bar := progressbar.Default(int64(len(rows)), "importing")
	imported, skipped := 0, 0

	for _, row := range rows {
		_ = bar.Add(1)

		if existing[row.Key()] {
			skipped++
			continue
		}
		existing[row.Key()] = true

		account, err := resolveAccount(ctx, store, row.Company, true)
		if err != nil {
			return fmt.Errorf("failed to resolve account %q: %w", row.Company, err)
		}

		deal := &model.Deal{
			Name:             row.Name,
			Stage:            row.Stage,
			AssignedTo:       row.AssignedTo,
			FirstContactDate: row.FirstContactDate,
			NextContactDate:  row.NextContactDate,
			AmountRange:      row.AmountRange,
			NeedsSummary:     row.NeedsSummary,
		}
		if deal.Stage == "" {
			deal.Stage = string(stage.S0)
		}
		if account != nil {
			deal.AccountID = account.ID
		}

		if err := store.CreateDeal(ctx, deal); err != nil {
			return fmt.Errorf("failed to import %q: %w", row.Name, err)
		}
		imported++
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Imported %d records (%d duplicates skipped).", imported, skipped)))
	return nil
}
