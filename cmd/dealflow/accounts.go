package main

import (
	"fmt"
	"log/slog"
	"os"
	"text/tabwriter"

	"github.com/spf13/cobra"

	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/stage"
)

func accountsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "accounts",
		Short: "Manage company profiles and contracts",
	}

	cmd.AddCommand(accountsListCmd())
	cmd.AddCommand(accountsShowCmd())
	cmd.AddCommand(accountsAddCmd())
	cmd.AddCommand(contractsAddCmd())
	return cmd
}

func accountsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <company>",
		Short: "Show one company with its contracts and pipeline records",
		Args:  cobra.ExactArgs(1),
		RunE:  runAccountsShow,
	}
}

func runAccountsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	account, err := resolveAccount(ctx, store, args[0], false)
	if err != nil {
		return fmt.Errorf("failed to resolve account: %w", err)
	}
	if account == nil {
		return fmt.Errorf("no account named %q", args[0])
	}

	fmt.Println(cli.TitleStyle.Render(account.Name))
	if account.Industry != "" {
		fmt.Printf("업종:   %s\n", account.Industry)
	}
	if account.Region != "" {
		fmt.Printf("지역:   %s\n", account.Region)
	}
	if account.ContactName != "" {
		fmt.Printf("담당자: %s\n", account.ContactName)
	}
	if account.Phone != "" {
		fmt.Printf("연락처: %s\n", account.Phone)
	}
	if account.Email != "" {
		fmt.Printf("이메일: %s\n", account.Email)
	}

	contracts, err := store.GetContractsByAccount(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("failed to load contracts: %w", err)
	}
	if len(contracts) > 0 {
		fmt.Println()
		fmt.Println(cli.TitleStyle.Render("계약"))
		for _, c := range contracts {
			fmt.Printf("  %s  %s ~ %s  [%s]\n", c.Title, c.StartDate, c.EndDate, c.Status)
		}
	}

	deals, err := store.GetDealsByAccount(ctx, account.ID)
	if err != nil {
		return fmt.Errorf("failed to load deals: %w", err)
	}
	if len(deals) > 0 {
		fmt.Println()
		fmt.Println(cli.TitleStyle.Render("영업 기회"))
		for _, d := range deals {
			fmt.Printf("  %s  %s  %s\n",
				shortID(d.ID),
				cli.StageStyle(d.Stage).Render(stage.Label(d.Stage)),
				d.Name)
		}
	}
	return nil
}

func accountsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "List companies with their engagement status",
		Long: `Display every company with its derived status: active when it
holds an active contract or an open opportunity, managed when it only
has past contracts, inactive otherwise. Contracts ending within 30 days
are flagged.`,
		RunE: runAccountsList,
	}
}

func runAccountsList(cmd *cobra.Command, _ []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

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
	fmt.Println(cli.TitleStyle.Render("고객 리스트"))
	fmt.Printf("전체 %d · 활성 %d · 관리 %d · 비활성 %d · 만료 임박 %d\n\n",
		summary.Total, summary.Active, summary.Managed, summary.Inactive, summary.ExpiringSoon)

	if len(accounts) == 0 {
		return nil
	}

	openByAccount := make(map[string]int)
	for _, d := range deals {
		if report.OpenDeal(d) {
			openByAccount[d.AccountID]++
		}
	}

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("ID"),
		cli.BoldStyle.Render("회사"),
		cli.BoldStyle.Render("상태"),
		cli.BoldStyle.Render("열린 기회"),
		cli.BoldStyle.Render("비고"))

	for _, a := range accounts {
		status := report.ClassifyClient(contracts[a.ID], openByAccount[a.ID])
		note := ""
		if report.ExpiringSoon(contracts[a.ID]) {
			note = cli.WarningStyle.Render("계약 만료 임박")
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%d\t%s\n",
			shortID(a.ID), a.Name, renderClientStatus(status), openByAccount[a.ID], note)
	}
	return nil
}

func renderClientStatus(status report.ClientStatus) string {
	switch status {
	case report.ClientActive:
		return cli.SuccessStyle.Render("활성")
	case report.ClientManaged:
		return cli.WarningStyle.Render("관리")
	default:
		return cli.SubtleStyle.Render("비활성")
	}
}

func accountsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a company profile",
		Args:  cobra.ExactArgs(1),
		RunE:  runAccountsAdd,
	}

	cmd.Flags().String("industry", "", "industry")
	cmd.Flags().String("region", "", "region")
	cmd.Flags().String("contact", "", "contact person")
	cmd.Flags().String("phone", "", "phone number")
	cmd.Flags().String("email", "", "email address")

	return cmd
}

func runAccountsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	account := &model.Account{Name: args[0]}
	account.Industry, _ = cmd.Flags().GetString("industry")
	account.Region, _ = cmd.Flags().GetString("region")
	account.ContactName, _ = cmd.Flags().GetString("contact")
	account.Phone, _ = cmd.Flags().GetString("phone")
	account.Email, _ = cmd.Flags().GetString("email")

	if err := store.CreateAccount(ctx, account); err != nil {
		return fmt.Errorf("failed to create account: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created %s (%s)", account.Name, shortID(account.ID))))
	return nil
}

func contractsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "contract <company>",
		Short: "Record a contract for a company",
		Args:  cobra.ExactArgs(1),
		RunE:  runContractsAdd,
	}

	cmd.Flags().String("title", "", "contract title")
	cmd.Flags().String("start", "", "start date (YYYY-MM-DD)")
	cmd.Flags().String("end", "", "end date (YYYY-MM-DD)")
	cmd.Flags().String("status", string(model.ContractActive), "status (active, expired, terminated)")

	return cmd
}

func runContractsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	account, err := resolveAccount(ctx, store, args[0], false)
	if err != nil {
		return fmt.Errorf("failed to resolve account: %w", err)
	}
	if account == nil {
		return fmt.Errorf("no account named %q", args[0])
	}

	contract := &model.Contract{AccountID: account.ID}
	contract.Title, _ = cmd.Flags().GetString("title")
	contract.StartDate, _ = cmd.Flags().GetString("start")
	contract.EndDate, _ = cmd.Flags().GetString("end")
	status, _ := cmd.Flags().GetString("status")
	contract.Status = model.ContractStatus(status)

	if err := store.CreateContract(ctx, contract); err != nil {
		return fmt.Errorf("failed to create contract: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render("Contract recorded."))
	return nil
}
