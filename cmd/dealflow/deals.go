package main

import (
	"fmt"
	"log/slog"
	"os"
	"strings"
	"text/tabwriter"

	"github.com/charmbracelet/lipgloss"
	"github.com/spf13/cobra"

	"github.com/karyhub/dealflow/internal/blob"
	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/normalize"
	"github.com/karyhub/dealflow/internal/prefs"
	"github.com/karyhub/dealflow/internal/service"
	"github.com/karyhub/dealflow/internal/stage"
	"github.com/karyhub/dealflow/internal/view"
)

func dealsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "deals",
		Short: "Manage pipeline records",
	}

	cmd.AddCommand(dealsListCmd())
	cmd.AddCommand(dealsAddCmd())
	cmd.AddCommand(dealsShowCmd())
	cmd.AddCommand(dealsUpdateCmd())
	cmd.AddCommand(dealsStageCmd())
	cmd.AddCommand(dealsDeleteCmd())
	return cmd
}

func dealsListCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "list",
		Short: "List pipeline records",
		Long: `Display the pipeline table. Filters combine with AND across
dimensions and OR within one; a search term of initial consonants
(chosung) matches by initial-sound reduction. Selections are remembered
between runs.`,
		RunE: runDealsList,
	}

	cmd.Flags().StringSlice("stage", nil, "filter by stage (code, label, or historical alias; repeatable)")
	cmd.Flags().StringSlice("assignee", nil, "filter by assignee (honorifics ignored; repeatable)")
	cmd.Flags().StringSlice("amount", nil, "filter by amount bucket (repeatable)")
	cmd.Flags().StringSlice("needs", nil, "filter by needs tag (repeatable)")
	cmd.Flags().StringSlice("company", nil, "filter by company name (repeatable)")
	cmd.Flags().String("search", "", "search term (chosung or substring)")
	cmd.Flags().String("sort", "", "sort column (name, company, assignee, stage, amount, nextContactDate, ...)")
	cmd.Flags().Bool("desc", false, "sort descending")
	cmd.Flags().StringSlice("header-color", nil, `header color as "column=color", e.g. name=#ffaa00 (repeatable)`)
	cmd.Flags().Bool("no-prefs", false, "ignore saved filter and sort preferences")

	return cmd
}

func runDealsList(cmd *cobra.Command, _ []string) error {
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

	var pref *prefs.Store
	if noPrefs, _ := cmd.Flags().GetBool("no-prefs"); !noPrefs {
		if p, prefErr := openPrefs(); prefErr != nil {
			slog.Warn("failed to open preferences", "error", prefErr)
		} else {
			pref = p
			defer func() { _ = pref.Close() }()
		}
	}
	criteria, spec, headerColors := listOptions(cmd, pref)

	records = view.Filter(records, criteria)
	if spec.Column != "" {
		records = view.Sort(records, spec)
	} else {
		records = view.DefaultSort(records, view.ByNextContact)
	}

	if len(records) == 0 {
		fmt.Println(cli.SubtleStyle.Render("No records match."))
		return nil
	}

	renderDealTable(records, headerColors)
	return nil
}

// listOptions merges flags with saved preferences: explicit flags win
// and are saved back for the next run. A nil store skips both sides.
func listOptions(cmd *cobra.Command, pref *prefs.Store) (view.Criteria, view.SortSpec, map[string]string) {
	var criteria view.Criteria
	var spec view.SortSpec

	criteria.Stages, _ = cmd.Flags().GetStringSlice("stage")
	criteria.Assignees, _ = cmd.Flags().GetStringSlice("assignee")
	criteria.AmountBuckets, _ = cmd.Flags().GetStringSlice("amount")
	criteria.NeedsTags, _ = cmd.Flags().GetStringSlice("needs")
	criteria.Companies, _ = cmd.Flags().GetStringSlice("company")
	criteria.Search, _ = cmd.Flags().GetString("search")
	spec.Column, _ = cmd.Flags().GetString("sort")
	if desc, _ := cmd.Flags().GetBool("desc"); desc {
		spec.Direction = view.Desc
	}

	headerColors := make(map[string]string)
	pairs, _ := cmd.Flags().GetStringSlice("header-color")
	for _, pair := range pairs {
		if column, color, ok := strings.Cut(pair, "="); ok {
			headerColors[strings.TrimSpace(column)] = strings.TrimSpace(color)
		}
	}

	if pref == nil {
		return criteria, spec, headerColors
	}

	mergeSlice := func(flag, key string, dst *[]string) {
		if cmd.Flags().Changed(flag) {
			_ = pref.Set(key, *dst)
		} else {
			pref.Get(key, dst)
		}
	}
	mergeSlice("stage", prefs.KeyFilterStages, &criteria.Stages)
	mergeSlice("assignee", prefs.KeyFilterOwners, &criteria.Assignees)
	mergeSlice("amount", prefs.KeyFilterAmounts, &criteria.AmountBuckets)
	mergeSlice("needs", prefs.KeyFilterNeeds, &criteria.NeedsTags)
	mergeSlice("company", prefs.KeyFilterCompanies, &criteria.Companies)

	if cmd.Flags().Changed("search") {
		_ = pref.Set(prefs.KeyFilterSearch, criteria.Search)
	} else {
		pref.Get(prefs.KeyFilterSearch, &criteria.Search)
	}
	if cmd.Flags().Changed("sort") {
		_ = pref.Set(prefs.KeySortColumn, spec.Column)
		_ = pref.Set(prefs.KeySortDesc, spec.Direction == view.Desc)
	} else {
		pref.Get(prefs.KeySortColumn, &spec.Column)
		var desc bool
		if pref.Get(prefs.KeySortDesc, &desc) && desc {
			spec.Direction = view.Desc
		}
	}
	if cmd.Flags().Changed("header-color") {
		_ = pref.Set(prefs.KeyHeaderColors, headerColors)
	} else {
		pref.Get(prefs.KeyHeaderColors, &headerColors)
	}

	return criteria, spec, headerColors
}

func renderDealTable(records []view.Record, headerColors map[string]string) {
	fmt.Println(cli.TitleStyle.Render("파이프라인"))

	w := tabwriter.NewWriter(os.Stdout, 0, 0, 2, ' ', 0)
	defer func() {
		if flushErr := w.Flush(); flushErr != nil {
			slog.Error("failed to flush table writer", "error", flushErr)
		}
	}()

	header := func(column, label string) string {
		return headerStyle(headerColors, column).Render(label)
	}
	fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
		cli.BoldStyle.Render("ID"),
		header(view.ColName, "이름"),
		header(view.ColCompany, "회사"),
		header(view.ColStage, "단계"),
		header(view.ColAssignee, "담당"),
		header(view.ColNextContact, "다음 컨택"),
		header(view.ColAmount, "금액"))

	for _, r := range records {
		next := r.NextContactDate
		if normalize.Overdue(next) {
			next = cli.ErrorStyle.Render(next)
		}
		fmt.Fprintf(w, "%s\t%s\t%s\t%s\t%s\t%s\t%s\n",
			shortID(r.ID),
			r.Name,
			r.Company,
			cli.StageStyle(r.Stage).Render(stage.Label(r.Stage)),
			normalize.Name(r.AssignedTo),
			next,
			view.Bucket(r.AmountRange))
	}
}

// headerStyle applies a saved per-column color on top of the bold
// header style.
func headerStyle(colors map[string]string, column string) lipgloss.Style {
	if color, ok := colors[column]; ok && color != "" {
		return cli.BoldStyle.Foreground(lipgloss.Color(color))
	}
	return cli.BoldStyle
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}

func dealsAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <name>",
		Short: "Create a pipeline record",
		Args:  cobra.ExactArgs(1),
		RunE:  runDealsAdd,
	}

	cmd.Flags().String("company", "", "company name (created if missing)")
	cmd.Flags().String("stage", string(stage.S0), "initial stage")
	cmd.Flags().String("assignee", "", "assigned salesperson")
	cmd.Flags().String("first-contact", "", "first contact date (YYYY-MM-DD)")
	cmd.Flags().String("next-contact", "", "next contact date (YYYY-MM-DD)")
	cmd.Flags().String("amount", "", "amount bucket or free-typed amount")
	cmd.Flags().String("needs", "", "comma-joined needs tags")

	return cmd
}

func runDealsAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	company, _ := cmd.Flags().GetString("company")
	account, err := resolveAccount(ctx, store, company, true)
	if err != nil {
		return fmt.Errorf("failed to resolve account: %w", err)
	}

	deal := &model.Deal{Name: args[0]}
	deal.Stage, _ = cmd.Flags().GetString("stage")
	deal.AssignedTo, _ = cmd.Flags().GetString("assignee")
	deal.FirstContactDate, _ = cmd.Flags().GetString("first-contact")
	deal.NextContactDate, _ = cmd.Flags().GetString("next-contact")
	deal.AmountRange, _ = cmd.Flags().GetString("amount")
	deal.NeedsSummary, _ = cmd.Flags().GetString("needs")
	if account != nil {
		deal.AccountID = account.ID
	}
	if deal.FirstContactDate == "" {
		deal.FirstContactDate = normalize.FormatDate(normalize.Today())
	}

	if err := store.CreateDeal(ctx, deal); err != nil {
		return fmt.Errorf("failed to create deal: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Created %s (%s)", deal.Name, shortID(deal.ID))))
	return nil
}

func dealsShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show <id>",
		Short: "Show one record with its activity log and quotations",
		Args:  cobra.ExactArgs(1),
		RunE:  runDealsShow,
	}
}

func runDealsShow(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	deal, err := store.GetDeal(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Println(cli.TitleStyle.Render(deal.Name))
	fmt.Printf("단계:      %s\n", cli.StageStyle(deal.Stage).Render(stage.Label(deal.Stage)))
	fmt.Printf("담당:      %s\n", normalize.Name(deal.AssignedTo))
	fmt.Printf("최초 컨택: %s\n", deal.FirstContactDate)
	fmt.Printf("다음 컨택: %s\n", deal.NextContactDate)
	fmt.Printf("금액:      %s\n", view.Bucket(deal.AmountRange))
	if len(deal.NeedsTags()) > 0 {
		fmt.Printf("니즈:      %s\n", strings.Join(deal.NeedsTags(), ", "))
	}
	if deal.CloseReason != "" {
		fmt.Printf("사유:      %s\n", deal.CloseReason)
	}

	if deal.AccountID != "" {
		account, err := store.GetAccount(ctx, deal.AccountID)
		if err == nil {
			fmt.Printf("회사:      %s\n", account.Name)
		}
	}

	activities, err := store.GetActivitiesByDeal(ctx, deal.ID)
	if err != nil {
		return fmt.Errorf("failed to load activities: %w", err)
	}
	if len(activities) > 0 {
		fmt.Println()
		fmt.Println(cli.TitleStyle.Render("활동 이력"))
		for _, a := range activities {
			fmt.Printf("%s  [%s] %s\n", a.Date, a.Type, a.Content)
			for _, att := range a.Attachments {
				fmt.Printf("    %s\n", cli.SubtleStyle.Render(att.Name+" — "+att.URL))
			}
		}
	}

	return nil
}

func dealsUpdateCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "update <id>",
		Short: "Patch record fields",
		Long: `Update individual fields. Only the flags you pass are written;
stage changes must go through 'dealflow deals stage'.`,
		Args: cobra.ExactArgs(1),
		RunE: runDealsUpdate,
	}

	cmd.Flags().String("name", "", "record name")
	cmd.Flags().String("assignee", "", "assigned salesperson")
	cmd.Flags().String("first-contact", "", "first contact date")
	cmd.Flags().String("next-contact", "", "next contact date")
	cmd.Flags().String("amount", "", "amount bucket or free-typed amount")
	cmd.Flags().String("needs", "", "comma-joined needs tags")
	cmd.Flags().String("priority", "", "priority")
	cmd.Flags().String("grade", "", "grade")

	return cmd
}

func runDealsUpdate(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	var patch service.DealPatch
	flagPatch := func(flag string, dst **string) {
		if cmd.Flags().Changed(flag) {
			v, _ := cmd.Flags().GetString(flag)
			*dst = &v
		}
	}
	flagPatch("name", &patch.Name)
	flagPatch("assignee", &patch.AssignedTo)
	flagPatch("first-contact", &patch.FirstContactDate)
	flagPatch("next-contact", &patch.NextContactDate)
	flagPatch("amount", &patch.AmountRange)
	flagPatch("needs", &patch.NeedsSummary)
	flagPatch("priority", &patch.Priority)
	flagPatch("grade", &patch.Grade)

	if err := store.PatchDeal(ctx, args[0], patch); err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render("Updated."))
	return nil
}

func dealsStageCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "stage <id> <stage>",
		Short: "Move a record to another stage",
		Long: `Change a record's stage. Moving to the closed or recontact stage
requires --reason; completing or closing clears the next contact date.`,
		Args: cobra.ExactArgs(2),
		RunE: runDealsStage,
	}

	cmd.Flags().String("reason", "", "close or recontact reason")
	return cmd
}

func runDealsStage(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	reason, _ := cmd.Flags().GetString("reason")
	if err := store.ChangeStage(ctx, args[0], args[1], reason); err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Moved to %s", stage.Label(args[1]))))
	return nil
}

func dealsDeleteCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "delete <id>",
		Short: "Delete a record, its activities, and their attachments",
		Long: `Delete a record. Attachment blobs are removed first, then the
activity rows, then the record itself; each step is independent, so a
failure partway leaves the earlier deletions in place. With
--with-account the company is removed too when no other record
references it.`,
		Args: cobra.ExactArgs(1),
		RunE: runDealsDelete,
	}

	cmd.Flags().Bool("with-account", false, "also delete the company when this was its last record")
	return cmd
}

func runDealsDelete(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	// Blobs go first: once rows are gone there is no way to find them.
	if err := removeAttachmentBlobs(cmd, store, args[0]); err != nil {
		slog.Warn("failed to remove attachment blobs", "error", err)
	}

	withAccount, _ := cmd.Flags().GetBool("with-account")
	opts := service.DeleteDealOptions{DeleteAccount: withAccount}
	if err := store.DeleteDeal(ctx, args[0], opts); err != nil {
		return err
	}

	fmt.Println(cli.SuccessStyle.Render("Deleted."))
	return nil
}

func removeAttachmentBlobs(cmd *cobra.Command, store service.Storage, dealID string) error {
	ctx := cmd.Context()

	activities, err := store.GetActivitiesByDeal(ctx, dealID)
	if err != nil {
		return err
	}

	var paths []string
	blobStore, err := initBlobStore()
	if err != nil {
		return err
	}
	for _, a := range activities {
		for _, att := range a.Attachments {
			if p := blobStore.PathFromURL(att.URL); p != "" {
				paths = append(paths, p)
			}
		}
	}
	if len(paths) == 0 {
		return nil
	}
	return blobStore.Remove(ctx, blob.AttachmentBucket, paths)
}

func closeStorage(store service.Storage) {
	if err := store.Close(); err != nil {
		slog.Error("failed to close storage", "error", err)
	}
}
