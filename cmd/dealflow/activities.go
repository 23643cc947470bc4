package main

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/karyhub/dealflow/internal/blob"
	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/model"
	"github.com/karyhub/dealflow/internal/normalize"
)

func activitiesCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "activities",
		Short: "Manage deal activity logs",
	}

	cmd.AddCommand(activitiesAddCmd())
	cmd.AddCommand(activitiesDeleteCmd())
	return cmd
}

func activitiesAddCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "add <deal-id> <content>",
		Short: "Log an activity on a deal",
		Args:  cobra.ExactArgs(2),
		RunE:  runActivitiesAdd,
	}

	cmd.Flags().String("type", string(model.ActivityNote), "activity type (call, meeting, email, text, visit, note)")
	cmd.Flags().String("date", "", "activity date (YYYY-MM-DD, default today)")
	cmd.Flags().String("assignee", "", "who performed it")
	cmd.Flags().StringSlice("attach", nil, "file to attach (repeatable)")
	cmd.Flags().String("quotation", "", "linked quotation ID")

	return cmd
}

func runActivitiesAdd(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()

	store, err := initStorage(ctx)
	if err != nil {
		return fmt.Errorf("failed to initialize storage: %w", err)
	}
	defer closeStorage(store)

	activity := &model.Activity{DealID: args[0], Content: args[1]}
	typ, _ := cmd.Flags().GetString("type")
	activity.Type = model.ActivityType(typ)
	activity.Date, _ = cmd.Flags().GetString("date")
	activity.AssignedTo, _ = cmd.Flags().GetString("assignee")
	activity.QuotationID, _ = cmd.Flags().GetString("quotation")
	if activity.Date == "" {
		activity.Date = normalize.FormatDate(normalize.Today())
	}

	files, _ := cmd.Flags().GetStringSlice("attach")
	if len(files) > 0 {
		blobStore, err := initBlobStore()
		if err != nil {
			return fmt.Errorf("failed to open blob store: %w", err)
		}
		for _, file := range files {
			data, err := os.ReadFile(file) // #nosec G304
			if err != nil {
				return fmt.Errorf("failed to read attachment %s: %w", file, err)
			}

			path := blob.AttachmentPath(args[0], filepath.Base(file))
			if err := blobStore.Upload(ctx, blob.AttachmentBucket, path, data); err != nil {
				return fmt.Errorf("failed to upload attachment: %w", err)
			}
			activity.Attachments = append(activity.Attachments, model.Attachment{
				URL:  blobStore.PublicURL(blob.AttachmentBucket, path),
				Name: filepath.Base(file),
			})
		}
	}

	if err := store.CreateActivity(ctx, activity); err != nil {
		return fmt.Errorf("failed to create activity: %w", err)
	}

	// The deal's last-activity field tracks its newest log entry.
	patch := patchLastActivity(activity.Date)
	if err := store.PatchDeal(ctx, args[0], patch); err != nil {
		return fmt.Errorf("failed to update deal: %w", err)
	}

	fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Logged %s activity (%d attachments)",
		activity.Type, len(activity.Attachments))))
	return nil
}

func activitiesDeleteCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "delete <activity-id>",
		Short: "Remove one activity entry",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			if err := store.DeleteActivity(cmd.Context(), args[0]); err != nil {
				return err
			}
			fmt.Println(cli.SuccessStyle.Render("Deleted."))
			return nil
		},
	}
}
