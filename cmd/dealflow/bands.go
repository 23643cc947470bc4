package main

import (
	"fmt"
	"strconv"

	"github.com/spf13/cobra"

	"github.com/karyhub/dealflow/internal/cli"
	"github.com/karyhub/dealflow/internal/report"
	"github.com/karyhub/dealflow/internal/stage"
)

func bandsCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "bands",
		Short: "Configure per-stage rate bands",
		Long: `Each stage has an acceptable [min,max] share of the pipeline, in
percent. Stats compares actual rates against these bands; boundaries
are inclusive.`,
	}

	cmd.AddCommand(bandsListCmd())
	cmd.AddCommand(bandsSetCmd())
	return cmd
}

func bandsListCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "list",
		Short: "Show the configured bands",
		RunE: func(cmd *cobra.Command, _ []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			bands, err := store.GetStageBands(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to load bands: %w", err)
			}

			defaults := report.DefaultBands()
			fmt.Println(cli.TitleStyle.Render("단계별 적정 비율"))
			for _, code := range stage.Codes() {
				info, _ := stage.Lookup(code)
				band := bands[code]
				note := ""
				if band != defaults[code] {
					note = cli.WarningStyle.Render(" (override)")
				}
				fmt.Printf("%-4s %-8s %5.1f%% ~ %5.1f%%%s\n", code, info.Label, band.Min, band.Max, note)
			}
			return nil
		},
	}
}

func bandsSetCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "set <stage> <min> <max>",
		Short: "Override one stage's band",
		Args:  cobra.ExactArgs(3),
		RunE: func(cmd *cobra.Command, args []string) error {
			store, err := initStorage(cmd.Context())
			if err != nil {
				return fmt.Errorf("failed to initialize storage: %w", err)
			}
			defer closeStorage(store)

			code, ok := stage.Canonical(args[0])
			if !ok {
				return fmt.Errorf("unknown stage %q", args[0])
			}
			minV, err := strconv.ParseFloat(args[1], 64)
			if err != nil {
				return fmt.Errorf("invalid min %q", args[1])
			}
			maxV, err := strconv.ParseFloat(args[2], 64)
			if err != nil {
				return fmt.Errorf("invalid max %q", args[2])
			}

			band := report.Band{Min: minV, Max: maxV}
			if err := store.SetStageBand(cmd.Context(), code, band); err != nil {
				return err
			}

			fmt.Println(cli.SuccessStyle.Render(fmt.Sprintf("Band for %s set to [%.1f, %.1f].", code, minV, maxV)))
			return nil
		},
	}
}
