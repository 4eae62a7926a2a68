package main

import (
	"fmt"
	"time"

	"github.com/spf13/cobra"

	"dotsync/internal/history"
)

func newRunsCommand(ctx *commandContext) *cobra.Command {
	var limit int

	cmd := &cobra.Command{
		Use:   "runs",
		Short: "Show recent sync runs",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			store, err := history.Open(cfg)
			if err != nil {
				return err
			}
			defer store.Close()

			runs, err := store.RecentRuns(cmd.Context(), limit)
			if err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			if len(runs) == 0 {
				fmt.Fprintln(out, "No runs recorded yet")
				return nil
			}

			rows := make([][]string, 0, len(runs))
			for _, run := range runs {
				mode := "sync"
				if run.DryRun {
					mode = "dry-run"
				}
				rows = append(rows, []string{
					run.StartedAt.Local().Format("2006-01-02 15:04"),
					run.FinishedAt.Sub(run.StartedAt).Round(time.Second).String(),
					mode,
					fmt.Sprintf("%d", run.Created),
					fmt.Sprintf("%d", run.Updated),
					fmt.Sprintf("%d", run.Unchanged),
					fmt.Sprintf("%d", run.Errors),
					fmt.Sprintf("%d", run.Untracked),
					fmt.Sprintf("%.1f%%", run.CoveragePercent),
				})
			}

			fmt.Fprintln(out, renderTable(out,
				[]string{"Started", "Duration", "Mode", "Created", "Updated", "Unchanged", "Errors", "Untracked", "Coverage"},
				rows,
				[]columnAlignment{alignLeft, alignRight, alignLeft, alignRight, alignRight, alignRight, alignRight, alignRight, alignRight}))
			return nil
		},
	}

	cmd.Flags().IntVar(&limit, "limit", 20, "Maximum number of runs to show")
	return cmd
}
