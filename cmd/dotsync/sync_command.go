package main

import (
	"context"
	"fmt"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"github.com/gofrs/flock"
	"github.com/google/uuid"
	"github.com/spf13/cobra"

	"dotsync/internal/connectdots"
	"dotsync/internal/dataset"
	"dotsync/internal/history"
	"dotsync/internal/logging"
	"dotsync/internal/notecache"
)

func newSyncCommand(ctx *commandContext) *cobra.Command {
	var dryRun bool
	var skipReschedule bool

	cmd := &cobra.Command{
		Use:   "sync",
		Short: "Generate association records and reconcile them against Anki",
		RunE: func(cmd *cobra.Command, args []string) error {
			cfg, err := ctx.ensureConfig()
			if err != nil {
				return err
			}
			logger, err := ctx.newLogger()
			if err != nil {
				return err
			}

			lock := flock.New(filepath.Join(cfg.Paths.StateDir, "dotsync.lock"))
			locked, err := lock.TryLock()
			if err != nil {
				return fmt.Errorf("acquire lock: %w", err)
			}
			if !locked {
				return fmt.Errorf("another sync is already running (lock at %s)", lock.Path())
			}
			defer func() { _ = lock.Unlock() }()

			client, err := ctx.newClient(logger)
			if err != nil {
				return err
			}
			cache := notecache.New(client, logger)

			runCtx := cmd.Context()
			store, err := dataset.Load(runCtx, cache, cfg.Fields.RightCandidates, logger)
			if err != nil {
				return err
			}

			generators, err := buildGenerators(cfg, store, cache)
			if err != nil {
				return err
			}
			if len(generators) == 0 {
				return fmt.Errorf("no generators configured")
			}

			engine := connectdots.NewEngine(client, connectdots.Options{
				Deck:            cfg.Anki.Deck,
				NoteType:        cfg.Anki.NoteType,
				MaxItemsPerNote: cfg.Sync.MaxItemsPerNote,
				DryRun:          dryRun,
				SkipReschedule:  skipReschedule,
			}, logger)

			started := time.Now()
			result, err := engine.Run(runCtx, generators)
			if err != nil {
				return err
			}
			finished := time.Now()

			coverage := connectdots.CalculateCoverage(result.RecordsByType, store.AllTraditionalChars())

			if histErr := recordRun(ctx, dryRun, started, finished, result, coverage); histErr != nil {
				logger.Warn("recording run history failed", logging.Error(histErr))
			}

			printSummary(cmd, dryRun, result, coverage, store)
			return nil
		},
	}

	cmd.Flags().BoolVar(&dryRun, "dry-run", false, "Show what would change without writing to Anki")
	cmd.Flags().BoolVar(&skipReschedule, "skip-reschedule", false, "Leave card due dates alone after updates")
	return cmd
}

func recordRun(ctx *commandContext, dryRun bool, started, finished time.Time, result *connectdots.Result, coverage *connectdots.Coverage) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	store, err := history.Open(cfg)
	if err != nil {
		return err
	}
	defer store.Close()

	return store.RecordRun(context.Background(), history.Run{
		ID:              uuid.NewString(),
		StartedAt:       started,
		FinishedAt:      finished,
		DryRun:          dryRun,
		Created:         result.Stats.Created,
		Updated:         result.Stats.Updated,
		Unchanged:       result.Stats.Unchanged,
		Errors:          result.Stats.Errors,
		Untracked:       result.Stats.Untracked,
		CoveragePercent: coverage.Percentage(),
	})
}

func printSummary(cmd *cobra.Command, dryRun bool, result *connectdots.Result, coverage *connectdots.Coverage, store *dataset.Store) {
	out := cmd.OutOrStdout()

	if dryRun {
		fmt.Fprintln(out, "Dry run: no changes were written.")
	}
	fmt.Fprintf(out, "Created: %d\n", result.Stats.Created)
	fmt.Fprintf(out, "Updated: %d\n", result.Stats.Updated)
	fmt.Fprintf(out, "Unchanged: %d\n", result.Stats.Unchanged)
	fmt.Fprintf(out, "Untracked: %d\n", result.Stats.Untracked)
	fmt.Fprintf(out, "Errors: %d\n", result.Stats.Errors)

	if len(result.Untracked) > 0 {
		fmt.Fprintln(out, "\nUntracked notes (present in Anki, produced by no generator):")
		for _, key := range result.Untracked {
			fmt.Fprintf(out, "  %s\n", key)
		}
	}

	fmt.Fprintf(out, "\nCoverage: %d of %d characters (%.1f%%)\n",
		len(coverage.Covered), coverage.Total, coverage.Percentage())

	types := make([]string, 0, len(coverage.ByType))
	for genType := range coverage.ByType {
		types = append(types, genType)
	}
	sort.Strings(types)
	for _, genType := range types {
		fmt.Fprintf(out, "  %s: %d characters\n", genType, len(coverage.ByType[genType]))
	}

	uncovered := coverage.Uncovered()
	if len(uncovered) == 0 {
		return
	}
	fmt.Fprintf(out, "\nUncovered characters (%d):\n%s\n", len(uncovered), strings.Join(uncovered, ""))

	tagCounts := store.UncoveredTagCounts(coverage.UncoveredSet())
	if len(tagCounts) == 0 {
		return
	}
	limit := min(len(tagCounts), 30)
	rows := make([][]string, 0, limit)
	for i, tc := range tagCounts[:limit] {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			fmt.Sprintf("%d", tc.Uncovered),
			fmt.Sprintf("%d", tc.Total),
			tc.Tag,
		})
	}
	fmt.Fprintln(out, "\nTop prop tags among uncovered characters:")
	fmt.Fprintln(out, renderTable(out,
		[]string{"Rank", "Uncovered", "Total", "Tag"},
		rows,
		[]columnAlignment{alignRight, alignRight, alignRight, alignLeft}))
}
