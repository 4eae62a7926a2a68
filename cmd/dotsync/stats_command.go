package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"dotsync/internal/dataset"
	"dotsync/internal/notecache"
)

func newStatsCommand(ctx *commandContext) *cobra.Command {
	var top int

	statsCmd := &cobra.Command{
		Use:   "stats",
		Short: "Frequency analysis of the Hanzi collection",
	}
	statsCmd.PersistentFlags().IntVar(&top, "top", 50, "Number of top items to show")

	statsCmd.AddCommand(&cobra.Command{
		Use:   "components",
		Short: "Rank sound components by character count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(ctx, cmd, top, "Component", func(store *dataset.Store) dataset.Frequency {
				return store.SoundComponentFrequencies()
			})
		},
	})
	statsCmd.AddCommand(&cobra.Command{
		Use:   "syllables",
		Short: "Rank syllables by character count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(ctx, cmd, top, "Syllable", func(store *dataset.Store) dataset.Frequency {
				return store.SyllableFrequencies()
			})
		},
	})
	statsCmd.AddCommand(&cobra.Command{
		Use:   "phrases",
		Short: "Rank characters by two-character phrase count",
		RunE: func(cmd *cobra.Command, args []string) error {
			return runStats(ctx, cmd, top, "Character", func(store *dataset.Store) dataset.Frequency {
				return store.PhraseCharacterFrequencies()
			})
		},
	})

	return statsCmd
}

func runStats(ctx *commandContext, cmd *cobra.Command, top int, label string, analyze func(*dataset.Store) dataset.Frequency) error {
	cfg, err := ctx.ensureConfig()
	if err != nil {
		return err
	}
	logger, err := ctx.newLogger()
	if err != nil {
		return err
	}
	client, err := ctx.newClient(logger)
	if err != nil {
		return err
	}

	store, err := dataset.Load(cmd.Context(), notecache.New(client, logger), cfg.Fields.RightCandidates, logger)
	if err != nil {
		return err
	}

	freq := analyze(store)
	ranked := freq.Ranked()
	if len(ranked) == 0 {
		fmt.Fprintf(cmd.OutOrStdout(), "No %ss found\n", strings.ToLower(label))
		return nil
	}
	if top > 0 && len(ranked) > top {
		ranked = ranked[:top]
	}

	rows := make([][]string, 0, len(ranked))
	for i, item := range ranked {
		rows = append(rows, []string{
			fmt.Sprintf("%d", i+1),
			item,
			fmt.Sprintf("%d", freq.Counts[item]),
			strings.Join(freq.Examples[item], ", "),
		})
	}

	out := cmd.OutOrStdout()
	fmt.Fprintln(out, renderTable(out,
		[]string{"Rank", label, "Count", "Examples"},
		rows,
		[]columnAlignment{alignRight, alignLeft, alignRight, alignLeft}))

	stats := store.Stats()
	fmt.Fprintf(out, "Analyzed %d items across %d Hanzi and %d TOCFL notes\n",
		freq.Total, stats.HanziNotes, stats.TOCFLNotes)
	return nil
}
