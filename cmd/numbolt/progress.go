package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numbolt/internal/progress"
	"github.com/vovakirdan/numbolt/internal/registry"
	"github.com/vovakirdan/numbolt/internal/storage"
)

var flagRecent int

var progressCmd = &cobra.Command{
	Use:   "progress [mode]",
	Short: "Show progress, stats and recent rounds",
	Long: `Display level, XP and coins for every mode (or one mode),
followed by round statistics and the most recent rounds.

Examples:
  numbolt progress
  numbolt progress sequence
  numbolt progress --profile alice --recent 20`,
	Args: cobra.MaximumNArgs(1),
	Run:  runProgress,
}

func init() {
	progressCmd.Flags().IntVar(&flagRecent, "recent", 10, "Number of recent rounds to show")
}

func runProgress(_ *cobra.Command, args []string) {
	modes := registry.List()
	modeFilter := ""
	if len(args) == 1 {
		modeFilter = args[0]
		if !registry.Exists(modeFilter) {
			fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeFilter)
			fmt.Fprintln(os.Stderr, "Run 'numbolt list' to see available modes.")
			os.Exit(1)
		}
	}

	store := openStoreOrExit()
	defer store.Close()

	ctx := context.Background()
	cfg := loadConfig()
	repo := progress.NewRepository(store.Profile(flagProfile), newLogger(false)).WithThreshold(cfg.Progress.XPThreshold)

	stats, err := store.AllModeStats(ctx, flagProfile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving stats: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Printf("Progress - %s\n\n", flagProfile)
	fmt.Printf("  %-18s  %5s  %11s  %6s  %5s  %8s\n", "Mode", "Level", "XP", "Rounds", "Won", "1st try")
	fmt.Printf("  %-18s  %5s  %11s  %6s  %5s  %8s\n", "----", "-----", "--", "------", "---", "-------")

	coins := 0
	for _, info := range modes {
		if modeFilter != "" && info.ID != modeFilter {
			continue
		}
		mode, err := registry.Get(info.ID)
		if err != nil {
			continue
		}
		p := repo.Load(ctx, mode.StorageName)
		coins = p.Coins

		st := stats[info.ID]
		if st == nil {
			st = &storage.ModeStats{Mode: info.ID}
		}
		fmt.Printf("  %-18s  %5d  %5d/%-5d  %6d  %5d  %8d\n",
			info.Title, p.Level, p.XP, cfg.Progress.XPThreshold, st.Rounds, st.Wins, st.FirstTryWins)
	}
	fmt.Printf("\n  Coins: %d\n", coins)

	rounds, err := store.RecentRounds(ctx, flagProfile, modeFilter, flagRecent)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error retrieving rounds: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	fmt.Println()
	if len(rounds) == 0 {
		fmt.Println("No rounds recorded yet. Play a round to start your history!")
		return
	}

	fmt.Println("Recent rounds:")
	fmt.Println()
	fmt.Printf("  %-16s  %-10s  %5s  %-6s  %5s  %6s\n", "When", "Mode", "Level", "Result", "Tries", "Coins")
	fmt.Printf("  %-16s  %-10s  %5s  %-6s  %5s  %6s\n", "----", "----", "-----", "------", "-----", "-----")
	for _, r := range rounds {
		fmt.Printf("  %-16s  %-10s  %5d  %-6s  %5d  %6d\n",
			r.CreatedAt.Format("2006-01-02 15:04"), r.Mode, r.Level, r.Outcome, r.Attempts, r.Coins)
	}
}
