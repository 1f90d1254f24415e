package main

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/registry"
)

var flagResetHistory bool

var resetCmd = &cobra.Command{
	Use:   "reset <mode>",
	Short: "Reset a mode's progress",
	Long: `Reset the level and XP of a mode back to level 1.
Coins are shared by every mode and are reset as well.

Examples:
  numbolt reset number
  numbolt reset sequence --history   # also delete the round history`,
	Args: cobra.ExactArgs(1),
	Run:  runReset,
}

func init() {
	resetCmd.Flags().BoolVar(&flagResetHistory, "history", false, "Also delete the mode's round history")
}

func runReset(_ *cobra.Command, args []string) {
	mode, err := registry.Get(args[0])
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		fmt.Fprintln(os.Stderr, "Run 'numbolt list' to see available modes.")
		os.Exit(1)
	}

	store := openStoreOrExit()
	defer store.Close()

	ctx := context.Background()
	deps := newDeps(store, newLogger(false))
	eng := deps.Engine(ctx, mode, core.RuntimeConfig{Seed: flagSeed, Profile: flagProfile})
	if err := eng.Reset(ctx); err != nil {
		fmt.Fprintf(os.Stderr, "Error resetting progress: %v\n", err)
		store.Close()
		os.Exit(1)
	}

	if flagResetHistory {
		if err := store.ClearRounds(ctx, flagProfile, mode.ID); err != nil {
			fmt.Fprintf(os.Stderr, "Error clearing history: %v\n", err)
			store.Close()
			os.Exit(1)
		}
	}

	fmt.Printf("Reset %s for profile %s.\n", mode.Title, flagProfile)
}
