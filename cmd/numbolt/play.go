package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numbolt/internal/platform/tui"
	"github.com/vovakirdan/numbolt/internal/registry"
)

var playCmd = &cobra.Command{
	Use:   "play <mode>",
	Short: "Play a puzzle mode",
	Long: `Start playing the specified mode.

Controls:
  0-9, -     - Type your guess (minus only in equations)
  Backspace  - Delete
  Enter      - Submit guess / next round
  H          - Hint (Guess the Number only)
  Esc        - Leave
  Q/Ctrl+C   - Quit

Examples:
  numbolt play number
  numbolt play sequence --seed 7
  numbolt play equation --config ./my-numbolt.yaml`,
	Args: cobra.ExactArgs(1),
	Run:  runPlay,
}

func runPlay(_ *cobra.Command, args []string) {
	modeID := args[0]

	if !registry.Exists(modeID) {
		fmt.Fprintf(os.Stderr, "Error: unknown mode %q\n", modeID)
		fmt.Fprintln(os.Stderr, "Run 'numbolt list' to see available modes.")
		os.Exit(1)
	}

	store := openStoreOrWarn()
	logger := newLogger(true)
	deps := newDeps(store, logger)

	runErr := tui.RunPlay(deps, terminalConfig(), modeID)

	// Close store before potential exit
	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error running game: %v\n", runErr)
		os.Exit(1)
	}
}
