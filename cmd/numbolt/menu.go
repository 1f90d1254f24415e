package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numbolt/internal/platform/tui"
)

var menuCmd = &cobra.Command{
	Use:   "menu",
	Short: "Start numbolt on the home screen",
	Long: `Start numbolt in interactive menu mode.

The home screen shows your coins and the level of every mode.
After leaving a mode you return to the menu.

Controls:
  Up/Down/j/k  - Navigate menu
  Enter/Space  - Play the selected mode
  Tab/P        - Progress board
  Q            - Quit

Examples:
  numbolt menu
  numbolt menu --profile alice
  numbolt menu --db ./progress.db`,
	Run: runMenu,
}

func runMenu(_ *cobra.Command, _ []string) {
	store := openStoreOrWarn()
	logger := newLogger(true)

	runErr := tui.RunSession(newDeps(store, logger), terminalConfig())

	if store != nil {
		store.Close()
	}

	if runErr != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", runErr)
		os.Exit(1)
	}
}
