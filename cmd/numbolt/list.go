package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"github.com/vovakirdan/numbolt/internal/registry"
)

var listCmd = &cobra.Command{
	Use:   "list",
	Short: "List all puzzle modes",
	Long:  `Shows a list of all puzzle modes Bolt knows.`,
	Run:   runList,
}

func runList(_ *cobra.Command, _ []string) {
	modes := registry.List()

	if len(modes) == 0 {
		fmt.Println("No modes available.")
		return
	}

	fmt.Println("Available modes:")
	fmt.Println()

	maxIDLen := 2 // "ID" header
	for _, m := range modes {
		if len(m.ID) > maxIDLen {
			maxIDLen = len(m.ID)
		}
	}

	fmt.Printf("  %-*s  %s\n", maxIDLen, "ID", "Title")
	fmt.Printf("  %-*s  %s\n", maxIDLen, "--", "-----")

	for _, m := range modes {
		fmt.Printf("  %-*s  %s\n", maxIDLen, m.ID, m.Title)
	}

	fmt.Println()
	fmt.Println("Run 'numbolt play <id>' to play a mode.")
}
