// numbolt is a number-puzzle game with a clever robot named Bolt.
//
// Usage:
//
//	numbolt list              - List puzzle modes
//	numbolt play <mode>       - Play a mode
//	numbolt menu              - Home screen with coins, modes and progress
//	numbolt progress [mode]   - Show progress, stats and recent rounds
//	numbolt reset <mode>      - Reset a mode's progress
//	numbolt serve             - Serve over SSH and/or HTTP
//
// Global flags:
//
//	--seed <value>       - Set RNG seed for reproducible puzzles
//	--db <path>          - Set database path (default: ~/.numbolt/progress.db)
//	--config <path>      - Tuning YAML (default search: ~/.numbolt, ./configs, embedded)
//	--profile <name>     - Progress profile (default: local)
//	--log-level <level>  - debug, info, warn or error
package main

import (
	"fmt"
	"io"
	"os"
	"path/filepath"

	"github.com/charmbracelet/log"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
	"golang.org/x/term"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/platform/tui"
	"github.com/vovakirdan/numbolt/internal/storage"

	// Import modes to register them
	_ "github.com/vovakirdan/numbolt/internal/modes/equation"
	_ "github.com/vovakirdan/numbolt/internal/modes/number"
	_ "github.com/vovakirdan/numbolt/internal/modes/sequence"
)

const defaultDBPath = "~/.numbolt/progress.db"

var (
	// Global flags
	flagSeed     int64
	flagDBPath   string
	flagConfig   string
	flagProfile  string
	flagLogLevel string
)

func main() {
	// A missing .env is fine
	_ = godotenv.Load()

	if err := rootCmd.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, err)
		os.Exit(1)
	}
}

var rootCmd = &cobra.Command{
	Use:   "numbolt",
	Short: "Bolt's number puzzles in your terminal",
	Long: `numbolt is a number-puzzle game. A clever robot named Bolt thinks of
a number, a sequence or an equation and you have three attempts to solve it.
Solving earns coins and XP; every 5000 XP is a new level with harder puzzles.

Available commands:
  list      - Show all puzzle modes
  play      - Play a specific mode directly
  menu      - Home screen with coins, mode picker and progress board
  progress  - Print progress, stats and recent rounds
  reset     - Reset a mode's progress
  serve     - Serve the game over SSH and/or a JSON HTTP API

Environment (also read from .env):
  NUMBOLT_DB, NUMBOLT_PROFILE, NUMBOLT_LOG_LEVEL provide flag defaults.

Examples:
  numbolt list
  numbolt play sequence
  numbolt menu --profile alice
  numbolt serve --ssh :23234 --http :8080
  numbolt progress number`,
	PersistentPreRun: applyEnvDefaults,
}

func init() {
	rootCmd.PersistentFlags().Int64Var(&flagSeed, "seed", 0, "RNG seed (0 = random based on time)")
	rootCmd.PersistentFlags().StringVar(&flagDBPath, "db", defaultDBPath, "Path to progress database")
	rootCmd.PersistentFlags().StringVar(&flagConfig, "config", "", "Path to tuning YAML")
	rootCmd.PersistentFlags().StringVar(&flagProfile, "profile", core.DefaultProfile, "Progress profile")
	rootCmd.PersistentFlags().StringVar(&flagLogLevel, "log-level", "info", "Log level: debug, info, warn, error")

	rootCmd.AddCommand(listCmd)
	rootCmd.AddCommand(playCmd)
	rootCmd.AddCommand(menuCmd)
	rootCmd.AddCommand(progressCmd)
	rootCmd.AddCommand(resetCmd)
	rootCmd.AddCommand(serveCmd)
}

// applyEnvDefaults fills flags the user did not set from the environment.
func applyEnvDefaults(cmd *cobra.Command, _ []string) {
	for _, f := range []struct {
		flag   string
		env    string
		target *string
	}{
		{"db", "NUMBOLT_DB", &flagDBPath},
		{"profile", "NUMBOLT_PROFILE", &flagProfile},
		{"log-level", "NUMBOLT_LOG_LEVEL", &flagLogLevel},
	} {
		if cmd.Flags().Changed(f.flag) {
			continue
		}
		if v := os.Getenv(f.env); v != "" {
			*f.target = v
		}
	}
	flagProfile = core.NormalizeProfile(flagProfile)
}

// newLogger builds the process logger. Terminal UIs log to a file so the
// alt screen stays clean.
func newLogger(toFile bool) *log.Logger {
	var w io.Writer = os.Stderr
	if toFile {
		w = io.Discard
		if home, err := os.UserHomeDir(); err == nil {
			dir := filepath.Join(home, ".numbolt")
			if err := os.MkdirAll(dir, 0o755); err == nil {
				f, err := os.OpenFile(filepath.Join(dir, "numbolt.log"), os.O_CREATE|os.O_WRONLY|os.O_APPEND, 0o600)
				if err == nil {
					w = f
				}
			}
		}
	}

	logger := log.NewWithOptions(w, log.Options{
		ReportTimestamp: true,
		Prefix:          "numbolt",
	})
	level, err := log.ParseLevel(flagLogLevel)
	if err != nil {
		logger.Warn("unknown log level, using info", "level", flagLogLevel)
		level = log.InfoLevel
	}
	logger.SetLevel(level)
	return logger
}

// loadConfig loads the tuning file or exits.
func loadConfig() config.Config {
	cfg, err := config.Load(flagConfig)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
	if err := cfg.Validate(); err != nil {
		fmt.Fprintf(os.Stderr, "Error: invalid config: %v\n", err)
		os.Exit(1)
	}
	return cfg
}

// openStoreOrWarn opens the progress database. On failure it warns and
// returns nil; callers continue with in-memory progress.
func openStoreOrWarn() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Warning: could not open progress database: %v\n", err)
		fmt.Fprintln(os.Stderr, "Progress will not be saved this session.")
		return nil
	}
	return store
}

// openStoreOrExit opens the progress database or exits.
func openStoreOrExit() *storage.Store {
	store, err := storage.Open(flagDBPath)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error opening progress database: %v\n", err)
		os.Exit(1)
	}
	return store
}

// terminalConfig returns the runtime config for the local terminal.
func terminalConfig() core.RuntimeConfig {
	cfg := core.DefaultConfig()
	if w, h, err := term.GetSize(int(os.Stdout.Fd())); err == nil {
		cfg.ScreenW = w
		cfg.ScreenH = h
	}
	cfg.Seed = flagSeed
	cfg.Profile = flagProfile
	return cfg
}

// newDeps wires the shared collaborators for the terminal UI.
func newDeps(store *storage.Store, logger *log.Logger) *tui.Deps {
	return tui.NewDeps(store, loadConfig(), logger)
}
