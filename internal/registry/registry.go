// Package registry provides a global registry of puzzle modes.
// Modes register themselves in init() functions, allowing the engine and
// the presentation layers to discover them without hardcoded dependencies.
package registry

import (
	"errors"
	"fmt"
	"math/rand"
	"sort"
	"sync"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/puzzle"
)

// ErrUnknownMode is returned when a mode ID is not registered.
var ErrUnknownMode = errors.New("registry: unknown mode")

// Generator produces a fresh puzzle for the given level and XP.
// It must not retain rng or mutate shared state.
type Generator func(rng *rand.Rand, cfg config.Config, level, xp int) puzzle.Puzzle

// Feedback holds the texts shown after a wrong guess.
type Feedback struct {
	TooHigh string // Guess was above the answer
	TooLow  string // Guess was below the answer
	Invalid string // Guess could not be read as a number
}

// Mode describes one puzzle mode. The engine is generic over Mode.
type Mode struct {
	// ID is the CLI identifier (e.g., "number").
	ID string

	// Title is the display name (e.g., "Guess the Number").
	Title string

	// StorageName prefixes the persisted level and XP keys (e.g., "guessNumber").
	StorageName string

	// Order positions the mode on the home screen.
	Order int

	// Story is the text shown before the first round.
	Story string

	// Generate creates the round's puzzle.
	Generate Generator

	// Intro returns the opening line for a round; fresh is false on replays.
	Intro func(p puzzle.Puzzle, fresh bool) string

	// Hints returns the hint texts for a puzzle in the order they unlock.
	// Nil when the mode has no hints.
	Hints func(cfg config.Config, p puzzle.Puzzle) []string

	// Solved returns the completion line for a win on the given attempt.
	Solved func(attempt int) string

	// LevelUp returns the line shown after reaching level.
	LevelUp func(cfg config.Config, level int) string

	Feedback Feedback

	// AllowNegative lets the guess start with a minus sign.
	AllowNegative bool
}

// ModeInfo contains metadata about a registered mode.
type ModeInfo struct {
	ID    string
	Title string
}

var (
	modes = make(map[string]Mode)
	mu    sync.RWMutex
)

// Register adds a mode to the registry.
// Typically called from a mode package's init() function.
// Panics if a mode with the same ID is already registered or is incomplete.
func Register(m Mode) {
	mu.Lock()
	defer mu.Unlock()

	if _, exists := modes[m.ID]; exists {
		panic(fmt.Sprintf("registry: mode %q already registered", m.ID))
	}
	if m.Generate == nil || m.Intro == nil || m.Solved == nil || m.StorageName == "" {
		panic(fmt.Sprintf("registry: mode %q is incomplete", m.ID))
	}

	modes[m.ID] = m
}

// List returns information about all registered modes in home-screen order.
func List() []ModeInfo {
	mu.RLock()
	defer mu.RUnlock()

	sorted := make([]Mode, 0, len(modes))
	for _, m := range modes {
		sorted = append(sorted, m)
	}

	sort.Slice(sorted, func(i, j int) bool {
		if sorted[i].Order != sorted[j].Order {
			return sorted[i].Order < sorted[j].Order
		}
		return sorted[i].ID < sorted[j].ID
	})

	result := make([]ModeInfo, len(sorted))
	for i, m := range sorted {
		result[i] = ModeInfo{ID: m.ID, Title: m.Title}
	}
	return result
}

// Get returns the mode with the given ID.
func Get(id string) (Mode, error) {
	mu.RLock()
	defer mu.RUnlock()

	m, ok := modes[id]
	if !ok {
		return Mode{}, fmt.Errorf("%w %q", ErrUnknownMode, id)
	}
	return m, nil
}

// Exists checks if a mode with the given ID is registered.
func Exists(id string) bool {
	mu.RLock()
	defer mu.RUnlock()

	_, ok := modes[id]
	return ok
}
