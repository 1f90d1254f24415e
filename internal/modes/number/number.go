// Package number implements "Guess the Number": Bolt picks an integer
// from a range that widens with the player's level.
package number

import (
	"fmt"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/puzzle"
	"github.com/vovakirdan/numbolt/internal/registry"
)

// ID is the registry identifier of this mode.
const ID = "number"

const story = "A clever robot named Bolt is thinking of a number and challenging you " +
	"to guess it within 3 attempts. Do you think you can figure it out?"

func init() {
	registry.Register(registry.Mode{
		ID:          ID,
		Title:       "Guess the Number",
		StorageName: "guessNumber",
		Order:       1,
		Story:       story,
		Generate:    Generate,
		Intro:       Intro,
		Hints:       Hints,
		Solved:      Solved,
		LevelUp:     LevelUp,
		Feedback: registry.Feedback{
			TooHigh: "The number is lower than your guess.",
			TooLow:  "The number is higher than your guess.",
			Invalid: "Type a number first.",
		},
	})
}

// Generate draws a target from [MinLimit, level*RangePerLevel).
func Generate(rng *rand.Rand, cfg config.Config, level, _ int) puzzle.Puzzle {
	lo := cfg.Number.MinLimit
	hi := cfg.Number.NumberMax(level)
	return FromTarget(rng.Intn(hi-lo)+lo, lo, hi)
}

// FromTarget builds the puzzle for a known target.
func FromTarget(target, lo, hi int) puzzle.Puzzle {
	return puzzle.Puzzle{
		Kind:   puzzle.KindNumber,
		Prompt: fmt.Sprintf("Range: %d to %d", lo, hi),
		Answer: decimal.NewFromInt(int64(target)),
		Min:    lo,
		Max:    hi,
	}
}

// Intro returns Bolt's opening line.
func Intro(p puzzle.Puzzle, fresh bool) string {
	what := "a number"
	if !fresh {
		what = "a new number"
	}
	return fmt.Sprintf("I am thinking of %s between %d to %d, Now guess the number.", what, p.Min, p.Max)
}

// Solved returns the completion line.
func Solved(attempt int) string {
	if attempt == 1 {
		return "You've guessed the correct number in 1 attempt."
	}
	return fmt.Sprintf("You've guessed the correct number in %d attempts.", attempt)
}

// LevelUp announces the new range.
func LevelUp(cfg config.Config, level int) string {
	return fmt.Sprintf("In this level you will guess number from %d to %d.",
		cfg.Number.MinLimit, cfg.Number.NumberMax(level))
}
