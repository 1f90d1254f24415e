// Package sequence implements "Guess the Sequence": one term of an
// arithmetic progression is hidden and the player must find it.
package sequence

import (
	"fmt"
	"math"
	"math/rand"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/puzzle"
	"github.com/vovakirdan/numbolt/internal/registry"
)

// ID is the registry identifier of this mode.
const ID = "sequence"

// MinStep is the smallest common difference the generator produces.
const MinStep = 3

const story = "A treasure chest is locked with a special code, but one number in the " +
	"sequence is missing. Use the pattern in the sequence to find the missing " +
	"number and unlock the treasure!"

func init() {
	registry.Register(registry.Mode{
		ID:          ID,
		Title:       "Guess the Sequence",
		StorageName: "guessSequence",
		Order:       2,
		Story:       story,
		Generate:    Generate,
		Intro:       Intro,
		Solved:      Solved,
		LevelUp: func(config.Config, int) string {
			return "In this level, the sequences will become progressively more challenging."
		},
		Feedback: registry.Feedback{
			TooHigh: "The number is lower than your guess, please try again.",
			TooLow:  "The number is higher than your guess, please try again.",
			Invalid: "Type the missing number first.",
		},
	})
}

// Generate builds a sequence whose start grows with level and XP and whose
// step grows with level.
func Generate(rng *rand.Rand, cfg config.Config, level, xp int) puzzle.Puzzle {
	half := level / 2

	start := rng.Intn(10) + 10 + half + cfg.Sequence.XPMultiplier(xp)
	step := rng.Intn(4) + MinStep + half + int(math.Floor(math.Pow(float64(level)/2, 1.5)))

	// Each value gets an independent coin flip for +1.
	if rng.Intn(2) == 1 {
		start++
	}
	if rng.Intn(2) == 1 {
		step++
	}

	length := cfg.Sequence.Length
	return FromProgression(start, step, length, rng.Intn(length))
}

// FromProgression builds the puzzle for a known progression with the
// term at index missing hidden.
func FromProgression(start, step, length, missing int) puzzle.Puzzle {
	terms := make([]puzzle.Term, length)
	for i := range terms {
		terms[i] = puzzle.Term{Value: start + i*step, Missing: i == missing}
	}

	p := puzzle.Puzzle{
		Kind:         puzzle.KindSequence,
		Answer:       decimal.NewFromInt(int64(terms[missing].Value)),
		Terms:        terms,
		MissingIndex: missing,
		Start:        start,
		Step:         step,
	}
	p.Prompt = p.SequenceLine()
	return p
}

// Intro returns the opening line for a sequence round.
func Intro(_ puzzle.Puzzle, fresh bool) string {
	if fresh {
		return "Analyze the sequence and guess the missing number to unlock the lock on the treasure box."
	}
	return "Here is a new sequence, Guess the missing number to unlock the treasure box."
}

// Solved returns the completion line.
func Solved(attempt int) string {
	return fmt.Sprintf("Sequence complete in %d attempts, Treasure unlocked.", attempt)
}
