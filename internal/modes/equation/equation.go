// Package equation implements "Guess the Equation": Bolt shows a small
// algebra puzzle over two operands and the player types the result.
package equation

import (
	"fmt"
	"math/rand"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/puzzle"
	"github.com/vovakirdan/numbolt/internal/registry"
)

// ID is the registry identifier of this mode.
const ID = "equation"

// maxRedraws bounds the search for an integer answer when fractional
// answers are disabled.
const maxRedraws = 64

const story = "A clever robot named Bolt has created a tricky equation and is challenging " +
	"you to solve it. Analyze the equation carefully and find the missing number."

func init() {
	registry.Register(registry.Mode{
		ID:          ID,
		Title:       "Guess the Equation",
		StorageName: "guessEquation",
		Order:       3,
		Story:       story,
		Generate:    Generate,
		Intro:       Intro,
		Solved:      Solved,
		LevelUp: func(config.Config, int) string {
			return "You've impressed Bolt by solving equations like a pro. The challenge just got tougher as you level up."
		},
		Feedback: registry.Feedback{
			TooHigh: "The number is lower than your guess.",
			TooLow:  "The number is higher than your guess.",
			Invalid: "Type your answer first.",
		},
		AllowNegative: true,
	})
}

// Generate draws A and B from [1, MaxNumber(level)] and applies a random template.
func Generate(rng *rand.Rand, cfg config.Config, level, _ int) puzzle.Puzzle {
	hi := cfg.Equation.MaxNumber(level)

	var p puzzle.Puzzle
	for i := 0; i < maxRedraws; i++ {
		a := rng.Intn(hi) + 1
		b := rng.Intn(hi) + 1
		p = Build(Templates[rng.Intn(len(Templates))], a, b)
		if cfg.Equation.AllowFractional || p.Solvable() {
			return p
		}
	}
	// Every template except the mean is integral, so this is unreachable in practice.
	return p
}

// Build applies a template to fixed operands.
func Build(t Template, a, b int) puzzle.Puzzle {
	return puzzle.Puzzle{
		Kind:     puzzle.KindEquation,
		Prompt:   t.Prompt(a, b),
		Answer:   t.Answer(a, b),
		Template: t.Name,
		A:        a,
		B:        b,
	}
}

// Intro returns the opening line for an equation round.
func Intro(_ puzzle.Puzzle, fresh bool) string {
	if fresh {
		return "Below is a math puzzle. Analyze the equation, solve it, and type your answer in the box."
	}
	return "Below is a new math puzzle. Analyze the equation, solve it, and type your answer in the box."
}

// Solved returns the completion line.
func Solved(attempt int) string {
	if attempt == 1 {
		return "You've cracked the equation in just 1 attempt."
	}
	return fmt.Sprintf("You've cracked the equation in just %d attempts.", attempt)
}
