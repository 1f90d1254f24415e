package number

import (
	"fmt"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/puzzle"
)

// divisors are checked in this order for the second hint.
var divisors = []int{5, 4, 3}

// Hints returns the parity hint followed by the divisibility hint,
// limited to the configured number of hints per round.
func Hints(cfg config.Config, p puzzle.Puzzle) []string {
	target := p.Target()
	hints := []string{parityHint(target), divisorHint(target)}
	return hints[:min(cfg.Number.Hints, len(hints))]
}

func parityHint(n int) string {
	kind := "odd"
	if n%2 == 0 {
		kind = "even"
	}
	return fmt.Sprintf("The number you're looking for is an %s number.", kind)
}

func divisorHint(n int) string {
	for _, d := range divisors {
		if n%d == 0 {
			return fmt.Sprintf("The number can be divided equally among %d people.", d)
		}
	}
	return "The number can't be divided evenly by 5, 4, or 3, it will leave a remainder."
}
