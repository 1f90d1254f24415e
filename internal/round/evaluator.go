// Package round evaluates guesses against a puzzle and tracks the state of
// a single round from the first attempt to its resolution.
package round

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/puzzle"
)

// Outcome classifies one submitted guess.
type Outcome int

const (
	OutcomePending Outcome = iota // No guess evaluated yet
	OutcomeCorrect
	OutcomeTooHigh
	OutcomeTooLow
	OutcomeExhausted // Last attempt missed; the round is lost
	OutcomeInvalid   // Guess is not a number; the attempt is not consumed
)

var outcomeNames = [...]string{
	OutcomePending:   "pending",
	OutcomeCorrect:   "correct",
	OutcomeTooHigh:   "too_high",
	OutcomeTooLow:    "too_low",
	OutcomeExhausted: "exhausted",
	OutcomeInvalid:   "invalid",
}

// String returns a human-readable name for the outcome.
func (o Outcome) String() string {
	if o >= 0 && int(o) < len(outcomeNames) {
		return outcomeNames[o]
	}
	return "unknown"
}

// Resolved reports whether the outcome ends the round.
func (o Outcome) Resolved() bool {
	return o == OutcomeCorrect || o == OutcomeExhausted
}

// Reward is paid once for a solved round.
type Reward struct {
	Coins int `json:"coins"`
	XP    int `json:"xp"`
}

// IsZero reports whether the reward pays nothing.
func (r Reward) IsZero() bool {
	return r.Coins == 0 && r.XP == 0
}

// Result is the evaluation of one guess.
type Result struct {
	Outcome Outcome
	Attempt int    // Attempt the guess was made on (1-based)
	Reward  Reward // Non-zero only for OutcomeCorrect
}

// Evaluator compares guesses with answers and prices rewards.
type Evaluator struct {
	maxAttempts int
	xpPerWin    int
	rewards     config.RewardsConfig
}

// NewEvaluator creates an evaluator from the engine tuning.
func NewEvaluator(cfg config.Config) Evaluator {
	return Evaluator{
		maxAttempts: cfg.Rounds.MaxAttempts,
		xpPerWin:    cfg.Progress.XPPerWin,
		rewards:     cfg.Rewards,
	}
}

// MaxAttempts returns the number of guesses allowed per round.
func (e Evaluator) MaxAttempts() int {
	return e.maxAttempts
}

// Evaluate classifies guessText for the given attempt. It never fails:
// text that is not a base-10 integer never equals the answer.
func (e Evaluator) Evaluate(guessText string, p puzzle.Puzzle, attempt, level int) Result {
	res := Result{Attempt: attempt}

	guess, ok := parseGuess(guessText)
	switch {
	case ok && guess.Equal(p.Answer):
		res.Outcome = OutcomeCorrect
		res.Reward = Reward{
			Coins: e.rewards.Coins(attempt, level),
			XP:    e.xpPerWin,
		}
	case attempt >= e.maxAttempts:
		res.Outcome = OutcomeExhausted
	case !ok:
		res.Outcome = OutcomeInvalid
	case guess.GreaterThan(p.Answer):
		res.Outcome = OutcomeTooHigh
	default:
		res.Outcome = OutcomeTooLow
	}
	return res
}

func parseGuess(text string) (decimal.Decimal, bool) {
	n, err := strconv.Atoi(strings.TrimSpace(text))
	if err != nil {
		return decimal.Decimal{}, false
	}
	return decimal.NewFromInt(int64(n)), true
}
