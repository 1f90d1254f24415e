package round

import (
	"errors"

	"github.com/vovakirdan/numbolt/internal/puzzle"
)

// ErrRoundOver is returned when a resolved round receives another guess.
var ErrRoundOver = errors.New("round: round is over")

// State is the lifecycle position of a round.
type State int

const (
	StateAwaitingGuess State = iota
	StateComplete
	StateFailed
)

// String returns a human-readable name for the state.
func (s State) String() string {
	switch s {
	case StateAwaitingGuess:
		return "awaiting_guess"
	case StateComplete:
		return "complete"
	case StateFailed:
		return "failed"
	default:
		return "unknown"
	}
}

// Options configures a round.
type Options struct {
	Level         int
	MaxGuessLen   int
	AllowNegative bool     // Accept a leading minus sign
	Hints         []string // Unlocked one at a time by UseHint
}

// Round holds the attempt state of one puzzle.
type Round struct {
	puzzle puzzle.Puzzle
	eval   Evaluator
	opts   Options

	state     State
	attempt   int
	guess     []rune
	hintsUsed int
}

// New starts a round on its first attempt.
func New(p puzzle.Puzzle, eval Evaluator, opts Options) *Round {
	if opts.MaxGuessLen <= 0 {
		opts.MaxGuessLen = 3
	}
	return &Round{
		puzzle:  p,
		eval:    eval,
		opts:    opts,
		state:   StateAwaitingGuess,
		attempt: 1,
	}
}

// Puzzle returns the round's puzzle.
func (r *Round) Puzzle() puzzle.Puzzle { return r.puzzle }

// State returns the current state.
func (r *Round) State() State { return r.state }

// Attempt returns the attempt the next guess will be made on.
func (r *Round) Attempt() int { return r.attempt }

// Level returns the level the round was generated for.
func (r *Round) Level() int { return r.opts.Level }

// Guess returns the guess being typed.
func (r *Round) Guess() string { return string(r.guess) }

// HintsUsed returns how many hints were revealed.
func (r *Round) HintsUsed() int { return r.hintsUsed }

// HintsLeft returns how many hints can still be revealed.
func (r *Round) HintsLeft() int {
	if r.Over() {
		return 0
	}
	return len(r.opts.Hints) - r.hintsUsed
}

// Over reports whether the round is resolved.
func (r *Round) Over() bool { return r.state != StateAwaitingGuess }

// Type appends a character to the guess. Digits are accepted up to the
// length limit; a minus sign only as the first character when allowed.
func (r *Round) Type(ch rune) bool {
	if r.Over() || len(r.guess) >= r.opts.MaxGuessLen {
		return false
	}
	switch {
	case ch >= '0' && ch <= '9':
	case ch == '-' && r.opts.AllowNegative && len(r.guess) == 0:
	default:
		return false
	}
	r.guess = append(r.guess, ch)
	return true
}

// Delete removes the last character of the guess.
func (r *Round) Delete() bool {
	if r.Over() || len(r.guess) == 0 {
		return false
	}
	r.guess = r.guess[:len(r.guess)-1]
	return true
}

// SetGuess replaces the guess text, bypassing the keypad rules.
// Used by callers that receive the whole guess at once.
func (r *Round) SetGuess(text string) {
	if r.Over() {
		return
	}
	r.guess = []rune(text)
}

// Submit evaluates the typed guess and advances the state machine.
// A wrong guess clears the input and moves to the next attempt.
func (r *Round) Submit() (Result, error) {
	if r.Over() {
		return Result{}, ErrRoundOver
	}

	res := r.eval.Evaluate(string(r.guess), r.puzzle, r.attempt, r.opts.Level)
	switch res.Outcome {
	case OutcomeCorrect:
		r.state = StateComplete
	case OutcomeExhausted:
		r.state = StateFailed
	case OutcomeTooHigh, OutcomeTooLow:
		r.attempt++
		r.guess = r.guess[:0]
	case OutcomeInvalid:
		r.guess = r.guess[:0]
	}
	return res, nil
}

// UseHint reveals the next hint, if any remain.
func (r *Round) UseHint() (string, bool) {
	if r.HintsLeft() <= 0 {
		return "", false
	}
	hint := r.opts.Hints[r.hintsUsed]
	r.hintsUsed++
	return hint, true
}
