package round

import (
	"errors"
	"testing"

	"github.com/shopspring/decimal"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/puzzle"
)

func target(n int) puzzle.Puzzle {
	return puzzle.Puzzle{Kind: puzzle.KindNumber, Answer: decimal.NewFromInt(int64(n))}
}

func typeAll(t *testing.T, r *Round, text string) {
	t.Helper()
	for _, ch := range text {
		if !r.Type(ch) {
			t.Fatalf("Type(%q) rejected", ch)
		}
	}
}

func TestEvaluateRewardTiers(t *testing.T) {
	ev := NewEvaluator(config.Default())
	p := target(42)

	tests := []struct {
		attempt int
		level   int
		coins   int
	}{
		{1, 1, 500},
		{2, 1, 250},
		{3, 1, 125},
		{1, 3, 1500},
		{2, 4, 1000},
		{3, 2, 250},
	}

	for _, tc := range tests {
		res := ev.Evaluate("42", p, tc.attempt, tc.level)
		if res.Outcome != OutcomeCorrect {
			t.Fatalf("attempt %d: outcome %v, expected correct", tc.attempt, res.Outcome)
		}
		if res.Reward.Coins != tc.coins || res.Reward.XP != 500 {
			t.Errorf("attempt %d level %d: reward %+v, expected %d coins and 500 xp",
				tc.attempt, tc.level, res.Reward, tc.coins)
		}
	}
}

func TestEvaluateOutcomes(t *testing.T) {
	ev := NewEvaluator(config.Default())
	p := target(7)

	tests := []struct {
		name    string
		guess   string
		attempt int
		want    Outcome
	}{
		{"too high", "9", 1, OutcomeTooHigh},
		{"too low", "5", 2, OutcomeTooLow},
		{"wrong on last", "8", 3, OutcomeExhausted},
		{"empty", "", 1, OutcomeInvalid},
		{"garbage", "-", 2, OutcomeInvalid},
		{"garbage on last", "", 3, OutcomeExhausted},
		{"correct on last", "7", 3, OutcomeCorrect},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			res := ev.Evaluate(tc.guess, p, tc.attempt, 1)
			if res.Outcome != tc.want {
				t.Errorf("Evaluate(%q, attempt %d) = %v, expected %v", tc.guess, tc.attempt, res.Outcome, tc.want)
			}
			if res.Outcome != OutcomeCorrect && !res.Reward.IsZero() {
				t.Errorf("non-winning outcome paid %+v", res.Reward)
			}
		})
	}
}

func TestFractionalAnswerNeverMatches(t *testing.T) {
	ev := NewEvaluator(config.Default())
	p := puzzle.Puzzle{Kind: puzzle.KindEquation, Answer: decimal.New(55, -1)}

	if res := ev.Evaluate("5", p, 1, 1); res.Outcome != OutcomeTooLow {
		t.Errorf("5 vs 5.5 = %v, expected too_low", res.Outcome)
	}
	if res := ev.Evaluate("6", p, 2, 1); res.Outcome != OutcomeTooHigh {
		t.Errorf("6 vs 5.5 = %v, expected too_high", res.Outcome)
	}
}

func TestRoundScenario(t *testing.T) {
	// Target 7; guesses 9, 5, 7
	r := New(target(7), NewEvaluator(config.Default()), Options{Level: 1, MaxGuessLen: 3})

	steps := []struct {
		guess   string
		outcome Outcome
		attempt int
	}{
		{"9", OutcomeTooHigh, 2},
		{"5", OutcomeTooLow, 3},
		{"7", OutcomeCorrect, 3},
	}

	for _, s := range steps {
		typeAll(t, r, s.guess)
		res, err := r.Submit()
		if err != nil {
			t.Fatalf("Submit(%q) failed: %v", s.guess, err)
		}
		if res.Outcome != s.outcome {
			t.Fatalf("Submit(%q) = %v, expected %v", s.guess, res.Outcome, s.outcome)
		}
		if r.Attempt() != s.attempt {
			t.Errorf("after %q attempt = %d, expected %d", s.guess, r.Attempt(), s.attempt)
		}
		if res.Outcome == OutcomeCorrect && res.Reward.Coins != 125 {
			t.Errorf("third-attempt reward = %d coins, expected 125", res.Reward.Coins)
		}
	}

	if r.State() != StateComplete {
		t.Errorf("State() = %v, expected complete", r.State())
	}
	if _, err := r.Submit(); !errors.Is(err, ErrRoundOver) {
		t.Errorf("Submit after completion error = %v, expected ErrRoundOver", err)
	}
}

func TestRoundFailsAfterThreeMisses(t *testing.T) {
	r := New(target(7), NewEvaluator(config.Default()), Options{Level: 1})

	for i, guess := range []string{"1", "2", "3"} {
		typeAll(t, r, guess)
		res, _ := r.Submit()
		if i < 2 && res.Outcome != OutcomeTooLow {
			t.Fatalf("miss %d = %v, expected too_low", i+1, res.Outcome)
		}
		if i == 2 && res.Outcome != OutcomeExhausted {
			t.Fatalf("third miss = %v, expected exhausted", res.Outcome)
		}
	}
	if r.State() != StateFailed {
		t.Errorf("State() = %v, expected failed", r.State())
	}
	if r.Attempt() > 3 {
		t.Errorf("Attempt() = %d, never more than 3", r.Attempt())
	}
}

func TestInvalidDoesNotConsumeAttempt(t *testing.T) {
	r := New(target(7), NewEvaluator(config.Default()), Options{Level: 1})

	res, err := r.Submit()
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if res.Outcome != OutcomeInvalid || r.Attempt() != 1 {
		t.Errorf("empty submit: outcome %v attempt %d, expected invalid on attempt 1", res.Outcome, r.Attempt())
	}
}

func TestTyping(t *testing.T) {
	r := New(target(7), NewEvaluator(config.Default()), Options{Level: 1, MaxGuessLen: 3})

	if r.Type('-') {
		t.Error("minus accepted without AllowNegative")
	}
	if r.Type('x') {
		t.Error("letter accepted")
	}
	typeAll(t, r, "123")
	if r.Type('4') {
		t.Error("fourth digit accepted")
	}
	r.Delete()
	if r.Guess() != "12" {
		t.Errorf("Guess() after delete = %q, expected 12", r.Guess())
	}

	neg := New(target(-3), NewEvaluator(config.Default()), Options{Level: 1, MaxGuessLen: 3, AllowNegative: true})
	typeAll(t, neg, "-3")
	if neg.Type('-') {
		t.Error("second minus accepted")
	}
	res, _ := neg.Submit()
	if res.Outcome != OutcomeCorrect {
		t.Errorf("-3 vs -3 = %v, expected correct", res.Outcome)
	}
}

func TestHints(t *testing.T) {
	r := New(target(7), NewEvaluator(config.Default()), Options{
		Level: 1,
		Hints: []string{"odd", "remainder"},
	})

	for _, want := range []string{"odd", "remainder"} {
		got, ok := r.UseHint()
		if !ok || got != want {
			t.Errorf("UseHint() = %q, %v; expected %q", got, ok, want)
		}
	}
	if _, ok := r.UseHint(); ok {
		t.Error("third hint revealed")
	}
	if r.HintsUsed() != 2 {
		t.Errorf("HintsUsed() = %d, expected 2", r.HintsUsed())
	}
}
