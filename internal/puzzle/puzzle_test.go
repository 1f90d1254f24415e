package puzzle

import (
	"testing"

	"github.com/shopspring/decimal"
)

func TestSequenceLine(t *testing.T) {
	p := Puzzle{
		Kind: KindSequence,
		Terms: []Term{
			{Value: 12}, {Value: 16}, {Value: 20, Missing: true}, {Value: 24}, {Value: 28},
		},
		MissingIndex: 2,
	}

	if got, want := p.SequenceLine(), "12, 16, ?, 24, 28"; got != want {
		t.Errorf("SequenceLine() = %q, want %q", got, want)
	}
}

func TestSolvable(t *testing.T) {
	tests := []struct {
		name   string
		answer decimal.Decimal
		want   bool
	}{
		{"integer", decimal.NewFromInt(7), true},
		{"negative integer", decimal.NewFromInt(-4), true},
		{"half", decimal.New(75, -1), false},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			p := Puzzle{Answer: tc.answer}
			if got := p.Solvable(); got != tc.want {
				t.Errorf("Solvable() = %v, want %v", got, tc.want)
			}
		})
	}
}

func TestTarget(t *testing.T) {
	p := Puzzle{Answer: decimal.NewFromInt(42)}
	if p.Target() != 42 {
		t.Errorf("Target() = %d, want 42", p.Target())
	}
}
