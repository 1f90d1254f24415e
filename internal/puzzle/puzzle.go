// Package puzzle defines the puzzle value produced by the mode generators
// and consumed by the round evaluator.
package puzzle

import (
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// Kind identifies the shape of a puzzle.
type Kind string

const (
	KindNumber   Kind = "number"
	KindSequence Kind = "sequence"
	KindEquation Kind = "equation"
)

// MissingMarker is how a hidden sequence term is displayed.
const MissingMarker = "?"

// Term is one position of a sequence puzzle.
type Term struct {
	Value   int
	Missing bool
}

// String renders the term, hiding missing values.
func (t Term) String() string {
	if t.Missing {
		return MissingMarker
	}
	return strconv.Itoa(t.Value)
}

// Puzzle is a single round's question and its correct answer.
// Only the fields for its Kind are populated.
type Puzzle struct {
	Kind   Kind
	Prompt string
	Answer decimal.Decimal

	// Number mode: target drawn from [Min, Max).
	Min int
	Max int

	// Sequence mode.
	Terms        []Term
	MissingIndex int
	Start        int
	Step         int

	// Equation mode.
	Template string
	A        int
	B        int
}

// Solvable reports whether an integer guess can match the answer.
func (p Puzzle) Solvable() bool {
	return p.Answer.IsInteger()
}

// Target returns the answer as an int; the fractional part is truncated.
func (p Puzzle) Target() int {
	return int(p.Answer.IntPart())
}

// SequenceLine renders sequence terms separated by commas.
func (p Puzzle) SequenceLine() string {
	parts := make([]string, len(p.Terms))
	for i, t := range p.Terms {
		parts[i] = t.String()
	}
	return strings.Join(parts, ", ")
}
