package equation

import (
	"fmt"

	"github.com/shopspring/decimal"
)

// Template is one equation shape over two operands A and B.
type Template struct {
	Name   string
	Prompt func(a, b int) string
	Answer func(a, b int) decimal.Decimal
}

func whole(n int) decimal.Decimal { return decimal.NewFromInt(int64(n)) }

// Templates lists every equation shape; the generator picks one uniformly.
var Templates = []Template{
	{
		Name:   "missing-addend",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nA + B = %d\nB = ", a, a+b) },
		Answer: func(_, b int) decimal.Decimal { return whole(b) },
	},
	{
		Name:   "missing-subtrahend",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nA - B = %d\nB = ", a, a-b) },
		Answer: func(_, b int) decimal.Decimal { return whole(b) },
	},
	{
		Name:   "sum",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nB = %d\nA + B = ", a, b) },
		Answer: func(a, b int) decimal.Decimal { return whole(a + b) },
	},
	{
		Name:   "difference",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nB = %d\nA - B = ", a, b) },
		Answer: func(a, b int) decimal.Decimal { return whole(a - b) },
	},
	{
		Name:   "product",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nB = %d\nA * B = ", a, b) },
		Answer: func(a, b int) decimal.Decimal { return whole(a * b) },
	},
	{
		// The dividend is shown as A, so the quotient is the drawn A.
		Name:   "quotient",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nB = %d\nA / B = ", a*b, b) },
		Answer: func(a, _ int) decimal.Decimal { return whole(a) },
	},
	{
		Name:   "missing-divisor",
		Prompt: func(a, b int) string { return fmt.Sprintf("%d / ? = %d\n? = ", a*b, a) },
		Answer: func(_, b int) decimal.Decimal { return whole(b) },
	},
	{
		Name:   "doubled-sum",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nB = %d\n(A + B) * 2 = ", a, b) },
		Answer: func(a, b int) decimal.Decimal { return whole((a + b) * 2) },
	},
	{
		Name:   "product-minus-five",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nB = %d\n(A * B) - 5 = ", a, b) },
		Answer: func(a, b int) decimal.Decimal { return whole(a*b - 5) },
	},
	{
		// Odd sums give a .5 answer that no integer guess can match.
		Name:   "mean",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nB = %d\n(A + B) / 2 = ", a, b) },
		Answer: func(a, b int) decimal.Decimal { return whole(a + b).Div(whole(2)) },
	},
	{
		Name:   "product-plus-sum",
		Prompt: func(a, b int) string { return fmt.Sprintf("A = %d\nB = %d\n(A * B) + (A + B) = ", a, b) },
		Answer: func(a, b int) decimal.Decimal { return whole(a*b + a + b) },
	},
}
