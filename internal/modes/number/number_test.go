package number

import (
	"strings"
	"testing"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/registry"
)

func TestTargetWithinRange(t *testing.T) {
	cfg := config.Default()
	rng := core.NewRand(7)

	for level := 1; level <= 30; level++ {
		for i := 0; i < 200; i++ {
			p := Generate(rng, cfg, level, 0)
			target := p.Target()
			if target < 1 || target >= level*10 {
				t.Fatalf("level %d: target %d outside [1, %d)", level, target, level*10)
			}
			if p.Min != 1 || p.Max != level*10 {
				t.Fatalf("level %d: range [%d, %d), expected [1, %d)", level, p.Min, p.Max, level*10)
			}
		}
	}
}

func TestDeterminism(t *testing.T) {
	cfg := config.Default()
	a := Generate(core.NewRand(99), cfg, 4, 0)
	b := Generate(core.NewRand(99), cfg, 4, 0)
	if !a.Answer.Equal(b.Answer) {
		t.Errorf("same seed gave %s and %s", a.Answer, b.Answer)
	}
}

func TestHints(t *testing.T) {
	tests := []struct {
		target int
		parity string
		divide string
	}{
		{10, "even", "among 5 people"},
		{8, "even", "among 4 people"},
		{9, "odd", "among 3 people"},
		{7, "odd", "can't be divided evenly"},
		{20, "even", "among 5 people"},
	}

	for _, tc := range tests {
		hints := Hints(config.Default(), FromTarget(tc.target, 1, 30))
		if len(hints) != 2 {
			t.Fatalf("target %d: got %d hints, expected 2", tc.target, len(hints))
		}
		if !strings.Contains(hints[0], tc.parity) {
			t.Errorf("target %d: parity hint %q, expected %q", tc.target, hints[0], tc.parity)
		}
		if !strings.Contains(hints[1], tc.divide) {
			t.Errorf("target %d: divisor hint %q, expected %q", tc.target, hints[1], tc.divide)
		}
	}
}

func TestHintLimit(t *testing.T) {
	cfg := config.Default()
	cfg.Number.Hints = 1
	if hints := Hints(cfg, FromTarget(12, 1, 30)); len(hints) != 1 {
		t.Errorf("got %d hints with a limit of 1", len(hints))
	}
}

func TestIntro(t *testing.T) {
	p := FromTarget(7, 1, 10)
	if got := Intro(p, true); got != "I am thinking of a number between 1 to 10, Now guess the number." {
		t.Errorf("fresh intro = %q", got)
	}
	if got := Intro(p, false); !strings.Contains(got, "a new number") {
		t.Errorf("replay intro = %q, expected it to mention a new number", got)
	}
}

func TestRegistered(t *testing.T) {
	m, err := registry.Get(ID)
	if err != nil {
		t.Fatalf("registry.Get(%q) failed: %v", ID, err)
	}
	if m.StorageName != "guessNumber" {
		t.Errorf("StorageName = %q, expected guessNumber", m.StorageName)
	}
	if m.Hints == nil {
		t.Error("number mode should provide hints")
	}
	if got := m.LevelUp(config.Default(), 3); got != "In this level you will guess number from 1 to 30." {
		t.Errorf("LevelUp(3) = %q", got)
	}
}
