package core

import "testing"

func TestActionString(t *testing.T) {
	tests := []struct {
		action   Action
		expected string
	}{
		{ActionNone, "None"},
		{ActionDigit, "Digit"},
		{ActionMinus, "Minus"},
		{ActionDelete, "Delete"},
		{ActionSubmit, "Submit"},
		{ActionHint, "Hint"},
		{ActionBack, "Back"},
		{ActionRestart, "Restart"},
		{ActionQuit, "Quit"},
		{Action(99), "Unknown"},
	}

	for _, tc := range tests {
		t.Run(tc.expected, func(t *testing.T) {
			if got := tc.action.String(); got != tc.expected {
				t.Errorf("String() = %q, expected %q", got, tc.expected)
			}
		})
	}
}

func TestNewRandSeeded(t *testing.T) {
	a := NewRand(42)
	b := NewRand(42)

	for i := 0; i < 10; i++ {
		if x, y := a.Intn(1000), b.Intn(1000); x != y {
			t.Fatalf("draw %d differs for equal seeds: %d vs %d", i, x, y)
		}
	}
}

func TestDefaultConfig(t *testing.T) {
	cfg := DefaultConfig()
	if cfg.Profile != DefaultProfile {
		t.Errorf("Profile = %q, expected %q", cfg.Profile, DefaultProfile)
	}
	if cfg.Seed != 0 {
		t.Errorf("Seed = %d, expected 0", cfg.Seed)
	}
}

func TestNormalizeProfile(t *testing.T) {
	tests := []struct {
		name     string
		expected string
	}{
		{"alice", "alice"},
		{"Alice", "alice"},
		{"  BOB\t", "bob"},
		{"", DefaultProfile},
		{"   ", DefaultProfile},
	}

	for _, tc := range tests {
		if got := NormalizeProfile(tc.name); got != tc.expected {
			t.Errorf("NormalizeProfile(%q) = %q, expected %q", tc.name, got, tc.expected)
		}
	}
}
