package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestEmbeddedDefaultMatchesHardcoded(t *testing.T) {
	cfg, err := parse(defaultYAML)
	if err != nil {
		t.Fatalf("parse(defaultYAML) failed: %v", err)
	}

	def := Default()
	if cfg.Progress != def.Progress {
		t.Errorf("Progress = %+v, expected %+v", cfg.Progress, def.Progress)
	}
	if cfg.Rounds != def.Rounds {
		t.Errorf("Rounds = %+v, expected %+v", cfg.Rounds, def.Rounds)
	}
	if cfg.Number != def.Number {
		t.Errorf("Number = %+v, expected %+v", cfg.Number, def.Number)
	}
	if cfg.Sequence != def.Sequence {
		t.Errorf("Sequence = %+v, expected %+v", cfg.Sequence, def.Sequence)
	}
	if cfg.Equation != def.Equation {
		t.Errorf("Equation = %+v, expected %+v", cfg.Equation, def.Equation)
	}
	if len(cfg.Rewards.CoinsPerLevel) != 3 {
		t.Fatalf("CoinsPerLevel has %d entries, expected 3", len(cfg.Rewards.CoinsPerLevel))
	}
	for i, want := range []int{500, 250, 125} {
		if cfg.Rewards.CoinsPerLevel[i] != want {
			t.Errorf("CoinsPerLevel[%d] = %d, expected %d", i, cfg.Rewards.CoinsPerLevel[i], want)
		}
	}
}

func TestLoadCustomPathPartialOverride(t *testing.T) {
	path := filepath.Join(t.TempDir(), "custom.yaml")
	data := []byte("progress:\n  xp_threshold: 1000\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() failed: %v", err)
	}

	if cfg.Progress.XPThreshold != 1000 {
		t.Errorf("XPThreshold = %d, expected 1000", cfg.Progress.XPThreshold)
	}
	// Untouched keys keep their defaults
	if cfg.Progress.XPPerWin != 500 {
		t.Errorf("XPPerWin = %d, expected 500", cfg.Progress.XPPerWin)
	}
	if cfg.Rounds.MaxAttempts != 3 {
		t.Errorf("MaxAttempts = %d, expected 3", cfg.Rounds.MaxAttempts)
	}
}

func TestLoadCustomPathMissing(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope.yaml"))
	if err == nil {
		t.Error("Load() of a missing custom path should fail")
	}
}

func TestLoadCustomPathInvalid(t *testing.T) {
	path := filepath.Join(t.TempDir(), "bad.yaml")
	data := []byte("rounds:\n  max_attempts: 4\n")
	if err := os.WriteFile(path, data, 0o600); err != nil {
		t.Fatalf("WriteFile failed: %v", err)
	}

	// Four attempts without a fourth reward tier is rejected
	if _, err := Load(path); err == nil {
		t.Error("Load() should reject a reward table shorter than max_attempts")
	}
}

func TestValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"zero threshold", func(c *Config) { c.Progress.XPThreshold = 0 }, true},
		{"no attempts", func(c *Config) { c.Rounds.MaxAttempts = 0; c.Rewards.CoinsPerLevel = nil }, true},
		{"empty guess", func(c *Config) { c.Rounds.MaxGuessLen = 0 }, true},
		{"inverted number range", func(c *Config) { c.Number.RangePerLevel = 1 }, true},
		{"too many hints", func(c *Config) { c.Number.Hints = 3 }, true},
		{"short sequence", func(c *Config) { c.Sequence.Length = 1 }, true},
		{"zero equation base", func(c *Config) { c.Equation.BaseMax = 0 }, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			cfg := Default()
			tc.mutate(&cfg)
			err := cfg.Validate()
			if (err != nil) != tc.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tc.wantErr)
			}
		})
	}
}

func TestScaling(t *testing.T) {
	cfg := Default()

	if got := cfg.Number.NumberMax(3); got != 30 {
		t.Errorf("NumberMax(3) = %d, expected 30", got)
	}
	if got := cfg.Equation.MaxNumber(1); got != 15 {
		t.Errorf("MaxNumber(1) = %d, expected 15", got)
	}
	if got := cfg.Equation.MaxNumber(4); got != 30 {
		t.Errorf("MaxNumber(4) = %d, expected 30", got)
	}
	if got := cfg.Sequence.XPMultiplier(1499); got != 2 {
		t.Errorf("XPMultiplier(1499) = %d, expected 2", got)
	}
	if got := cfg.Rewards.Coins(2, 4); got != 1000 {
		t.Errorf("Coins(2, 4) = %d, expected 1000", got)
	}
	if got := cfg.Rewards.Coins(4, 4); got != 0 {
		t.Errorf("Coins(4, 4) = %d, expected 0", got)
	}
}
