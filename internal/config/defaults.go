package config

import (
	_ "embed"
)

//go:embed defaults/numbolt.yaml
var defaultYAML []byte

// Default returns the built-in engine configuration.
func Default() Config {
	return Config{
		Progress: ProgressConfig{
			XPThreshold: 5000,
			XPPerWin:    500,
		},
		Rewards: RewardsConfig{
			CoinsPerLevel: []int{500, 250, 125},
		},
		Rounds: RoundsConfig{
			MaxAttempts: 3,
			MaxGuessLen: 3,
		},
		Number: NumberConfig{
			MinLimit:      1,
			RangePerLevel: 10,
			Hints:         2,
		},
		Sequence: SequenceConfig{
			Length: 5,
			XPStep: 500,
		},
		Equation: EquationConfig{
			BaseMax:         10,
			MaxPerLevel:     5,
			AllowFractional: true,
		},
	}
}
