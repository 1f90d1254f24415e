// Package config provides YAML-based tuning for the puzzle engine:
// progress thresholds, reward tiers, round limits and per-mode generator ranges.
package config

// Config contains all tunable engine parameters.
type Config struct {
	Progress ProgressConfig `yaml:"progress"`
	Rewards  RewardsConfig  `yaml:"rewards"`
	Rounds   RoundsConfig   `yaml:"rounds"`
	Number   NumberConfig   `yaml:"number"`
	Sequence SequenceConfig `yaml:"sequence"`
	Equation EquationConfig `yaml:"equation"`
}

// ProgressConfig defines XP accumulation.
type ProgressConfig struct {
	XPThreshold int `yaml:"xp_threshold"` // XP at which a level is gained
	XPPerWin    int `yaml:"xp_per_win"`   // Flat XP for any solved round
}

// RewardsConfig defines coin payouts.
type RewardsConfig struct {
	// CoinsPerLevel[i] is multiplied by the level when attempt i+1 succeeds.
	CoinsPerLevel []int `yaml:"coins_per_level"`
}

// RoundsConfig defines round limits.
type RoundsConfig struct {
	MaxAttempts int `yaml:"max_attempts"`
	MaxGuessLen int `yaml:"max_guess_len"` // Characters, including a leading minus
}

// NumberConfig defines the Guess the Number range.
type NumberConfig struct {
	MinLimit      int `yaml:"min_limit"`
	RangePerLevel int `yaml:"range_per_level"` // Upper bound is level * RangePerLevel
	Hints         int `yaml:"hints"`
}

// SequenceConfig defines the Guess the Sequence generator.
type SequenceConfig struct {
	Length int `yaml:"length"`
	XPStep int `yaml:"xp_step"` // Every XPStep XP adds one to the start value
}

// EquationConfig defines the Guess the Equation operand range.
type EquationConfig struct {
	BaseMax         int  `yaml:"base_max"`
	MaxPerLevel     int  `yaml:"max_per_level"`
	AllowFractional bool `yaml:"allow_fractional"` // Keep (A+B)/2 puzzles with .5 answers
}
