package config

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"

	"gopkg.in/yaml.v3"
)

// Load loads the engine configuration.
// Search order: customPath -> ~/.numbolt/config.yaml -> ./configs/numbolt.yaml -> embedded default
func Load(customPath string) (Config, error) {
	// Try custom path first
	if customPath != "" {
		data, err := os.ReadFile(customPath)
		if err != nil {
			return Config{}, fmt.Errorf("failed to read config %s: %w", customPath, err)
		}
		cfg, err := parse(data)
		if err != nil {
			return Config{}, fmt.Errorf("failed to parse config %s: %w", customPath, err)
		}
		return cfg, nil
	}

	// Try user config directory
	if userCfgPath := userConfigPath("config.yaml"); userCfgPath != "" {
		if data, err := os.ReadFile(userCfgPath); err == nil {
			if cfg, err := parse(data); err == nil {
				return cfg, nil
			}
		}
	}

	// Try local configs directory
	if data, err := os.ReadFile("configs/numbolt.yaml"); err == nil {
		if cfg, err := parse(data); err == nil {
			return cfg, nil
		}
	}

	// Use embedded default YAML
	cfg, err := parse(defaultYAML)
	if err != nil {
		return Default(), nil // Fallback to hardcoded if embed fails
	}
	return cfg, nil
}

// parse decodes YAML over the defaults, so a partial file only overrides
// the keys it names, and validates the result.
func parse(data []byte) (Config, error) {
	cfg := Default()
	if err := yaml.Unmarshal(data, &cfg); err != nil {
		return Config{}, err
	}
	if err := cfg.Validate(); err != nil {
		return Config{}, err
	}
	return cfg, nil
}

// userConfigPath returns the path to user config file, or empty if home is unavailable.
func userConfigPath(filename string) string {
	home, err := os.UserHomeDir()
	if err != nil {
		return ""
	}
	return filepath.Join(home, ".numbolt", filename)
}

// Validate rejects configurations the engine cannot run with.
func (c Config) Validate() error {
	var errs []error

	if c.Progress.XPThreshold <= 0 {
		errs = append(errs, errors.New("progress.xp_threshold must be positive"))
	}
	if c.Progress.XPPerWin < 0 {
		errs = append(errs, errors.New("progress.xp_per_win must not be negative"))
	}
	if c.Rounds.MaxAttempts < 1 {
		errs = append(errs, errors.New("rounds.max_attempts must be at least 1"))
	}
	if len(c.Rewards.CoinsPerLevel) != c.Rounds.MaxAttempts {
		errs = append(errs, fmt.Errorf("rewards.coins_per_level needs %d entries, got %d",
			c.Rounds.MaxAttempts, len(c.Rewards.CoinsPerLevel)))
	}
	if c.Rounds.MaxGuessLen < 1 {
		errs = append(errs, errors.New("rounds.max_guess_len must be at least 1"))
	}
	if c.Number.MinLimit < 0 {
		errs = append(errs, errors.New("number.min_limit must not be negative"))
	}
	if c.Number.RangePerLevel <= c.Number.MinLimit {
		errs = append(errs, errors.New("number.range_per_level must exceed number.min_limit"))
	}
	if c.Number.Hints < 0 || c.Number.Hints > 2 {
		errs = append(errs, errors.New("number.hints must be between 0 and 2"))
	}
	if c.Sequence.Length < 2 {
		errs = append(errs, errors.New("sequence.length must be at least 2"))
	}
	if c.Sequence.XPStep <= 0 {
		errs = append(errs, errors.New("sequence.xp_step must be positive"))
	}
	if c.Equation.BaseMax < 1 || c.Equation.MaxPerLevel < 0 {
		errs = append(errs, errors.New("equation.base_max must be positive and equation.max_per_level not negative"))
	}

	return errors.Join(errs...)
}
