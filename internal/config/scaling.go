package config

// NumberMax returns the exclusive upper bound of the number-guess range for a level.
func (c NumberConfig) NumberMax(level int) int {
	return max(level, 1) * c.RangePerLevel
}

// MaxNumber returns the largest equation operand for a level.
func (c EquationConfig) MaxNumber(level int) int {
	return max(level, 1)*c.MaxPerLevel + c.BaseMax
}

// XPMultiplier returns how many XP steps the player has accumulated.
func (c SequenceConfig) XPMultiplier(xp int) int {
	if xp <= 0 || c.XPStep <= 0 {
		return 0
	}
	return xp / c.XPStep
}

// Coins returns the coin reward for a solve on the given attempt (1-based).
// Attempts outside the table pay nothing.
func (c RewardsConfig) Coins(attempt, level int) int {
	if attempt < 1 || attempt > len(c.CoinsPerLevel) {
		return 0
	}
	return c.CoinsPerLevel[attempt-1] * level
}
