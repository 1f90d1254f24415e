// Package progress holds the player's per-mode level and XP together with
// the shared coin balance, and persists them through a key-value store.
package progress

// Progress is the persisted state of one mode for one profile.
// Coins are shared by all modes of a profile.
type Progress struct {
	Level int `json:"level"`
	XP    int `json:"xp"`
	Coins int `json:"coins"`
}

// DefaultThreshold is the XP needed for a level when none is configured.
const DefaultThreshold = 5000

// Default returns the state of a player who never played.
func Default() Progress {
	return Progress{Level: 1}
}

// Ledger mutates Progress. It does no locking; callers sequence calls.
type Ledger struct {
	p         Progress
	threshold int
}

// NewLedger wraps p with the given level-up threshold.
func NewLedger(p Progress, threshold int) *Ledger {
	return &Ledger{p: p, threshold: threshold}
}

// Progress returns the current state.
func (l *Ledger) Progress() Progress {
	return l.p
}

// Threshold returns the XP needed for the next level.
func (l *Ledger) Threshold() int {
	return l.threshold
}

// Replace swaps in externally loaded state.
func (l *Ledger) Replace(p Progress) {
	l.p = p
}

// AddXP adds amount and reports whether a level was gained.
// Reaching the threshold gains exactly one level and resets XP to zero;
// any surplus is discarded.
func (l *Ledger) AddXP(amount int) bool {
	sum := l.p.XP + amount
	if sum >= l.threshold {
		l.p.Level++
		l.p.XP = 0
		return true
	}
	l.p.XP = sum
	return false
}

// AddCoins adds amount to the shared balance.
func (l *Ledger) AddCoins(amount int) {
	l.p.Coins += amount
}

// Apply pays a round reward and reports whether a level was gained.
// Not idempotent: call exactly once per solved round.
func (l *Ledger) Apply(coins, xp int) bool {
	l.AddCoins(coins)
	return l.AddXP(xp)
}
