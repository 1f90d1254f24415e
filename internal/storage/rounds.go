package storage

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
)

// Round outcomes as stored in the history table.
const (
	OutcomeWon  = "won"
	OutcomeLost = "lost"
)

// RoundRecord is one resolved round in the history table.
type RoundRecord struct {
	ID        string    `json:"id"`
	Profile   string    `json:"profile"`
	Mode      string    `json:"mode"`
	Level     int       `json:"level"`
	Outcome   string    `json:"outcome"` // OutcomeWon or OutcomeLost
	Attempts  int       `json:"attempts"`
	Coins     int       `json:"coins"`
	XP        int       `json:"xp"`
	CreatedAt time.Time `json:"createdAt"`
}

// SaveRound records a resolved round and returns its ID.
// An empty rec.ID is replaced with a fresh UUID.
func (s *Store) SaveRound(ctx context.Context, rec RoundRecord) (string, error) {
	if rec.ID == "" {
		rec.ID = uuid.NewString()
	}

	_, err := s.db.ExecContext(ctx,
		`INSERT INTO rounds (id, profile, mode, level, outcome, attempts, coins, xp)
		 VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		rec.ID, rec.Profile, rec.Mode, rec.Level, rec.Outcome, rec.Attempts, rec.Coins, rec.XP,
	)
	if err != nil {
		return "", fmt.Errorf("storage: cannot save round: %w", err)
	}
	return rec.ID, nil
}

// RecentRounds returns the newest rounds of a profile, newest first.
// An empty mode matches every mode.
func (s *Store) RecentRounds(ctx context.Context, profile, mode string, limit int) ([]RoundRecord, error) {
	if limit <= 0 {
		limit = 10
	}

	rows, err := s.db.QueryContext(ctx,
		`SELECT id, profile, mode, level, outcome, attempts, coins, xp, created_at
		 FROM rounds
		 WHERE profile = ? AND (? = '' OR mode = ?)
		 ORDER BY rowid DESC
		 LIMIT ?`,
		profile, mode, mode, limit,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query rounds: %w", err)
	}
	defer rows.Close()

	var records []RoundRecord
	for rows.Next() {
		var r RoundRecord
		var createdAt any
		if err := rows.Scan(&r.ID, &r.Profile, &r.Mode, &r.Level, &r.Outcome,
			&r.Attempts, &r.Coins, &r.XP, &createdAt); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		r.CreatedAt = parseTime(createdAt)
		records = append(records, r)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return records, nil
}

// ModeStats contains aggregated round statistics for one mode.
type ModeStats struct {
	Mode         string
	Rounds       int
	Wins         int
	FirstTryWins int
	CoinsEarned  int64
	BestLevel    int
	LastPlayed   time.Time
}

// WinRate returns the share of won rounds in [0, 1].
func (m ModeStats) WinRate() float64 {
	if m.Rounds == 0 {
		return 0
	}
	return float64(m.Wins) / float64(m.Rounds)
}

const statsColumns = `mode, COUNT(*),
	COALESCE(SUM(outcome = 'won'), 0),
	COALESCE(SUM(outcome = 'won' AND attempts = 1), 0),
	COALESCE(SUM(coins), 0),
	COALESCE(MAX(level), 0),
	MAX(created_at)`

// ModeStatsFor retrieves statistics of one mode for a profile.
// Returns zero stats if the mode was never played.
func (s *Store) ModeStatsFor(ctx context.Context, profile, mode string) (*ModeStats, error) {
	all, err := s.AllModeStats(ctx, profile)
	if err != nil {
		return nil, err
	}
	if st, ok := all[mode]; ok {
		return st, nil
	}
	return &ModeStats{Mode: mode}, nil
}

// AllModeStats retrieves statistics for every mode a profile has played.
func (s *Store) AllModeStats(ctx context.Context, profile string) (map[string]*ModeStats, error) {
	rows, err := s.db.QueryContext(ctx,
		`SELECT `+statsColumns+`
		 FROM rounds
		 WHERE profile = ?
		 GROUP BY mode`,
		profile,
	)
	if err != nil {
		return nil, fmt.Errorf("storage: cannot get mode stats: %w", err)
	}
	defer rows.Close()

	stats := make(map[string]*ModeStats)
	for rows.Next() {
		var st ModeStats
		var lastPlayed any
		if err := rows.Scan(&st.Mode, &st.Rounds, &st.Wins, &st.FirstTryWins,
			&st.CoinsEarned, &st.BestLevel, &lastPlayed); err != nil {
			return nil, fmt.Errorf("storage: cannot scan stats row: %w", err)
		}
		st.LastPlayed = parseTime(lastPlayed)
		stats[st.Mode] = &st
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return stats, nil
}

// ClearRounds deletes the history of one mode for a profile.
func (s *Store) ClearRounds(ctx context.Context, profile, mode string) error {
	_, err := s.db.ExecContext(ctx,
		"DELETE FROM rounds WHERE profile = ? AND mode = ?",
		profile, mode,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot clear rounds: %w", err)
	}
	return nil
}
