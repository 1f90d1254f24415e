package storage

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strconv"

	"github.com/vovakirdan/numbolt/internal/progress"
)

// ProfileKV is the key-value view of one profile's rows in the kv table.
type ProfileKV struct {
	store   *Store
	profile string
}

// Ensure ProfileKV implements progress.KV
var _ progress.KV = (*ProfileKV)(nil)

// Profile returns the key-value view for a profile.
func (s *Store) Profile(name string) *ProfileKV {
	return &ProfileKV{store: s, profile: name}
}

// Name returns the profile name.
func (p *ProfileKV) Name() string {
	return p.profile
}

// Get returns the value stored under key.
func (p *ProfileKV) Get(ctx context.Context, key string) (string, bool, error) {
	var value string
	err := p.store.db.QueryRowContext(ctx,
		"SELECT value FROM kv WHERE profile = ? AND key = ?",
		p.profile, key,
	).Scan(&value)

	if errors.Is(err, sql.ErrNoRows) {
		return "", false, nil
	}
	if err != nil {
		return "", false, fmt.Errorf("storage: cannot read %s: %w", key, err)
	}
	return value, true, nil
}

// Set inserts or replaces the value under key.
func (p *ProfileKV) Set(ctx context.Context, key, value string) error {
	_, err := p.store.db.ExecContext(ctx,
		`INSERT INTO kv (profile, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, key) DO UPDATE SET
		   value = excluded.value,
		   updated_at = excluded.updated_at`,
		p.profile, key, value,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot write %s: %w", key, err)
	}
	return nil
}

// Add increments the integer under key in a single statement, so
// concurrent sessions of a profile never lose each other's coins.
// Values that are not plain digits count as zero.
func (p *ProfileKV) Add(ctx context.Context, key string, delta int) (int, error) {
	var value int
	err := p.store.db.QueryRowContext(ctx,
		`INSERT INTO kv (profile, key, value, updated_at)
		 VALUES (?, ?, ?, CURRENT_TIMESTAMP)
		 ON CONFLICT(profile, key) DO UPDATE SET
		   value = CAST(
		     CASE WHEN kv.value GLOB '[0-9]*' AND kv.value NOT GLOB '*[^0-9]*'
		          THEN CAST(kv.value AS INTEGER) ELSE 0 END + ? AS TEXT),
		   updated_at = excluded.updated_at
		 RETURNING CAST(value AS INTEGER)`,
		p.profile, key, strconv.Itoa(delta), delta,
	).Scan(&value)
	if err != nil {
		return 0, fmt.Errorf("storage: cannot add to %s: %w", key, err)
	}
	return value, nil
}

// Delete removes key.
func (p *ProfileKV) Delete(ctx context.Context, key string) error {
	_, err := p.store.db.ExecContext(ctx,
		"DELETE FROM kv WHERE profile = ? AND key = ?",
		p.profile, key,
	)
	if err != nil {
		return fmt.Errorf("storage: cannot delete %s: %w", key, err)
	}
	return nil
}

// Profiles lists every profile with stored progress.
func (s *Store) Profiles(ctx context.Context) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, "SELECT DISTINCT profile FROM kv ORDER BY profile")
	if err != nil {
		return nil, fmt.Errorf("storage: cannot query profiles: %w", err)
	}
	defer rows.Close()

	var names []string
	for rows.Next() {
		var name string
		if err := rows.Scan(&name); err != nil {
			return nil, fmt.Errorf("storage: cannot scan row: %w", err)
		}
		names = append(names, name)
	}

	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("storage: row iteration error: %w", err)
	}
	return names, nil
}
