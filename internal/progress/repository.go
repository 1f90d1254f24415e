package progress

import (
	"context"
	"errors"
	"fmt"
	"strconv"

	"github.com/charmbracelet/log"
)

// CoinsKey is the key of the coin balance shared by all modes.
const CoinsKey = "coins"

// KV is the string key-value contract progress is persisted through.
type KV interface {
	// Get returns the value and whether the key exists.
	Get(ctx context.Context, key string) (string, bool, error)
	Set(ctx context.Context, key, value string) error
	Delete(ctx context.Context, key string) error
	// Add increments the integer under key in one step and returns the
	// new value. A missing or unparsable value counts as zero.
	Add(ctx context.Context, key string, delta int) (int, error)
}

// Keys are the storage keys of one mode.
type Keys struct {
	Level string
	XP    string
	Coins string
}

// KeysFor returns the keys for a mode storage name, e.g. "guessNumber"
// maps to guessNumberLevel, guessNumberXp and coins.
func KeysFor(storageName string) Keys {
	return Keys{
		Level: storageName + "Level",
		XP:    storageName + "Xp",
		Coins: CoinsKey,
	}
}

// Repository reads and writes Progress over a KV store.
// Read failures never surface: missing, unreadable or unparsable values
// fall back to defaults.
type Repository struct {
	kv        KV
	logger    *log.Logger
	threshold int
}

// NewRepository creates a repository. A nil logger uses the default logger.
func NewRepository(kv KV, logger *log.Logger) *Repository {
	if logger == nil {
		logger = log.Default()
	}
	return &Repository{kv: kv, logger: logger, threshold: DefaultThreshold}
}

// WithThreshold sets the level-up threshold stored XP must stay below.
func (r *Repository) WithThreshold(n int) *Repository {
	if n > 0 {
		r.threshold = n
	}
	return r
}

// Load returns the stored progress of a mode.
func (r *Repository) Load(ctx context.Context, storageName string) Progress {
	keys := KeysFor(storageName)
	def := Default()

	p := Progress{
		Level: r.readInt(ctx, keys.Level, def.Level, 1),
		XP:    r.readInt(ctx, keys.XP, def.XP, 0),
		Coins: r.readInt(ctx, keys.Coins, def.Coins, 0),
	}
	// A full level of XP is never persisted by the ledger.
	if p.XP >= r.threshold {
		r.logger.Debug("ignoring stored xp", "key", keys.XP, "value", p.XP)
		p.XP = def.XP
	}
	return p
}

// Credit writes the level and XP of p and adds coins to the shared
// balance. The balance is incremented in the store, so engines of other
// modes crediting the same profile never overwrite each other. The
// returned Progress carries the balance after the increment.
func (r *Repository) Credit(ctx context.Context, storageName string, p Progress, coins int) (Progress, error) {
	keys := KeysFor(storageName)

	var errs []error
	for _, kv := range [...]struct {
		key string
		val int
	}{
		{keys.Level, p.Level},
		{keys.XP, p.XP},
	} {
		if err := r.kv.Set(ctx, kv.key, strconv.Itoa(kv.val)); err != nil {
			errs = append(errs, fmt.Errorf("progress: save %s: %w", kv.key, err))
		}
	}

	balance, err := r.kv.Add(ctx, keys.Coins, coins)
	if err != nil {
		errs = append(errs, fmt.Errorf("progress: credit %s: %w", keys.Coins, err))
	} else {
		p.Coins = balance
	}
	return p, errors.Join(errs...)
}

// Reset removes the level and XP keys of a mode and the shared coins.
func (r *Repository) Reset(ctx context.Context, storageName string) error {
	keys := KeysFor(storageName)

	var errs []error
	for _, key := range []string{keys.Level, keys.XP, keys.Coins} {
		if err := r.kv.Delete(ctx, key); err != nil {
			errs = append(errs, fmt.Errorf("progress: reset %s: %w", key, err))
		}
	}
	return errors.Join(errs...)
}

func (r *Repository) readInt(ctx context.Context, key string, def, floor int) int {
	raw, ok, err := r.kv.Get(ctx, key)
	if err != nil {
		r.logger.Warn("could not read progress", "key", key, "error", err)
		return def
	}
	if !ok {
		return def
	}

	n, err := strconv.Atoi(raw)
	if err != nil || n < floor {
		r.logger.Debug("ignoring stored value", "key", key, "value", raw)
		return def
	}
	return n
}
