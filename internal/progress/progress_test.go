package progress

import (
	"context"
	"errors"
	"io"
	"sync"
	"testing"

	"github.com/charmbracelet/log"
)

func TestAddXP(t *testing.T) {
	tests := []struct {
		name      string
		start     Progress
		amount    int
		want      Progress
		wantLevel bool
	}{
		{"accumulates", Progress{Level: 1, XP: 0}, 500, Progress{Level: 1, XP: 500}, false},
		{"just below", Progress{Level: 2, XP: 4000}, 500, Progress{Level: 2, XP: 4500}, false},
		{"exact threshold", Progress{Level: 2, XP: 4500}, 500, Progress{Level: 3, XP: 0}, true},
		{"one below plus one", Progress{Level: 1, XP: 4999}, 1, Progress{Level: 2, XP: 0}, true},
		{"surplus discarded", Progress{Level: 1, XP: 4900}, 500, Progress{Level: 2, XP: 0}, true},
		{"single rollover", Progress{Level: 1, XP: 0}, 12000, Progress{Level: 2, XP: 0}, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			l := NewLedger(tc.start, 5000)
			if got := l.AddXP(tc.amount); got != tc.wantLevel {
				t.Errorf("AddXP() level up = %v, expected %v", got, tc.wantLevel)
			}
			if l.Progress() != tc.want {
				t.Errorf("Progress() = %+v, expected %+v", l.Progress(), tc.want)
			}
		})
	}
}

func TestTenWinsLevelUp(t *testing.T) {
	l := NewLedger(Default(), 5000)

	for i := 1; i <= 10; i++ {
		up := l.Apply(500, 500)
		if up != (i == 10) {
			t.Fatalf("win %d: level up = %v", i, up)
		}
	}
	if p := l.Progress(); p.Level != 2 || p.XP != 0 || p.Coins != 5000 {
		t.Errorf("after 10 wins: %+v, expected level 2, xp 0, 5000 coins", p)
	}
}

func TestRepositoryRoundTrip(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRepository(kv, log.New(io.Discard))

	if got := repo.Load(ctx, "guessNumber"); got != Default() {
		t.Errorf("empty Load() = %+v, expected defaults", got)
	}

	want := Progress{Level: 3, XP: 1500, Coins: 2750}
	got, err := repo.Credit(ctx, "guessNumber", Progress{Level: 3, XP: 1500}, 2750)
	if err != nil {
		t.Fatalf("Credit() failed: %v", err)
	}
	if got != want {
		t.Errorf("Credit() = %+v, expected %+v", got, want)
	}

	for key, val := range map[string]string{
		"guessNumberLevel": "3",
		"guessNumberXp":    "1500",
		"coins":            "2750",
	} {
		got, ok, _ := kv.Get(ctx, key)
		if !ok || got != val {
			t.Errorf("key %s = %q (exists %v), expected %q", key, got, ok, val)
		}
	}

	if got := repo.Load(ctx, "guessNumber"); got != want {
		t.Errorf("Load() = %+v, expected %+v", got, want)
	}

	// Coins are shared, level and XP are not
	other := repo.Load(ctx, "guessSequence")
	if other.Level != 1 || other.XP != 0 || other.Coins != 2750 {
		t.Errorf("other mode = %+v, expected level 1, xp 0, 2750 coins", other)
	}
}

func TestRepositoryGarbage(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, "guessEquationLevel", "abc")
	_ = kv.Set(ctx, "guessEquationXp", "12.5")
	_ = kv.Set(ctx, "coins", "300")

	repo := NewRepository(kv, log.New(io.Discard))
	got := repo.Load(ctx, "guessEquation")
	if got.Level != 1 || got.XP != 0 || got.Coins != 300 {
		t.Errorf("Load() = %+v, expected level 1, xp 0, 300 coins", got)
	}
}

func TestRepositoryReset(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(NewMemoryKV(), log.New(io.Discard))
	_, _ = repo.Credit(ctx, "guessSequence", Progress{Level: 4, XP: 100}, 9000)

	if err := repo.Reset(ctx, "guessSequence"); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if got := repo.Load(ctx, "guessSequence"); got != Default() {
		t.Errorf("Load() after reset = %+v, expected defaults", got)
	}
}

type failingKV struct{}

var errDown = errors.New("store down")

func (failingKV) Get(context.Context, string) (string, bool, error) { return "", false, errDown }
func (failingKV) Set(context.Context, string, string) error         { return errDown }
func (failingKV) Delete(context.Context, string) error              { return errDown }
func (failingKV) Add(context.Context, string, int) (int, error)     { return 0, errDown }

func TestRepositoryFailures(t *testing.T) {
	ctx := context.Background()
	repo := NewRepository(failingKV{}, log.New(io.Discard))

	if got := repo.Load(ctx, "guessNumber"); got != Default() {
		t.Errorf("Load() on failing store = %+v, expected defaults", got)
	}
	p, err := repo.Credit(ctx, "guessNumber", Progress{Level: 2, Coins: 70}, 500)
	if !errors.Is(err, errDown) {
		t.Errorf("Credit() error = %v, expected errDown", err)
	}
	if p.Coins != 70 {
		t.Errorf("Credit() coins = %d on failure, expected the unchanged 70", p.Coins)
	}
}

func TestRepositoryXPAtThreshold(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, "guessNumberLevel", "2")
	_ = kv.Set(ctx, "guessNumberXp", "7000")

	tests := []struct {
		name      string
		threshold int
		wantXP    int
	}{
		{"above default threshold", 0, 0},
		{"exactly the threshold", 7000, 0},
		{"below a larger threshold", 8000, 7000},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			repo := NewRepository(kv, log.New(io.Discard)).WithThreshold(tc.threshold)
			got := repo.Load(ctx, "guessNumber")
			if got.XP != tc.wantXP || got.Level != 2 {
				t.Errorf("Load() = %+v, expected level 2, xp %d", got, tc.wantXP)
			}
		})
	}
}

func TestCreditAddsToSharedCoins(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	repo := NewRepository(kv, log.New(io.Discard))

	// Both engines loaded the balance before either round was won
	stale := repo.Load(ctx, "guessNumber")

	if _, err := repo.Credit(ctx, "guessSequence", Progress{Level: 1, XP: 500, Coins: stale.Coins + 500}, 500); err != nil {
		t.Fatalf("Credit(sequence) failed: %v", err)
	}
	got, err := repo.Credit(ctx, "guessNumber", Progress{Level: 1, XP: 500, Coins: stale.Coins + 250}, 250)
	if err != nil {
		t.Fatalf("Credit(number) failed: %v", err)
	}

	if got.Coins != 750 {
		t.Errorf("balance = %d, expected 750", got.Coins)
	}
	if v, _, _ := kv.Get(ctx, CoinsKey); v != "750" {
		t.Errorf("stored coins = %q, expected 750", v)
	}
}

func TestMemoryKVAddConcurrent(t *testing.T) {
	ctx := context.Background()
	kv := NewMemoryKV()
	_ = kv.Set(ctx, CoinsKey, "junk")

	var wg sync.WaitGroup
	for range 50 {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, _ = kv.Add(ctx, CoinsKey, 10)
		}()
	}
	wg.Wait()

	if v, _, _ := kv.Get(ctx, CoinsKey); v != "500" {
		t.Errorf("coins = %q, expected 500", v)
	}
}
