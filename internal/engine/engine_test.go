package engine

import (
	"context"
	"errors"
	"io"
	"strconv"
	"testing"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/core"
	_ "github.com/vovakirdan/numbolt/internal/modes/number"
	_ "github.com/vovakirdan/numbolt/internal/modes/sequence"
	"github.com/vovakirdan/numbolt/internal/progress"
	"github.com/vovakirdan/numbolt/internal/registry"
	"github.com/vovakirdan/numbolt/internal/round"
	"github.com/vovakirdan/numbolt/internal/storage"
)

type recorder struct {
	rounds []storage.RoundRecord
}

func (r *recorder) SaveRound(_ context.Context, rec storage.RoundRecord) (string, error) {
	r.rounds = append(r.rounds, rec)
	return strconv.Itoa(len(r.rounds)), nil
}

func newTestEngine(t *testing.T, modeID string, kv progress.KV, rec Recorder) *Engine {
	t.Helper()
	mode, err := registry.Get(modeID)
	if err != nil {
		t.Fatalf("registry.Get(%q) failed: %v", modeID, err)
	}
	logger := log.New(io.Discard)
	return New(context.Background(), mode, progress.NewRepository(kv, logger), Options{
		Config:   config.Default(),
		Rand:     core.NewRand(42),
		Logger:   logger,
		Recorder: rec,
		Profile:  "tester",
	})
}

func submit(t *testing.T, e *Engine, guess int) Event {
	t.Helper()
	ev, err := e.SubmitText(context.Background(), strconv.Itoa(guess))
	if err != nil {
		t.Fatalf("Submit(%d) failed: %v", guess, err)
	}
	return ev
}

func TestIntroWording(t *testing.T) {
	e := newTestEngine(t, "number", progress.NewMemoryKV(), nil)

	first := e.StartRound()
	if first.Outcome != round.OutcomePending || first.Attempt != 1 {
		t.Errorf("intro event = %+v", first)
	}
	second := e.StartRound()
	if first.Message == second.Message {
		t.Errorf("replay intro repeats the first intro: %q", second.Message)
	}
}

func TestWinAppliesRewardOnceAndPersists(t *testing.T) {
	ctx := context.Background()
	kv := progress.NewMemoryKV()
	rec := &recorder{}
	e := newTestEngine(t, "number", kv, rec)

	e.StartRound()
	answer := e.Round().Puzzle().Target()
	ev := submit(t, e, answer)

	if ev.Outcome != round.OutcomeCorrect || ev.Cue != CueWin {
		t.Fatalf("event = %+v, expected a win", ev)
	}
	if ev.Reward.Coins != 500 || ev.Reward.XP != 500 {
		t.Errorf("reward = %+v, expected 500 coins and 500 xp", ev.Reward)
	}

	// A second submit on the resolved round must not pay again
	if _, err := e.Submit(ctx); !errors.Is(err, round.ErrRoundOver) {
		t.Errorf("Submit() after win error = %v, expected ErrRoundOver", err)
	}
	if p := e.Progress(); p.Coins != 500 || p.XP != 500 || p.Level != 1 {
		t.Errorf("Progress() = %+v, expected 500 coins, 500 xp, level 1", p)
	}

	for key, want := range map[string]string{
		"guessNumberLevel": "1",
		"guessNumberXp":    "500",
		"coins":            "500",
	} {
		if got, _, _ := kv.Get(ctx, key); got != want {
			t.Errorf("%s = %q, expected %q", key, got, want)
		}
	}

	if len(rec.rounds) != 1 || rec.rounds[0].Outcome != storage.OutcomeWon || rec.rounds[0].Profile != "tester" {
		t.Errorf("recorded rounds = %+v", rec.rounds)
	}
}

func TestGameOverRevealsAnswer(t *testing.T) {
	kv := progress.NewMemoryKV()
	rec := &recorder{}
	e := newTestEngine(t, "number", kv, rec)

	e.StartRound()
	answer := e.Round().Puzzle().Target()

	var ev Event
	for i := 0; i < 3; i++ {
		ev = submit(t, e, answer+1)
		if i < 2 && (ev.Outcome != round.OutcomeTooHigh || ev.Cue != CueWrong) {
			t.Fatalf("miss %d = %+v, expected too_high with a wrong cue", i+1, ev)
		}
	}

	if ev.Outcome != round.OutcomeExhausted || ev.Cue != CueGameOver {
		t.Fatalf("last miss = %+v, expected game over", ev)
	}
	if ev.Answer != strconv.Itoa(answer) {
		t.Errorf("revealed answer = %q, expected %d", ev.Answer, answer)
	}
	if p := e.Progress(); p.Coins != 0 || p.XP != 0 {
		t.Errorf("loss paid out: %+v", p)
	}
	if len(rec.rounds) != 1 || rec.rounds[0].Outcome != storage.OutcomeLost || rec.rounds[0].Attempts != 3 {
		t.Errorf("recorded rounds = %+v", rec.rounds)
	}
}

func TestLevelUp(t *testing.T) {
	ctx := context.Background()
	kv := progress.NewMemoryKV()
	_ = kv.Set(ctx, "guessNumberXp", "4500")
	_ = kv.Set(ctx, "guessNumberLevel", "2")
	e := newTestEngine(t, "number", kv, nil)

	e.StartRound()
	ev := submit(t, e, e.Round().Puzzle().Target())

	if !ev.LevelUp || ev.Cue != CueLevelUp || ev.Level != 3 {
		t.Errorf("event = %+v, expected level up to 3", ev)
	}
	if ev.Reward.Coins != 1000 {
		t.Errorf("level 2 first-try coins = %d, expected 1000", ev.Reward.Coins)
	}
	if ev.Detail == "" {
		t.Error("level-up event has no detail text")
	}
	if p := e.Progress(); p.XP != 0 {
		t.Errorf("XP after level up = %d, expected 0", p.XP)
	}
}

func TestHints(t *testing.T) {
	e := newTestEngine(t, "number", progress.NewMemoryKV(), nil)
	e.StartRound()

	for i := 0; i < 2; i++ {
		ev, ok := e.Hint()
		if !ok || ev.Cue != CueHint || ev.Message == "" {
			t.Fatalf("hint %d = %+v, %v", i+1, ev, ok)
		}
	}
	if _, ok := e.Hint(); ok {
		t.Error("third hint revealed")
	}

	seq := newTestEngine(t, "sequence", progress.NewMemoryKV(), nil)
	seq.StartRound()
	if _, ok := seq.Hint(); ok {
		t.Error("sequence mode revealed a hint")
	}
}

func TestInvalidGuessKeepsAttempt(t *testing.T) {
	e := newTestEngine(t, "number", progress.NewMemoryKV(), nil)
	e.StartRound()

	ev, err := e.Submit(context.Background())
	if err != nil {
		t.Fatalf("Submit() failed: %v", err)
	}
	if ev.Outcome != round.OutcomeInvalid || e.Round().Attempt() != 1 {
		t.Errorf("empty submit = %+v, attempt %d", ev, e.Round().Attempt())
	}
}

func TestRefreshSeesSharedCoins(t *testing.T) {
	ctx := context.Background()
	kv := progress.NewMemoryKV()
	num := newTestEngine(t, "number", kv, nil)
	seq := newTestEngine(t, "sequence", kv, nil)

	num.StartRound()
	submit(t, num, num.Round().Puzzle().Target())

	seq.Refresh(ctx)
	if seq.Progress().Coins != 500 {
		t.Errorf("sequence coins = %d, expected 500", seq.Progress().Coins)
	}
	if seq.Progress().XP != 0 {
		t.Errorf("sequence xp = %d, expected 0", seq.Progress().XP)
	}
}

func TestConcurrentSessionsKeepEveryReward(t *testing.T) {
	ctx := context.Background()
	kv := progress.NewMemoryKV()
	num := newTestEngine(t, "number", kv, nil)
	seq := newTestEngine(t, "sequence", kv, nil)

	num.StartRound()
	seq.StartRound()

	if ev := submit(t, num, 0); ev.Outcome != round.OutcomeTooLow {
		t.Fatalf("guess 0 = %v, expected too_low", ev.Outcome)
	}
	if ev := submit(t, seq, seq.Round().Puzzle().Target()); ev.Reward.Coins != 500 {
		t.Fatalf("sequence reward = %d, expected 500", ev.Reward.Coins)
	}
	if ev := submit(t, num, num.Round().Puzzle().Target()); ev.Reward.Coins != 250 {
		t.Fatalf("number reward = %d, expected 250", ev.Reward.Coins)
	}

	if got := num.Progress().Coins; got != 750 {
		t.Errorf("number engine coins = %d, expected 750", got)
	}
	if got, _, _ := kv.Get(ctx, "coins"); got != "750" {
		t.Errorf("stored coins = %q, expected 750", got)
	}
}

func TestTwoLoginsSameMode(t *testing.T) {
	ctx := context.Background()
	kv := progress.NewMemoryKV()
	a := newTestEngine(t, "number", kv, nil)
	b := newTestEngine(t, "number", kv, nil)

	a.StartRound()
	b.StartRound()
	submit(t, a, a.Round().Puzzle().Target())
	submit(t, b, b.Round().Puzzle().Target())

	if p := b.Progress(); p.Coins != 1000 || p.XP != 1000 {
		t.Errorf("second login progress = %+v, expected 1000 coins and 1000 xp", p)
	}
	if got, _, _ := kv.Get(ctx, "guessNumberXp"); got != "1000" {
		t.Errorf("stored xp = %q, expected 1000", got)
	}
}

func TestReset(t *testing.T) {
	ctx := context.Background()
	kv := progress.NewMemoryKV()
	e := newTestEngine(t, "number", kv, nil)

	e.StartRound()
	submit(t, e, e.Round().Puzzle().Target())

	if err := e.Reset(ctx); err != nil {
		t.Fatalf("Reset() failed: %v", err)
	}
	if e.Progress() != progress.Default() {
		t.Errorf("Progress() after reset = %+v", e.Progress())
	}
	if _, ok, _ := kv.Get(ctx, "coins"); ok {
		t.Error("coins key survived reset")
	}
}
