// Package engine runs rounds of one puzzle mode against a player's progress.
// One Engine serves one mode for one profile; it is not safe for
// concurrent use.
package engine

import (
	"context"
	"fmt"
	"math/rand"

	"github.com/charmbracelet/log"

	"github.com/vovakirdan/numbolt/internal/config"
	"github.com/vovakirdan/numbolt/internal/core"
	"github.com/vovakirdan/numbolt/internal/progress"
	"github.com/vovakirdan/numbolt/internal/registry"
	"github.com/vovakirdan/numbolt/internal/round"
	"github.com/vovakirdan/numbolt/internal/storage"
)

// Recorder receives every resolved round. *storage.Store implements it.
type Recorder interface {
	SaveRound(ctx context.Context, rec storage.RoundRecord) (string, error)
}

// Options configures an Engine. Zero values fall back to defaults.
type Options struct {
	Config   config.Config
	Rand     *rand.Rand
	Logger   *log.Logger
	Recorder Recorder
	Profile  string
}

// Engine owns the live round and the ledger of one mode.
type Engine struct {
	mode     registry.Mode
	cfg      config.Config
	repo     *progress.Repository
	ledger   *progress.Ledger
	eval     round.Evaluator
	rng      *rand.Rand
	logger   *log.Logger
	recorder Recorder
	profile  string

	round  *round.Round
	rounds int // Rounds started, used to pick the intro wording
}

// New creates an engine for mode and loads the player's progress.
func New(ctx context.Context, mode registry.Mode, repo *progress.Repository, opts Options) *Engine {
	if opts.Config.Rounds.MaxAttempts == 0 {
		opts.Config = config.Default()
	}
	if opts.Rand == nil {
		opts.Rand = core.NewRand(0)
	}
	if opts.Logger == nil {
		opts.Logger = log.Default()
	}
	if opts.Profile == "" {
		opts.Profile = core.DefaultProfile
	}

	e := &Engine{
		mode:     mode,
		cfg:      opts.Config,
		repo:     repo,
		eval:     round.NewEvaluator(opts.Config),
		rng:      opts.Rand,
		logger:   opts.Logger.With("mode", mode.ID),
		recorder: opts.Recorder,
		profile:  opts.Profile,
	}
	e.ledger = progress.NewLedger(repo.Load(ctx, mode.StorageName), opts.Config.Progress.XPThreshold)
	return e
}

// Mode returns the mode descriptor.
func (e *Engine) Mode() registry.Mode { return e.mode }

// Profile returns the progress namespace the engine writes to.
func (e *Engine) Profile() string { return e.profile }

// Progress returns the current level, XP and coins.
func (e *Engine) Progress() progress.Progress { return e.ledger.Progress() }

// Threshold returns the XP needed to gain a level.
func (e *Engine) Threshold() int { return e.ledger.Threshold() }

// MaxAttempts returns the number of guesses allowed per round.
func (e *Engine) MaxAttempts() int { return e.eval.MaxAttempts() }

// Round returns the live round, or nil before StartRound.
func (e *Engine) Round() *round.Round { return e.round }

// Refresh reloads progress from storage, picking up coins earned in
// other modes since the engine was created.
func (e *Engine) Refresh(ctx context.Context) {
	e.ledger.Replace(e.repo.Load(ctx, e.mode.StorageName))
}

// StartRound generates a puzzle for the current level and resets the
// attempt state. Any live round is discarded.
func (e *Engine) StartRound() Event {
	p := e.ledger.Progress()
	pz := e.mode.Generate(e.rng, e.cfg, p.Level, p.XP)

	var hints []string
	if e.mode.Hints != nil {
		hints = e.mode.Hints(e.cfg, pz)
	}

	e.round = round.New(pz, e.eval, round.Options{
		Level:         p.Level,
		MaxGuessLen:   e.cfg.Rounds.MaxGuessLen,
		AllowNegative: e.mode.AllowNegative,
		Hints:         hints,
	})
	e.rounds++

	e.logger.Debug("round started", "level", p.Level, "prompt", pz.Prompt)

	return Event{
		Outcome: round.OutcomePending,
		Attempt: 1,
		Level:   p.Level,
		Message: e.mode.Intro(pz, e.rounds == 1),
	}
}

// Type appends a character to the guess.
func (e *Engine) Type(r rune) bool {
	return e.round != nil && e.round.Type(r)
}

// Delete removes the last character of the guess.
func (e *Engine) Delete() bool {
	return e.round != nil && e.round.Delete()
}

// Guess returns the guess being typed.
func (e *Engine) Guess() string {
	if e.round == nil {
		return ""
	}
	return e.round.Guess()
}

// SubmitText replaces the guess with text and submits it.
func (e *Engine) SubmitText(ctx context.Context, text string) (Event, error) {
	if e.round == nil {
		return Event{}, round.ErrRoundOver
	}
	e.round.SetGuess(text)
	return e.Submit(ctx)
}

// Submit evaluates the typed guess. A solved round pays its reward once
// and persists progress; a lost round reveals the answer.
func (e *Engine) Submit(ctx context.Context) (Event, error) {
	if e.round == nil {
		return Event{}, round.ErrRoundOver
	}

	res, err := e.round.Submit()
	if err != nil {
		return Event{}, err
	}

	// Other sessions of the profile may have paid coins or played this
	// mode since the last read.
	e.Refresh(ctx)

	ev := Event{
		Outcome: res.Outcome,
		Attempt: res.Attempt,
		Level:   e.ledger.Progress().Level,
	}

	switch res.Outcome {
	case round.OutcomeCorrect:
		ev.Reward = res.Reward
		ev.LevelUp = e.ledger.Apply(res.Reward.Coins, res.Reward.XP)
		e.credit(ctx, res.Reward.Coins)
		ev.Level = e.ledger.Progress().Level
		ev.Answer = e.round.Puzzle().Answer.String()
		ev.Message = e.mode.Solved(res.Attempt)
		ev.Cue = CueWin
		if ev.LevelUp {
			ev.Cue = CueLevelUp
			if e.mode.LevelUp != nil {
				ev.Detail = e.mode.LevelUp(e.cfg, ev.Level)
			}
		}
		e.record(ctx, storage.OutcomeWon, res)

	case round.OutcomeExhausted:
		ev.Answer = e.round.Puzzle().Answer.String()
		ev.Message = fmt.Sprintf("You have to guess the number in %d attempts. The correct number was: %s",
			e.eval.MaxAttempts(), ev.Answer)
		ev.Cue = CueGameOver
		e.record(ctx, storage.OutcomeLost, res)

	case round.OutcomeTooHigh:
		ev.Message = e.mode.Feedback.TooHigh
		ev.Cue = CueWrong

	case round.OutcomeTooLow:
		ev.Message = e.mode.Feedback.TooLow
		ev.Cue = CueWrong

	case round.OutcomeInvalid:
		ev.Message = e.mode.Feedback.Invalid
	}

	e.logger.Debug("guess evaluated", "outcome", res.Outcome, "attempt", res.Attempt)
	return ev, nil
}

// Hint reveals the next hint of the live round.
func (e *Engine) Hint() (Event, bool) {
	if e.round == nil {
		return Event{}, false
	}
	text, ok := e.round.UseHint()
	if !ok {
		return Event{}, false
	}
	return Event{
		Outcome: round.OutcomePending,
		Attempt: e.round.Attempt(),
		Level:   e.ledger.Progress().Level,
		Message: text,
		Cue:     CueHint,
	}, true
}

// Reset clears the mode's level and XP and the shared coins.
func (e *Engine) Reset(ctx context.Context) error {
	if err := e.repo.Reset(ctx, e.mode.StorageName); err != nil {
		return fmt.Errorf("engine: reset %s: %w", e.mode.ID, err)
	}
	e.ledger.Replace(progress.Default())
	e.round = nil
	e.rounds = 0
	return nil
}

// credit persists level and XP and adds coins to the stored balance.
// The ledger then mirrors the balance the store reports.
func (e *Engine) credit(ctx context.Context, coins int) {
	p, err := e.repo.Credit(ctx, e.mode.StorageName, e.ledger.Progress(), coins)
	if err != nil {
		e.logger.Warn("could not save progress", "error", err)
	}
	e.ledger.Replace(p)
}

func (e *Engine) record(ctx context.Context, outcome string, res round.Result) {
	if e.recorder == nil {
		return
	}
	rec := storage.RoundRecord{
		Profile:  e.profile,
		Mode:     e.mode.ID,
		Level:    e.round.Level(),
		Outcome:  outcome,
		Attempts: res.Attempt,
		Coins:    res.Reward.Coins,
		XP:       res.Reward.XP,
	}
	if _, err := e.recorder.SaveRound(ctx, rec); err != nil {
		e.logger.Warn("could not record round", "error", err)
	}
}
