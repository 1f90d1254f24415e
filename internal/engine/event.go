package engine

import "github.com/vovakirdan/numbolt/internal/round"

// Cue tells the presentation layer which effect fits an event.
// The engine never plays sounds or animations itself.
type Cue int

const (
	CueNone Cue = iota
	CueWrong
	CueWin
	CueGameOver
	CueLevelUp
	CueHint
)

// String returns a human-readable name for the cue.
func (c Cue) String() string {
	switch c {
	case CueNone:
		return "none"
	case CueWrong:
		return "wrong"
	case CueWin:
		return "win"
	case CueGameOver:
		return "game_over"
	case CueLevelUp:
		return "level_up"
	case CueHint:
		return "hint"
	default:
		return "unknown"
	}
}

// Event is the result of a round operation.
type Event struct {
	Outcome round.Outcome
	Attempt int          // Attempt the event refers to (1-based)
	Reward  round.Reward // Paid reward, zero unless Outcome is OutcomeCorrect
	Answer  string       // Revealed answer once the round is resolved
	LevelUp bool
	Level   int    // Level after the event
	Message string // Bolt's line for the player
	Detail  string // Second line, e.g. the level-up text
	Cue     Cue
}

// Resolved reports whether the event ended the round.
func (e Event) Resolved() bool {
	return e.Outcome.Resolved()
}
