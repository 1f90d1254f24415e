package tui

import (
	"io"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"github.com/vovakirdan/numbolt/internal/engine"
)

// flashDuration is how long Bolt's feedback line stays highlighted.
const flashDuration = 700 * time.Millisecond

// flashDoneMsg clears the highlight of the feedback line with the given id.
type flashDoneMsg int

// flashCmd returns a command that ends the flash with the given id.
func flashCmd(id int) tea.Cmd {
	return tea.Tick(flashDuration, func(time.Time) tea.Msg {
		return flashDoneMsg(id)
	})
}

// bellCmd rings the terminal bell for cues that deserve one.
// w is the session output; nil disables the bell.
func bellCmd(w io.Writer, cue engine.Cue) tea.Cmd {
	if w == nil {
		return nil
	}
	switch cue {
	case engine.CueWin, engine.CueGameOver, engine.CueLevelUp:
	default:
		return nil
	}
	return func() tea.Msg {
		//nolint:errcheck // Best-effort bell
		w.Write([]byte("\a"))
		return nil
	}
}
